package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/NebularEclipse/SE/internal/models"
	appErrors "github.com/NebularEclipse/SE/pkg/errors"
	"github.com/NebularEclipse/SE/pkg/export"
)

type predictionCourseReader interface {
	ListUnordered(ctx context.Context) ([]models.Course, error)
}

type scoredAssessmentReader interface {
	ListScored(ctx context.Context, studentID, courseID string) ([]models.ScoredAssessment, error)
}

// Export formats supported by the prediction report.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// PredictionService computes per-course grade predictions for one student.
// The computation is stateless; every call reads the current assessment rows.
type PredictionService struct {
	courses     predictionCourseReader
	assessments scoredAssessmentReader
	logger      *zap.Logger
}

// NewPredictionService constructs a PredictionService.
func NewPredictionService(courses predictionCourseReader, assessments scoredAssessmentReader, logger *zap.Logger) *PredictionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PredictionService{courses: courses, assessments: assessments, logger: logger}
}

// Predict builds one report row per course in the system, in the order the
// store returned the courses. Courses with no scored assessments yield a nil
// current grade and a full remaining weight.
func (s *PredictionService) Predict(ctx context.Context, studentID string) ([]models.CoursePrediction, error) {
	courses, err := s.courses.ListUnordered(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}

	predictions := make([]models.CoursePrediction, 0, len(courses))
	for _, course := range courses {
		scored, err := s.assessments.ListScored(ctx, studentID, course.CourseID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list scored assessments")
		}
		predictions = append(predictions, predictCourse(course.CourseName, scored))
	}
	return predictions, nil
}

// Export renders the prediction report in the requested format and returns
// the bytes plus the matching content type.
func (s *PredictionService) Export(ctx context.Context, studentID, format string) ([]byte, string, error) {
	switch format {
	case ExportFormatCSV, ExportFormatPDF:
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	predictions, err := s.Predict(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	table := export.Table{
		Title:   "Grade Prediction",
		Headers: []string{"Course", "Current Grade", "Total Weight", "Remaining"},
	}
	for _, p := range predictions {
		grade := ""
		if p.CurrentGrade != nil {
			grade = formatFloat(*p.CurrentGrade)
		}
		table.Rows = append(table.Rows, []string{
			p.Course,
			grade,
			formatFloat(p.TotalWeight),
			formatFloat(p.Remaining),
		})
	}

	if format == ExportFormatPDF {
		out, err := export.PDF(table)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return out, "application/pdf", nil
	}

	out, err := export.CSV(table)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return out, "text/csv", nil
}

// predictCourse folds the scored rows for one course. Null weights count as
// zero; remaining is 1 minus the recorded weight and may go negative when
// weights sum past 1.
func predictCourse(courseName string, scored []models.ScoredAssessment) models.CoursePrediction {
	var totalWeight, weightedScore float64
	for _, a := range scored {
		if a.Weight == nil {
			continue
		}
		totalWeight += *a.Weight
		weightedScore += a.Score * *a.Weight
	}

	prediction := models.CoursePrediction{
		Course:      courseName,
		TotalWeight: totalWeight,
		Remaining:   1 - totalWeight,
	}
	if totalWeight > 0 {
		grade := weightedScore / totalWeight
		prediction.CurrentGrade = &grade
	}
	return prediction
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
