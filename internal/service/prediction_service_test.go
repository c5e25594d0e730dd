package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NebularEclipse/SE/internal/models"
)

type mockPredictionCourses struct {
	courses []models.Course
}

func (m *mockPredictionCourses) ListUnordered(ctx context.Context) ([]models.Course, error) {
	return m.courses, nil
}

type mockScoredReader struct {
	byCourse map[string][]models.ScoredAssessment
	calls    []string
}

func (m *mockScoredReader) ListScored(ctx context.Context, studentID, courseID string) ([]models.ScoredAssessment, error) {
	m.calls = append(m.calls, studentID+"/"+courseID)
	return m.byCourse[courseID], nil
}

func TestPredictWeightedAverage(t *testing.T) {
	courses := &mockPredictionCourses{courses: []models.Course{
		{ID: "c1", CourseID: "SE101", CourseName: "Intro to SE"},
	}}
	scored := &mockScoredReader{byCourse: map[string][]models.ScoredAssessment{
		"SE101": {
			{Weight: floatPtr(0.3), Score: 90},
			{Weight: floatPtr(0.2), Score: 80},
		},
	}}
	svc := NewPredictionService(courses, scored, nil)

	predictions, err := svc.Predict(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, predictions, 1)

	p := predictions[0]
	assert.Equal(t, "Intro to SE", p.Course)
	require.NotNil(t, p.CurrentGrade)
	assert.InDelta(t, 86.0, *p.CurrentGrade, 1e-9)
	assert.InDelta(t, 0.5, p.TotalWeight, 1e-9)
	assert.InDelta(t, 0.5, p.Remaining, 1e-9)
	assert.Equal(t, []string{"s1/SE101"}, scored.calls)
}

func TestPredictNoScoredAssessments(t *testing.T) {
	courses := &mockPredictionCourses{courses: []models.Course{
		{ID: "c1", CourseID: "SE101", CourseName: "Intro to SE"},
	}}
	svc := NewPredictionService(courses, &mockScoredReader{}, nil)

	predictions, err := svc.Predict(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, predictions, 1)

	p := predictions[0]
	assert.Nil(t, p.CurrentGrade)
	assert.Zero(t, p.TotalWeight)
	assert.Equal(t, 1.0, p.Remaining)
}

func TestPredictSkipsNullWeights(t *testing.T) {
	courses := &mockPredictionCourses{courses: []models.Course{
		{ID: "c1", CourseID: "SE101", CourseName: "Intro to SE"},
	}}
	scored := &mockScoredReader{byCourse: map[string][]models.ScoredAssessment{
		"SE101": {
			{Weight: nil, Score: 100},
			{Weight: floatPtr(0.4), Score: 70},
		},
	}}
	svc := NewPredictionService(courses, scored, nil)

	predictions, err := svc.Predict(context.Background(), "s1")
	require.NoError(t, err)

	p := predictions[0]
	require.NotNil(t, p.CurrentGrade)
	assert.InDelta(t, 70.0, *p.CurrentGrade, 1e-9)
	assert.InDelta(t, 0.4, p.TotalWeight, 1e-9)
}

func TestPredictRemainingMayGoNegative(t *testing.T) {
	courses := &mockPredictionCourses{courses: []models.Course{
		{ID: "c1", CourseID: "SE101", CourseName: "Intro to SE"},
	}}
	scored := &mockScoredReader{byCourse: map[string][]models.ScoredAssessment{
		"SE101": {
			{Weight: floatPtr(0.8), Score: 90},
			{Weight: floatPtr(0.5), Score: 80},
		},
	}}
	svc := NewPredictionService(courses, scored, nil)

	predictions, err := svc.Predict(context.Background(), "s1")
	require.NoError(t, err)
	assert.InDelta(t, -0.3, predictions[0].Remaining, 1e-9)
}

func TestExportCSV(t *testing.T) {
	courses := &mockPredictionCourses{courses: []models.Course{
		{ID: "c1", CourseID: "SE101", CourseName: "Intro to SE"},
	}}
	scored := &mockScoredReader{byCourse: map[string][]models.ScoredAssessment{
		"SE101": {{Weight: floatPtr(0.5), Score: 90}},
	}}
	svc := NewPredictionService(courses, scored, nil)

	out, contentType, err := svc.Export(context.Background(), "s1", ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	body := string(out)
	assert.True(t, strings.HasPrefix(body, "Course,Current Grade,Total Weight,Remaining"))
	assert.Contains(t, body, "Intro to SE,90,0.5,0.5")
}

func TestExportPDF(t *testing.T) {
	courses := &mockPredictionCourses{courses: []models.Course{
		{ID: "c1", CourseID: "SE101", CourseName: "Intro to SE"},
	}}
	svc := NewPredictionService(courses, &mockScoredReader{}, nil)

	out, contentType, err := svc.Export(context.Background(), "s1", ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestExportUnknownFormat(t *testing.T) {
	svc := NewPredictionService(&mockPredictionCourses{}, &mockScoredReader{}, nil)

	_, _, err := svc.Export(context.Background(), "s1", "xlsx")
	assertAppError(t, err, 400, `unsupported export format "xlsx"`)
}
