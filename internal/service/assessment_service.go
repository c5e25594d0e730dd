package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/NebularEclipse/SE/internal/models"
	appErrors "github.com/NebularEclipse/SE/pkg/errors"
)

type assessmentRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Assessment, error)
	FindByID(ctx context.Context, id string) (*models.Assessment, error)
	Create(ctx context.Context, assessment *models.Assessment) error
	Update(ctx context.Context, assessment *models.Assessment) error
	Delete(ctx context.Context, id string) error
}

// AssessmentRequest is the payload for creating or updating an assessment.
// A nil Score records the assessment as not yet graded.
type AssessmentRequest struct {
	CourseID string   `json:"course_id"`
	Name     string   `json:"name"`
	Weight   *float64 `json:"weight"`
	Score    *float64 `json:"score"`
}

// AssessmentService handles student-owned assessment records.
type AssessmentService struct {
	assessments assessmentRepository
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAssessmentService constructs an AssessmentService.
func NewAssessmentService(assessments assessmentRepository, validate *validator.Validate, logger *zap.Logger) *AssessmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{assessments: assessments, validator: validate, logger: logger}
}

// ListOwn returns the caller's assessments.
func (s *AssessmentService) ListOwn(ctx context.Context, identity *models.Identity) ([]models.Assessment, error) {
	assessments, err := s.assessments.ListByStudent(ctx, identity.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assessments")
	}
	return assessments, nil
}

// Create records a new assessment. The owner is always the caller; clients
// cannot create assessments on another student's behalf.
func (s *AssessmentService) Create(ctx context.Context, identity *models.Identity, req AssessmentRequest) (*models.Assessment, error) {
	if err := validateAssessmentRequest(req); err != nil {
		return nil, err
	}
	assessment := &models.Assessment{
		StudentID: identity.ID,
		CourseID:  req.CourseID,
		Name:      req.Name,
		Weight:    req.Weight,
		Score:     req.Score,
	}
	if err := s.assessments.Create(ctx, assessment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assessment")
	}
	return assessment, nil
}

// Get fetches one assessment; missing records are 404 before the ownership
// check, and non-owners get 403.
func (s *AssessmentService) Get(ctx context.Context, id string, identity *models.Identity) (*models.Assessment, error) {
	assessment, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if assessment.StudentID != identity.ID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "")
	}
	return assessment, nil
}

// Update replaces the mutable fields of an assessment owned by the caller.
func (s *AssessmentService) Update(ctx context.Context, id string, identity *models.Identity, req AssessmentRequest) (*models.Assessment, error) {
	assessment, err := s.Get(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	if err := validateAssessmentRequest(req); err != nil {
		return nil, err
	}
	assessment.CourseID = req.CourseID
	assessment.Name = req.Name
	assessment.Weight = req.Weight
	assessment.Score = req.Score
	if err := s.assessments.Update(ctx, assessment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assessment")
	}
	return assessment, nil
}

// Delete removes an assessment after an existence check only. Unlike Get and
// Update there is no ownership check: any authenticated identity that knows
// the id can delete the row.
func (s *AssessmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.fetch(ctx, id); err != nil {
		return err
	}
	if err := s.assessments.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assessment")
	}
	return nil
}

func (s *AssessmentService) fetch(ctx context.Context, id string) (*models.Assessment, error) {
	assessment, err := s.assessments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Assessment id %s doesn't exist.", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch assessment")
	}
	return assessment, nil
}

func validateAssessmentRequest(req AssessmentRequest) error {
	switch {
	case req.CourseID == "":
		return appErrors.Clone(appErrors.ErrValidation, "Course ID is required.")
	case req.Name == "":
		return appErrors.Clone(appErrors.ErrValidation, "Name is required.")
	case req.Weight == nil:
		return appErrors.Clone(appErrors.ErrValidation, "Weight is required.")
	}
	return nil
}
