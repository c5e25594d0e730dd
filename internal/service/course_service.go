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

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

// CourseRequest is the payload for creating or updating a course.
type CourseRequest struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
}

// CourseService handles admin-managed course records.
type CourseService struct {
	courses   courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(courses courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{courses: courses, validator: validate, logger: logger}
}

// List returns every course, ordered by name descending. Open to any
// authenticated identity.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Get fetches one course. Existence is checked before the role check, so a
// missing course is a 404 even for non-admins.
func (s *CourseService) Get(ctx context.Context, id string, identity *models.Identity) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Course id %s doesn't exist.", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course")
	}
	if !identity.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "")
	}
	return course, nil
}

// Create inserts a new course.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	if err := validateCourseRequest(req); err != nil {
		return nil, err
	}
	course := &models.Course{CourseID: req.CourseID, CourseName: req.CourseName}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Update replaces the course_id and course_name of an existing course.
func (s *CourseService) Update(ctx context.Context, id string, req CourseRequest, identity *models.Identity) (*models.Course, error) {
	course, err := s.Get(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	if err := validateCourseRequest(req); err != nil {
		return nil, err
	}
	course.CourseID = req.CourseID
	course.CourseName = req.CourseName
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// Delete removes a course after the existence and role checks.
func (s *CourseService) Delete(ctx context.Context, id string, identity *models.Identity) error {
	if _, err := s.Get(ctx, id, identity); err != nil {
		return err
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}

func validateCourseRequest(req CourseRequest) error {
	if req.CourseID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Course ID is required.")
	}
	if req.CourseName == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Course Name is required.")
	}
	return nil
}
