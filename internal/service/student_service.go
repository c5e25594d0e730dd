package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/NebularEclipse/SE/internal/models"
	"github.com/NebularEclipse/SE/internal/validation"
	appErrors "github.com/NebularEclipse/SE/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

// UpdateStudentRequest is the admin payload for editing a student record.
type UpdateStudentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StudentService handles the admin-managed view of student records.
type StudentService struct {
	students  studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(students studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{students: students, validator: validate, logger: logger}
}

// List returns every student, ordered by name descending.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Get fetches one student record; missing records are 404 before the role
// check, and non-admins get 403.
func (s *StudentService) Get(ctx context.Context, id string, identity *models.Identity) (*models.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Student id %s doesn't exist.", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}
	if !identity.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "")
	}
	return student, nil
}

// Update edits a student's name and email.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest, identity *models.Identity) (*models.Student, error) {
	student, err := s.Get(ctx, id, identity)
	if err != nil {
		return nil, err
	}

	switch {
	case req.Name == "":
		return nil, appErrors.Clone(appErrors.ErrValidation, "Name is required.")
	case req.Email == "":
		return nil, appErrors.Clone(appErrors.ErrValidation, "Email is required.")
	case !validation.IsValidEmail(req.Email):
		return nil, appErrors.Clone(appErrors.ErrValidation, "Email is invalid.")
	}

	student.Name = req.Name
	student.Email = req.Email
	if err := s.students.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete removes a student record. The route only requires authentication,
// but the fetch applies the admin check, so non-admins get a 403 here.
func (s *StudentService) Delete(ctx context.Context, id string, identity *models.Identity) error {
	if _, err := s.Get(ctx, id, identity); err != nil {
		return err
	}
	if err := s.students.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}
