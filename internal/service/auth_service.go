package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/NebularEclipse/SE/internal/models"
	"github.com/NebularEclipse/SE/internal/repository"
	"github.com/NebularEclipse/SE/internal/session"
	"github.com/NebularEclipse/SE/internal/validation"
	appErrors "github.com/NebularEclipse/SE/pkg/errors"
)

type authStudentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
}

type authAdminRepository interface {
	FindByID(ctx context.Context, id string) (*models.Admin, error)
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}

type auditRecorder interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// AuthService provides registration, login, logout and per-request identity
// resolution.
type AuthService struct {
	students  authStudentRepository
	admins    authAdminRepository
	audits    auditRecorder
	sessions  session.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(students authStudentRepository, admins authAdminRepository, audits auditRecorder, sessions session.Store, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{students: students, admins: admins, audits: audits, sessions: sessions, validator: validate, logger: logger}
}

// Register creates a student or admin account. Field checks run in a fixed
// order so the first failing check decides the message.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid register payload")
	}

	switch req.Role {
	case models.RoleStudent:
		return s.registerStudent(ctx, req)
	case models.RoleAdmin:
		return s.registerAdmin(ctx, req)
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
}

func (s *AuthService) registerStudent(ctx context.Context, req models.RegisterRequest) error {
	studentID := strings.ToLower(strings.TrimSpace(req.StudentID))
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	switch {
	case studentID == "":
		return appErrors.Clone(appErrors.ErrValidation, "Student ID is required.")
	case name == "":
		return appErrors.Clone(appErrors.ErrValidation, "Name is required.")
	case email == "":
		return appErrors.Clone(appErrors.ErrValidation, "Email is required.")
	case req.Password == "":
		return appErrors.Clone(appErrors.ErrValidation, "Password is required.")
	case !validation.IsValidEmail(email):
		return appErrors.Clone(appErrors.ErrValidation, "Invalid email.")
	case !validation.IsStrongPassword(req.Password):
		return appErrors.Clone(appErrors.ErrValidation, "Password isn't strong enough.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	student := &models.Student{StudentID: studentID, Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.students.Create(ctx, student); err != nil {
		if repository.IsUniqueViolation(err) {
			return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("User %s is already registered.", studentID))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	s.audit(ctx, &student.ID, models.AuditActionRegister, "student", req.IP, req.UserAgent)
	return nil
}

func (s *AuthService) registerAdmin(ctx context.Context, req models.RegisterRequest) error {
	switch {
	case req.Username == "":
		return appErrors.Clone(appErrors.ErrValidation, "Username is required.")
	case strings.Contains(req.Username, " "):
		return appErrors.Clone(appErrors.ErrValidation, "Username must not contain spaces.")
	case req.Password == "":
		return appErrors.Clone(appErrors.ErrValidation, "Password is required.")
	case !validation.IsStrongPassword(req.Password):
		return appErrors.Clone(appErrors.ErrValidation, "Password isn't strong enough.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	admin := &models.Admin{Username: req.Username, PasswordHash: string(hash)}
	if err := s.admins.Create(ctx, admin); err != nil {
		if repository.IsUniqueViolation(err) {
			return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("Admin %s is already registered.", req.Username))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create admin")
	}

	s.audit(ctx, &admin.ID, models.AuditActionRegister, "admin", req.IP, req.UserAgent)
	return nil
}

// Login verifies credentials for either role and opens a session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	var identity models.Identity

	switch req.Role {
	case models.RoleStudent:
		student, err := s.students.FindByStudentID(ctx, req.StudentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Incorrect Student ID.")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
		}
		if bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)) != nil {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Incorrect password.")
		}
		identity = models.Identity{ID: student.ID, Role: models.RoleStudent, Name: student.Name}

	case models.RoleAdmin:
		admin, err := s.admins.FindByUsername(ctx, req.Username)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Incorrect username.")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch admin")
		}
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Incorrect password.")
		}
		identity = models.Identity{ID: admin.ID, Role: models.RoleAdmin, Name: admin.Username}

	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}

	sess := &models.Session{UserID: identity.ID, Role: identity.Role}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}

	s.audit(ctx, &identity.ID, models.AuditActionLogin, string(identity.Role), req.IP, req.UserAgent)

	return &models.LoginResult{Identity: identity, Token: sess.Token}, nil
}

// Logout revokes the session behind the given token.
func (s *AuthService) Logout(ctx context.Context, token string, identity *models.Identity) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}
	if identity != nil {
		s.audit(ctx, &identity.ID, models.AuditActionLogout, string(identity.Role), "", "")
	}
	return nil
}

// Resolve turns a session token into the current identity. Unknown tokens,
// unrecognized roles and vanished records all resolve to anonymous (nil).
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}

	switch sess.Role {
	case models.RoleStudent:
		student, err := s.students.FindByID(ctx, sess.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
		}
		return &models.Identity{ID: student.ID, Role: models.RoleStudent, Name: student.Name}, nil

	case models.RoleAdmin:
		admin, err := s.admins.FindByID(ctx, sess.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch admin")
		}
		return &models.Identity{ID: admin.ID, Role: models.RoleAdmin, Name: admin.Username}, nil

	default:
		return nil, nil
	}
}

func (s *AuthService) audit(ctx context.Context, userID *string, action, resource, ip, userAgent string) {
	if s.audits == nil {
		return
	}
	if err := s.audits.Create(ctx, &models.AuditLog{
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		IPAddress: ip,
		UserAgent: userAgent,
	}); err != nil {
		s.logger.Warn("failed to record audit log", zap.String("action", action), zap.Error(err))
	}
}
