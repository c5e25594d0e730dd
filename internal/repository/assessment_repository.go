package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/NebularEclipse/SE/internal/models"
)

// AssessmentRepository manages persistence for assessment records.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository constructs an AssessmentRepository.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// ListByStudent returns the assessments owned by one student.
func (r *AssessmentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Assessment, error) {
	const query = `SELECT id, student_id, course_id, name, weight, score, created_at, updated_at FROM assessments WHERE student_id = $1`
	var assessments []models.Assessment
	if err := r.db.SelectContext(ctx, &assessments, query, studentID); err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return assessments, nil
}

// FindByID fetches an assessment by surrogate ID.
func (r *AssessmentRepository) FindByID(ctx context.Context, id string) (*models.Assessment, error) {
	const query = `SELECT id, student_id, course_id, name, weight, score, created_at, updated_at FROM assessments WHERE id = $1 LIMIT 1`
	var assessment models.Assessment
	if err := r.db.GetContext(ctx, &assessment, query, id); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// ListScored returns weight/score pairs for one student and course where a
// score has been recorded. Unscored rows never reach the predictor.
func (r *AssessmentRepository) ListScored(ctx context.Context, studentID, courseID string) ([]models.ScoredAssessment, error) {
	const query = `SELECT weight, score FROM assessments WHERE student_id = $1 AND course_id = $2 AND score IS NOT NULL`
	var scored []models.ScoredAssessment
	if err := r.db.SelectContext(ctx, &scored, query, studentID, courseID); err != nil {
		return nil, fmt.Errorf("list scored assessments: %w", err)
	}
	return scored, nil
}

// Create inserts a new assessment record.
func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	if assessment.ID == "" {
		assessment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if assessment.CreatedAt.IsZero() {
		assessment.CreatedAt = now
	}
	assessment.UpdatedAt = now
	const query = `INSERT INTO assessments (id, student_id, course_id, name, weight, score, created_at, updated_at)
        VALUES (:id, :student_id, :course_id, :name, :weight, :score, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assessment); err != nil {
		return fmt.Errorf("create assessment: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an assessment.
func (r *AssessmentRepository) Update(ctx context.Context, assessment *models.Assessment) error {
	assessment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE assessments SET course_id = :course_id, name = :name, weight = :weight, score = :score, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, assessment); err != nil {
		return fmt.Errorf("update assessment: %w", err)
	}
	return nil
}

// Delete removes an assessment record.
func (r *AssessmentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM assessments WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}
	return nil
}
