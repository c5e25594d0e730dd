package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NebularEclipse/SE/internal/models"
	appErrors "github.com/NebularEclipse/SE/pkg/errors"
)

type mockCourseRepo struct {
	items   map[string]*models.Course
	list    []models.Course
	listErr error
	deleted []string
}

func (m *mockCourseRepo) List(ctx context.Context) ([]models.Course, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if course, ok := m.items[id]; ok {
		cp := *course
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = "generated"
	}
	if m.items == nil {
		m.items = make(map[string]*models.Course)
	}
	cp := *course
	m.items[course.ID] = &cp
	return nil
}

func (m *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	cp := *course
	m.items[course.ID] = &cp
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id string) error {
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

var (
	adminIdentity   = &models.Identity{ID: "a1", Role: models.RoleAdmin, Name: "admin"}
	studentIdentity = &models.Identity{ID: "s1", Role: models.RoleStudent, Name: "Amy"}
)

func TestCourseGetMissingBeforeRoleCheck(t *testing.T) {
	svc := NewCourseService(&mockCourseRepo{}, nil, nil)

	// A missing course is a 404 even for a student.
	_, err := svc.Get(context.Background(), "nope", studentIdentity)
	assertAppError(t, err, 404, "Course id nope doesn't exist.")
}

func TestCourseGetForbiddenForStudent(t *testing.T) {
	repo := &mockCourseRepo{items: map[string]*models.Course{
		"c1": {ID: "c1", CourseID: "SE101", CourseName: "Intro to SE"},
	}}
	svc := NewCourseService(repo, nil, nil)

	_, err := svc.Get(context.Background(), "c1", studentIdentity)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Status)

	course, err := svc.Get(context.Background(), "c1", adminIdentity)
	require.NoError(t, err)
	assert.Equal(t, "SE101", course.CourseID)
}

func TestCourseCreateValidation(t *testing.T) {
	svc := NewCourseService(&mockCourseRepo{}, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CourseRequest{CourseName: "Intro to SE"})
	assertAppError(t, err, 400, "Course ID is required.")

	_, err = svc.Create(ctx, CourseRequest{CourseID: "SE101"})
	assertAppError(t, err, 400, "Course Name is required.")

	course, err := svc.Create(ctx, CourseRequest{CourseID: "SE101", CourseName: "Intro to SE"})
	require.NoError(t, err)
	assert.NotEmpty(t, course.ID)
}

func TestCourseUpdateAndDelete(t *testing.T) {
	repo := &mockCourseRepo{items: map[string]*models.Course{
		"c1": {ID: "c1", CourseID: "SE101", CourseName: "Intro to SE"},
	}}
	svc := NewCourseService(repo, nil, nil)
	ctx := context.Background()

	course, err := svc.Update(ctx, "c1", CourseRequest{CourseID: "SE102", CourseName: "Software Testing"}, adminIdentity)
	require.NoError(t, err)
	assert.Equal(t, "SE102", course.CourseID)
	assert.Equal(t, "Software Testing", course.CourseName)

	require.NoError(t, svc.Delete(ctx, "c1", adminIdentity))
	assert.Equal(t, []string{"c1"}, repo.deleted)

	err = svc.Delete(ctx, "c1", adminIdentity)
	assertAppError(t, err, 404, "Course id c1 doesn't exist.")
}
