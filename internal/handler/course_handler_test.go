package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NebularEclipse/SE/internal/middleware"
	"github.com/NebularEclipse/SE/internal/models"
	"github.com/NebularEclipse/SE/internal/service"
	appErrors "github.com/NebularEclipse/SE/pkg/errors"
)

type courseServiceMock struct {
	listResp  []models.Course
	getResp   *models.Course
	getErr    error
	createErr error
	deleted   []string
}

func (m *courseServiceMock) List(ctx context.Context) ([]models.Course, error) {
	return m.listResp, nil
}

func (m *courseServiceMock) Get(ctx context.Context, id string, identity *models.Identity) (*models.Course, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.getResp, nil
}

func (m *courseServiceMock) Create(ctx context.Context, req service.CourseRequest) (*models.Course, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &models.Course{ID: "c1", CourseID: req.CourseID, CourseName: req.CourseName}, nil
}

func (m *courseServiceMock) Update(ctx context.Context, id string, req service.CourseRequest, identity *models.Identity) (*models.Course, error) {
	return &models.Course{ID: id, CourseID: req.CourseID, CourseName: req.CourseName}, nil
}

func (m *courseServiceMock) Delete(ctx context.Context, id string, identity *models.Identity) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestCourseHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &courseServiceMock{listResp: []models.Course{{ID: "c1", CourseID: "SE101", CourseName: "Intro to SE"}}}
	handler := NewCourseHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/courses", nil)

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Intro to SE")
}

func TestCourseHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &courseServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "Course id c9 doesn't exist.")}
	handler := NewCourseHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/courses/c9", nil)
	c.Params = gin.Params{{Key: "id", Value: "c9"}}
	c.Set(middleware.ContextIdentityKey, &models.Identity{ID: "a1", Role: models.RoleAdmin})

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Course id c9 doesn't exist.")
}

func TestCourseHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &courseServiceMock{}
	handler := NewCourseHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(service.CourseRequest{CourseID: "SE101", CourseName: "Intro to SE"})
	req, _ := http.NewRequest(http.MethodPost, "/courses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextIdentityKey, &models.Identity{ID: "a1", Role: models.RoleAdmin})

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "SE101")
}

func TestCourseHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCourseHandler(&courseServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/courses", bytes.NewReader([]byte(`invalid`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCourseHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &courseServiceMock{}
	handler := NewCourseHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/courses/c1", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}
	c.Set(middleware.ContextIdentityKey, &models.Identity{ID: "a1", Role: models.RoleAdmin})

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"c1"}, svc.deleted)
}
