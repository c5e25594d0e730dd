package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NebularEclipse/SE/internal/middleware"
	"github.com/NebularEclipse/SE/internal/models"
	appErrors "github.com/NebularEclipse/SE/pkg/errors"
)

type predictionServiceMock struct {
	predictions []models.CoursePrediction
	exportOut   []byte
	exportType  string
	exportErr   error
	lastFormat  string
}

func (m *predictionServiceMock) Predict(ctx context.Context, studentID string) ([]models.CoursePrediction, error) {
	return m.predictions, nil
}

func (m *predictionServiceMock) Export(ctx context.Context, studentID, format string) ([]byte, string, error) {
	m.lastFormat = format
	if m.exportErr != nil {
		return nil, "", m.exportErr
	}
	return m.exportOut, m.exportType, nil
}

func studentContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	c.Request = req
	c.Set(middleware.ContextIdentityKey, &models.Identity{ID: "s1", Role: models.RoleStudent, Name: "Amy"})
	return c, w
}

func TestPredictionHandlerReport(t *testing.T) {
	grade := 86.0
	svc := &predictionServiceMock{predictions: []models.CoursePrediction{
		{Course: "Intro to SE", CurrentGrade: &grade, TotalWeight: 0.5, Remaining: 0.5},
	}}
	handler := NewPredictionHandler(svc)

	c, w := studentContext(t, http.MethodGet, "/prediction")
	handler.Report(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Intro to SE")
	assert.Contains(t, w.Body.String(), "86")
}

func TestPredictionHandlerExportDefaultsToCSV(t *testing.T) {
	svc := &predictionServiceMock{exportOut: []byte("Course,Current Grade\n"), exportType: "text/csv"}
	handler := NewPredictionHandler(svc)

	c, w := studentContext(t, http.MethodGet, "/prediction/export")
	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", svc.lastFormat)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=grade_prediction.csv", w.Header().Get("Content-Disposition"))
}

func TestPredictionHandlerExportPDF(t *testing.T) {
	svc := &predictionServiceMock{exportOut: []byte("%PDF-1.3"), exportType: "application/pdf"}
	handler := NewPredictionHandler(svc)

	c, w := studentContext(t, http.MethodGet, "/prediction/export?format=pdf")
	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pdf", svc.lastFormat)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=grade_prediction.pdf", w.Header().Get("Content-Disposition"))
}

func TestPredictionHandlerExportUnknownFormat(t *testing.T) {
	svc := &predictionServiceMock{exportErr: appErrors.Clone(appErrors.ErrValidation, `unsupported export format "xlsx"`)}
	handler := NewPredictionHandler(svc)

	c, w := studentContext(t, http.MethodGet, "/prediction/export?format=xlsx")
	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
