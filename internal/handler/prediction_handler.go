package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NebularEclipse/SE/internal/models"
	"github.com/NebularEclipse/SE/internal/service"
	"github.com/NebularEclipse/SE/pkg/response"
)

type predictionService interface {
	Predict(ctx context.Context, studentID string) ([]models.CoursePrediction, error)
	Export(ctx context.Context, studentID, format string) ([]byte, string, error)
}

// PredictionHandler exposes grade projections for the signed-in student.
type PredictionHandler struct {
	service predictionService
}

// NewPredictionHandler creates a new handler.
func NewPredictionHandler(svc predictionService) *PredictionHandler {
	return &PredictionHandler{service: svc}
}

// Report godoc
// @Summary Per-course grade projection for the caller
// @Tags Prediction
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /prediction [get]
func (h *PredictionHandler) Report(c *gin.Context) {
	identity := identityFromContext(c)
	predictions, err := h.service.Predict(c.Request.Context(), identity.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, predictions)
}

// Export godoc
// @Summary Download the grade projection as CSV or PDF
// @Tags Prediction
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /prediction/export [get]
func (h *PredictionHandler) Export(c *gin.Context) {
	identity := identityFromContext(c)
	format := c.DefaultQuery("format", service.ExportFormatCSV)

	out, contentType, err := h.service.Export(c.Request.Context(), identity.ID, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=grade_prediction.%s", format))
	c.Data(http.StatusOK, contentType, out)
}
