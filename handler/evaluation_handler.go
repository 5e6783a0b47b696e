package handler

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MunzurulAzam/microfinancce-ai/dto"
	"github.com/MunzurulAzam/microfinancce-ai/service"
)

type EvaluationHandler struct {
	metricsService     *service.MetricsService
	eligibilityService *service.EligibilityService
	uploadDir          string
	maxFileSize        int64
}

func NewEvaluationHandler(metricsService *service.MetricsService, eligibilityService *service.EligibilityService, uploadDir string, maxFileSize int64) *EvaluationHandler {
	return &EvaluationHandler{
		metricsService:     metricsService,
		eligibilityService: eligibilityService,
		uploadDir:          uploadDir,
		maxFileSize:        maxFileSize,
	}
}

// EvaluateApplicant handles the POST /evaluate endpoint: manual applicant
// data plus an uploaded bank statement PDF.
func (h *EvaluationHandler) EvaluateApplicant(c *gin.Context) {
	log.Println("Received applicant evaluation request")

	var request dto.EvaluationRequest
	if err := c.ShouldBind(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to parse evaluation form", err)
		return
	}

	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	if request.BankStatement.Size > h.maxFileSize {
		h.sendError(c, http.StatusBadRequest, "Uploaded statement exceeds the size limit", nil)
		return
	}

	// Save the statement under the temp upload dir for the parser, remove
	// it again on every exit path.
	path := filepath.Join(h.uploadDir, filepath.Base(request.BankStatement.Filename))
	if err := c.SaveUploadedFile(request.BankStatement, path); err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to store uploaded statement", err)
		return
	}
	defer os.Remove(path)

	metrics := h.metricsService.ExtractFinancialMetrics(path)
	validation, prediction := h.eligibilityService.Evaluate(&request, metrics)

	log.Printf("Evaluation completed for %s: eligible=%v suggested=%.2f",
		request.ApplicantName, prediction.IsEligible, prediction.SuggestedAmount)

	c.JSON(http.StatusOK, dto.EvaluationResponse{
		ApplicantName: request.ApplicantName,
		BusinessType:  request.BusinessType,
		Metrics:       metrics,
		Validation:    validation,
		Prediction:    prediction,
		ProcessedAt:   time.Now().Format(time.RFC3339),
	})
}

// sendError sends a structured error response
func (h *EvaluationHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EVALUATION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
