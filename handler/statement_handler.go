package handler

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MunzurulAzam/microfinancce-ai/dto"
	"github.com/MunzurulAzam/microfinancce-ai/service"
)

type StatementHandler struct {
	metricsService *service.MetricsService
	uploadDir      string
	maxFileSize    int64
}

func NewStatementHandler(metricsService *service.MetricsService, uploadDir string, maxFileSize int64) *StatementHandler {
	return &StatementHandler{
		metricsService: metricsService,
		uploadDir:      uploadDir,
		maxFileSize:    maxFileSize,
	}
}

// ExtractMetrics handles POST /statement/metrics: upload a statement PDF,
// get the raw (credit, debit, average balance) triple.
func (h *StatementHandler) ExtractMetrics(c *gin.Context) {
	fileHeader, err := c.FormFile("bankStatement")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No statement uploaded", err)
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		h.sendError(c, http.StatusBadRequest, "Invalid file format. Only PDF allowed.", nil)
		return
	}
	if fileHeader.Size > h.maxFileSize {
		h.sendError(c, http.StatusBadRequest, "Uploaded statement exceeds the size limit", nil)
		return
	}

	path := filepath.Join(h.uploadDir, filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, path); err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to store uploaded statement", err)
		return
	}
	defer os.Remove(path)

	metrics := h.metricsService.ExtractFinancialMetrics(path)

	c.JSON(http.StatusOK, dto.StatementMetricsResponse{
		Filename:    fileHeader.Filename,
		Metrics:     metrics,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

func (h *StatementHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
