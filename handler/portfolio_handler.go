package handler

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MunzurulAzam/microfinancce-ai/dto"
	"github.com/MunzurulAzam/microfinancce-ai/service"
)

type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	uploadDir        string
	maxFileSize      int64
}

func NewPortfolioHandler(portfolioService *service.PortfolioService, uploadDir string, maxFileSize int64) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		uploadDir:        uploadDir,
		maxFileSize:      maxFileSize,
	}
}

// UploadData handles POST /data/upload: a loan-book CSV.
func (h *PortfolioHandler) UploadData(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided", err)
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		h.sendError(c, http.StatusBadRequest, "Invalid file type. Only CSV files allowed.", nil)
		return
	}
	if fileHeader.Size > h.maxFileSize {
		h.sendError(c, http.StatusBadRequest, "Uploaded file exceeds the size limit", nil)
		return
	}

	path := filepath.Join(h.uploadDir, filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, path); err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to store uploaded file", err)
		return
	}
	defer os.Remove(path)

	message, err := h.portfolioService.LoadCSV(path)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Error loading data", err)
		return
	}

	stats, err := h.portfolioService.Stats()
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Error computing stats", err)
		return
	}

	log.Printf("Loan book loaded: %s", message)
	c.JSON(http.StatusOK, dto.UploadResponse{Message: message, Stats: stats})
}

// Stats handles GET /data/stats.
func (h *PortfolioHandler) Stats(c *gin.Context) {
	stats, err := h.portfolioService.Stats()
	if err != nil {
		h.sendError(c, http.StatusNotFound, "No data loaded", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Clients handles GET /data/clients with optional search/limit/offset.
func (h *PortfolioHandler) Clients(c *gin.Context) {
	limit := queryInt(c, "limit", 100)
	offset := queryInt(c, "offset", 0)

	clients, err := h.portfolioService.Clients(limit, offset, c.Query("search"))
	if err != nil {
		h.sendError(c, http.StatusNotFound, "No data loaded", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients, "count": len(clients)})
}

// Groups handles GET /data/groups with optional search/limit/offset.
func (h *PortfolioHandler) Groups(c *gin.Context) {
	limit := queryInt(c, "limit", 100)
	offset := queryInt(c, "offset", 0)

	groups, err := h.portfolioService.Groups(limit, offset, c.Query("search"))
	if err != nil {
		h.sendError(c, http.StatusNotFound, "No data loaded", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups, "count": len(groups)})
}

// Client handles GET /data/clients/:name.
func (h *PortfolioHandler) Client(c *gin.Context) {
	record, err := h.portfolioService.FindClient(c.Param("name"))
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, dto.ErrNoDataLoaded) {
			status = http.StatusConflict
		}
		h.sendError(c, status, "Client lookup failed", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Group handles GET /data/groups/:name, including top members.
func (h *PortfolioHandler) Group(c *gin.Context) {
	name := c.Param("name")

	group, err := h.portfolioService.FindGroup(name)
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, dto.ErrNoDataLoaded) {
			status = http.StatusConflict
		}
		h.sendError(c, status, "Group lookup failed", err)
		return
	}

	members, err := h.portfolioService.GroupMembers(name, 5)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Group member lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": group, "top_members": members})
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func (h *PortfolioHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "DATA_REQUEST_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
