package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/MunzurulAzam/microfinancce-ai/client"
	"github.com/MunzurulAzam/microfinancce-ai/config"
	"github.com/MunzurulAzam/microfinancce-ai/handler"
	"github.com/MunzurulAzam/microfinancce-ai/service"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload dir %s: %v", cfg.UploadDir, err)
	}

	// OCR clients for scanned statements
	paddleClient := client.NewPaddleClient()
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)

	// Statement extraction pipeline
	pdfExtractor := service.NewPDFExtractor(paddleClient, tesseractClient)
	metricsService := service.NewMetricsService(pdfExtractor)

	// Evaluation and portfolio services
	eligibilityService := service.NewEligibilityService()
	portfolioService := service.NewPortfolioService()

	// Handler layer
	evaluationHandler := handler.NewEvaluationHandler(metricsService, eligibilityService, cfg.UploadDir, cfg.MaxFileSize)
	statementHandler := handler.NewStatementHandler(metricsService, cfg.UploadDir, cfg.MaxFileSize)
	portfolioHandler := handler.NewPortfolioHandler(portfolioService, cfg.UploadDir, cfg.MaxFileSize)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Microfinance Statement Analysis",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/evaluate", evaluationHandler.EvaluateApplicant)

		statement := api.Group("/statement")
		{
			statement.POST("/metrics", statementHandler.ExtractMetrics)
		}

		data := api.Group("/data")
		{
			data.POST("/upload", portfolioHandler.UploadData)
			data.GET("/stats", portfolioHandler.Stats)
			data.GET("/clients", portfolioHandler.Clients)
			data.GET("/clients/:name", portfolioHandler.Client)
			data.GET("/groups", portfolioHandler.Groups)
			data.GET("/groups/:name", portfolioHandler.Group)
		}
	}

	// Start server
	log.Printf("Starting Microfinance Statement Analysis Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
