package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/readinglab/passage-service/internal/services"
	"github.com/readinglab/passage-service/internal/utils"
)

type HandlerManager struct {
	passageHandler *PassageHandler
	scoringHandler *ScoringHandler
	adminHandler   *AdminHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *utils.Validator,
	logger *slog.Logger,
	maxLevel int,
	cronSecret string,
) *HandlerManager {
	return &HandlerManager{
		passageHandler: NewPassageHandler(serviceManager.Passage(), validator, logger, maxLevel),
		scoringHandler: NewScoringHandler(serviceManager.Result(), serviceManager.Passage(), validator, logger),
		adminHandler:   NewAdminHandler(serviceManager.Batch(), serviceManager.Export(), cronSecret, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "passage-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Passage routes
		passages := v1.Group("/passages")
		{
			passages.POST("/generate", hm.passageHandler.GeneratePassage)
			passages.GET("", hm.passageHandler.ListPassages)
			passages.GET("/latest", hm.passageHandler.GetPassage)
			passages.GET("/:id", hm.passageHandler.GetPassageByID)
		}

		// Scoring routes
		scoring := v1.Group("/scoring")
		{
			scoring.POST("/passage", hm.scoringHandler.ScorePassage)
			scoring.POST("/aggregate", hm.scoringHandler.ScoreAggregate)
		}

		// Result routes
		results := v1.Group("/results")
		{
			results.POST("", hm.scoringHandler.RecordResult)
			results.POST("/pending", hm.scoringHandler.SavePending)
			results.POST("/pending/:token/claim", hm.scoringHandler.ClaimPending)
			results.GET("/user/:user_id", hm.scoringHandler.GetUserResults)
		}

		// Admin routes, shared-secret guarded
		admin := v1.Group("/admin", hm.adminHandler.CronAuthMiddleware())
		{
			admin.POST("/generation-cycle", hm.adminHandler.RunGenerationCycle)
			admin.GET("/export/results/:user_id", hm.adminHandler.ExportResults)
			admin.GET("/export/passages", hm.adminHandler.ExportPassages)
		}
	}
}
