package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/readinglab/passage-service/internal/models"
	"github.com/readinglab/passage-service/internal/scoring"
	"github.com/readinglab/passage-service/internal/services"
	"github.com/readinglab/passage-service/internal/utils"
)

type ScoringHandler struct {
	BaseHandler
	resultService  services.ResultService
	passageService services.PassageService
	validator      *utils.Validator
}

type ScorePassageRequest struct {
	Questions []models.Question `json:"questions" validate:"required,min=1,dive"`
	Answers   []int             `json:"answers" validate:"required"`
}

type ScoreAggregateRequest struct {
	PassageResults []scoring.PassageResult `json:"passage_results" validate:"required,min=1"`
}

type SavePendingRequest struct {
	PassageIDs     []uint                  `json:"passage_ids" validate:"required,min=1"`
	PassageResults []scoring.PassageResult `json:"passage_results" validate:"required,min=1"`
}

type ClaimPendingRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type RecordResultRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	PassageID uint   `json:"passage_id" validate:"required"`
	Answers   []int  `json:"answers" validate:"required"`
}

func NewScoringHandler(
	resultService services.ResultService,
	passageService services.PassageService,
	validator *utils.Validator,
	logger *slog.Logger,
) *ScoringHandler {
	return &ScoringHandler{
		BaseHandler:    NewBaseHandler(logger),
		resultService:  resultService,
		passageService: passageService,
		validator:      validator,
	}
}

// ScorePassage scores one answer sequence against one question sequence.
func (h *ScoringHandler) ScorePassage(c *gin.Context) {
	var req ScorePassageRequest
	if !h.bind(c, &req) {
		return
	}

	score, err := h.resultService.ScorePassage(req.Questions, req.Answers)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

// ScoreAggregate scores a multi-passage run and returns the overall score
// with the recommended level.
func (h *ScoringHandler) ScoreAggregate(c *gin.Context) {
	var req ScoreAggregateRequest
	if !h.bind(c, &req) {
		return
	}

	aggregate, err := h.resultService.ScoreAggregate(req.PassageResults)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"overall_score":     aggregate.OverallScore,
		"total_correct":     aggregate.TotalCorrect,
		"total_questions":   aggregate.TotalQuestions,
		"recommended_level": aggregate.RecommendedLevel,
		"level_name":        scoring.LevelName(aggregate.RecommendedLevel),
	})
}

// SavePending stores a scored run server-side under a fresh token until a
// user identity is established.
func (h *ScoringHandler) SavePending(c *gin.Context) {
	var req SavePendingRequest
	if !h.bind(c, &req) {
		return
	}

	token, pending, err := h.resultService.SavePending(c.Request.Context(), req.PassageIDs, req.PassageResults)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":     token,
		"aggregate": pending.Aggregate,
	})
}

// ClaimPending persists a pending run's results for the now-known user.
func (h *ScoringHandler) ClaimPending(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Missing token"})
		return
	}

	var req ClaimPendingRequest
	if !h.bind(c, &req) {
		return
	}

	results, err := h.resultService.ClaimPending(c.Request.Context(), token, req.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "results recorded",
		Data:    results,
	})
}

// RecordResult scores and persists a single-passage result for an
// authenticated user.
func (h *ScoringHandler) RecordResult(c *gin.Context) {
	var req RecordResultRequest
	if !h.bind(c, &req) {
		return
	}

	passage, err := h.passageService.GetByID(c.Request.Context(), req.PassageID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	result, err := h.resultService.Record(c.Request.Context(), req.UserID, passage, req.Answers)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetUserResults lists a user's recorded results.
func (h *ScoringHandler) GetUserResults(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Missing user_id"})
		return
	}

	results, err := h.resultService.GetByUser(c.Request.Context(), userID, ResultFiltersFromQuery(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "ok", Data: results})
}

func (h *ScoringHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return false
	}
	if err := h.validator.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return false
	}
	return true
}
