package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/readinglab/passage-service/internal/services"
	"github.com/readinglab/passage-service/internal/utils"
)

type PassageHandler struct {
	BaseHandler
	passageService services.PassageService
	validator      *utils.Validator
	maxLevel       int
}

// GeneratePassageRequest is the basic-mode generation request. Levels above
// the configured API cap are rejected here before the resolver runs.
type GeneratePassageRequest struct {
	DifficultyLevel int `json:"difficulty_level" validate:"required,min=1,max=5"`
}

func NewPassageHandler(
	passageService services.PassageService,
	validator *utils.Validator,
	logger *slog.Logger,
	maxLevel int,
) *PassageHandler {
	return &PassageHandler{
		BaseHandler:    NewBaseHandler(logger),
		passageService: passageService,
		validator:      validator,
		maxLevel:       maxLevel,
	}
}

// GeneratePassage creates a fresh passage for the requested difficulty and
// persists it best-effort.
func (h *PassageHandler) GeneratePassage(c *gin.Context) {
	var req GeneratePassageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if req.DifficultyLevel < 1 || req.DifficultyLevel > h.maxLevel {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid difficulty level",
			Details: "must be between 1 and " + strconv.Itoa(h.maxLevel),
		})
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	passage, err := h.passageService.Generate(c.Request.Context(), req.DifficultyLevel)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, passage)
}

// GetPassage serves the most recent stored passage for a difficulty level,
// generating one when none is stored.
func (h *PassageHandler) GetPassage(c *gin.Context) {
	level := ParseIntQuery(c, "difficulty", 1)
	if level < 1 || level > h.maxLevel {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid difficulty level",
			Details: "must be between 1 and " + strconv.Itoa(h.maxLevel),
		})
		return
	}

	passage, err := h.passageService.GetOrGenerate(c.Request.Context(), level)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, passage)
}

// ListPassages lists recent stored passages for a difficulty level.
func (h *PassageHandler) ListPassages(c *gin.Context) {
	level := ParseIntQuery(c, "difficulty", 1)
	limit := ParseIntQuery(c, "limit", 10)

	if level < 1 || level > h.maxLevel {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid difficulty level",
			Details: "must be between 1 and " + strconv.Itoa(h.maxLevel),
		})
		return
	}

	passages, err := h.passageService.List(c.Request.Context(), level, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "ok",
		Data:    passages,
	})
}

// GetPassageByID serves a single stored passage.
func (h *PassageHandler) GetPassageByID(c *gin.Context) {
	id := ParseUintParam(c, "id")
	if id == 0 {
		return
	}

	passage, err := h.passageService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, passage)
}
