package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/readinglab/passage-service/internal/services"
)

type AdminHandler struct {
	BaseHandler
	batchService  services.BatchService
	exportService services.ExportService
	cronSecret    string
}

func NewAdminHandler(
	batchService services.BatchService,
	exportService services.ExportService,
	cronSecret string,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   NewBaseHandler(logger),
		batchService:  batchService,
		exportService: exportService,
		cronSecret:    cronSecret,
	}
}

// CronAuthMiddleware authorizes scheduled-job callers with a shared bearer
// secret. Requests without the exact secret are rejected.
func (h *AdminHandler) CronAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || h.cronSecret == "" || token != h.cronSecret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized",
			})
			return
		}
		c.Next()
	}
}

// RunGenerationCycle triggers one generation-and-retention cycle and reports
// per-level outcomes. Partial failures still return 200 with the errors
// listed in the report.
func (h *AdminHandler) RunGenerationCycle(c *gin.Context) {
	report := h.batchService.RunGenerationCycle(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success": len(report.Errors) == 0,
		"report":  report,
	})
}

// ExportResults streams a user's results as an XLSX workbook.
func (h *AdminHandler) ExportResults(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Missing user_id"})
		return
	}

	data, err := h.exportService.ExportResultsToExcel(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="results.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ExportPassages streams a difficulty level's stored passages as an XLSX
// workbook.
func (h *AdminHandler) ExportPassages(c *gin.Context) {
	level := ParseIntQuery(c, "difficulty", 1)

	data, err := h.exportService.ExportPassagesToExcel(c.Request.Context(), level)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="passages.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
