package handler

import (
	"github.com/gin-gonic/gin"

	"beachtrack/internal/service"
)

// RecommendationHandler handles AI recommendation endpoints.
type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// Generate handles POST /api/v1/recommendations
// @Summary Generate development recommendations
// @Description Build recommendations from the saved profile. A fixed fallback set is returned when the model is unavailable or its output cannot be parsed
// @Tags recommendations
// @Produce json
// @Success 200 {object} Response{data=service.RecommendationResult}
// @Failure 404 {object} ErrorResponseBody "No profile yet"
// @Failure 429 {object} ErrorResponseBody "Rate limited"
// @Security BearerAuth
// @Router /recommendations [post]
func (h *RecommendationHandler) Generate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.recommendationService.Generate(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// History handles GET /api/v1/recommendations
// @Summary Recommendation history
// @Description Stored recommendation sets, newest first
// @Tags recommendations
// @Produce json
// @Success 200 {object} Response{data=[]domain.RecommendationSet}
// @Security BearerAuth
// @Router /recommendations [get]
func (h *RecommendationHandler) History(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sets, err := h.recommendationService.History(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sets)
}
