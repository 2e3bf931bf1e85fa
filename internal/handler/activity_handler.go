package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beachtrack/internal/domain"
	"beachtrack/internal/service"
)

// ActivityHandler handles the activity log endpoints.
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

type createActivityRequest struct {
	Description string `json:"description" binding:"required"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Category    string `json:"category" binding:"required"`
}

// Create handles POST /api/v1/activities
// @Summary Log an activity
// @Tags activities
// @Accept json
// @Produce json
// @Param body body CreateActivityRequest true "Activity"
// @Success 201 {object} Response{data=domain.Activity}
// @Failure 400 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /activities [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "description, date (YYYY-MM-DD) and category are required")
		return
	}

	activity, err := h.activityService.Create(c.Request.Context(), service.CreateActivityInput{
		UserID:      userID,
		Description: req.Description,
		Date:        req.Date,
		Category:    req.Category,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, activity)
}

// List handles GET /api/v1/activities
// @Summary List own activities
// @Description Newest first
// @Tags activities
// @Produce json
// @Success 200 {object} Response{data=[]domain.Activity}
// @Security BearerAuth
// @Router /activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	activities, err := h.activityService.List(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, activities)
}

// Export handles GET /api/v1/activities/export
// @Summary Download own activities
// @Tags activities
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default) or xlsx" Enums(csv, xlsx)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /activities/export [get]
func (h *ActivityHandler) Export(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	format, err := domain.ParseExportFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	file, err := h.activityService.Export(c.Request.Context(), userID, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
