package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beachtrack/internal/service"
)

// ProfileHandler handles the consolidated user profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// updateProfileRequest uses pointers so an empty string is accepted but a
// missing field is not.
type updateProfileRequest struct {
	MeNow  *string `json:"meNow" binding:"required"`
	MeNext *string `json:"meNext" binding:"required"`
}

// Get handles GET /api/v1/profile
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Success 200 {object} Response{data=domain.UserProfile}
// @Failure 404 {object} ErrorResponseBody "No profile yet"
// @Security BearerAuth
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// GetByUserID handles GET /api/v1/profile/:userId
// @Summary Get a profile by user id
// @Description Only the authenticated user's own profile can be read
// @Tags profile
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} Response{data=domain.UserProfile}
// @Failure 403 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /profile/{userId} [get]
func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	requesterID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.profileService.GetForUser(c.Request.Context(), requesterID, c.Param("userId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// Update handles PUT /api/v1/profile
// @Summary Edit own profile
// @Description Replace Me Now and Me Next. Both fields are required; empty strings are allowed
// @Tags profile
// @Accept json
// @Produce json
// @Param body body UpdateProfileRequest true "Profile text"
// @Success 200 {object} Response{data=domain.UserProfile}
// @Failure 400 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "meNow and meNext are required")
		return
	}

	p, err := h.profileService.Update(c.Request.Context(), service.UpdateProfileInput{
		UserID: userID,
		MeNow:  *req.MeNow,
		MeNext: *req.MeNext,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}
