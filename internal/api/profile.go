package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// ProfileHandler serves the dietary onboarding profile.
type ProfileHandler struct {
	profiles service.IProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var req types.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profiles.UpsertProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrTermsNotAccepted) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "terms of service must be accepted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
