package controllers

import (
	"net/http"
	"strconv"

	"MindfulChatGo/middleware"
	"MindfulChatGo/models"
	"MindfulChatGo/services"

	"github.com/gin-gonic/gin"
)

// MoodController 情绪打卡
type MoodController struct {
	moods         *services.MoodService
	currentUserID middleware.CurrentUserID
}

func NewMoodController(moods *services.MoodService, currentUserID middleware.CurrentUserID) *MoodController {
	return &MoodController{moods: moods, currentUserID: currentUserID}
}

func (mc *MoodController) Create(c *gin.Context) {
	uid, ok := requireUser(c, mc.currentUserID)
	if !ok {
		return
	}
	var req models.CreateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid mood entry: "+err.Error())
		return
	}
	entry, err := mc.moods.CreateMood(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err, "Failed to save mood entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// List returns the newest entries first, ?limit= defaults to 10
func (mc *MoodController) List(c *gin.Context) {
	uid, ok := requireUser(c, mc.currentUserID)
	if !ok {
		return
	}
	limit := services.DefaultMoodLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}
	entries, err := mc.moods.ListMoods(c.Request.Context(), uid, limit)
	if err != nil {
		respondError(c, err, "Failed to fetch mood entries")
		return
	}
	c.JSON(http.StatusOK, entries)
}
