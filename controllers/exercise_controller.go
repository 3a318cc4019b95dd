package controllers

import (
	"net/http"

	"MindfulChatGo/middleware"
	"MindfulChatGo/models"
	"MindfulChatGo/services"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	exercises     *services.ExerciseService
	currentUserID middleware.CurrentUserID
}

func NewExerciseController(exercises *services.ExerciseService, currentUserID middleware.CurrentUserID) *ExerciseController {
	return &ExerciseController{exercises: exercises, currentUserID: currentUserID}
}

// List is public; ?category= filters
func (ec *ExerciseController) List(c *gin.Context) {
	exercises, err := ec.exercises.ListExercises(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err, "Failed to fetch exercises")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

func (ec *ExerciseController) Complete(c *gin.Context) {
	uid, ok := requireUser(c, ec.currentUserID)
	if !ok {
		return
	}
	var req models.CompleteExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid exercise completion: "+err.Error())
		return
	}
	completion, err := ec.exercises.CompleteExercise(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err, "Failed to record exercise completion")
		return
	}
	c.JSON(http.StatusOK, completion)
}

// Seed loads the default catalog when it is empty
func (ec *ExerciseController) Seed(c *gin.Context) {
	if _, err := ec.exercises.SeedCatalog(c.Request.Context()); err != nil {
		respondError(c, err, "Failed to seed exercises")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Default exercises seeded successfully"})
}
