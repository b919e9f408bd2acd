package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnsphere/assessment-engine/internal/export"
	"github.com/learnsphere/assessment-engine/internal/services"
	"github.com/learnsphere/assessment-engine/internal/utils"
)

type HandlerManager struct {
	questionSetHandler *QuestionSetHandler
	sessionHandler     *SessionHandler
}

func NewHandlerManager(
	questionSetService services.QuestionSetService,
	sessionService services.SessionService,
	validator *utils.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		questionSetHandler: NewQuestionSetHandler(questionSetService, validator, logger),
		sessionHandler:     NewSessionHandler(sessionService, export.NewResultsExporter(), validator, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Question set routes
		questionSets := v1.Group("/question-sets")
		{
			questionSets.POST("", hm.questionSetHandler.CreateQuestionSet)
			questionSets.GET("", hm.questionSetHandler.ListQuestionSets)
			questionSets.GET("/:id", hm.questionSetHandler.GetQuestionSet)
			questionSets.DELETE("/:id", hm.questionSetHandler.DeleteQuestionSet)
		}

		// Session routes
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.StartSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.DELETE("/:id", hm.sessionHandler.TeardownSession)
			sessions.POST("/:id/answer", hm.sessionHandler.SubmitAnswer)
			sessions.POST("/:id/navigate", hm.sessionHandler.Navigate)
			sessions.POST("/:id/submit", hm.sessionHandler.SubmitSession)
			sessions.POST("/:id/retake", hm.sessionHandler.RetakeSession)
			sessions.GET("/:id/results", hm.sessionHandler.GetResults)
			sessions.GET("/:id/results/export", hm.sessionHandler.ExportResults)
			sessions.GET("/:id/time-remaining", hm.sessionHandler.GetTimeRemaining)

			// Flashcard sub-session routes
			sessions.POST("/:id/cards/flip", hm.sessionHandler.FlipCard)
			sessions.POST("/:id/cards/navigate", hm.sessionHandler.NavigateCard)
			sessions.POST("/:id/cards/mark", hm.sessionHandler.MarkCard)
			sessions.POST("/:id/cards/finish", hm.sessionHandler.FinishFlashcards)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "assessment-engine",
		})
	})
}
