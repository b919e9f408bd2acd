package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnsphere/assessment-engine/internal/services"
	"github.com/learnsphere/assessment-engine/internal/utils"
)

type QuestionSetHandler struct {
	BaseHandler
	questionSetService services.QuestionSetService
	validator          *utils.Validator
}

func NewQuestionSetHandler(
	questionSetService services.QuestionSetService,
	validator *utils.Validator,
	logger utils.Logger,
) *QuestionSetHandler {
	return &QuestionSetHandler{
		BaseHandler:        NewBaseHandler(logger),
		questionSetService: questionSetService,
		validator:          validator,
	}
}

// CreateQuestionSet registers a question set from the generation layer
// @Summary Create question set
// @Tags question-sets
// @Accept json
// @Produce json
// @Param set body services.CreateQuestionSetRequest true "Question set data"
// @Success 201 {object} models.QuestionSet
// @Failure 400 {object} ErrorResponse
// @Router /question-sets [post]
func (h *QuestionSetHandler) CreateQuestionSet(c *gin.Context) {
	var req services.CreateQuestionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating question set", "title", req.Title, "items", len(req.Items))

	set, err := h.questionSetService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, set)
}

// GetQuestionSet returns a question set by id
// @Summary Get question set
// @Tags question-sets
// @Produce json
// @Param id path string true "Question set ID"
// @Success 200 {object} models.QuestionSet
// @Failure 404 {object} ErrorResponse
// @Router /question-sets/{id} [get]
func (h *QuestionSetHandler) GetQuestionSet(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	set, err := h.questionSetService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, set)
}

// ListQuestionSets returns all registered question sets
// @Summary List question sets
// @Tags question-sets
// @Produce json
// @Success 200 {array} models.QuestionSet
// @Router /question-sets [get]
func (h *QuestionSetHandler) ListQuestionSets(c *gin.Context) {
	sets, err := h.questionSetService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sets)
}

// DeleteQuestionSet removes a question set
// @Summary Delete question set
// @Tags question-sets
// @Produce json
// @Param id path string true "Question set ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /question-sets/{id} [delete]
func (h *QuestionSetHandler) DeleteQuestionSet(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting question set", "question_set_id", id)

	if err := h.questionSetService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Question set deleted"})
}
