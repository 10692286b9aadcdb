package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pf-responses/respuestas-api/internal/dto"
	apierrors "github.com/pf-responses/respuestas-api/internal/errors"
	"github.com/pf-responses/respuestas-api/internal/middleware"
	"github.com/pf-responses/respuestas-api/internal/services"
	"github.com/pf-responses/respuestas-api/internal/utils"
	"github.com/sirupsen/logrus"
)

type AnswerHandler struct {
	answerService *services.AnswerService
	aiService     *services.AIService
}

func NewAnswerHandler(answerService *services.AnswerService, aiService *services.AIService) *AnswerHandler {
	return &AnswerHandler{
		answerService: answerService,
		aiService:     aiService,
	}
}

// updateAnswerRequest keeps every field optional so that an omitted tags_list
// can be told apart from an empty or null one.
type updateAnswerRequest struct {
	Content  *string   `json:"contenido"`
	TagsList tagsField `json:"tags_list"`
}

// tagsField records whether tags_list was sent at all and whether it was null.
type tagsField struct {
	Present bool
	Null    bool
	Names   []string
}

func (f *tagsField) UnmarshalJSON(data []byte) error {
	f.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		return nil
	}
	return json.Unmarshal(data, &f.Names)
}

// names returns nil when tags_list was omitted
func (f tagsField) names() *[]string {
	if !f.Present {
		return nil
	}
	names := f.Names
	if names == nil {
		names = []string{}
	}
	return &names
}

// ListAnswers returns answers newest first
// Can filter by tag name and by owner
func (h *AnswerHandler) ListAnswers(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	input := services.ListAnswersInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if tag := c.Query("tag"); tag != "" {
		input.TagName = &tag
	}
	if userIDStr := c.Query("usuario_id"); userIDStr != "" {
		userID, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			apierrors.ValidationFailed(c, apierrors.FieldErrors{"usuario_id": "must be a positive integer"})
			return
		}
		input.UserID = &userID
	}

	page, err := h.answerService.ListAnswers(c.Request.Context(), input)
	if err != nil {
		respondAnswerError(c, err)
		return
	}

	utils.SetPaginationHeaders(c, params, page.Total)
	c.JSON(http.StatusOK, dto.ToAnswerDTOs(page.Answers, page.TagCounts))
}

// GetAnswer returns the answer loaded by RequireAnswerAccess
func (h *AnswerHandler) GetAnswer(c *gin.Context) {
	view, ok := middleware.GetAnswer(c)
	if !ok {
		apierrors.InternalError(c, "Answer not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToAnswerDTO(view.Answer, view.TagCounts))
}

// CreateAnswer creates an answer owned by the current user
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateAnswerRequest struct {
		Content  string   `json:"contenido" binding:"required"`
		TagsList []string `json:"tags_list"`
	}

	var req CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, apierrors.FromBindingError(err))
		return
	}

	view, err := h.answerService.CreateAnswer(c.Request.Context(), services.CreateAnswerInput{
		Content:  req.Content,
		UserID:   userID,
		TagNames: req.TagsList,
	})
	if err != nil {
		respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAnswerDTO(view.Answer, view.TagCounts))
}

// UpdateAnswer handles PATCH (partial) and PUT (contenido required).
// Tags are only touched when tags_list is present.
func (h *AnswerHandler) UpdateAnswer(c *gin.Context) {
	view, ok := middleware.GetAnswer(c)
	if !ok {
		apierrors.InternalError(c, "Answer not found in context")
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req updateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, apierrors.FromBindingError(err))
		return
	}
	if c.Request.Method == http.MethodPut && req.Content == nil {
		apierrors.ValidationFailed(c, apierrors.FieldErrors{"contenido": "this field is required"})
		return
	}
	if req.TagsList.Null {
		apierrors.ValidationFailed(c, apierrors.FieldErrors{"tags_list": "this field may not be null"})
		return
	}

	updated, err := h.answerService.UpdateAnswer(c.Request.Context(), view.Answer.ID, userID, services.UpdateAnswerInput{
		Content:  req.Content,
		TagNames: req.TagsList.names(),
	})
	if err != nil {
		respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnswerDTO(updated.Answer, updated.TagCounts))
}

// DeleteAnswer deletes an answer
func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	view, ok := middleware.GetAnswer(c)
	if !ok {
		apierrors.InternalError(c, "Answer not found in context")
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.answerService.DeleteAnswer(c.Request.Context(), view.Answer.ID, userID); err != nil {
		respondAnswerError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SuggestTags proposes tag names for a draft answer. Nothing is stored.
func (h *AnswerHandler) SuggestTags(c *gin.Context) {
	type SuggestTagsRequest struct {
		Content string `json:"contenido" binding:"required"`
	}

	var req SuggestTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, apierrors.FromBindingError(err))
		return
	}

	tags, err := h.aiService.SuggestTags(c.Request.Context(), req.Content)
	if errors.Is(err, services.ErrAINoSuggestions) {
		tags, err = []string{}, nil
	}
	if err != nil {
		respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuggestTagsResponse{Tags: tags})
}

func respondAnswerError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, apierrors.FieldErrors(verr.Fields))
	case errors.Is(err, services.ErrAnswerNotFound):
		apierrors.NotFound(c, "Answer not found")
	case errors.Is(err, services.ErrNotAnswerOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "Tag suggestions are not available")
	default:
		logrus.WithError(err).
			WithField("path", c.Request.URL.Path).
			Error("answer request failed")
		apierrors.InternalError(c, "")
	}
}
