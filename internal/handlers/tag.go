package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pf-responses/respuestas-api/internal/dto"
	apierrors "github.com/pf-responses/respuestas-api/internal/errors"
	"github.com/pf-responses/respuestas-api/internal/services"
	"github.com/pf-responses/respuestas-api/internal/utils"
	"github.com/sirupsen/logrus"
)

type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// ListTags returns every tag with the number of answers using it
func (h *TagHandler) ListTags(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tags, total, err := h.tagService.ListTags(c.Request.Context(), services.ListTagsInput{
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to list tags")
		apierrors.InternalError(c, "")
		return
	}

	utils.SetPaginationHeaders(c, params, total)
	c.JSON(http.StatusOK, dto.ToTagDTOs(tags))
}

// GetTag returns a single tag
func (h *TagHandler) GetTag(c *gin.Context) {
	tagID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid tag ID")
		return
	}

	tag, err := h.tagService.GetTag(c.Request.Context(), tagID)
	if err != nil {
		if errors.Is(err, services.ErrTagNotFound) {
			apierrors.NotFound(c, "Tag not found")
			return
		}
		logrus.WithError(err).WithField("tag_id", tagID).Error("failed to get tag")
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTagDTO(*tag))
}
