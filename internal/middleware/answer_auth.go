package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pf-responses/respuestas-api/internal/constants"
	apierrors "github.com/pf-responses/respuestas-api/internal/errors"
	"github.com/pf-responses/respuestas-api/internal/services"
	"github.com/sirupsen/logrus"
)

// RequireAnswerAccess loads the answer named by the :id parameter, with its
// owner, tags and tag counts, and stores it in the context.
// Whether the user may modify it is decided by the answer service.
func RequireAnswerAccess(answerService *services.AnswerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		answerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid answer ID")
			c.Abort()
			return
		}

		if _, exists := GetUserID(c); !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		view, err := answerService.GetAnswer(c.Request.Context(), answerID)
		if err != nil {
			if errors.Is(err, services.ErrAnswerNotFound) {
				apierrors.NotFound(c, "Answer not found")
			} else {
				logrus.WithError(err).WithField("answer_id", answerID).Error("failed to load answer")
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAnswer, view)
		c.Next()
	}
}

// GetAnswer retrieves the answer loaded by RequireAnswerAccess
func GetAnswer(c *gin.Context) (*services.AnswerView, bool) {
	value, exists := c.Get(constants.ContextKeyAnswer)
	if !exists {
		return nil, false
	}
	view, ok := value.(*services.AnswerView)
	return view, ok
}
