package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	TagsList []string `json:"tags_list" binding:"dive,required,max=3"`
}

func TestFromBindingError_ValidatorErrors(t *testing.T) {
	UseJSONFieldNames()

	req := sampleRequest{Email: "", TagsList: []string{"ok", "toolong"}}
	err := binding.Validator.ValidateStruct(&req)
	require.Error(t, err)

	fields := FromBindingError(err)
	assert.Equal(t, "this field is required", fields["email"])
	assert.Equal(t, "must be at most 3 characters", fields["tags_list[1]"])
	assert.NotContains(t, fields, "tags_list[0]")
}

func TestFromBindingError_MalformedBody(t *testing.T) {
	fields := FromBindingError(errors.New("unexpected EOF"))
	assert.Equal(t, FieldErrors{"body": "malformed request body"}, fields)
}

func TestFieldErrors_ErrorIsSorted(t *testing.T) {
	fe := FieldErrors{"tags_list[1]": "bad", "email": "missing"}
	assert.Equal(t, "invalid fields: email: missing; tags_list[1]: bad", fe.Error())
}

func TestValidationFailed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ValidationFailed(c, FieldErrors{"tags_list[0]": "tag name cannot be blank"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeInvalidInput, body.Code)
	details, ok := body.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "tag name cannot be blank", details["tags_list[0]"])
}

func TestHelpers_DefaultMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		respond func(*gin.Context, string)
		status  int
		want    *APIError
	}{
		{"unauthorized", Unauthorized, http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", Forbidden, http.StatusForbidden, ErrForbidden},
		{"not found", NotFound, http.StatusNotFound, ErrNotFound},
		{"bad request", BadRequest, http.StatusBadRequest, ErrInvalidInput},
		{"conflict", Conflict, http.StatusConflict, ErrConflict},
		{"internal", InternalError, http.StatusInternalServerError, ErrInternalError},
		{"unavailable", ServiceUnavailable, http.StatusServiceUnavailable, ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.respond(c, "")
			assert.Equal(t, tt.status, w.Code)

			var body APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.want.Code, body.Code)
			assert.Equal(t, tt.want.Message, body.Message)

			w = httptest.NewRecorder()
			c, _ = gin.CreateTestContext(w)

			tt.respond(c, "custom")
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.want.Code, body.Code)
			assert.Equal(t, "custom", body.Message)
		})
	}
}
