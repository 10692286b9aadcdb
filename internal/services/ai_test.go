package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestedTags(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    []string
		wantErr error
	}{
		{
			name:  "plain array",
			reply: `["go", "bases de datos"]`,
			want:  []string{"go", "bases de datos"},
		},
		{
			name:  "fenced, mixed case and repeated",
			reply: "```json\n[\"Go\", \" go \", \"SQL\"]\n```",
			want:  []string{"go", "sql"},
		},
		{
			name:  "invalid names dropped",
			reply: `["", "   ", "` + strings.Repeat("a", 101) + `", "ok"]`,
			want:  []string{"ok"},
		},
		{
			name:  "capped",
			reply: `["a","b","c","d","e","f","g","h","i","j"]`,
			want:  []string{"a", "b", "c", "d", "e", "f", "g", "h"},
		},
		{
			name:    "nothing usable",
			reply:   `[]`,
			wantErr: ErrAINoSuggestions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSuggestedTags(tt.reply)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseSuggestedTags("not json")
	assert.Error(t, err)
}

func TestSuggestTags(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotModel = req.Model

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Model:  req.Model,
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: `["python", "Django"]`,
				},
				FinishReason: openai.FinishReasonStop,
			}},
		})
	}))
	defer server.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	service := NewAIServiceWithConfig(cfg, "")

	tags, err := service.SuggestTags(context.Background(), "¿Cómo creo un modelo en Django?")
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "django"}, tags)
	assert.Equal(t, openai.GPT4o, gotModel)

	_, err = service.SuggestTags(context.Background(), "   ")
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestSuggestTags_NotConfigured(t *testing.T) {
	var service *AIService
	_, err := service.SuggestTags(context.Background(), "hola")
	assert.ErrorIs(t, err, ErrAIServiceNotConfigured)
}
