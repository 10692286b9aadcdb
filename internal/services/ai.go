package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pf-responses/respuestas-api/internal/constants"
	"github.com/sashabaranov/go-openai"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoSuggestions        = errors.New("AI did not suggest any tags")
)

type AIService struct {
	client *openai.Client
	model  string
}

func NewAIService(apiKey, model string) *AIService {
	return NewAIServiceWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewAIServiceWithConfig allows pointing the client at another base URL.
func NewAIServiceWithConfig(cfg openai.ClientConfig, model string) *AIService {
	if model == "" {
		model = openai.GPT4o
	}
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// SuggestTags asks the model for short tag names describing content. The
// result goes through the same normalization as user-supplied tags.
func (s *AIService) SuggestTags(ctx context.Context, content string) ([]string, error) {
	if s == nil || s.client == nil {
		return nil, ErrAIServiceNotConfigured
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, newValidationError("contenido", "this field may not be blank")
	}

	prompt := fmt.Sprintf(`You label short answers with tags.

Suggest at most %d tags for the text below. Tags are short lowercase keywords or
phrases of at most %d characters, in the same language as the text.

Text:
%s

Reply with a JSON array of strings only, for example ["python", "bases de datos"].
Reply with [] if no tag fits.`, constants.MaxSuggestedTags, constants.MaxTagNameLength, content)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseSuggestedTags(resp.Choices[0].Message.Content)
}

// parseSuggestedTags decodes the model reply, tolerating a fenced code block,
// and keeps only names that would pass tag validation.
func parseSuggestedTags(reply string) ([]string, error) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	reply = strings.TrimSpace(reply)

	var raw []string
	if err := json.Unmarshal([]byte(reply), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, reply)
	}

	tags := make([]string, 0, len(raw))
	for _, name := range raw {
		valid, err := NormalizeTagNames([]string{strings.ToLower(name)})
		if err != nil {
			continue
		}
		tags = append(tags, valid...)
	}

	tags = uniqueStrings(tags)
	if len(tags) == 0 {
		return nil, ErrAINoSuggestions
	}
	if len(tags) > constants.MaxSuggestedTags {
		tags = tags[:constants.MaxSuggestedTags]
	}

	return tags, nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
