package services

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pf-responses/respuestas-api/internal/constants"
)

// ValidationError lists every offending input field. Nothing is persisted when
// a service returns it.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// NormalizeTagNames trims every name, rejects blank or over-long ones and drops
// repeats while keeping first-occurrence order. A nil or empty input yields an
// empty, non-nil slice.
func NormalizeTagNames(names []string) ([]string, error) {
	fields := map[string]string{}
	result := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for i, raw := range names {
		name := strings.TrimSpace(raw)
		key := fmt.Sprintf("tags_list[%d]", i)

		if name == "" {
			fields[key] = "tag name cannot be blank"
			continue
		}
		if utf8.RuneCountInString(name) > constants.MaxTagNameLength {
			fields[key] = fmt.Sprintf("tag name must be at most %d characters", constants.MaxTagNameLength)
			continue
		}

		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	if len(result) > constants.MaxTagsPerAnswer {
		return nil, newValidationError("tags_list", fmt.Sprintf("at most %d distinct tags are allowed", constants.MaxTagsPerAnswer))
	}

	return result, nil
}

func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", newValidationError("contenido", "this field may not be blank")
	}
	return content, nil
}
