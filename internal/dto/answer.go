package dto

import (
	"time"

	"github.com/pf-responses/respuestas-api/internal/models"
)

// AnswerDTO represents an answer in API responses. Usuario is the owner's
// display form (the email address).
type AnswerDTO struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"contenido"`
	CreatedAt time.Time `json:"fecha_creacion"`
	Owner     string    `json:"usuario"`
	Tags      []TagDTO  `json:"tags"`
}

// SuggestTagsResponse carries tag names proposed for a piece of content
type SuggestTagsResponse struct {
	Tags []string `json:"tags"`
}

// ToAnswerDTO converts an Answer model to AnswerDTO. counts maps tag IDs to the
// number of answers linked to each tag; tags keep the order they were loaded in.
func ToAnswerDTO(answer models.Answer, counts map[uint64]int64) AnswerDTO {
	tags := answer.Tags()
	dto := AnswerDTO{
		ID:        answer.ID,
		Content:   answer.Content,
		CreatedAt: answer.CreatedAt,
		Owner:     answer.User.String(),
		Tags:      make([]TagDTO, len(tags)),
	}

	for i, tag := range tags {
		dto.Tags[i] = TagDTO{
			ID:          tag.ID,
			Name:        tag.Name,
			AnswerCount: counts[tag.ID],
		}
	}

	return dto
}

// ToAnswerDTOs converts a list of answers. The result is never nil so an
// empty list renders as [].
func ToAnswerDTOs(answers []models.Answer, counts map[uint64]int64) []AnswerDTO {
	items := make([]AnswerDTO, len(answers))
	for i, answer := range answers {
		items[i] = ToAnswerDTO(answer, counts)
	}
	return items
}
