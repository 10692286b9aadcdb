package dto

import "github.com/pf-responses/respuestas-api/internal/models"

// TagDTO represents a tag with the number of answers currently using it
type TagDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"nombre"`
	AnswerCount int64  `json:"respuestas_count"`
}

// ToTagDTO converts a counted tag to TagDTO
func ToTagDTO(tag models.TagWithCount) TagDTO {
	return TagDTO{
		ID:          tag.ID,
		Name:        tag.Name,
		AnswerCount: tag.AnswerCount,
	}
}

// ToTagDTOs converts a list of counted tags
func ToTagDTOs(tags []models.TagWithCount) []TagDTO {
	items := make([]TagDTO, len(tags))
	for i, tag := range tags {
		items[i] = ToTagDTO(tag)
	}
	return items
}
