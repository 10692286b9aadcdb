package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pf-responses/respuestas-api/internal/models"
	"github.com/pf-responses/respuestas-api/internal/repository"
	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("tag not found")

// TagService exposes tags with their live answer counts
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// ListTagsInput represents pagination for listing tags
type ListTagsInput struct {
	Page     int
	PageSize int
}

// ListTags returns tags ordered by name, including ones no answer uses anymore
func (s *TagService) ListTags(ctx context.Context, input ListTagsInput) ([]models.TagWithCount, int64, error) {
	tags, total, err := s.tagRepo.List(ctx, input.Page, input.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, total, nil
}

// GetTag returns a single tag with its answer count
func (s *TagService) GetTag(ctx context.Context, id uint64) (*models.TagWithCount, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return tag, nil
}
