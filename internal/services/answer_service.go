package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pf-responses/respuestas-api/internal/models"
	"github.com/pf-responses/respuestas-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAnswerNotFound = errors.New("answer not found")
	ErrNotAnswerOwner = errors.New("only the owner of the answer can perform this action")
)

// AnswerService handles answer business logic, including keeping each answer's
// tag set in line with the names the client sends.
type AnswerService struct {
	answerRepo repository.AnswerRepository
	tagRepo    repository.TagRepository
	userRepo   repository.UserRepository
}

// NewAnswerService creates a new AnswerService
func NewAnswerService(answerRepo repository.AnswerRepository, tagRepo repository.TagRepository, userRepo repository.UserRepository) *AnswerService {
	return &AnswerService{
		answerRepo: answerRepo,
		tagRepo:    tagRepo,
		userRepo:   userRepo,
	}
}

// AnswerView is an answer together with the live answer count of each of its tags.
type AnswerView struct {
	Answer    models.Answer
	TagCounts map[uint64]int64
}

// AnswerPage is one page of answers plus the total number of matches.
type AnswerPage struct {
	Answers   []models.Answer
	TagCounts map[uint64]int64
	Total     int64
}

// CreateAnswerInput represents input for creating an answer
type CreateAnswerInput struct {
	Content  string
	UserID   uint64
	TagNames []string
}

// UpdateAnswerInput represents input for updating an answer. A nil TagNames
// leaves the tags untouched; a non-nil empty slice removes them all.
type UpdateAnswerInput struct {
	Content  *string
	TagNames *[]string
}

// ListAnswersInput represents filters for listing answers
type ListAnswersInput struct {
	UserID   *uint64
	TagName  *string
	Page     int
	PageSize int
}

// CreateAnswer validates the input, then stores the answer and its tags atomically
func (s *AnswerService) CreateAnswer(ctx context.Context, input CreateAnswerInput) (*AnswerView, error) {
	content, err := normalizeContent(input.Content)
	if err != nil {
		return nil, err
	}
	tagNames, err := NormalizeTagNames(input.TagNames)
	if err != nil {
		return nil, err
	}

	answer := &models.Answer{
		Content: content,
		UserID:  input.UserID,
	}

	if err := s.answerRepo.CreateWithTags(ctx, answer, tagNames); err != nil {
		return nil, fmt.Errorf("failed to create answer: %w", err)
	}

	return s.GetAnswer(ctx, answer.ID)
}

// UpdateAnswer applies the provided fields. When tag names are present the
// answer's tag set is replaced by exactly those names.
func (s *AnswerService) UpdateAnswer(ctx context.Context, answerID, actorID uint64, input UpdateAnswerInput) (*AnswerView, error) {
	var content *string
	if input.Content != nil {
		c, err := normalizeContent(*input.Content)
		if err != nil {
			return nil, err
		}
		content = &c
	}

	var tagNames []string
	replaceTags := input.TagNames != nil
	if replaceTags {
		names, err := NormalizeTagNames(*input.TagNames)
		if err != nil {
			return nil, err
		}
		tagNames = names
	}

	answer, err := s.findOwnedAnswer(ctx, answerID, actorID)
	if err != nil {
		return nil, err
	}

	if content != nil {
		answer.Content = *content
	}

	if err := s.answerRepo.UpdateWithTags(ctx, answer, tagNames, replaceTags); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to update answer: %w", err)
	}

	return s.GetAnswer(ctx, answer.ID)
}

// GetAnswer returns an answer with owner, tags and tag counts
func (s *AnswerService) GetAnswer(ctx context.Context, answerID uint64) (*AnswerView, error) {
	answer, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to find answer: %w", err)
	}

	counts, err := s.tagRepo.CountAnswers(ctx, tagIDs(answer.Tags()))
	if err != nil {
		return nil, fmt.Errorf("failed to count tag usage: %w", err)
	}

	return &AnswerView{Answer: *answer, TagCounts: counts}, nil
}

// ListAnswers returns a page of answers, newest first
func (s *AnswerService) ListAnswers(ctx context.Context, input ListAnswersInput) (*AnswerPage, error) {
	answers, total, err := s.answerRepo.List(ctx, repository.AnswerFilter{
		UserID:   input.UserID,
		TagName:  input.TagName,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	var ids []uint64
	for _, answer := range answers {
		ids = append(ids, tagIDs(answer.Tags())...)
	}

	counts, err := s.tagRepo.CountAnswers(ctx, uniqueUint64(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to count tag usage: %w", err)
	}

	return &AnswerPage{Answers: answers, TagCounts: counts, Total: total}, nil
}

// DeleteAnswer deletes an answer if the actor owns it or is staff
func (s *AnswerService) DeleteAnswer(ctx context.Context, answerID, actorID uint64) error {
	if _, err := s.findOwnedAnswer(ctx, answerID, actorID); err != nil {
		return err
	}

	if err := s.answerRepo.Delete(ctx, answerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnswerNotFound
		}
		return fmt.Errorf("failed to delete answer: %w", err)
	}

	return nil
}

// findOwnedAnswer loads the answer and verifies the actor may modify it
func (s *AnswerService) findOwnedAnswer(ctx context.Context, answerID, actorID uint64) (*models.Answer, error) {
	answer, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to find answer: %w", err)
	}

	if answer.UserID == actorID {
		return answer, nil
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAnswerOwner
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !actor.IsStaff {
		return nil, ErrNotAnswerOwner
	}

	return answer, nil
}

func tagIDs(tags []models.Tag) []uint64 {
	ids := make([]uint64, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}
	return ids
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
