package repository

import (
	"context"
	"time"

	"github.com/pf-responses/respuestas-api/internal/models"
)

// AnswerRepository defines the interface for answer data access
type AnswerRepository interface {
	// CreateWithTags inserts the answer and links it to a tag for every name,
	// creating missing tags, in a single transaction.
	CreateWithTags(ctx context.Context, answer *models.Answer, tagNames []string) error

	// UpdateWithTags saves the answer content. When replaceTags is set the
	// existing links are dropped and rebuilt from tagNames in the same transaction.
	UpdateWithTags(ctx context.Context, answer *models.Answer, tagNames []string, replaceTags bool) error

	// FindByID finds an answer by ID with its owner and tags loaded
	FindByID(ctx context.Context, id uint64) (*models.Answer, error)

	// List retrieves answers with filtering and pagination
	List(ctx context.Context, filter AnswerFilter) ([]models.Answer, int64, error)

	// Delete removes an answer and its tag links
	Delete(ctx context.Context, id uint64) error
}

// AnswerFilter holds filtering options for listing answers
type AnswerFilter struct {
	UserID   *uint64
	TagName  *string
	Page     int
	PageSize int
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// FindByID finds a tag by ID together with its answer count
	FindByID(ctx context.Context, id uint64) (*models.TagWithCount, error)

	// List retrieves tags ordered by name with their answer counts
	List(ctx context.Context, page, pageSize int) ([]models.TagWithCount, int64, error)

	// CountAnswers returns, per tag ID, how many answers link to it.
	// Tags without links are present with a zero count.
	CountAnswers(ctx context.Context, tagIDs []uint64) (map[uint64]int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithProfile creates a user and, when profile is non-nil, its
	// profile within a single transaction.
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error

	// FindByID finds a user by ID with the profile loaded
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateLastLogin stamps the user's last successful login
	UpdateLastLogin(ctx context.Context, id uint64, at time.Time) error

	// Delete removes a user together with the profile, answers and their tag links
	Delete(ctx context.Context, id uint64) error
}
