package repository

import (
	"context"
	"fmt"

	"github.com/pf-responses/respuestas-api/internal/database"
	"github.com/pf-responses/respuestas-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAnswerRepository is a GORM implementation of AnswerRepository
type GormAnswerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &GormAnswerRepository{db: db}
}

// CreateWithTags inserts the answer and its tag links atomically
func (r *GormAnswerRepository) CreateWithTags(ctx context.Context, answer *models.Answer, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(answer).Error; err != nil {
			return fmt.Errorf("create answer: %w", err)
		}

		return linkTags(tx, answer.ID, tagNames)
	})
}

// UpdateWithTags saves the answer content and optionally rebuilds its tag links.
// It returns gorm.ErrRecordNotFound when the answer no longer exists.
func (r *GormAnswerRepository) UpdateWithTags(ctx context.Context, answer *models.Answer, tagNames []string, replaceTags bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Answer
		if err := lockAnswer(tx).Select("id").First(&current, answer.ID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Answer{}).
			Where("id = ?", answer.ID).
			Update("contenido", answer.Content).Error; err != nil {
			return fmt.Errorf("update answer: %w", err)
		}

		if !replaceTags {
			return nil
		}

		if err := tx.Where("respuesta_id = ?", answer.ID).Delete(&models.AnswerTag{}).Error; err != nil {
			return fmt.Errorf("clear answer tags: %w", err)
		}

		return linkTags(tx, answer.ID, tagNames)
	})
}

// FindByID finds an answer by ID with its owner and tags loaded
func (r *GormAnswerRepository) FindByID(ctx context.Context, id uint64) (*models.Answer, error) {
	var answer models.Answer
	if err := preloadAnswerRelations(r.db.WithContext(ctx)).First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

// List retrieves answers with filtering and pagination, newest first
func (r *GormAnswerRepository) List(ctx context.Context, filter AnswerFilter) ([]models.Answer, int64, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&models.Answer{})

	if filter.UserID != nil {
		query = query.Where("respuestas.usuario_id = ?", *filter.UserID)
	}
	if filter.TagName != nil {
		tagSubQuery := db.Model(&models.AnswerTag{}).
			Select("1").
			Joins("JOIN tags ON tags.id = respuesta_tags.tag_id").
			Where("respuesta_tags.respuesta_id = respuestas.id").
			Where("tags.nombre = ?", *filter.TagName)
		query = query.Where("EXISTS (?)", tagSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.
		Order("respuestas.fecha_creacion DESC").
		Order("respuestas.id DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	answers := []models.Answer{}
	if err := preloadAnswerRelations(listQuery).Find(&answers).Error; err != nil {
		return nil, 0, err
	}

	return answers, total, nil
}

// Delete removes an answer and its tag links
func (r *GormAnswerRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("respuesta_id = ?", id).Delete(&models.AnswerTag{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Answer{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// linkTags resolves every name to a tag and attaches it to the answer.
// Attaching a tag that is already linked is a no-op.
func linkTags(tx *gorm.DB, answerID uint64, tagNames []string) error {
	for _, name := range tagNames {
		tag, err := findOrCreateTag(tx, name)
		if err != nil {
			return err
		}

		link := models.AnswerTag{AnswerID: answerID, TagID: tag.ID}
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "respuesta_id"}, {Name: "tag_id"}},
				DoNothing: true,
			}).
			Create(&link).Error; err != nil {
			return fmt.Errorf("link tag %q: %w", name, err)
		}
	}
	return nil
}

// lockAnswer holds the answer row until the transaction ends so a concurrent
// delete cannot slip in between the checks and the relink.
func lockAnswer(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func preloadAnswerRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("AnswerTags", func(db *gorm.DB) *gorm.DB {
			return db.Order("respuesta_tags.tag_id ASC")
		}).
		Preload("AnswerTags.Tag")
}
