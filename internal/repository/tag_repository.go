package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/pf-responses/respuestas-api/internal/database"
	"github.com/pf-responses/respuestas-api/internal/models"
	"github.com/pf-responses/respuestas-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

// FindByID finds a tag by ID together with its answer count
func (r *GormTagRepository) FindByID(ctx context.Context, id uint64) (*models.TagWithCount, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}

	counts, err := r.CountAnswers(ctx, []uint64{tag.ID})
	if err != nil {
		return nil, err
	}

	return &models.TagWithCount{Tag: tag, AnswerCount: counts[tag.ID]}, nil
}

// List retrieves tags ordered by name with their answer counts
func (r *GormTagRepository) List(ctx context.Context, page, pageSize int) ([]models.TagWithCount, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Tag{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Model(&models.Tag{}).
		Select("tags.id, tags.nombre, COUNT(respuesta_tags.id) AS respuestas_count").
		Joins("LEFT JOIN respuesta_tags ON respuesta_tags.tag_id = tags.id").
		Group("tags.id, tags.nombre").
		Order("tags.nombre ASC").
		Scopes(database.Paginate(page, pageSize))

	tags := []models.TagWithCount{}
	if err := query.Scan(&tags).Error; err != nil {
		return nil, 0, err
	}

	return tags, total, nil
}

// CountAnswers returns, per tag ID, how many answers link to it
func (r *GormTagRepository) CountAnswers(ctx context.Context, tagIDs []uint64) (map[uint64]int64, error) {
	return countAnswersByTag(r.db.WithContext(ctx), tagIDs)
}

type tagCount struct {
	TagID uint64
	Total int64
}

func countAnswersByTag(db *gorm.DB, tagIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(tagIDs))
	if len(tagIDs) == 0 {
		return counts, nil
	}
	for _, id := range tagIDs {
		counts[id] = 0
	}

	var rows []tagCount
	if err := db.Model(&models.AnswerTag{}).
		Select("tag_id, COUNT(*) AS total").
		Where("tag_id IN ?", tagIDs).
		Group("tag_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count answers per tag: %w", err)
	}

	for _, row := range rows {
		counts[row.TagID] = row.Total
	}
	return counts, nil
}

// findOrCreateTag resolves name to a persisted tag using tx. The insert ignores
// a conflicting row, so a concurrent writer that created the same name first
// is picked up by the second lookup instead of producing a duplicate.
func findOrCreateTag(tx *gorm.DB, name string) (*models.Tag, error) {
	for attempt := 0; attempt < 2; attempt++ {
		var tag models.Tag
		err := lookupTag(tx, name, attempt > 0).Take(&tag).Error
		if err == nil {
			return &tag, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find tag %q: %w", name, err)
		}

		tag = models.Tag{Name: name}
		err = tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "nombre"}},
				DoNothing: true,
			}).
			Create(&tag).Error
		if err != nil && !utils.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("create tag %q: %w", name, err)
		}
		if err == nil && tag.ID != 0 {
			return &tag, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrTagUnresolved, name)
}

// lookupTag builds the by-name query. The retry uses a locking read so that
// repeatable-read engines see the row committed by the winning transaction.
func lookupTag(tx *gorm.DB, name string, latest bool) *gorm.DB {
	query := tx.Where("nombre = ?", name)
	if latest && tx.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "SHARE"})
	}
	return query
}
