package repository

import (
	"context"
	"errors"

	"chirp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HashtagRepository defines the interface for hashtag identity operations.
type HashtagRepository interface {
	GetOrCreate(ctx context.Context, name string) (*models.Hashtag, error)
	GetByName(ctx context.Context, name string) (*models.Hashtag, error)
	TagIDs(ctx context.Context, postID uint) ([]uint, error)
}

type hashtagRepository struct {
	db *gorm.DB
}

// NewHashtagRepository creates a new hashtag repository.
func NewHashtagRepository(db *gorm.DB) HashtagRepository {
	return &hashtagRepository{db: db}
}

// GetOrCreate resolves a lowercase tag name to its identity, creating
// it on first use. The conditional insert on the unique name index
// guarantees at most one row per name under concurrent first use.
func (r *hashtagRepository) GetOrCreate(ctx context.Context, name string) (*models.Hashtag, error) {
	tag, err := getOrCreateTag(r.db.WithContext(ctx), name)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return tag, nil
}

// getOrCreateTag runs the conditional insert on whatever db handle it
// is given, so callers can resolve tags inside a larger transaction.
func getOrCreateTag(db *gorm.DB, name string) (*models.Hashtag, error) {
	tag := models.Hashtag{Name: name}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&tag)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 1 && tag.ID != 0 {
		return &tag, nil
	}
	// Lost the race (or the tag already existed): fetch the winner.
	if err := db.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *hashtagRepository) GetByName(ctx context.Context, name string) (*models.Hashtag, error) {
	var tag models.Hashtag
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Hashtag", name)
		}
		return nil, wrapStoreErr(err)
	}
	return &tag, nil
}

// TagIDs returns the hashtag IDs currently associated with a post.
func (r *hashtagRepository) TagIDs(ctx context.Context, postID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Table("post_hashtags").
		Where("post_id = ?", postID).
		Pluck("hashtag_id", &ids).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return ids, nil
}
