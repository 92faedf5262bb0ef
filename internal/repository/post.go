package repository

import (
	"context"
	"errors"
	"strings"

	"chirp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository owns post rows, their hashtag associations and the
// reply_count/repost_count counters. Every mutation that touches both a
// row and a counter runs in a single transaction.
type PostRepository interface {
	// Create persists the post and resolves tagNames to hashtag
	// identities in the same transaction, so a failed save leaves no
	// freshly minted hashtag rows behind.
	Create(ctx context.Context, post *models.Post, tagNames []string) error
	// CreateReply persists the reply and increments the parent's
	// reply_count atomically. Fails NOT_FOUND if the parent vanished.
	CreateReply(ctx context.Context, reply *models.Post, tagNames []string) error
	// CreateRepost persists the repost and increments the original's
	// repost_count atomically.
	CreateRepost(ctx context.Context, repost *models.Post, tagNames []string) error
	// UpdateContent rewrites content and diffs the hashtag association
	// set against tagNames: added tags gain a post, removed tags lose
	// one, unchanged tags stay untouched.
	UpdateContent(ctx context.Context, postID uint, content string, tagNames []string) error
	// Delete removes the post, its like edges and hashtag associations
	// (decrementing counts), detaches child replies/reposts and drops
	// notifications that reference the post.
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)

	ByUser(ctx context.Context, userID uint, page models.Page) ([]*models.Post, error)
	HomeTimeline(ctx context.Context, userID uint, page models.Page) ([]*models.Post, error)
	ByHashtag(ctx context.Context, name string, page models.Page) ([]*models.Post, error)
	Trending(ctx context.Context, page models.Page) ([]*models.Post, error)
	Search(ctx context.Context, query string, page models.Page) ([]*models.Post, error)
	RepliesTo(ctx context.Context, parentID uint, page models.Page) ([]*models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post, tagNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tagIDs, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		return associateTags(tx, post.ID, tagIDs)
	})
	return wrapStoreErr(err)
}

func (r *postRepository) CreateReply(ctx context.Context, reply *models.Post, tagNames []string) error {
	return r.createChild(ctx, reply, tagNames, *reply.ParentID, "reply_count")
}

func (r *postRepository) CreateRepost(ctx context.Context, repost *models.Post, tagNames []string) error {
	return r.createChild(ctx, repost, tagNames, *repost.OriginalPostID, "repost_count")
}

// createChild shares the reply/repost path: insert the child, associate
// its tags and bump the referenced post's counter by one, all in one
// transaction. A zero-row counter update means the referenced post was
// deleted between the caller's existence check and this write; the
// whole transaction rolls back so no orphan is created.
func (r *postRepository) createChild(ctx context.Context, child *models.Post, tagNames []string, targetID uint, counter string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tagIDs, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(child).Error; err != nil {
			return err
		}
		if err := associateTags(tx, child.ID, tagIDs); err != nil {
			return err
		}
		res := tx.Model(&models.Post{}).
			Where("id = ?", targetID).
			UpdateColumn(counter, gorm.Expr(counter+" + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Post", targetID)
	}
	return wrapStoreErr(err)
}

func (r *postRepository) UpdateContent(ctx context.Context, postID uint, content string, tagNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Update("content", content)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var oldTagIDs []uint
		if err := tx.Table("post_hashtags").
			Where("post_id = ?", postID).
			Pluck("hashtag_id", &oldTagIDs).Error; err != nil {
			return err
		}
		newTagIDs, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}

		added, removed := diffIDs(oldTagIDs, newTagIDs)
		if err := associateTags(tx, postID, added); err != nil {
			return err
		}
		return dissociateTags(tx, postID, removed)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Post", postID)
	}
	return wrapStoreErr(err)
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}

		var tagIDs []uint
		if err := tx.Table("post_hashtags").
			Where("post_id = ?", id).
			Pluck("hashtag_id", &tagIDs).Error; err != nil {
			return err
		}
		if err := dissociateTags(tx, id, tagIDs); err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		// Detach descendants instead of cascading: child content
		// survives with its reference cleared.
		if err := tx.Model(&models.Post{}).
			Where("parent_id = ?", id).
			Updates(map[string]interface{}{"parent_id": nil, "is_reply": false}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).
			Where("original_post_id = ?", id).
			Updates(map[string]interface{}{"original_post_id": nil, "is_repost": false}).Error; err != nil {
			return err
		}

		// Keep the parent/original counters aligned with the surviving
		// edge set when the deleted post was itself a reply or repost.
		if post.IsReply && post.ParentID != nil {
			if err := tx.Model(&models.Post{}).
				Where("id = ? AND reply_count > 0", *post.ParentID).
				UpdateColumn("reply_count", gorm.Expr("reply_count - ?", 1)).Error; err != nil {
				return err
			}
		}
		if post.IsRepost && post.OriginalPostID != nil {
			if err := tx.Model(&models.Post{}).
				Where("id = ? AND repost_count > 0", *post.OriginalPostID).
				UpdateColumn("repost_count", gorm.Expr("repost_count - ?", 1)).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Post{}, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Post", id)
	}
	return wrapStoreErr(err)
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Hashtags").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, wrapStoreErr(err)
	}
	return &post, nil
}

// chronological applies the deterministic feed order: newest first,
// ties broken by ascending ID.
func chronological(db *gorm.DB) *gorm.DB {
	return db.Order("posts.created_at DESC, posts.id ASC")
}

func (r *postRepository) listPage(db *gorm.DB, page models.Page) ([]*models.Post, error) {
	var posts []*models.Post
	err := db.
		Preload("User").
		Preload("Hashtags").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return posts, nil
}

func (r *postRepository) ByUser(ctx context.Context, userID uint, page models.Page) ([]*models.Post, error) {
	return r.listPage(
		chronological(r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", userID)),
		page,
	)
}

func (r *postRepository) HomeTimeline(ctx context.Context, userID uint, page models.Page) ([]*models.Post, error) {
	return r.listPage(
		chronological(r.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("user_id = ? OR user_id IN (SELECT following_id FROM follows WHERE follower_id = ?)", userID, userID)),
		page,
	)
}

func (r *postRepository) ByHashtag(ctx context.Context, name string, page models.Page) ([]*models.Post, error) {
	return r.listPage(
		chronological(r.db.WithContext(ctx).
			Model(&models.Post{}).
			Joins("JOIN post_hashtags ON post_hashtags.post_id = posts.id").
			Joins("JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id").
			Where("hashtags.name = ?", name)),
		page,
	)
}

func (r *postRepository) Trending(ctx context.Context, page models.Page) ([]*models.Post, error) {
	return r.listPage(
		r.db.WithContext(ctx).
			Model(&models.Post{}).
			Order("(like_count + repost_count + reply_count) DESC, created_at DESC, id ASC"),
		page,
	)
}

func (r *postRepository) Search(ctx context.Context, query string, page models.Page) ([]*models.Post, error) {
	db := r.db.WithContext(ctx).Model(&models.Post{})
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		db = db.Where("LOWER(content) LIKE ?", like)
	}
	return r.listPage(chronological(db), page)
}

func (r *postRepository) RepliesTo(ctx context.Context, parentID uint, page models.Page) ([]*models.Post, error) {
	return r.listPage(
		chronological(r.db.WithContext(ctx).Model(&models.Post{}).Where("parent_id = ?", parentID)),
		page,
	)
}

// resolveTags maps tag names to hashtag IDs inside tx, creating
// missing identities with the conditional insert. Duplicate names
// collapse to a single ID. Running inside the caller's transaction
// keeps freshly minted hashtag rows tied to the fate of the post write.
func resolveTags(tx *gorm.DB, names []string) ([]uint, error) {
	seen := make(map[string]struct{}, len(names))
	var ids []uint
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		tag, err := getOrCreateTag(tx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

// diffIDs splits newIDs/oldIDs into the IDs to add and to remove.
func diffIDs(oldIDs, newIDs []uint) (added, removed []uint) {
	oldSet := make(map[uint]struct{}, len(oldIDs))
	for _, id := range oldIDs {
		oldSet[id] = struct{}{}
	}
	newSet := make(map[uint]struct{}, len(newIDs))
	for _, id := range newIDs {
		newSet[id] = struct{}{}
	}
	for _, id := range newIDs {
		if _, ok := oldSet[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range oldIDs {
		if _, ok := newSet[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}

// associateTags links a post to each hashtag and bumps post_count for
// links that were actually inserted. The conditional insert on the join
// table's composite key keeps the operation idempotent.
func associateTags(tx *gorm.DB, postID uint, tagIDs []uint) error {
	for _, tagID := range tagIDs {
		res := tx.Exec(
			"INSERT INTO post_hashtags (post_id, hashtag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			postID, tagID,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			continue
		}
		if err := tx.Model(&models.Hashtag{}).
			Where("id = ?", tagID).
			UpdateColumn("post_count", gorm.Expr("post_count + ?", 1)).Error; err != nil {
			return err
		}
	}
	return nil
}

// dissociateTags removes associations and decrements post_count for
// links that actually existed, floored at zero.
func dissociateTags(tx *gorm.DB, postID uint, tagIDs []uint) error {
	for _, tagID := range tagIDs {
		res := tx.Exec(
			"DELETE FROM post_hashtags WHERE post_id = ? AND hashtag_id = ?",
			postID, tagID,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			continue
		}
		if err := tx.Model(&models.Hashtag{}).
			Where("id = ? AND post_count > 0", tagID).
			UpdateColumn("post_count", gorm.Expr("post_count - ?", 1)).Error; err != nil {
			return err
		}
	}
	return nil
}
