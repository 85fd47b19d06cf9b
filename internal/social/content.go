package social

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gramflow/gramflow/internal/db"
	"github.com/gramflow/gramflow/internal/models"
	"github.com/gramflow/gramflow/pkg/logging"
)

// Content owns posts and their image records
type Content struct {
	db     *db.DB
	logger *zap.Logger
}

// NewContent creates a new content aggregate store
func NewContent(database *db.DB) *Content {
	return &Content{
		db:     database,
		logger: logging.GetLogger().With(zap.String("component", "content-store")),
	}
}

// CreatePost persists a post and its image records as one transaction.
// A concurrent reader sees either the whole aggregate or nothing.
func (c *Content) CreatePost(ctx context.Context, accountID int64, body string, imageRefs []string) (int64, error) {
	if err := ValidatePostInput(body, imageRefs); err != nil {
		return 0, err
	}

	var postID int64
	err := c.db.Transaction(func(tx *gorm.DB) error {
		repo := db.NewRepository(tx)

		account, err := db.NewAccountRepository(repo).GetByID(ctx, accountID)
		if err != nil {
			return fmt.Errorf("failed to resolve account %d: %w", accountID, err)
		}
		if account == nil {
			return fmt.Errorf("account %d: %w", accountID, ErrNotFound)
		}

		postRepo := db.NewPostRepository(repo)
		post := &models.Post{
			AccountID: accountID,
			Body:      body,
		}
		if err := postRepo.Create(ctx, post); err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		images := make([]models.Image, len(imageRefs))
		for i, ref := range imageRefs {
			images[i] = models.Image{
				PostID:     post.ID,
				StorageRef: ref,
				Position:   i,
			}
		}
		if err := postRepo.CreateImages(ctx, images); err != nil {
			return fmt.Errorf("failed to create images: %w", err)
		}

		postID = post.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	c.logger.Debug("Post created",
		zap.Int64("post_id", postID),
		zap.Int64("account_id", accountID),
		zap.Int("images", len(imageRefs)))

	return postID, nil
}

// GetPostsByAccount returns all posts owned by one account with images
// attached, newest first
func (c *Content) GetPostsByAccount(ctx context.Context, accountID int64) ([]*models.Post, error) {
	repo := db.NewRepository(c.db.DB)
	posts, err := db.NewPostRepository(repo).GetByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	return posts, nil
}

// GetPostsByAccounts returns all posts owned by any of the given accounts,
// ordered by creation time descending with post ID as tie-break. An empty
// input yields an empty result.
func (c *Content) GetPostsByAccounts(ctx context.Context, accountIDs []int64) ([]*models.Post, error) {
	repo := db.NewRepository(c.db.DB)
	posts, err := db.NewPostRepository(repo).GetByAccounts(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	return posts, nil
}

// PostOwner returns the owning account ID of a post so the authorization
// layer can compare it against the caller
func (c *Content) PostOwner(ctx context.Context, postID int64) (int64, error) {
	repo := db.NewRepository(c.db.DB)
	post, err := db.NewPostRepository(repo).GetByID(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to load post %d: %w", postID, err)
	}
	if post == nil {
		return 0, fmt.Errorf("post %d: %w", postID, ErrNotFound)
	}
	return post.AccountID, nil
}

// DeletePost removes a post and all its image records in one transaction
func (c *Content) DeletePost(ctx context.Context, postID int64) error {
	err := c.db.Transaction(func(tx *gorm.DB) error {
		repo := db.NewRepository(tx)
		postRepo := db.NewPostRepository(repo)

		post, err := postRepo.GetByID(ctx, postID)
		if err != nil {
			return fmt.Errorf("failed to load post %d: %w", postID, err)
		}
		if post == nil {
			return fmt.Errorf("post %d: %w", postID, ErrNotFound)
		}

		if err := postRepo.DeleteImagesByPostIDs(ctx, []int64{postID}); err != nil {
			return fmt.Errorf("failed to delete images: %w", err)
		}
		if err := postRepo.Delete(ctx, postID); err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Debug("Post deleted", zap.Int64("post_id", postID))
	return nil
}

// ValidatePostInput checks the structural rules of post creation: a post
// must carry a non-blank body or at least one image
func ValidatePostInput(body string, imageRefs []string) error {
	if strings.TrimSpace(body) == "" && len(imageRefs) == 0 {
		return fmt.Errorf("post needs a body or at least one image: %w", ErrInvalidOperation)
	}
	for i, ref := range imageRefs {
		if strings.TrimSpace(ref) == "" {
			return fmt.Errorf("image %d has an empty storage reference: %w", i, ErrInvalidOperation)
		}
	}
	return nil
}
