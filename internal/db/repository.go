package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gramflow/gramflow/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository. Pass a transaction handle to
// scope all operations to that transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AccountRepository provides account-related database operations
type AccountRepository struct {
	*Repository
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(repo *Repository) *AccountRepository {
	return &AccountRepository{Repository: repo}
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByHandle retrieves an account by handle
func (r *AccountRepository) GetByHandle(ctx context.Context, handle string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByEmail retrieves an account by email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByIDs retrieves multiple accounts by IDs
func (r *AccountRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Account, error) {
	if len(ids) == 0 {
		return []*models.Account{}, nil
	}
	var accounts []*models.Account
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// Update updates an account
func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// Delete deletes an account row. Dependent rows are the caller's concern;
// social.Directory removes them in the same transaction.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Account{}, id).Error
}

// FollowRepository provides follow-edge database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// CreateIfAbsent inserts a follow edge unless the edge already exists.
// Duplicate insertion is absorbed at the store boundary so concurrent
// follow calls never surface a uniqueness violation.
func (r *FollowRepository) CreateIfAbsent(ctx context.Context, follow *models.Follow) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error
}

// Delete removes a follow edge. Removing an absent edge is a no-op.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followeeID int64) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
}

// DeleteAllForAccount removes every edge in which the account participates,
// as follower or as followee.
func (r *FollowRepository) DeleteAllForAccount(ctx context.Context, accountID int64) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? OR followee_id = ?", accountID, accountID).
		Delete(&models.Follow{}).Error
}

// ListFolloweeIDs returns the IDs of all accounts the given account follows
func (r *FollowRepository) ListFolloweeIDs(ctx context.Context, followerID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Order("followee_id ASC").
		Pluck("followee_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListFollowerIDs returns the IDs of all accounts following the given account
func (r *FollowRepository) ListFollowerIDs(ctx context.Context, followeeID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followee_id = ?", followeeID).
		Order("follower_id ASC").
		Pluck("follower_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID with its images
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetByAccount retrieves all posts owned by one account, newest first,
// with images attached
func (r *PostRepository) GetByAccount(ctx context.Context, accountID int64) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id ASC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByAccounts retrieves all posts owned by any of the given accounts,
// newest first with post ID as tie-break, with images attached
func (r *PostRepository) GetByAccounts(ctx context.Context, accountIDs []int64) ([]*models.Post, error) {
	if len(accountIDs) == 0 {
		return []*models.Post{}, nil
	}
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		Where("account_id IN ?", accountIDs).
		Order("created_at DESC, id ASC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListIDsByAccount returns the IDs of all posts owned by one account
func (r *PostRepository) ListIDsByAccount(ctx context.Context, accountID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("account_id = ?", accountID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Create creates a new post row
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// CreateImages creates image rows for a post
func (r *PostRepository) CreateImages(ctx context.Context, images []models.Image) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

// Delete deletes a post row
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

// DeleteImagesByPostIDs removes all image rows owned by the given posts
func (r *PostRepository) DeleteImagesByPostIDs(ctx context.Context, postIDs []int64) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Delete(&models.Image{}).Error
}

// DeleteByAccount removes all post rows owned by one account
func (r *PostRepository) DeleteByAccount(ctx context.Context, accountID int64) error {
	return r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&models.Post{}).Error
}
