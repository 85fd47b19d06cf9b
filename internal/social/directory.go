package social

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gramflow/gramflow/internal/db"
	"github.com/gramflow/gramflow/internal/models"
	"github.com/gramflow/gramflow/pkg/logging"
)

var handlePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,31}$`)

// Directory holds account identity records
type Directory struct {
	db     *db.DB
	logger *zap.Logger
}

// NewDirectory creates a new account directory
func NewDirectory(database *db.DB) *Directory {
	return &Directory{
		db:     database,
		logger: logging.GetLogger().With(zap.String("component", "account-directory")),
	}
}

// Registration carries the inputs of account creation
type Registration struct {
	Handle      string
	Email       string
	DisplayName string
	Bio         string
	AvatarRef   string
}

// ProfileUpdate carries the mutable profile attributes. Nil fields are
// left unchanged.
type ProfileUpdate struct {
	Handle      *string
	Email       *string
	DisplayName *string
	Bio         *string
	AvatarRef   *string
}

// Register creates a new account. Handle and email collisions surface as
// ErrConflict.
func (d *Directory) Register(ctx context.Context, reg Registration) (int64, error) {
	if err := ValidateRegistration(reg); err != nil {
		return 0, err
	}

	var accountID int64
	err := d.db.Transaction(func(tx *gorm.DB) error {
		repo := db.NewRepository(tx)
		accountRepo := db.NewAccountRepository(repo)

		if err := d.checkUnique(ctx, accountRepo, reg.Handle, reg.Email, 0); err != nil {
			return err
		}

		account := &models.Account{
			Handle:      reg.Handle,
			Email:       reg.Email,
			Activated:   true,
			DisplayName: reg.DisplayName,
			Bio:         reg.Bio,
			AvatarRef:   reg.AvatarRef,
		}
		if err := accountRepo.Create(ctx, account); err != nil {
			// A concurrent registration can slip past checkUnique; the
			// unique index still rejects it and must surface as Conflict
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("handle or email is taken: %w", ErrConflict)
			}
			return fmt.Errorf("failed to create account: %w", err)
		}
		accountID = account.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	d.logger.Info("Account registered",
		zap.Int64("account_id", accountID),
		zap.String("handle", reg.Handle))

	return accountID, nil
}

// GetByID resolves an account by ID
func (d *Directory) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	repo := db.NewRepository(d.db.DB)
	account, err := db.NewAccountRepository(repo).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %d: %w", id, err)
	}
	if account == nil {
		return nil, fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	return account, nil
}

// GetByHandle resolves an account by handle
func (d *Directory) GetByHandle(ctx context.Context, handle string) (*models.Account, error) {
	repo := db.NewRepository(d.db.DB)
	account, err := db.NewAccountRepository(repo).GetByHandle(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %q: %w", handle, err)
	}
	if account == nil {
		return nil, fmt.Errorf("account %q: %w", handle, ErrNotFound)
	}
	return account, nil
}

// UpdateProfile applies profile changes to an account. Handle and email
// changes are checked for collisions against other accounts.
func (d *Directory) UpdateProfile(ctx context.Context, accountID int64, update ProfileUpdate) error {
	err := d.db.Transaction(func(tx *gorm.DB) error {
		repo := db.NewRepository(tx)
		accountRepo := db.NewAccountRepository(repo)

		account, err := accountRepo.GetByID(ctx, accountID)
		if err != nil {
			return fmt.Errorf("failed to load account %d: %w", accountID, err)
		}
		if account == nil {
			return fmt.Errorf("account %d: %w", accountID, ErrNotFound)
		}

		if update.Handle != nil {
			if !handlePattern.MatchString(*update.Handle) {
				return fmt.Errorf("malformed handle %q: %w", *update.Handle, ErrInvalidOperation)
			}
			account.Handle = *update.Handle
		}
		if update.Email != nil {
			if !strings.Contains(*update.Email, "@") {
				return fmt.Errorf("malformed email: %w", ErrInvalidOperation)
			}
			account.Email = *update.Email
		}
		if update.Handle != nil || update.Email != nil {
			if err := d.checkUnique(ctx, accountRepo, account.Handle, account.Email, accountID); err != nil {
				return err
			}
		}

		if update.DisplayName != nil {
			account.DisplayName = *update.DisplayName
		}
		if update.Bio != nil {
			account.Bio = *update.Bio
		}
		if update.AvatarRef != nil {
			account.AvatarRef = *update.AvatarRef
		}

		if err := accountRepo.Update(ctx, account); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("handle or email is taken: %w", ErrConflict)
			}
			return fmt.Errorf("failed to update account: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	d.logger.Debug("Profile updated", zap.Int64("account_id", accountID))
	return nil
}

// Delete removes an account together with everything it owns: all its
// posts, every image of those posts, and every follow edge in which the
// account participates on either side. One transaction covers all of it,
// so no reader observes a half-removed account.
func (d *Directory) Delete(ctx context.Context, accountID int64) error {
	err := d.db.Transaction(func(tx *gorm.DB) error {
		repo := db.NewRepository(tx)
		accountRepo := db.NewAccountRepository(repo)

		account, err := accountRepo.GetByID(ctx, accountID)
		if err != nil {
			return fmt.Errorf("failed to load account %d: %w", accountID, err)
		}
		if account == nil {
			return fmt.Errorf("account %d: %w", accountID, ErrNotFound)
		}

		postRepo := db.NewPostRepository(repo)
		postIDs, err := postRepo.ListIDsByAccount(ctx, accountID)
		if err != nil {
			return fmt.Errorf("failed to list posts: %w", err)
		}
		if err := postRepo.DeleteImagesByPostIDs(ctx, postIDs); err != nil {
			return fmt.Errorf("failed to delete images: %w", err)
		}
		if err := postRepo.DeleteByAccount(ctx, accountID); err != nil {
			return fmt.Errorf("failed to delete posts: %w", err)
		}

		if err := db.NewFollowRepository(repo).DeleteAllForAccount(ctx, accountID); err != nil {
			return fmt.Errorf("failed to delete follow edges: %w", err)
		}

		if err := accountRepo.Delete(ctx, accountID); err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	d.logger.Info("Account deleted", zap.Int64("account_id", accountID))
	return nil
}

func (d *Directory) checkUnique(ctx context.Context, accountRepo *db.AccountRepository, handle, email string, selfID int64) error {
	existing, err := accountRepo.GetByHandle(ctx, handle)
	if err != nil {
		return fmt.Errorf("failed to check handle: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("handle %q is taken: %w", handle, ErrConflict)
	}

	existing, err = accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("email is taken: %w", ErrConflict)
	}
	return nil
}

// ValidateRegistration checks the structural rules of account creation
func ValidateRegistration(reg Registration) error {
	if !handlePattern.MatchString(reg.Handle) {
		return fmt.Errorf("malformed handle %q: %w", reg.Handle, ErrInvalidOperation)
	}
	if !strings.Contains(reg.Email, "@") {
		return fmt.Errorf("malformed email: %w", ErrInvalidOperation)
	}
	return nil
}
