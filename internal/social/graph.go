package social

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gramflow/gramflow/internal/db"
	"github.com/gramflow/gramflow/internal/models"
	"github.com/gramflow/gramflow/pkg/logging"
)

// Graph owns the directed follow edges between accounts
type Graph struct {
	db     *db.DB
	logger *zap.Logger
}

// NewGraph creates a new social graph store
func NewGraph(database *db.DB) *Graph {
	return &Graph{
		db:     database,
		logger: logging.GetLogger().With(zap.String("component", "social-graph")),
	}
}

// Follow creates a follow edge from follower to followee. A duplicate
// follow is absorbed as a successful no-op; the edge stays unique.
func (g *Graph) Follow(ctx context.Context, followerID, followeeID int64) error {
	if err := ValidateFollow(followerID, followeeID); err != nil {
		return err
	}

	err := g.db.Transaction(func(tx *gorm.DB) error {
		repo := db.NewRepository(tx)
		accountRepo := db.NewAccountRepository(repo)

		for _, id := range []int64{followerID, followeeID} {
			account, err := accountRepo.GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to resolve account %d: %w", id, err)
			}
			if account == nil {
				return fmt.Errorf("account %d: %w", id, ErrNotFound)
			}
		}

		if err := db.NewFollowRepository(repo).CreateIfAbsent(ctx, &models.Follow{
			FollowerID: followerID,
			FolloweeID: followeeID,
		}); err != nil {
			return fmt.Errorf("failed to create follow edge: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	g.logger.Debug("Follow edge ensured",
		zap.Int64("follower_id", followerID),
		zap.Int64("followee_id", followeeID))

	return nil
}

// Unfollow removes the follow edge if present. An absent edge is a no-op
// success, not an error.
func (g *Graph) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	repo := db.NewRepository(g.db.DB)
	followRepo := db.NewFollowRepository(repo)

	if err := followRepo.Delete(ctx, followerID, followeeID); err != nil {
		return fmt.Errorf("failed to delete follow edge: %w", err)
	}

	g.logger.Debug("Follow edge removed",
		zap.Int64("follower_id", followerID),
		zap.Int64("followee_id", followeeID))

	return nil
}

// ListFollowees returns summaries of all accounts the given account follows
func (g *Graph) ListFollowees(ctx context.Context, accountID int64) ([]models.AccountSummary, error) {
	repo := db.NewRepository(g.db.DB)

	ids, err := db.NewFollowRepository(repo).ListFolloweeIDs(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followees: %w", err)
	}
	return g.summaries(ctx, repo, ids)
}

// ListFollowers returns summaries of all accounts following the given account
func (g *Graph) ListFollowers(ctx context.Context, accountID int64) ([]models.AccountSummary, error) {
	repo := db.NewRepository(g.db.DB)

	ids, err := db.NewFollowRepository(repo).ListFollowerIDs(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return g.summaries(ctx, repo, ids)
}

// FolloweeIDs returns the raw followee ID set for one account. The feed
// assembler uses this to avoid materializing summaries it does not need.
func (g *Graph) FolloweeIDs(ctx context.Context, accountID int64) ([]int64, error) {
	repo := db.NewRepository(g.db.DB)

	ids, err := db.NewFollowRepository(repo).ListFolloweeIDs(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followees: %w", err)
	}
	return ids, nil
}

func (g *Graph) summaries(ctx context.Context, repo *db.Repository, ids []int64) ([]models.AccountSummary, error) {
	accounts, err := db.NewAccountRepository(repo).GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	result := make([]models.AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		result = append(result, account.Summary())
	}
	return result, nil
}

// ValidateFollow checks the structural rules of a follow operation
func ValidateFollow(followerID, followeeID int64) error {
	if followerID <= 0 || followeeID <= 0 {
		return fmt.Errorf("account id must be positive: %w", ErrInvalidOperation)
	}
	if followerID == followeeID {
		return fmt.Errorf("cannot follow self: %w", ErrInvalidOperation)
	}
	return nil
}
