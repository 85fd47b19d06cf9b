package social

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/gramflow/gramflow/internal/db"
	"github.com/gramflow/gramflow/internal/models"
	"github.com/gramflow/gramflow/pkg/logging"
	"github.com/gramflow/gramflow/pkg/telemetry"
)

// PostView is the feed projection of one post
type PostView struct {
	PostID    int64                 `json:"post_id"`
	Author    models.AccountSummary `json:"author"`
	Body      string                `json:"body"`
	CreatedAt time.Time             `json:"created_at"`
	ImageRefs []string              `json:"image_refs"`
}

// Feed assembles the recency-ordered home feed for a viewer
type Feed struct {
	graph   *Graph
	content *Content
	db      *db.DB
	logger  *zap.Logger
}

// NewFeed creates a new feed assembler
func NewFeed(database *db.DB, graph *Graph, content *Content) *Feed {
	return &Feed{
		graph:   graph,
		content: content,
		db:      database,
		logger:  logging.GetLogger().With(zap.String("component", "feed-assembler")),
	}
}

// GetFeed returns the posts of every account the viewer follows, newest
// first. Equal timestamps are broken by ascending post ID so repeated
// calls over unchanged data return identical ordering.
func (f *Feed) GetFeed(ctx context.Context, viewerID int64) ([]PostView, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.assemble")
	defer span.End()
	span.SetAttributes(attribute.Int64("feed.viewer_id", viewerID))

	repo := db.NewRepository(f.db.DB)
	viewer, err := db.NewAccountRepository(repo).GetByID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve viewer %d: %w", viewerID, err)
	}
	if viewer == nil {
		return nil, fmt.Errorf("viewer %d: %w", viewerID, ErrNotFound)
	}

	followeeIDs, err := f.graph.FolloweeIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(followeeIDs) == 0 {
		return []PostView{}, nil
	}

	posts, err := f.content.GetPostsByAccounts(ctx, followeeIDs)
	if err != nil {
		return nil, err
	}

	authors, err := db.NewAccountRepository(repo).GetByIDs(ctx, followeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}
	authorsByID := make(map[int64]models.AccountSummary, len(authors))
	for _, author := range authors {
		authorsByID[author.ID] = author.Summary()
	}

	sortForFeed(posts)
	views := buildPostViews(posts, authorsByID)
	span.SetAttributes(
		attribute.Int("feed.followees", len(followeeIDs)),
		attribute.Int("feed.posts", len(views)),
	)

	f.logger.Debug("Feed assembled",
		zap.Int64("viewer_id", viewerID),
		zap.Int("followees", len(followeeIDs)),
		zap.Int("posts", len(views)))

	return views, nil
}

// sortForFeed orders posts by creation time descending with ascending post
// ID as the deterministic tie-break. The store already orders its result
// this way; re-applying the comparator keeps the guarantee independent of
// store collation.
func sortForFeed(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID < posts[j].ID
	})
}

// buildPostViews projects posts into feed entries. A post whose author is
// missing from the map is skipped; that only happens when the author was
// deleted between the two store reads, and a deleted account must leave no
// trace in any feed.
func buildPostViews(posts []*models.Post, authorsByID map[int64]models.AccountSummary) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		author, ok := authorsByID[post.AccountID]
		if !ok {
			continue
		}
		refs := make([]string, 0, len(post.Images))
		for _, image := range post.Images {
			refs = append(refs, image.StorageRef)
		}
		views = append(views, PostView{
			PostID:    post.ID,
			Author:    author,
			Body:      post.Body,
			CreatedAt: post.CreatedAt,
			ImageRefs: refs,
		})
	}
	return views
}
