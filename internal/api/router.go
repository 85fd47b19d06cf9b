package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gramflow/gramflow/internal/cache"
	"github.com/gramflow/gramflow/internal/db"
	"github.com/gramflow/gramflow/internal/social"
	"github.com/gramflow/gramflow/pkg/config"
	"github.com/gramflow/gramflow/pkg/logging"
)

// Router sets up API routes
type Router struct {
	cfg    *config.Config
	db     *db.DB
	cache  *cache.Cache
	logger *zap.Logger

	accounts *AccountAPI
	follows  *FollowAPI
	posts    *PostAPI
	feed     *FeedAPI
}

// NewRouter creates a new API router wired to the core services
func NewRouter(cfg *config.Config, database *db.DB, redisCache *cache.Cache) *Router {
	directory := social.NewDirectory(database)
	graph := social.NewGraph(database)
	content := social.NewContent(database)
	feed := social.NewFeed(database, graph, content)

	return &Router{
		cfg:      cfg,
		db:       database,
		cache:    redisCache,
		logger:   logging.GetLogger().With(zap.String("component", "api-router")),
		accounts: NewAccountAPI(directory),
		follows:  NewFollowAPI(directory, graph),
		posts:    NewPostAPI(directory, content, cfg.Feed.MaxImagesPerPost),
		feed:     NewFeedAPI(feed, cfg.Feed.MaxPosts),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// Registration is the only unauthenticated API route
	engine.POST("/api/accounts", r.accounts.Register)

	authed := engine.Group("/api", CallerIdentity())
	writeLimit := RateLimit(r.cache, r.cfg.Feed.WriteRateLimit, r.cfg.Feed.WriteRateWindow)

	authed.GET("/accounts/:handle", r.accounts.GetByHandle)
	authed.PUT("/accounts/profile", writeLimit, r.accounts.UpdateProfile)
	authed.DELETE("/accounts", r.accounts.Delete)

	authed.POST("/follow/:handle", writeLimit, r.follows.Follow)
	authed.DELETE("/follow/:handle", writeLimit, r.follows.Unfollow)
	authed.GET("/follow/followers", r.follows.Followers)
	authed.GET("/follow/followings", r.follows.Followings)

	authed.POST("/post", writeLimit, r.posts.Create)
	authed.DELETE("/post/:id", writeLimit, r.posts.Delete)
	authed.GET("/post/user/:handle", r.posts.ListByHandle)

	authed.GET("/feed", r.feed.GetFeed)
}

// healthHandler handles health check requests, reporting each backing
// store. A disabled redis is healthy; a configured but unreachable one
// is not.
func (r *Router) healthHandler(c *gin.Context) {
	status := http.StatusOK

	dbState := "UP"
	if err := r.db.Health(c.Request.Context()); err != nil {
		dbState = "DOWN"
		status = http.StatusServiceUnavailable
	}

	redisState := "UP"
	if err := r.cache.Health(c.Request.Context()); err != nil {
		if errors.Is(err, cache.ErrCacheDisabled) {
			redisState = "disabled"
		} else {
			redisState = "DOWN"
			status = http.StatusServiceUnavailable
		}
	}

	overall := "OK"
	if status != http.StatusOK {
		overall = "DOWN"
	}

	c.JSON(status, gin.H{
		"status":   overall,
		"service":  "gramflow-api",
		"database": dbState,
		"redis":    redisState,
	})
}
