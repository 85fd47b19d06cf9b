package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gramflow/gramflow/internal/social"
)

// FeedAPI exposes the home feed read path
type FeedAPI struct {
	feed     *social.Feed
	maxPosts int
}

// NewFeedAPI creates a new feed API
func NewFeedAPI(feed *social.Feed, maxPosts int) *FeedAPI {
	return &FeedAPI{feed: feed, maxPosts: maxPosts}
}

// GetFeed handles GET /api/feed for the caller's account
func (f *FeedAPI) GetFeed(c *gin.Context) {
	views, err := f.feed.GetFeed(c.Request.Context(), callerID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if len(views) > f.maxPosts {
		views = views[:f.maxPosts]
	}

	c.JSON(http.StatusOK, gin.H{"feed": views})
}
