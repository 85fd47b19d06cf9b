package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gramflow/gramflow/internal/social"
)

// FollowAPI exposes social graph operations
type FollowAPI struct {
	directory *social.Directory
	graph     *social.Graph
}

// NewFollowAPI creates a new follow API
func NewFollowAPI(directory *social.Directory, graph *social.Graph) *FollowAPI {
	return &FollowAPI{directory: directory, graph: graph}
}

// Follow handles POST /api/follow/:handle. The target is addressed by
// handle; the core operates on account IDs.
func (f *FollowAPI) Follow(c *gin.Context) {
	target, err := f.directory.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if err := f.graph.Follow(c.Request.Context(), callerID(c), target.ID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Unfollow handles DELETE /api/follow/:handle
func (f *FollowAPI) Unfollow(c *gin.Context) {
	target, err := f.directory.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if err := f.graph.Unfollow(c.Request.Context(), callerID(c), target.ID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Followers handles GET /api/follow/followers for the caller's account
func (f *FollowAPI) Followers(c *gin.Context) {
	summaries, err := f.graph.ListFollowers(c.Request.Context(), callerID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// Followings handles GET /api/follow/followings for the caller's account
func (f *FollowAPI) Followings(c *gin.Context) {
	summaries, err := f.graph.ListFollowees(c.Request.Context(), callerID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}
