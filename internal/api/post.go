package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gramflow/gramflow/internal/models"
	"github.com/gramflow/gramflow/internal/social"
)

// PostAPI exposes content aggregate operations
type PostAPI struct {
	directory *social.Directory
	content   *social.Content
	maxImages int
}

// NewPostAPI creates a new post API
func NewPostAPI(directory *social.Directory, content *social.Content, maxImages int) *PostAPI {
	return &PostAPI{directory: directory, content: content, maxImages: maxImages}
}

type createPostRequest struct {
	Body      string   `json:"body"`
	ImageRefs []string `json:"image_refs"`
}

// Create handles POST /api/post
func (p *PostAPI) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.ImageRefs) > p.maxImages {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fmt.Sprintf("a post may carry at most %d images", p.maxImages),
		})
		return
	}

	postID, err := p.content.CreatePost(c.Request.Context(), callerID(c), req.Body, req.ImageRefs)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post_id": postID})
}

// Delete handles DELETE /api/post/:id. Only the owning account may delete
// a post; the ownership check uses the core's owner lookup.
func (p *PostAPI) Delete(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed post id"})
		return
	}

	owner, err := p.content.PostOwner(c.Request.Context(), postID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if owner != callerID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the post owner"})
		return
	}

	if err := p.content.DeletePost(c.Request.Context(), postID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ListByHandle handles GET /api/post/user/:handle
func (p *PostAPI) ListByHandle(c *gin.Context) {
	account, err := p.directory.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	posts, err := p.content.GetPostsByAccount(c.Request.Context(), account.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": projectPosts(posts)})
}

type postResponse struct {
	PostID    int64    `json:"post_id"`
	Body      string   `json:"body"`
	CreatedAt string   `json:"created_at"`
	ImageRefs []string `json:"image_refs"`
}

func projectPosts(posts []*models.Post) []postResponse {
	result := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		refs := make([]string, 0, len(post.Images))
		for _, image := range post.Images {
			refs = append(refs, image.StorageRef)
		}
		result = append(result, postResponse{
			PostID:    post.ID,
			Body:      post.Body,
			CreatedAt: post.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			ImageRefs: refs,
		})
	}
	return result
}
