package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gramflow/gramflow/internal/social"
)

// AccountAPI exposes account directory operations
type AccountAPI struct {
	directory *social.Directory
}

// NewAccountAPI creates a new account API
func NewAccountAPI(directory *social.Directory) *AccountAPI {
	return &AccountAPI{directory: directory}
}

type registerRequest struct {
	Handle      string `json:"handle" binding:"required"`
	Email       string `json:"email" binding:"required"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	AvatarRef   string `json:"avatar_ref"`
}

// Register handles POST /api/accounts
func (a *AccountAPI) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := a.directory.Register(c.Request.Context(), social.Registration{
		Handle:      req.Handle,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarRef:   req.AvatarRef,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account_id": id})
}

// GetByHandle handles GET /api/accounts/:handle
func (a *AccountAPI) GetByHandle(c *gin.Context) {
	account, err := a.directory.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           account.ID,
		"handle":       account.Handle,
		"display_name": account.DisplayName,
		"bio":          account.Bio,
		"avatar_ref":   account.AvatarRef,
		"activated":    account.Activated,
		"created_at":   account.CreatedAt,
	})
}

type profileUpdateRequest struct {
	Handle      *string `json:"handle"`
	Email       *string `json:"email"`
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarRef   *string `json:"avatar_ref"`
}

// UpdateProfile handles PUT /api/accounts/profile for the caller's account
func (a *AccountAPI) UpdateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := a.directory.UpdateProfile(c.Request.Context(), callerID(c), social.ProfileUpdate{
		Handle:      req.Handle,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarRef:   req.AvatarRef,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Delete handles DELETE /api/accounts for the caller's account. The
// directory cascades removal of posts, images and follow edges.
func (a *AccountAPI) Delete(c *gin.Context) {
	if err := a.directory.Delete(c.Request.Context(), callerID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
