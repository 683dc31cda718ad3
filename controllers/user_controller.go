package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mementogram/api-go/models"
	"github.com/mementogram/api-go/services"
	"github.com/mementogram/api-go/utils"
	"gorm.io/gorm"
)

type UserController struct {
	DB    *gorm.DB
	Users services.UserService
}

func NewUserController(db *gorm.DB, users services.UserService) *UserController {
	return &UserController{DB: db, Users: users}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var dbUser models.User
	if err := uc.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":        dbUser.ID,
			"username":  dbUser.Username,
			"email":     dbUser.Email,
			"fullName":  dbUser.FullName,
			"bio":       dbUser.Bio,
			"avatar":    dbUser.Avatar,
			"createdAt": dbUser.CreatedAt,
			"role":      user.Role,
		},
	})
}

// UpdateProfile applies a sparse patch built from the present-only fields of
// the body. An empty body is a 400.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var input struct {
		FullName *string `json:"fullName"`
		Bio      *string `json:"bio"`
		Avatar   *string `json:"avatar"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := uc.Users.UpdateProfile(user.UserID, services.ProfilePatch{
		FullName: input.FullName,
		Bio:      input.Bio,
		Avatar:   input.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user": gin.H{
			"id":        updated.ID,
			"username":  updated.Username,
			"email":     updated.Email,
			"fullName":  updated.FullName,
			"bio":       updated.Bio,
			"avatar":    updated.Avatar,
			"createdAt": updated.CreatedAt,
		},
	})
}

func (uc *UserController) GetUserProfile(c *gin.Context) {
	username := c.Param("username")

	var viewerID uint
	if user := utils.GetUser(c); user != nil {
		viewerID = user.UserID
	}

	profile, err := uc.Users.GetProfileByUsername(username, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    profile,
	})
}

func (uc *UserController) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	p := bindPagination(c)

	profiles, total, err := uc.Users.SearchUsers(query, p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       profiles,
		Pagination: paginationMeta(p, total),
	})
}
