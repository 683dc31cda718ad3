package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mementogram/api-go/services"
	"github.com/mementogram/api-go/utils"
)

type PostController struct {
	Posts services.PostService
}

type CreatePostRequest struct {
	Content   string   `json:"content" binding:"required"`
	ImageURLs []string `json:"imageUrls" binding:"omitempty,max=10"`
}

type UpdatePostRequest struct {
	Content   *string   `json:"content"`
	ImageURLs *[]string `json:"imageUrls"`
}

func NewPostController(posts services.PostService) *PostController {
	return &PostController{Posts: posts}
}

// CreatePost godoc
// @Summary Create a new post
// @Description Creates a post with text content and optional image URLs
// @Tags posts
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Post creation request"
// @Success 201 {object} services.PostView
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := pc.Posts.CreatePost(user.UserID, req.Content, req.ImageURLs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    post,
		Message: "Post created successfully",
	})
}

// GetPostDetail godoc
// @Summary Get a single post
// @Description Returns a post enriched with author fields and engagement counts
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} services.PostView
// @Router /posts/{id} [get]
func (pc *PostController) GetPostDetail(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var viewerID uint
	if user := utils.GetUser(c); user != nil {
		viewerID = user.UserID
	}

	post, err := pc.Posts.FindPostByID(postID, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    post,
	})
}

// GetAllPosts godoc
// @Summary List posts
// @Description Returns all posts, newest first, paginated
// @Tags posts
// @Accept json
// @Produce json
// @Param limit query integer false "Page size (default: 20, max: 50)"
// @Param offset query integer false "Offset (default: 0)"
// @Success 200 {object} map[string]interface{}
// @Router /posts [get]
func (pc *PostController) GetAllPosts(c *gin.Context) {
	p := bindPagination(c)

	var viewerID uint
	if user := utils.GetUser(c); user != nil {
		viewerID = user.UserID
	}

	posts, total, err := pc.Posts.FindAllPosts(viewerID, p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       posts,
		Pagination: paginationMeta(p, total),
	})
}

// GetUserPosts godoc
// @Summary Get posts by user
// @Description Returns paginated list of posts by a specific user
// @Tags posts
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{userId}/posts [get]
func (pc *PostController) GetUserPosts(c *gin.Context) {
	authorID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	p := bindPagination(c)

	var viewerID uint
	if user := utils.GetUser(c); user != nil {
		viewerID = user.UserID
	}

	posts, total, err := pc.Posts.FindPostsByUser(authorID, viewerID, p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       posts,
		Pagination: paginationMeta(p, total),
	})
}

// UpdatePost godoc
// @Summary Update an existing post
// @Description Applies a sparse patch to a post the caller owns
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body UpdatePostRequest true "Post update request"
// @Success 200 {object} services.PostView
// @Router /posts/{id} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := pc.Posts.UpdatePost(postID, user.UserID, services.PostPatch{
		Content:   req.Content,
		ImageURLs: req.ImageURLs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    post,
		Message: "Post updated successfully",
	})
}

// DeletePost godoc
// @Summary Delete a post
// @Description Deletes a post the caller owns along with its votes and comments
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := pc.Posts.DeletePost(postID, user.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post successfully deleted",
	})
}

// parseID reads a numeric path param, writing a 400 when it is malformed.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
