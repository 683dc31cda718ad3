package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mementogram/api-go/services"
)

type CommentController struct {
	Comments services.CommentService
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func NewCommentController(comments services.CommentService) *CommentController {
	return &CommentController{Comments: comments}
}

// CreateComment godoc
// @Summary Comment on a post
// @Description Appends a comment to a post and returns it with the author's public fields
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param comment body CreateCommentRequest true "Comment creation request"
// @Success 201 {object} services.CommentView
// @Router /posts/{id}/comments [post]
func (cc *CommentController) CreateComment(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := cc.Comments.CreateComment(user.UserID, postID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    comment,
		Message: "Comment created successfully",
	})
}

// GetPostComments godoc
// @Summary List comments on a post
// @Description Returns paginated comments, newest first, joined with author fields
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id}/comments [get]
func (cc *CommentController) GetPostComments(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}
	p := bindPagination(c)

	comments, total, err := cc.Comments.GetCommentsForPost(postID, p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       comments,
		Pagination: paginationMeta(p, total),
	})
}
