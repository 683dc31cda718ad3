package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/mementogram/api-go/cache"
	"github.com/mementogram/api-go/models"
	errors "github.com/mementogram/api-go/services/errors"
	"gorm.io/gorm"
)

// CommentView is a comment joined with its author's public fields.
type CommentView struct {
	ID        uint                 `json:"id"`
	Content   string               `json:"content"`
	CreatedAt time.Time            `json:"createdAt"`
	Author    models.PublicProfile `json:"author"`
}

type CommentService interface {
	CreateComment(userID, postID uint, content string) (*CommentView, error)
	GetCommentsForPost(postID uint, p Pagination) ([]CommentView, int64, error)
	CommentCount(postID uint) (int64, error)
}

type commentService struct {
	db         *gorm.DB
	engagement *cache.EngagementCache
}

func NewCommentService(db *gorm.DB, engagement *cache.EngagementCache) CommentService {
	return &commentService{db: db, engagement: engagement}
}

func (s *commentService) CreateComment(userID, postID uint, content string) (*CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New(errors.ErrInvalidInput, "Comment content cannot be empty")
	}

	var postCount int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", postID).Count(&postCount).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to look up post", err)
	}
	if postCount == 0 {
		return nil, errors.New(errors.ErrNotFound, "Post not found")
	}

	comment := models.Comment{
		Content:   content,
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create comment", err)
	}

	s.engagement.Invalidate(context.Background(), postID)

	var author models.User
	if err := s.db.First(&author, userID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.ErrNotFound, "User not found")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load author", err)
	}

	return &CommentView{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		Author:    author.Public(),
	}, nil
}

func (s *commentService) GetCommentsForPost(postID uint, p Pagination) ([]CommentView, int64, error) {
	var total int64
	if err := s.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "failed to count comments", err)
	}

	var rows []struct {
		models.Comment
		Username string
		FullName string
		Avatar   string
	}
	err := s.db.Model(&models.Comment{}).
		Select("comments.*, users.username, users.full_name, users.avatar").
		Joins("JOIN users ON comments.user_id = users.id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at DESC").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "failed to list comments", err)
	}

	views := make([]CommentView, len(rows))
	for i, row := range rows {
		views[i] = CommentView{
			ID:        row.Comment.ID,
			Content:   row.Comment.Content,
			CreatedAt: row.Comment.CreatedAt,
			Author: models.PublicProfile{
				ID:       row.Comment.UserID,
				Username: row.Username,
				FullName: row.FullName,
				Avatar:   row.Avatar,
			},
		}
	}

	return views, total, nil
}

func (s *commentService) CommentCount(postID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, "failed to count comments", err)
	}
	return count, nil
}
