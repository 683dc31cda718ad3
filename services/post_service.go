package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/mementogram/api-go/cache"
	"github.com/mementogram/api-go/models"
	errors "github.com/mementogram/api-go/services/errors"
	"gorm.io/gorm"
)

const maxPostImages = 10

// PostPatch collects the present-only fields of a partial update. An empty
// patch is rejected before any query is issued.
type PostPatch struct {
	Content   *string
	ImageURLs *[]string
}

func (p PostPatch) IsEmpty() bool {
	return p.Content == nil && p.ImageURLs == nil
}

type PostService interface {
	CreatePost(userID uint, content string, imageURLs []string) (*PostView, error)
	FindPostByID(postID, viewerID uint) (*PostView, error)
	FindAllPosts(viewerID uint, p Pagination) ([]PostView, int64, error)
	FindPostsByUser(authorID, viewerID uint, p Pagination) ([]PostView, int64, error)
	UpdatePost(postID, userID uint, patch PostPatch) (*PostView, error)
	DeletePost(postID, userID uint) error
}

type postService struct {
	db         *gorm.DB
	engagement *cache.EngagementCache
}

func NewPostService(db *gorm.DB, engagement *cache.EngagementCache) PostService {
	return &postService{db: db, engagement: engagement}
}

func (s *postService) CreatePost(userID uint, content string, imageURLs []string) (*PostView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New(errors.ErrInvalidInput, "Post content cannot be empty")
	}
	if len(imageURLs) > maxPostImages {
		return nil, errors.New(errors.ErrInvalidInput, "Too many images for one post")
	}

	tx := s.db.Begin()

	post := models.Post{
		Content:   content,
		ImageURLs: pq.StringArray(imageURLs),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := tx.Create(&post).Error; err != nil {
		tx.Rollback()
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create post", err)
	}

	activity := models.ActivityLog{
		UserID:    userID,
		PostID:    post.ID,
		Activity:  "post_created",
		CreatedAt: time.Now(),
	}
	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create activity log", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to commit post", err)
	}

	return s.FindPostByID(post.ID, userID)
}

func (s *postService) FindPostByID(postID, viewerID uint) (*PostView, error) {
	var row postRow
	err := s.db.Model(&models.Post{}).
		Select("posts.*, users.username, users.full_name, users.avatar").
		Joins("JOIN users ON posts.user_id = users.id").
		Where("posts.id = ?", postID).
		First(&row).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.ErrNotFound, "Post not found")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load post", err)
	}

	view := row.toView()

	ctx := context.Background()
	if counts, ok := s.engagement.Get(ctx, postID); ok {
		view.LikeCount = counts.LikeCount
		view.DislikeCount = counts.DislikeCount
		view.CommentCount = counts.CommentCount
	} else {
		eng, err := fetchEngagement(s.db, []uint{postID}, 0)
		if err != nil {
			return nil, err
		}
		view.LikeCount = eng.likeCounts[postID]
		view.DislikeCount = eng.dislikeCounts[postID]
		view.CommentCount = eng.commentCounts[postID]
		s.engagement.Set(ctx, postID, cache.EngagementCounts{
			LikeCount:    view.LikeCount,
			DislikeCount: view.DislikeCount,
			CommentCount: view.CommentCount,
		})
	}

	if viewerID != 0 {
		var vote models.Vote
		if err := s.db.Where("post_id = ? AND user_id = ?", postID, viewerID).First(&vote).Error; err == nil {
			view.CurrentUserVote = vote.VoteType
		}
	}

	return &view, nil
}

func (s *postService) FindAllPosts(viewerID uint, p Pagination) ([]PostView, int64, error) {
	return s.findPage(viewerID, p, func(db *gorm.DB) *gorm.DB { return db })
}

func (s *postService) FindPostsByUser(authorID, viewerID uint, p Pagination) ([]PostView, int64, error) {
	return s.findPage(viewerID, p, func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.user_id = ?", authorID)
	})
}

// findPage fetches one newest-first page of posts with author fields, then
// batch-enriches it keyed by the page's post ids. An empty page returns
// without issuing the batch queries.
func (s *postService) findPage(viewerID uint, p Pagination, scope func(*gorm.DB) *gorm.DB) ([]PostView, int64, error) {
	var total int64
	if err := scope(s.db.Model(&models.Post{})).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "failed to count posts", err)
	}

	var rows []postRow
	err := scope(s.db.Model(&models.Post{})).
		Select("posts.*, users.username, users.full_name, users.avatar").
		Joins("JOIN users ON posts.user_id = users.id").
		Order("posts.created_at DESC").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "failed to list posts", err)
	}

	views := make([]PostView, len(rows))
	for i := range rows {
		views[i] = rows[i].toView()
	}
	if len(views) == 0 {
		return views, total, nil
	}

	eng, err := fetchEngagement(s.db, postIDsOf(views), viewerID)
	if err != nil {
		return nil, 0, err
	}

	return mergeEngagement(views, eng), total, nil
}

func (s *postService) UpdatePost(postID, userID uint, patch PostPatch) (*PostView, error) {
	if patch.IsEmpty() {
		return nil, errors.New(errors.ErrInvalidInput, "Nothing to update")
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if patch.Content != nil {
		content := strings.TrimSpace(*patch.Content)
		if content == "" {
			return nil, errors.New(errors.ErrInvalidInput, "Post content cannot be empty")
		}
		updates["content"] = content
	}
	if patch.ImageURLs != nil {
		if len(*patch.ImageURLs) > maxPostImages {
			return nil, errors.New(errors.ErrInvalidInput, "Too many images for one post")
		}
		updates["image_urls"] = pq.StringArray(*patch.ImageURLs)
	}

	// Conditional write scoped by (id, owner); zero rows affected is followed
	// by an existence probe to tell a missing post from someone else's.
	result := s.db.Model(&models.Post{}).
		Where("id = ? AND user_id = ?", postID, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update post", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, s.ownershipError(postID)
	}

	return s.FindPostByID(postID, userID)
}

func (s *postService) DeletePost(postID, userID uint) error {
	tx := s.db.Begin()

	result := tx.Where("id = ? AND user_id = ?", postID, userID).Delete(&models.Post{})
	if result.Error != nil {
		tx.Rollback()
		return errors.Wrap(errors.ErrDatabase, "failed to delete post", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return s.ownershipError(postID)
	}

	if err := tx.Where("post_id = ?", postID).Delete(&models.Vote{}).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(errors.ErrDatabase, "failed to delete votes", err)
	}
	if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(errors.ErrDatabase, "failed to delete comments", err)
	}

	activity := models.ActivityLog{
		UserID:    userID,
		Activity:  "post_deleted",
		CreatedAt: time.Now(),
	}
	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(errors.ErrDatabase, "failed to create activity log", err)
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to commit delete", err)
	}

	s.engagement.Invalidate(context.Background(), postID)
	return nil
}

// ownershipError disambiguates a zero-row conditional write: a missing post
// is NotFound, an existing post under another owner is Forbidden.
func (s *postService) ownershipError(postID uint) error {
	var count int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to look up post", err)
	}
	if count == 0 {
		return errors.New(errors.ErrNotFound, "Post not found")
	}
	return errors.New(errors.ErrForbidden, "You can only modify your own posts")
}
