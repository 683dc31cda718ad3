package services

import (
	"github.com/mementogram/api-go/models"
	errors "github.com/mementogram/api-go/services/errors"
	"gorm.io/gorm"
)

// followCap bounds the author set of a single feed query.
const followCap = 1000

type FeedService interface {
	GetFeedForUser(userID uint, p Pagination) ([]PostView, int64, error)
}

type feedService struct {
	db      *gorm.DB
	follows FollowService
}

func NewFeedService(db *gorm.DB, follows FollowService) FeedService {
	return &feedService{db: db, follows: follows}
}

// GetFeedForUser resolves the author set ({user} plus everyone they follow),
// fetches one newest-first page of their posts joined with author fields and
// batch-enriches it with like/dislike/comment counts and the caller's votes.
func (s *feedService) GetFeedForUser(userID uint, p Pagination) ([]PostView, int64, error) {
	followingIDs, err := s.follows.FollowingIDs(userID, followCap)
	if err != nil {
		return nil, 0, err
	}

	// A user who follows nobody still sees their own posts.
	authorIDs := append(followingIDs, userID)

	var total int64
	if err := s.db.Model(&models.Post{}).Where("user_id IN ?", authorIDs).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "failed to count feed posts", err)
	}

	var rows []postRow
	err = s.db.Model(&models.Post{}).
		Select("posts.*, users.username, users.full_name, users.avatar").
		Joins("JOIN users ON posts.user_id = users.id").
		Where("posts.user_id IN ?", authorIDs).
		Order("posts.created_at DESC").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "failed to fetch feed", err)
	}

	views := make([]PostView, len(rows))
	for i := range rows {
		views[i] = rows[i].toView()
	}

	// Empty page short-circuits without issuing the batch queries.
	if len(views) == 0 {
		return views, total, nil
	}

	eng, err := fetchEngagement(s.db, postIDsOf(views), userID)
	if err != nil {
		return nil, 0, err
	}

	return mergeEngagement(views, eng), total, nil
}
