package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/mementogram/api-go/cache"
	"github.com/mementogram/api-go/models"
	errors "github.com/mementogram/api-go/services/errors"
	"gorm.io/gorm"
)

// VoteResult is the outcome of a cast: the resulting status for the caller
// plus fresh counts for the post.
type VoteResult struct {
	Status       int   `json:"status"` // +1, -1 or 0
	LikeCount    int64 `json:"likeCount"`
	DislikeCount int64 `json:"dislikeCount"`
}

type VoteService interface {
	CastVote(userID, postID uint, desired int) (*VoteResult, error)
	VoteCounts(postID uint) (likes int64, dislikes int64, err error)
	UserVote(userID, postID uint) (int, error)
}

type voteService struct {
	db         *gorm.DB
	engagement *cache.EngagementCache
}

func NewVoteService(db *gorm.DB, engagement *cache.EngagementCache) VoteService {
	return &voteService{db: db, engagement: engagement}
}

// nextVoteStatus is the whole state machine over {none, liked, disliked}:
// casting the current vote again removes it, anything else lands on the
// desired vote directly.
func nextVoteStatus(current, desired int) int {
	if current == desired {
		return models.VoteNone
	}
	return desired
}

func (s *voteService) CastVote(userID, postID uint, desired int) (*VoteResult, error) {
	if desired != models.VoteLike && desired != models.VoteDislike {
		return nil, errors.New(errors.ErrInvalidInput, "vote must be a like or a dislike")
	}

	var postCount int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", postID).Count(&postCount).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to look up post", err)
	}
	if postCount == 0 {
		return nil, errors.New(errors.ErrNotFound, "Post not found")
	}

	var existing models.Vote
	current := models.VoteNone
	findErr := s.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
	if findErr == nil {
		current = existing.VoteType
	} else if !stderrors.Is(findErr, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to look up vote", findErr)
	}

	next := nextVoteStatus(current, desired)

	tx := s.db.Begin()

	switch {
	case next == models.VoteNone:
		// Toggle off: the row disappears, no zero row is ever stored.
		if err := tx.Delete(&existing).Error; err != nil {
			tx.Rollback()
			return nil, errors.Wrap(errors.ErrDatabase, "failed to remove vote", err)
		}
	case current == models.VoteNone:
		vote := models.Vote{
			UserID:    userID,
			PostID:    postID,
			VoteType:  desired,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&vote).Error; err != nil {
			tx.Rollback()
			return nil, errors.Wrap(errors.ErrDatabase, "failed to cast vote", err)
		}

		activity := models.ActivityLog{
			UserID:    userID,
			PostID:    postID,
			Activity:  voteActivity(desired),
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&activity).Error; err != nil {
			tx.Rollback()
			return nil, errors.Wrap(errors.ErrDatabase, "failed to create activity log", err)
		}
	default:
		// Opposite vote: switch in place, no intermediate none state.
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"vote_type":  desired,
			"updated_at": time.Now(),
		}).Error; err != nil {
			tx.Rollback()
			return nil, errors.Wrap(errors.ErrDatabase, "failed to switch vote", err)
		}

		activity := models.ActivityLog{
			UserID:    userID,
			PostID:    postID,
			Activity:  voteActivity(desired),
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&activity).Error; err != nil {
			tx.Rollback()
			return nil, errors.Wrap(errors.ErrDatabase, "failed to create activity log", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to commit vote", err)
	}

	s.engagement.Invalidate(context.Background(), postID)

	likes, dislikes, err := s.VoteCounts(postID)
	if err != nil {
		return nil, err
	}

	return &VoteResult{Status: next, LikeCount: likes, DislikeCount: dislikes}, nil
}

func (s *voteService) VoteCounts(postID uint) (int64, int64, error) {
	var rows []voteCountRow
	if err := s.db.Model(&models.Vote{}).
		Select("vote_type, COUNT(*) as count").
		Where("post_id = ?", postID).
		Group("vote_type").
		Find(&rows).Error; err != nil {
		return 0, 0, errors.Wrap(errors.ErrDatabase, "failed to count votes", err)
	}

	var likes, dislikes int64
	for _, row := range rows {
		switch row.VoteType {
		case models.VoteLike:
			likes = row.Count
		case models.VoteDislike:
			dislikes = row.Count
		}
	}
	return likes, dislikes, nil
}

// UserVote returns the stored vote for a (user, post) pair. userID 0 means
// anonymous and always reads as no vote.
func (s *voteService) UserVote(userID, postID uint) (int, error) {
	if userID == 0 {
		return models.VoteNone, nil
	}

	var vote models.Vote
	err := s.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&vote).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return models.VoteNone, nil
	}
	if err != nil {
		return models.VoteNone, errors.Wrap(errors.ErrDatabase, "failed to look up vote", err)
	}
	return vote.VoteType, nil
}

type voteCountRow struct {
	VoteType int
	Count    int64
}

func voteActivity(voteType int) string {
	if voteType == models.VoteDislike {
		return "post_disliked"
	}
	return "post_liked"
}
