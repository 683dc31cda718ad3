package services

import (
	stderrors "errors"
	"time"

	"github.com/mementogram/api-go/models"
	errors "github.com/mementogram/api-go/services/errors"
	"gorm.io/gorm"
)

// FollowEntry is one row of a followers/following listing.
type FollowEntry struct {
	models.PublicProfile
	FollowedAt time.Time `json:"followedAt"`
}

type FollowService interface {
	FollowUser(followerID, followingID uint) error
	UnfollowUser(followerID, followingID uint) error
	GetFollowing(userID uint, p Pagination) ([]FollowEntry, int64, error)
	GetFollowers(userID uint, p Pagination) ([]FollowEntry, int64, error)
	FollowingIDs(userID uint, limit int) ([]uint, error)
}

type followService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) FollowService {
	return &followService{db: db}
}

func (s *followService) FollowUser(followerID, followingID uint) error {
	if followerID == followingID {
		return errors.New(errors.ErrInvalidInput, "Cannot follow yourself")
	}

	var target models.User
	if err := s.db.First(&target, followingID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New(errors.ErrNotFound, "User not found")
		}
		return errors.Wrap(errors.ErrDatabase, "failed to look up user", err)
	}

	var existing models.Follow
	err := s.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).First(&existing).Error
	if err == nil {
		return errors.New(errors.ErrDuplicate, "Already following this user")
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(errors.ErrDatabase, "failed to look up follow", err)
	}

	tx := s.db.Begin()

	follow := models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now(),
	}
	if err := tx.Create(&follow).Error; err != nil {
		tx.Rollback()
		// Concurrent duplicate inserts lose on the unique index.
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New(errors.ErrDuplicate, "Already following this user")
		}
		return errors.Wrap(errors.ErrDatabase, "failed to follow user", err)
	}

	activity := models.ActivityLog{
		UserID:    followerID,
		Activity:  "user_followed",
		CreatedAt: time.Now(),
	}
	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(errors.ErrDatabase, "failed to create activity log", err)
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to commit follow", err)
	}
	return nil
}

func (s *followService) UnfollowUser(followerID, followingID uint) error {
	tx := s.db.Begin()

	result := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if result.Error != nil {
		tx.Rollback()
		return errors.Wrap(errors.ErrDatabase, "failed to unfollow user", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return errors.New(errors.ErrNotFound, "Not following this user")
	}

	activity := models.ActivityLog{
		UserID:    followerID,
		Activity:  "user_unfollowed",
		CreatedAt: time.Now(),
	}
	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(errors.ErrDatabase, "failed to create activity log", err)
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to commit unfollow", err)
	}
	return nil
}

func (s *followService) GetFollowing(userID uint, p Pagination) ([]FollowEntry, int64, error) {
	return s.listEdges(userID, p, "follower_id", "following_id")
}

func (s *followService) GetFollowers(userID uint, p Pagination) ([]FollowEntry, int64, error) {
	return s.listEdges(userID, p, "following_id", "follower_id")
}

// listEdges lists the users on the far side of the follow edges touching
// userID: whereColumn scopes the query, joinColumn picks the other endpoint.
func (s *followService) listEdges(userID uint, p Pagination, whereColumn, joinColumn string) ([]FollowEntry, int64, error) {
	var total int64
	if err := s.db.Model(&models.Follow{}).Where(whereColumn+" = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "failed to count follows", err)
	}

	var entries []FollowEntry
	err := s.db.Model(&models.Follow{}).
		Select("users.id, users.username, users.full_name, users.avatar, follows.created_at as followed_at").
		Joins("JOIN users ON users.id = follows."+joinColumn).
		Where("follows."+whereColumn+" = ?", userID).
		Order("follows.created_at DESC").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "failed to list follows", err)
	}

	return entries, total, nil
}

// FollowingIDs returns the ids a user follows, capped to keep the feed's
// author set bounded.
func (s *followService) FollowingIDs(userID uint, limit int) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to list following ids", err)
	}
	return ids, nil
}
