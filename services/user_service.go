package services

import (
	stderrors "errors"
	"strings"
	"time"

	"github.com/mementogram/api-go/models"
	errors "github.com/mementogram/api-go/services/errors"
	"gorm.io/gorm"
)

// ProfileView is a public profile plus the counters profile pages show.
type ProfileView struct {
	models.PublicProfile
	Bio            string    `json:"bio"`
	CreatedAt      time.Time `json:"createdAt"`
	PostCount      int64     `json:"postCount"`
	FollowerCount  int64     `json:"followerCount"`
	FollowingCount int64     `json:"followingCount"`
	IsFollowing    bool      `json:"isFollowing"`
}

// ProfilePatch collects the present-only fields of a profile update.
type ProfilePatch struct {
	FullName *string
	Bio      *string
	Avatar   *string
}

func (p ProfilePatch) IsEmpty() bool {
	return p.FullName == nil && p.Bio == nil && p.Avatar == nil
}

type UserService interface {
	GetProfileByUsername(username string, viewerID uint) (*ProfileView, error)
	UpdateProfile(userID uint, patch ProfilePatch) (*models.User, error)
	SearchUsers(query string, p Pagination) ([]models.PublicProfile, int64, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) GetProfileByUsername(username string, viewerID uint) (*ProfileView, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.ErrNotFound, "User not found")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to look up user", err)
	}

	view := ProfileView{
		PublicProfile: user.Public(),
		Bio:           user.Bio,
		CreatedAt:     user.CreatedAt,
	}

	if err := s.db.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&view.PostCount).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to count posts", err)
	}
	if err := s.db.Model(&models.Follow{}).Where("following_id = ?", user.ID).Count(&view.FollowerCount).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to count followers", err)
	}
	if err := s.db.Model(&models.Follow{}).Where("follower_id = ?", user.ID).Count(&view.FollowingCount).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to count following", err)
	}

	if viewerID != 0 && viewerID != user.ID {
		var edgeCount int64
		if err := s.db.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ?", viewerID, user.ID).
			Count(&edgeCount).Error; err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "failed to check follow edge", err)
		}
		view.IsFollowing = edgeCount > 0
	}

	return &view, nil
}

func (s *userService) UpdateProfile(userID uint, patch ProfilePatch) (*models.User, error) {
	if patch.IsEmpty() {
		return nil, errors.New(errors.ErrInvalidInput, "Nothing to update")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.ErrNotFound, "User not found")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to look up user", err)
	}

	updates := make(map[string]interface{})
	if patch.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*patch.FullName)
	}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if patch.Avatar != nil {
		updates["avatar"] = *patch.Avatar
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update profile", err)
	}

	return &user, nil
}

func (s *userService) SearchUsers(query string, p Pagination) ([]models.PublicProfile, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, errors.New(errors.ErrInvalidInput, "Search query is required")
	}

	pattern := query + "%"
	base := s.db.Model(&models.User{}).Where("username ILIKE ? OR full_name ILIKE ?", pattern, pattern)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "failed to count users", err)
	}

	var profiles []models.PublicProfile
	err := s.db.Model(&models.User{}).
		Select("id, username, full_name, avatar").
		Where("username ILIKE ? OR full_name ILIKE ?", pattern, pattern).
		Order("username ASC").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "failed to search users", err)
	}

	return profiles, total, nil
}
