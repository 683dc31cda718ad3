package services

import (
	"time"

	"github.com/mementogram/api-go/models"
	errors "github.com/mementogram/api-go/services/errors"
	"gorm.io/gorm"
)

// PostView is the enriched post shape every read path returns: post fields,
// the author's public profile and the engagement numbers for the viewer.
type PostView struct {
	ID              uint                 `json:"id"`
	Content         string               `json:"content"`
	ImageURLs       []string             `json:"imageUrls"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
	Author          models.PublicProfile `json:"author"`
	LikeCount       int64                `json:"likeCount"`
	DislikeCount    int64                `json:"dislikeCount"`
	CommentCount    int64                `json:"commentCount"`
	CurrentUserVote int                  `json:"currentUserVote"`
}

// engagement holds the batch lookup results for one page of posts, keyed by
// post id. Absent keys mean zero.
type engagement struct {
	likeCounts    map[uint]int64
	dislikeCounts map[uint]int64
	commentCounts map[uint]int64
	viewerVotes   map[uint]int
}

type countRow struct {
	PostID uint
	Count  int64
}

type voteRow struct {
	PostID   uint
	VoteType int
}

// fetchEngagement runs one aggregate query per concern, each keyed by the
// page's post ids, instead of a query per post. viewerID 0 means anonymous;
// the vote lookup is skipped entirely.
func fetchEngagement(db *gorm.DB, postIDs []uint, viewerID uint) (*engagement, error) {
	eng := &engagement{
		likeCounts:    make(map[uint]int64),
		dislikeCounts: make(map[uint]int64),
		commentCounts: make(map[uint]int64),
		viewerVotes:   make(map[uint]int),
	}
	if len(postIDs) == 0 {
		return eng, nil
	}

	var likeRows []countRow
	if err := db.Model(&models.Vote{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ? AND vote_type = ?", postIDs, models.VoteLike).
		Group("post_id").
		Find(&likeRows).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to fetch like counts", err)
	}
	for _, row := range likeRows {
		eng.likeCounts[row.PostID] = row.Count
	}

	var dislikeRows []countRow
	if err := db.Model(&models.Vote{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ? AND vote_type = ?", postIDs, models.VoteDislike).
		Group("post_id").
		Find(&dislikeRows).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to fetch dislike counts", err)
	}
	for _, row := range dislikeRows {
		eng.dislikeCounts[row.PostID] = row.Count
	}

	var commentRows []countRow
	if err := db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Find(&commentRows).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to fetch comment counts", err)
	}
	for _, row := range commentRows {
		eng.commentCounts[row.PostID] = row.Count
	}

	if viewerID != 0 {
		var voteRows []voteRow
		if err := db.Model(&models.Vote{}).
			Select("post_id, vote_type").
			Where("post_id IN ? AND user_id = ?", postIDs, viewerID).
			Find(&voteRows).Error; err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "failed to fetch viewer votes", err)
		}
		for _, row := range voteRows {
			eng.viewerVotes[row.PostID] = row.VoteType
		}
	}

	return eng, nil
}

// mergeEngagement fills the count and vote fields of each view from the batch
// lookup maps. Posts without entries keep their zero values.
func mergeEngagement(views []PostView, eng *engagement) []PostView {
	for i := range views {
		id := views[i].ID
		views[i].LikeCount = eng.likeCounts[id]
		views[i].DislikeCount = eng.dislikeCounts[id]
		views[i].CommentCount = eng.commentCounts[id]
		views[i].CurrentUserVote = eng.viewerVotes[id]
	}
	return views
}

// postRow is the scan target for post pages joined with author fields.
type postRow struct {
	models.Post
	Username string
	FullName string
	Avatar   string
}

func (r *postRow) toView() PostView {
	return PostView{
		ID:        r.Post.ID,
		Content:   r.Post.Content,
		ImageURLs: r.Post.ImageURLs,
		CreatedAt: r.Post.CreatedAt,
		UpdatedAt: r.Post.UpdatedAt,
		Author: models.PublicProfile{
			ID:       r.Post.UserID,
			Username: r.Username,
			FullName: r.FullName,
			Avatar:   r.Avatar,
		},
	}
}

func postIDsOf(views []PostView) []uint {
	ids := make([]uint, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	return ids
}
