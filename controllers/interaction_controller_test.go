package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mementogram/api-go/models"
	"github.com/mementogram/api-go/services"
	errors "github.com/mementogram/api-go/services/errors"
	"github.com/mementogram/api-go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockVoteService is a mock implementation of services.VoteService
type MockVoteService struct {
	mock.Mock
}

func (m *MockVoteService) CastVote(userID, postID uint, desired int) (*services.VoteResult, error) {
	args := m.Called(userID, postID, desired)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.VoteResult), args.Error(1)
}

func (m *MockVoteService) VoteCounts(postID uint) (int64, int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockVoteService) UserVote(userID, postID uint) (int, error) {
	args := m.Called(userID, postID)
	return args.Int(0), args.Error(1)
}

var _ services.VoteService = (*MockVoteService)(nil)

// MockFollowService is a mock implementation of services.FollowService
type MockFollowService struct {
	mock.Mock
}

func (m *MockFollowService) FollowUser(followerID, followingID uint) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowService) UnfollowUser(followerID, followingID uint) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowService) GetFollowing(userID uint, p services.Pagination) ([]services.FollowEntry, int64, error) {
	args := m.Called(userID, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]services.FollowEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockFollowService) GetFollowers(userID uint, p services.Pagination) ([]services.FollowEntry, int64, error) {
	args := m.Called(userID, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]services.FollowEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockFollowService) FollowingIDs(userID uint, limit int) ([]uint, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

var _ services.FollowService = (*MockFollowService)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func asUser(userID uint, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(utils.UserContextKey), &utils.UserClaims{UserID: userID, Role: "user"})
		handler(c)
	}
}

func TestLikePost_TogglesOn(t *testing.T) {
	votes := new(MockVoteService)
	follows := new(MockFollowService)
	handler := NewInteractionController(votes, follows)

	router := setupTestRouter()
	router.POST("/posts/:id/like", asUser(3, handler.LikePost))

	votes.On("CastVote", uint(3), uint(10), models.VoteLike).
		Return(&services.VoteResult{Status: models.VoteLike, LikeCount: 1}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/10/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response StandardResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["status"])
	assert.Equal(t, float64(1), data["likeCount"])

	votes.AssertExpectations(t)
}

func TestDislikePost_SwitchesFromLike(t *testing.T) {
	votes := new(MockVoteService)
	follows := new(MockFollowService)
	handler := NewInteractionController(votes, follows)

	router := setupTestRouter()
	router.POST("/posts/:id/dislike", asUser(3, handler.DislikePost))

	votes.On("CastVote", uint(3), uint(10), models.VoteDislike).
		Return(&services.VoteResult{Status: models.VoteDislike, DislikeCount: 1}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/10/dislike", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response StandardResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response.Data.(map[string]interface{})
	assert.Equal(t, float64(-1), data["status"])

	votes.AssertExpectations(t)
}

func TestLikePost_MissingPost(t *testing.T) {
	votes := new(MockVoteService)
	follows := new(MockFollowService)
	handler := NewInteractionController(votes, follows)

	router := setupTestRouter()
	router.POST("/posts/:id/like", asUser(3, handler.LikePost))

	votes.On("CastVote", uint(3), uint(99), models.VoteLike).
		Return(nil, errors.New(errors.ErrNotFound, "Post not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/99/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	votes.AssertExpectations(t)
}

func TestLikePost_MalformedID(t *testing.T) {
	votes := new(MockVoteService)
	follows := new(MockFollowService)
	handler := NewInteractionController(votes, follows)

	router := setupTestRouter()
	router.POST("/posts/:id/like", asUser(3, handler.LikePost))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/abc/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	votes.AssertNotCalled(t, "CastVote")
}

func TestLikePost_NoClaims(t *testing.T) {
	votes := new(MockVoteService)
	follows := new(MockFollowService)
	handler := NewInteractionController(votes, follows)

	router := setupTestRouter()
	router.POST("/posts/:id/like", handler.LikePost)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/10/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	votes.AssertNotCalled(t, "CastVote")
}

func TestFollowUser_Success(t *testing.T) {
	votes := new(MockVoteService)
	follows := new(MockFollowService)
	handler := NewInteractionController(votes, follows)

	router := setupTestRouter()
	router.POST("/users/:userId/follow", asUser(1, handler.FollowUser))

	follows.On("FollowUser", uint(1), uint(2)).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/2/follow", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	follows.AssertExpectations(t)
}

func TestFollowUser_DuplicateEdgeConflicts(t *testing.T) {
	votes := new(MockVoteService)
	follows := new(MockFollowService)
	handler := NewInteractionController(votes, follows)

	router := setupTestRouter()
	router.POST("/users/:userId/follow", asUser(1, handler.FollowUser))

	follows.On("FollowUser", uint(1), uint(2)).
		Return(errors.New(errors.ErrDuplicate, "Already following this user"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/2/follow", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	follows.AssertExpectations(t)
}

func TestFollowUser_SelfFollowRejected(t *testing.T) {
	votes := new(MockVoteService)
	follows := new(MockFollowService)
	handler := NewInteractionController(votes, follows)

	router := setupTestRouter()
	router.POST("/users/:userId/follow", asUser(1, handler.FollowUser))

	follows.On("FollowUser", uint(1), uint(1)).
		Return(errors.New(errors.ErrInvalidInput, "Cannot follow yourself"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/1/follow", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	follows.AssertExpectations(t)
}

func TestUnfollowUser_MissingEdge(t *testing.T) {
	votes := new(MockVoteService)
	follows := new(MockFollowService)
	handler := NewInteractionController(votes, follows)

	router := setupTestRouter()
	router.DELETE("/users/:userId/follow", asUser(1, handler.UnfollowUser))

	follows.On("UnfollowUser", uint(1), uint(2)).
		Return(errors.New(errors.ErrNotFound, "Not following this user"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/users/2/follow", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	follows.AssertExpectations(t)
}

func TestGetUserFollowers_Paginates(t *testing.T) {
	votes := new(MockVoteService)
	follows := new(MockFollowService)
	handler := NewInteractionController(votes, follows)

	router := setupTestRouter()
	router.GET("/users/:userId/followers", handler.GetUserFollowers)

	entries := []services.FollowEntry{
		{PublicProfile: models.PublicProfile{ID: 5, Username: "zadie"}},
	}
	follows.On("GetFollowers", uint(2), services.Pagination{Limit: 20, Offset: 0}).
		Return(entries, int64(1), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/2/followers", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response StandardResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(1), response.Pagination.TotalItems)
	assert.Equal(t, 20, response.Pagination.Limit)

	follows.AssertExpectations(t)
}
