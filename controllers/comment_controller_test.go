package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mementogram/api-go/models"
	"github.com/mementogram/api-go/services"
	errors "github.com/mementogram/api-go/services/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCommentService is a mock implementation of services.CommentService
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(userID, postID uint, content string) (*services.CommentView, error) {
	args := m.Called(userID, postID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CommentView), args.Error(1)
}

func (m *MockCommentService) GetCommentsForPost(postID uint, p services.Pagination) ([]services.CommentView, int64, error) {
	args := m.Called(postID, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]services.CommentView), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentService) CommentCount(postID uint) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

var _ services.CommentService = (*MockCommentService)(nil)

func TestCreateComment_Success(t *testing.T) {
	comments := new(MockCommentService)
	handler := NewCommentController(comments)

	router := setupTestRouter()
	router.POST("/posts/:id/comments", asUser(4, handler.CreateComment))

	comments.On("CreateComment", uint(4), uint(7), "Nice shot!").
		Return(&services.CommentView{
			ID:      1,
			Content: "Nice shot!",
			Author:  models.PublicProfile{ID: 4, Username: "mira"},
		}, nil)

	body, _ := json.Marshal(map[string]string{"content": "Nice shot!"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/7/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response StandardResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response.Data.(map[string]interface{})
	assert.Equal(t, "Nice shot!", data["content"])
	author := data["author"].(map[string]interface{})
	assert.Equal(t, "mira", author["username"])

	comments.AssertExpectations(t)
}

func TestCreateComment_BlankContentRejected(t *testing.T) {
	comments := new(MockCommentService)
	handler := NewCommentController(comments)

	router := setupTestRouter()
	router.POST("/posts/:id/comments", asUser(4, handler.CreateComment))

	comments.On("CreateComment", uint(4), uint(7), "   ").
		Return(nil, errors.New(errors.ErrInvalidInput, "Comment content cannot be empty"))

	body, _ := json.Marshal(map[string]string{"content": "   "})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/7/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	comments.AssertExpectations(t)
}

func TestCreateComment_MissingContentField(t *testing.T) {
	comments := new(MockCommentService)
	handler := NewCommentController(comments)

	router := setupTestRouter()
	router.POST("/posts/:id/comments", asUser(4, handler.CreateComment))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/7/comments", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	comments.AssertNotCalled(t, "CreateComment")
}

func TestCreateComment_MissingPost(t *testing.T) {
	comments := new(MockCommentService)
	handler := NewCommentController(comments)

	router := setupTestRouter()
	router.POST("/posts/:id/comments", asUser(4, handler.CreateComment))

	comments.On("CreateComment", uint(4), uint(99), "hello").
		Return(nil, errors.New(errors.ErrNotFound, "Post not found"))

	body, _ := json.Marshal(map[string]string{"content": "hello"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/99/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	comments.AssertExpectations(t)
}

func TestGetPostComments_Paginates(t *testing.T) {
	comments := new(MockCommentService)
	handler := NewCommentController(comments)

	router := setupTestRouter()
	router.GET("/posts/:id/comments", handler.GetPostComments)

	views := []services.CommentView{
		{ID: 2, Content: "second"},
		{ID: 1, Content: "first"},
	}
	comments.On("GetCommentsForPost", uint(7), services.Pagination{Limit: 10, Offset: 0}).
		Return(views, int64(2), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/7/comments?limit=10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response StandardResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(2), response.Pagination.TotalItems)
	assert.Equal(t, 10, response.Pagination.Limit)

	comments.AssertExpectations(t)
}
