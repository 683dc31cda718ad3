package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mementogram/api-go/services"
	errors "github.com/mementogram/api-go/services/errors"
	"github.com/mementogram/api-go/utils"
)

type StandardResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Meta       interface{}     `json:"meta,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Message    string          `json:"message,omitempty"`
}

type PaginationMeta struct {
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalItems int64 `json:"totalItems"`
}

func paginationMeta(p services.Pagination, total int64) *PaginationMeta {
	return &PaginationMeta{Limit: p.Limit, Offset: p.Offset, TotalItems: total}
}

// bindPagination reads limit/offset query params (default 20/0) and
// normalizes them.
func bindPagination(c *gin.Context) services.Pagination {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultLimit)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return services.NormalizePagination(limit, offset)
}

// requireUser returns the caller's claims, writing a 401 when the request
// reached a handler without them.
func requireUser(c *gin.Context) (*utils.UserClaims, bool) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return nil, false
	}
	return user, true
}

// respondError maps a service error code to an HTTP status. Anything
// unrecognized is logged and surfaced as a bare 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch errors.GetErrorCode(err) {
	case errors.ErrNotFound:
		status = http.StatusNotFound
	case errors.ErrDuplicate:
		status = http.StatusConflict
	case errors.ErrInvalidInput:
		status = http.StatusBadRequest
	case errors.ErrUnauthorized:
		status = http.StatusUnauthorized
	case errors.ErrForbidden:
		status = http.StatusForbidden
	default:
		log.Printf("unhandled service error: %v", err)
	}

	c.JSON(status, gin.H{"error": errors.GetMessage(err), "success": false})
}
