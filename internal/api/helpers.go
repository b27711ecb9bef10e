package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bradleyburgess/diabeateeze/internal/export"
	"github.com/bradleyburgess/diabeateeze/internal/query"
	"github.com/bradleyburgess/diabeateeze/internal/service"
)

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	return userID, true
}

// parseListOptions resolves the shared list query parameters. Malformed
// dates are a usage error and abort the request with 400.
func parseListOptions(c *gin.Context) (service.ListOptions, bool) {
	r, err := query.ParseRange(
		c.Query("start_date"),
		c.Query("end_date"),
		c.Query("filter"),
		time.Now(),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.ListOptions{}, false
	}

	return service.ListOptions{
		Range:    r,
		Sort:     query.NormalizeSort(c.Query("sort")),
		Page:     parsePage(c),
		PageSize: query.NormalizePageSize(c.DefaultQuery("page_size", "50")),
	}, true
}

// parsePage reads the 1-based page parameter, treating anything that is not
// a whole integer as page 1.
func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

// writeDownload renders a dataset as a file attachment.
func writeDownload(c *gin.Context, d export.Dataset, f export.Format) {
	var buf bytes.Buffer
	if err := export.Write(&buf, d, f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(d, f, time.Now())))
	c.Data(http.StatusOK, export.ContentType(f), buf.Bytes())
}

// serviceError maps service-layer errors to HTTP responses.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, service.ErrInsulinTypeInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "cannot delete: insulin type is in use by existing doses"})
	case errors.Is(err, service.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": "name already in use"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// fieldErrors collects per-field validation messages.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	f[field] = msg
}

func (f fieldErrors) respond(c *gin.Context) bool {
	if len(f) == 0 {
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": f})
	return true
}

// chain prepends write middleware (e.g. the rate limiter) to a handler.
func chain(mw []gin.HandlerFunc, final gin.HandlerFunc) []gin.HandlerFunc {
	handlers := make([]gin.HandlerFunc, 0, len(mw)+1)
	handlers = append(handlers, mw...)
	return append(handlers, final)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return uuid.Nil, false
	}
	return id, true
}
