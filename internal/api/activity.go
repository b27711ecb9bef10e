package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bradleyburgess/diabeateeze/internal/export"
	"github.com/bradleyburgess/diabeateeze/internal/service"
)

// ActivityHandler serves the combined feed and the dashboard.
type ActivityHandler struct {
	activityService *service.ActivityService
	insulinService  *service.InsulinService
	scaleService    *service.ScaleService
}

func NewActivityHandler(activityService *service.ActivityService, insulinService *service.InsulinService, scaleService *service.ScaleService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		insulinService:  insulinService,
		scaleService:    scaleService,
	}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/activity", h.Activity)
	router.GET("/dashboard", h.Dashboard)
}

// Activity returns the combined, chronologically sorted feed, or a file
// download when the export parameter is present.
func (h *ActivityHandler) Activity(c *gin.Context) {
	opts, ok := parseListOptions(c)
	if !ok {
		return
	}

	if format := c.Query("export"); format != "" {
		f, err := export.ParseFormat(format)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		readings, doses, meals, err := h.activityService.Records(c.Request.Context(), opts.Range)
		if err != nil {
			serviceError(c, err)
			return
		}
		dataset, err := export.ForKind(c.DefaultQuery("export_type", "glucose"), readings, doses, meals)
		if err != nil {
			if errors.Is(err, export.ErrUnsupportedKind) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			serviceError(c, err)
			return
		}
		writeDownload(c, dataset, f)
		return
	}

	entries, page, err := h.activityService.Feed(c.Request.Context(), opts.Range, opts.Page, opts.PageSize)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "pagination": page})
}

const dashboardRecentEntries = 10

// Dashboard returns the recent combined entries plus the reference tables.
func (h *ActivityHandler) Dashboard(c *gin.Context) {
	entries, err := h.activityService.Recent(c.Request.Context(), dashboardRecentEntries)
	if err != nil {
		serviceError(c, err)
		return
	}
	schedules, err := h.insulinService.ListSchedules(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	scales, err := h.scaleService.ListAll(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	defaultType, err := h.insulinService.DefaultType(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recent_entries":       entries,
		"insulin_schedules":    schedules,
		"correction_scales":    scales,
		"default_insulin_type": defaultType,
	})
}
