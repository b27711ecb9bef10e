package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bradleyburgess/diabeateeze/internal/export"
	"github.com/bradleyburgess/diabeateeze/internal/models"
	"github.com/bradleyburgess/diabeateeze/internal/service"
)

// GlucoseHandler serves the glucose reading endpoints.
type GlucoseHandler struct {
	glucoseService *service.GlucoseService
}

func NewGlucoseHandler(glucoseService *service.GlucoseService) *GlucoseHandler {
	return &GlucoseHandler{glucoseService: glucoseService}
}

func (h *GlucoseHandler) RegisterRoutes(router *gin.RouterGroup, write ...gin.HandlerFunc) {
	glucose := router.Group("/glucose")
	{
		glucose.GET("", h.List)
		glucose.POST("", chain(write, h.Create)...)
		glucose.PUT("/:id", chain(write, h.Update)...)
	}
}

type glucoseRequest struct {
	OccurredAt time.Time       `json:"occurred_at"`
	Value      decimal.Decimal `json:"value"`
	Unit       string          `json:"unit"`
	Notes      string          `json:"notes"`
}

func (r *glucoseRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if r.OccurredAt.IsZero() {
		errs.add("occurred_at", "this field is required")
	}
	if r.Value.LessThanOrEqual(decimal.Zero) {
		errs.add("value", "must be a positive number")
	}
	if r.Unit == "" {
		r.Unit = models.UnitMmolL
	} else if !models.ValidGlucoseUnit(r.Unit) {
		errs.add("unit", "must be mmol/L or mg/dL")
	}
	return errs
}

func (h *GlucoseHandler) List(c *gin.Context) {
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
		readings, err := h.glucoseService.Filtered(c.Request.Context(), opts.Range, opts.Sort)
		if err != nil {
			serviceError(c, err)
			return
		}
		writeDownload(c, export.NewGlucoseDataset(readings), f)
		return
	}

	readings, page, err := h.glucoseService.List(c.Request.Context(), opts)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"readings": readings, "pagination": page})
}

func (h *GlucoseHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req glucoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.validate().respond(c) {
		return
	}

	reading, err := h.glucoseService.Create(c.Request.Context(), userID, service.GlucoseParams{
		OccurredAt: req.OccurredAt,
		Value:      req.Value,
		Unit:       req.Unit,
		Notes:      req.Notes,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reading": reading})
}

func (h *GlucoseHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req glucoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.validate().respond(c) {
		return
	}

	reading, err := h.glucoseService.Update(c.Request.Context(), userID, id, service.GlucoseParams{
		OccurredAt: req.OccurredAt,
		Value:      req.Value,
		Unit:       req.Unit,
		Notes:      req.Notes,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reading": reading})
}
