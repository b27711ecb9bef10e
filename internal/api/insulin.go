package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bradleyburgess/diabeateeze/internal/export"
	"github.com/bradleyburgess/diabeateeze/internal/models"
	"github.com/bradleyburgess/diabeateeze/internal/service"
)

// InsulinHandler serves insulin doses, insulin types and schedules.
type InsulinHandler struct {
	insulinService *service.InsulinService
}

func NewInsulinHandler(insulinService *service.InsulinService) *InsulinHandler {
	return &InsulinHandler{insulinService: insulinService}
}

func (h *InsulinHandler) RegisterRoutes(router *gin.RouterGroup, write ...gin.HandlerFunc) {
	doses := router.Group("/doses")
	{
		doses.GET("", h.ListDoses)
		doses.POST("", chain(write, h.CreateDose)...)
		doses.PUT("/:id", chain(write, h.UpdateDose)...)
	}

	types := router.Group("/insulin-types")
	{
		types.GET("", h.ListTypes)
		types.POST("", h.CreateType)
		types.PUT("/:id", h.UpdateType)
		types.DELETE("/:id", h.DeleteType)
	}

	schedules := router.Group("/schedules")
	{
		schedules.GET("", h.ListSchedules)
		schedules.POST("", h.CreateSchedule)
		schedules.PUT("/:id", h.UpdateSchedule)
		schedules.DELETE("/:id", h.DeleteSchedule)
	}
}

type doseRequest struct {
	OccurredAt      time.Time       `json:"occurred_at"`
	BaseUnits       decimal.Decimal `json:"base_units"`
	CorrectionUnits decimal.Decimal `json:"correction_units"`
	InsulinTypeID   uuid.UUID       `json:"insulin_type_id"`
	Notes           string          `json:"notes"`
}

func (r *doseRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if r.OccurredAt.IsZero() {
		errs.add("occurred_at", "this field is required")
	}
	if r.BaseUnits.IsNegative() {
		errs.add("base_units", "must not be negative")
	}
	if r.CorrectionUnits.IsNegative() {
		errs.add("correction_units", "must not be negative")
	}
	if r.InsulinTypeID == uuid.Nil {
		errs.add("insulin_type_id", "this field is required")
	}
	return errs
}

func (h *InsulinHandler) ListDoses(c *gin.Context) {
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
		doses, err := h.insulinService.FilteredDoses(c.Request.Context(), opts.Range, opts.Sort)
		if err != nil {
			serviceError(c, err)
			return
		}
		writeDownload(c, export.NewDoseDataset(doses), f)
		return
	}

	doses, page, err := h.insulinService.ListDoses(c.Request.Context(), opts)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doses": doses, "pagination": page})
}

func (h *InsulinHandler) CreateDose(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req doseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.validate().respond(c) {
		return
	}

	dose, err := h.insulinService.CreateDose(c.Request.Context(), userID, service.DoseParams{
		OccurredAt:      req.OccurredAt,
		BaseUnits:       req.BaseUnits,
		CorrectionUnits: req.CorrectionUnits,
		InsulinTypeID:   req.InsulinTypeID,
		Notes:           req.Notes,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"dose": dose})
}

func (h *InsulinHandler) UpdateDose(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req doseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.validate().respond(c) {
		return
	}

	dose, err := h.insulinService.UpdateDose(c.Request.Context(), userID, id, service.DoseParams{
		OccurredAt:      req.OccurredAt,
		BaseUnits:       req.BaseUnits,
		CorrectionUnits: req.CorrectionUnits,
		InsulinTypeID:   req.InsulinTypeID,
		Notes:           req.Notes,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dose": dose})
}

type insulinTypeRequest struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Notes     string `json:"notes"`
	IsDefault bool   `json:"is_default"`
}

func (r *insulinTypeRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if r.Name == "" {
		errs.add("name", "this field is required")
	}
	if r.Category == "" {
		r.Category = models.InsulinCategoryRapid
	} else if !models.ValidInsulinCategory(r.Category) {
		errs.add("category", "unknown insulin category")
	}
	return errs
}

func (h *InsulinHandler) ListTypes(c *gin.Context) {
	types, err := h.insulinService.ListTypes(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insulin_types": types})
}

func (h *InsulinHandler) CreateType(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req insulinTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.validate().respond(c) {
		return
	}

	t, err := h.insulinService.CreateType(c.Request.Context(), userID, service.InsulinTypeParams{
		Name:      req.Name,
		Category:  req.Category,
		Notes:     req.Notes,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insulin_type": t})
}

func (h *InsulinHandler) UpdateType(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req insulinTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.validate().respond(c) {
		return
	}

	t, err := h.insulinService.UpdateType(c.Request.Context(), userID, id, service.InsulinTypeParams{
		Name:      req.Name,
		Category:  req.Category,
		Notes:     req.Notes,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insulin_type": t})
}

func (h *InsulinHandler) DeleteType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.insulinService.DeleteType(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type scheduleRequest struct {
	Label         string          `json:"label"`
	TimeOfDay     string          `json:"time_of_day"`
	InsulinTypeID uuid.UUID       `json:"insulin_type_id"`
	Units         decimal.Decimal `json:"units"`
	Notes         string          `json:"notes"`
}

func (r *scheduleRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if r.Label == "" {
		errs.add("label", "this field is required")
	}
	if !models.ValidTimeOfDay(r.TimeOfDay) {
		errs.add("time_of_day", "must be a zero-padded HH:MM time")
	}
	if r.InsulinTypeID == uuid.Nil {
		errs.add("insulin_type_id", "this field is required")
	}
	if r.Units.LessThanOrEqual(decimal.Zero) {
		errs.add("units", "must be a positive number")
	}
	return errs
}

func (h *InsulinHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.insulinService.ListSchedules(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

func (h *InsulinHandler) CreateSchedule(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.validate().respond(c) {
		return
	}

	sched, err := h.insulinService.CreateSchedule(c.Request.Context(), userID, service.ScheduleParams{
		Label:         req.Label,
		TimeOfDay:     req.TimeOfDay,
		InsulinTypeID: req.InsulinTypeID,
		Units:         req.Units,
		Notes:         req.Notes,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"schedule": sched})
}

func (h *InsulinHandler) UpdateSchedule(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.validate().respond(c) {
		return
	}

	sched, err := h.insulinService.UpdateSchedule(c.Request.Context(), userID, id, service.ScheduleParams{
		Label:         req.Label,
		TimeOfDay:     req.TimeOfDay,
		InsulinTypeID: req.InsulinTypeID,
		Units:         req.Units,
		Notes:         req.Notes,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": sched})
}

func (h *InsulinHandler) DeleteSchedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.insulinService.DeleteSchedule(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
