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

// MealHandler serves the meal endpoints.
type MealHandler struct {
	mealService *service.MealService
}

func NewMealHandler(mealService *service.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup, write ...gin.HandlerFunc) {
	meals := router.Group("/meals")
	{
		meals.GET("", h.List)
		meals.POST("", chain(write, h.Create)...)
		meals.PUT("/:id", chain(write, h.Update)...)
	}
}

type mealRequest struct {
	OccurredAt  time.Time        `json:"occurred_at"`
	MealType    string           `json:"meal_type"`
	Description string           `json:"description"`
	TotalCarbs  *decimal.Decimal `json:"total_carbs"`
	Notes       string           `json:"notes"`
}

func (r *mealRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if r.OccurredAt.IsZero() {
		errs.add("occurred_at", "this field is required")
	}
	if !models.ValidMealType(r.MealType) {
		errs.add("meal_type", "must be breakfast, lunch, dinner or snack")
	}
	if r.Description == "" {
		errs.add("description", "this field is required")
	}
	if r.TotalCarbs != nil && r.TotalCarbs.IsNegative() {
		errs.add("total_carbs", "must not be negative")
	}
	return errs
}

func (h *MealHandler) List(c *gin.Context) {
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
		meals, err := h.mealService.Filtered(c.Request.Context(), opts.Range, opts.Sort)
		if err != nil {
			serviceError(c, err)
			return
		}
		writeDownload(c, export.NewMealDataset(meals), f)
		return
	}

	meals, page, err := h.mealService.List(c.Request.Context(), opts)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals, "pagination": page})
}

func (h *MealHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.validate().respond(c) {
		return
	}

	meal, err := h.mealService.Create(c.Request.Context(), userID, service.MealParams{
		OccurredAt:  req.OccurredAt,
		MealType:    req.MealType,
		Description: req.Description,
		TotalCarbs:  req.TotalCarbs,
		Notes:       req.Notes,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

func (h *MealHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.validate().respond(c) {
		return
	}

	meal, err := h.mealService.Update(c.Request.Context(), userID, id, service.MealParams{
		OccurredAt:  req.OccurredAt,
		MealType:    req.MealType,
		Description: req.Description,
		TotalCarbs:  req.TotalCarbs,
		Notes:       req.Notes,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}
