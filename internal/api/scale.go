package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bradleyburgess/diabeateeze/internal/query"
	"github.com/bradleyburgess/diabeateeze/internal/service"
)

// ScaleHandler serves the correction-scale endpoints.
type ScaleHandler struct {
	scaleService *service.ScaleService
}

func NewScaleHandler(scaleService *service.ScaleService) *ScaleHandler {
	return &ScaleHandler{scaleService: scaleService}
}

func (h *ScaleHandler) RegisterRoutes(router *gin.RouterGroup) {
	scales := router.Group("/scales")
	{
		scales.GET("", h.List)
		scales.POST("", h.Create)
		scales.PUT("/:id", h.Update)
		scales.DELETE("/:id", h.Delete)
	}
}

type scaleRequest struct {
	GreaterThan decimal.Decimal `json:"greater_than"`
	UnitsToAdd  decimal.Decimal `json:"units_to_add"`
}

func (r *scaleRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if r.GreaterThan.LessThanOrEqual(decimal.Zero) {
		errs.add("greater_than", "must be a positive number")
	}
	if r.UnitsToAdd.LessThanOrEqual(decimal.Zero) {
		errs.add("units_to_add", "must be a positive number")
	}
	return errs
}

func (h *ScaleHandler) List(c *gin.Context) {
	pageSize := query.NormalizePageSize(c.DefaultQuery("page_size", "50"))

	scales, p, err := h.scaleService.List(c.Request.Context(), parsePage(c), pageSize)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scales": scales, "pagination": p})
}

func (h *ScaleHandler) Create(c *gin.Context) {
	var req scaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.validate().respond(c) {
		return
	}

	scale, err := h.scaleService.Create(c.Request.Context(), service.ScaleParams{
		GreaterThan: req.GreaterThan,
		UnitsToAdd:  req.UnitsToAdd,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"scale": scale})
}

func (h *ScaleHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req scaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.validate().respond(c) {
		return
	}

	scale, err := h.scaleService.Update(c.Request.Context(), id, service.ScaleParams{
		GreaterThan: req.GreaterThan,
		UnitsToAdd:  req.UnitsToAdd,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scale": scale})
}

func (h *ScaleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.scaleService.Delete(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
