package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shikhasoumya1612/ecommerce/internal/products"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
	"github.com/shikhasoumya1612/ecommerce/pkg/ctxmanage"
	"github.com/shikhasoumya1612/ecommerce/pkg/logkey"
)

func (h *Handler) AddCategory(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	var newCategory products.NewCategory
	if err := c.ShouldBindJSON(&newCategory); err != nil {
		slog.Error("invalid category body", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}
	if err := h.validate.Struct(newCategory); err != nil {
		slog.Error("category validation failed", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}

	category, err := h.p.InsertCategory(ctx, newCategory)
	if err != nil {
		slog.Error("adding category", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category added successfully",
		"category": category,
	})
}

func (h *Handler) ListCategories(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	categories, err := h.p.AllCategories(ctx)
	if err != nil {
		slog.Error("listing categories", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetCategoryByID(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	category, err := h.p.CategoryByID(ctx, c.Param("categoryId"))
	if err != nil {
		slog.Error("fetching category", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	var patch products.UpdateCategory
	if err := c.ShouldBindJSON(&patch); err != nil {
		slog.Error("invalid category patch", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}

	category, err := h.p.UpdateCategory(ctx, c.Param("categoryId"), patch)
	if err != nil {
		slog.Error("updating category", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// DeleteCategory removes the category and cascades to its products.
func (h *Handler) DeleteCategory(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	if err := h.p.DeleteCategory(ctx, c.Param("categoryId")); err != nil {
		slog.Error("deleting category", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
