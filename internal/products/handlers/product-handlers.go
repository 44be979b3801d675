package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shikhasoumya1612/ecommerce/internal/products"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
	"github.com/shikhasoumya1612/ecommerce/pkg/ctxmanage"
	"github.com/shikhasoumya1612/ecommerce/pkg/logkey"
)

func (h *Handler) AddProduct(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	categoryID := c.Param("id")

	var newProduct products.NewProduct
	if err := c.ShouldBindJSON(&newProduct); err != nil {
		slog.Error("invalid product body", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}
	if err := h.validate.Struct(newProduct); err != nil {
		slog.Error("product validation failed", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}

	product, err := h.p.AddProduct(ctx, categoryID, newProduct)
	if err != nil {
		slog.Error("adding product", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added successfully",
		"product": product,
	})
}

func (h *Handler) GetProductByID(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	product, err := h.p.ProductByID(ctx, c.Param("productId"))
	if err != nil {
		slog.Error("fetching product", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *Handler) GetDetailsForOrder(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	details, err := h.p.DetailsForOrder(ctx, c.Param("productId"))
	if err != nil {
		slog.Error("fetching product details for order", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *Handler) GetQuantity(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	quantity, err := h.p.QuantityByID(ctx, c.Param("productId"))
	if err != nil {
		slog.Error("fetching product quantity", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quantity": quantity})
}

// UpdateQuantity sets the stock level. Quantity arrives as a string in the
// body and must parse as an integer.
func (h *Handler) UpdateQuantity(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	var body products.UpdateProduct
	if err := c.ShouldBindJSON(&body); err != nil {
		slog.Error("invalid quantity body", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}
	if body.Quantity == nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "Quantity cannot be null"))
		return
	}
	quantity, err := strconv.Atoi(*body.Quantity)
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "Quantity should be an integer"))
		return
	}

	if err := h.p.UpdateQuantity(ctx, c.Param("productId"), quantity); err != nil {
		slog.Error("updating product quantity", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quantity updated successfully"})
}

// ListProducts runs the filter pipeline over query params: price range and
// keyword first, then category, then genders.
func (h *Handler) ListProducts(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	filter := products.Filter{
		MinPrice:   0,
		MaxPrice:   math.MaxFloat64,
		Keyword:    c.Query("keyword"),
		CategoryID: c.Query("categoryId"),
		Genders:    c.QueryArray("gender"),
	}

	if raw := c.Query("minPrice"); raw != "" {
		minPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
			return
		}
		filter.MinPrice = minPrice
	}
	if raw := c.Query("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
			return
		}
		filter.MaxPrice = maxPrice
	}

	list, err := h.p.FilteredProducts(ctx, filter)
	if err != nil {
		slog.Error("filtering products", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) ListProductsByCategory(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	list, err := h.p.ProductsByCategory(ctx, c.Param("categoryId"))
	if err != nil {
		slog.Error("listing products by category", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	var patch products.UpdateProduct
	if err := c.ShouldBindJSON(&patch); err != nil {
		slog.Error("invalid product patch", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}

	product, err := h.p.UpdateProduct(ctx, c.Param("id"), patch)
	if err != nil {
		slog.Error("updating product", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	if err := h.p.DeleteProduct(ctx, c.Param("id")); err != nil {
		slog.Error("deleting product", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// AddReview appends a review attributed to the caller.
func (h *Handler) AddReview(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	claims, ok := claimsOf(c)
	if !ok {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}

	var newReview products.NewReview
	if err := c.ShouldBindJSON(&newReview); err != nil {
		slog.Error("invalid review body", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}
	if err := h.validate.Struct(newReview); err != nil {
		slog.Error("review validation failed", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "rating cannot be empty"))
		return
	}

	product, err := h.p.AddReview(ctx, c.Param("id"), userID, newReview)
	if err != nil {
		slog.Error("adding review", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review added successfully",
		"product": product,
	})
}
