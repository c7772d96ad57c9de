package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/belafarma/backoffice/internal/apperrors"
	portssvc "github.com/belafarma/backoffice/internal/core/ports/services"
	"github.com/belafarma/backoffice/internal/dto"
	"github.com/belafarma/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// consignmentHandler handles HTTP requests for suppliers and consignment stock.
type consignmentHandler struct {
	consignmentService portssvc.ConsignmentSvcFacade
}

// newConsignmentHandler creates a new consignmentHandler.
func newConsignmentHandler(cs portssvc.ConsignmentSvcFacade) *consignmentHandler {
	return &consignmentHandler{
		consignmentService: cs,
	}
}

// registerConsignmentRoutes registers routes related to consignment stock.
func registerConsignmentRoutes(rg *gin.RouterGroup, consignmentService portssvc.ConsignmentSvcFacade) {
	h := newConsignmentHandler(consignmentService)

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:supplierID", h.getSupplier)
		suppliers.GET("/:supplierID/products", h.listProducts)
		suppliers.GET("/:supplierID/balance", h.supplierBalance)
		suppliers.POST("/:supplierID/settle", h.settleSupplier)
	}

	consignment := rg.Group("/consignment")
	{
		consignment.POST("/products", h.createProduct)
		consignment.POST("/sales", h.recordSale)
	}
}

// createSupplier godoc
// @Summary Create a supplier
// @Description Registers a new consignment supplier
// @Tags consignment
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateSupplierRequest true "Supplier details"
// @Success 201 {object} dto.SupplierResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /suppliers [post]
func (h *consignmentHandler) createSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	supplier, err := h.consignmentService.CreateSupplier(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create supplier", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToSupplierResponse(supplier))
}

// listSuppliers godoc
// @Summary List suppliers
// @Description Lists all consignment suppliers
// @Tags consignment
// @Produce  json
// @Success 200 {array} dto.SupplierResponse
// @Security BearerAuth
// @Router /suppliers [get]
func (h *consignmentHandler) listSuppliers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	suppliers, err := h.consignmentService.ListSuppliers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list suppliers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list suppliers"})
		return
	}

	resp := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		resp = append(resp, dto.ToSupplierResponse(&suppliers[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// getSupplier godoc
// @Summary Get a supplier
// @Description Retrieves a supplier by ID
// @Tags consignment
// @Produce  json
// @Param   supplierID path string true "Supplier ID"
// @Success 200 {object} dto.SupplierResponse
// @Failure 404 {object} map[string]string "Supplier not found"
// @Security BearerAuth
// @Router /suppliers/{supplierID} [get]
func (h *consignmentHandler) getSupplier(c *gin.Context) {
	supplier, err := h.consignmentService.GetSupplier(c.Request.Context(), c.Param("supplierID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get supplier"})
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

// createProduct godoc
// @Summary Create a consignment product
// @Description Registers a supplier-owned product and its initial stock
// @Tags consignment
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateConsignmentProductRequest true "Product details"
// @Success 201 {object} dto.ConsignmentProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Supplier not found"
// @Security BearerAuth
// @Router /consignment/products [post]
func (h *consignmentHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateConsignmentProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.consignmentService.CreateProduct(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create product", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToConsignmentProductResponse(product))
}

// listProducts godoc
// @Summary List a supplier's products
// @Description Lists the consignment products of one supplier
// @Tags consignment
// @Produce  json
// @Param   supplierID path string true "Supplier ID"
// @Success 200 {array} dto.ConsignmentProductResponse
// @Failure 404 {object} map[string]string "Supplier not found"
// @Security BearerAuth
// @Router /suppliers/{supplierID}/products [get]
func (h *consignmentHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	products, err := h.consignmentService.ListProductsBySupplier(c.Request.Context(), c.Param("supplierID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
			return
		}
		logger.Error("Failed to list products", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, dto.ToConsignmentProductResponses(products))
}

// recordSale godoc
// @Summary Record a consignment sale
// @Description Applies an all-or-nothing stock decrement batch and appends one CONSIGNMENT_SALE ledger entry
// @Tags consignment
// @Accept  json
// @Produce  json
// @Param   request body dto.RecordConsignmentSaleRequest true "Sale items"
// @Success 201 {object} dto.RecordConsignmentSaleResponse
// @Failure 400 {object} map[string]string "Invalid items"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Security BearerAuth
// @Router /consignment/sales [post]
func (h *consignmentHandler) recordSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordConsignmentSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.consignmentService.RecordSale(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record consignment sale", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record consignment sale"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// supplierBalance godoc
// @Summary Get a supplier balance
// @Description Computes the accrued unsettled debt owed to a supplier
// @Tags consignment
// @Produce  json
// @Param   supplierID path string true "Supplier ID"
// @Success 200 {object} dto.SupplierBalanceResponse
// @Failure 404 {object} map[string]string "Supplier not found"
// @Security BearerAuth
// @Router /suppliers/{supplierID}/balance [get]
func (h *consignmentHandler) supplierBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	balance, err := h.consignmentService.GetSupplierBalance(c.Request.Context(), c.Param("supplierID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
			return
		}
		logger.Error("Failed to compute supplier balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute supplier balance"})
		return
	}

	c.JSON(http.StatusOK, balance)
}

// settleSupplier godoc
// @Summary Settle a supplier
// @Description Pays out the accrued debt, resets the sold counters and appends a CONSIGNMENT_SETTLEMENT ledger entry
// @Tags consignment
// @Produce  json
// @Param   supplierID path string true "Supplier ID"
// @Success 200 {object} dto.SettleSupplierResponse
// @Failure 404 {object} map[string]string "Supplier not found"
// @Failure 409 {object} map[string]string "Nothing to settle"
// @Security BearerAuth
// @Router /suppliers/{supplierID}/settle [post]
func (h *consignmentHandler) settleSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.consignmentService.Settle(c.Request.Context(), c.Param("supplierID"), userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to settle supplier", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle supplier"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
