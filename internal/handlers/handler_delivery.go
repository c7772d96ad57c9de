package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/belafarma/backoffice/internal/apperrors"
	"github.com/belafarma/backoffice/internal/core/domain"
	portssvc "github.com/belafarma/backoffice/internal/core/ports/services"
	"github.com/belafarma/backoffice/internal/dto"
	"github.com/belafarma/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// deliveryHandler handles HTTP requests for delivery-platform sales.
type deliveryHandler struct {
	deliveryService portssvc.DeliverySvcFacade
}

// newDeliveryHandler creates a new deliveryHandler.
func newDeliveryHandler(ds portssvc.DeliverySvcFacade) *deliveryHandler {
	return &deliveryHandler{
		deliveryService: ds,
	}
}

// registerDeliveryRoutes registers routes related to delivery-platform sales.
func registerDeliveryRoutes(rg *gin.RouterGroup, deliveryService portssvc.DeliverySvcFacade) {
	h := newDeliveryHandler(deliveryService)

	delivery := rg.Group("/delivery")
	{
		delivery.POST("/sales", h.recordSale)
		delivery.GET("/sales", h.listSales)
		delivery.GET("/sales/:saleID", h.getSale)
		delivery.POST("/sales/:saleID/reconcile", h.reconcile)
		delivery.POST("/reconciliations", h.batchReconcile)
	}
}

// recordSale godoc
// @Summary Record a delivery-platform sale
// @Description Computes the net payout and due date, persisting the sale with its ledger entry
// @Tags delivery
// @Accept  json
// @Produce  json
// @Param   request body dto.RecordDeliverySaleRequest true "Sale details"
// @Success 201 {object} dto.DeliverySaleResponse
// @Failure 400 {object} map[string]string "Invalid value or fee"
// @Security BearerAuth
// @Router /delivery/sales [post]
func (h *deliveryHandler) recordSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordDeliverySaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sale, err := h.deliveryService.RecordSale(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to record delivery sale", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record delivery sale"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToDeliverySaleResponse(sale, time.Now()))
}

// listSales godoc
// @Summary List delivery-platform sales
// @Description Lists sales ordered by due date, optionally filtered by status
// @Tags delivery
// @Produce  json
// @Param   status query string false "Filter by status" Enums(PENDING, RECONCILED)
// @Success 200 {array} dto.DeliverySaleResponse
// @Failure 400 {object} map[string]string "Invalid status"
// @Security BearerAuth
// @Router /delivery/sales [get]
func (h *deliveryHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var status *domain.DeliverySaleStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.DeliverySaleStatus(raw)
		if s != domain.DeliveryPending && s != domain.DeliveryReconciled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status parameter"})
			return
		}
		status = &s
	}

	sales, err := h.deliveryService.ListSales(c.Request.Context(), status)
	if err != nil {
		logger.Error("Failed to list delivery sales", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list delivery sales"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDeliverySaleResponses(sales, time.Now()))
}

// getSale godoc
// @Summary Get a delivery-platform sale
// @Description Retrieves a sale by ID
// @Tags delivery
// @Produce  json
// @Param   saleID path string true "Sale ID"
// @Success 200 {object} dto.DeliverySaleResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Security BearerAuth
// @Router /delivery/sales/{saleID} [get]
func (h *deliveryHandler) getSale(c *gin.Context) {
	sale, err := h.deliveryService.GetSale(c.Request.Context(), c.Param("saleID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Delivery sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get delivery sale"})
		return
	}
	c.JSON(http.StatusOK, dto.ToDeliverySaleResponse(sale, time.Now()))
}

// reconcile godoc
// @Summary Reconcile a payout
// @Description Marks a pending delivery payout as received
// @Tags delivery
// @Produce  json
// @Param   saleID path string true "Sale ID"
// @Success 200 {object} dto.DeliverySaleResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 409 {object} map[string]string "Payout already reconciled"
// @Security BearerAuth
// @Router /delivery/sales/{saleID}/reconcile [post]
func (h *deliveryHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sale, err := h.deliveryService.Reconcile(c.Request.Context(), c.Param("saleID"), userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Delivery sale not found"})
		case errors.Is(err, apperrors.ErrAlreadyReconciled):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reconcile delivery sale", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile delivery sale"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDeliverySaleResponse(sale, time.Now()))
}

// batchReconcile godoc
// @Summary Reconcile payouts in batch
// @Description Reconciles each listed sale best effort, reporting per-ID failures
// @Tags delivery
// @Accept  json
// @Produce  json
// @Param   request body dto.BatchReconcileRequest true "Sale IDs"
// @Success 200 {object} dto.BatchReconcileResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /delivery/reconciliations [post]
func (h *deliveryHandler) batchReconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BatchReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.deliveryService.BatchReconcile(c.Request.Context(), req.SaleIDs, userID)
	if err != nil {
		logger.Error("Failed to batch reconcile delivery sales", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to batch reconcile delivery sales"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
