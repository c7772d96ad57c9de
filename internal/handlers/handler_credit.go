package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/belafarma/backoffice/internal/apperrors"
	portssvc "github.com/belafarma/backoffice/internal/core/ports/services"
	"github.com/belafarma/backoffice/internal/dto"
	"github.com/belafarma/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// creditHandler handles HTTP requests related to customers and store credit.
type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

// newCreditHandler creates a new creditHandler.
func newCreditHandler(cs portssvc.CreditSvcFacade) *creditHandler {
	return &creditHandler{
		creditService: cs,
	}
}

// registerCreditRoutes registers routes related to customer credit.
func registerCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := newCreditHandler(creditService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customerID", h.getCustomer)
		customers.POST("/:customerID/credit-quote", h.quoteCredit)
		customers.GET("/:customerID/debts", h.listDebts)
	}

	debts := rg.Group("/debts")
	{
		debts.POST("", h.createDebt)
		debts.POST("/:debtID/pay", h.markPaid)
		debts.POST("/:debtID/partial-payment", h.partialPayment)
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Description Registers a new store-credit customer
// @Tags credit
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /customers [post]
func (h *creditHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.creditService.CreateCustomer(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create customer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Description Lists all store-credit customers
// @Tags credit
// @Produce  json
// @Success 200 {array} dto.CustomerResponse
// @Security BearerAuth
// @Router /customers [get]
func (h *creditHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customers, err := h.creditService.ListCustomers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list customers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customers"})
		return
	}

	resp := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		resp = append(resp, dto.ToCustomerResponse(&customers[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// getCustomer godoc
// @Summary Get a customer
// @Description Retrieves a customer by ID
// @Tags credit
// @Produce  json
// @Param   customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{customerID} [get]
func (h *creditHandler) getCustomer(c *gin.Context) {
	customer, err := h.creditService.GetCustomer(c.Request.Context(), c.Param("customerID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get customer"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// quoteCredit godoc
// @Summary Quote a credit impact
// @Description Projects the customer's pending total after a prospective store-credit sale
// @Tags credit
// @Accept  json
// @Produce  json
// @Param   customerID path string true "Customer ID"
// @Param   request body dto.QuoteCreditRequest true "Prospective sale amount"
// @Success 200 {object} dto.CreditQuoteResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{customerID}/credit-quote [post]
func (h *creditHandler) quoteCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.QuoteCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	quote, err := h.creditService.QuoteCreditImpact(c.Request.Context(), c.Param("customerID"), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to quote credit impact", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to quote credit impact"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditQuoteResponse(quote))
}

// listDebts godoc
// @Summary List a customer's debts
// @Description Lists the debts of one customer, newest first
// @Tags credit
// @Produce  json
// @Param   customerID path string true "Customer ID"
// @Success 200 {array} dto.DebtResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{customerID}/debts [get]
func (h *creditHandler) listDebts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debts, err := h.creditService.ListDebtsByCustomer(c.Request.Context(), c.Param("customerID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		logger.Error("Failed to list debts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list debts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponses(debts, time.Now()))
}

// createDebt godoc
// @Summary Record a store-credit sale
// @Description Creates a debt and its STORE_CREDIT ledger entry atomically
// @Tags credit
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateDebtRequest true "Debt details"
// @Success 201 {object} dto.DebtResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /debts [post]
func (h *creditHandler) createDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	debt, err := h.creditService.CreateDebt(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create debt", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create debt"})
		}
		return
	}

	resp := dto.ToDebtResponse(debt, time.Now())
	c.JSON(http.StatusCreated, resp)
}

// markPaid godoc
// @Summary Settle a debt in full
// @Description Marks a debt as paid, zeroing the remaining value
// @Tags credit
// @Produce  json
// @Param   debtID path string true "Debt ID"
// @Success 200 {object} dto.DebtResponse
// @Failure 404 {object} map[string]string "Debt not found"
// @Failure 409 {object} map[string]string "Debt already paid"
// @Security BearerAuth
// @Router /debts/{debtID}/pay [post]
func (h *creditHandler) markPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	debt, err := h.creditService.MarkPaid(c.Request.Context(), c.Param("debtID"), userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Debt not found"})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to mark debt paid", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark debt paid"})
		}
		return
	}

	resp := dto.ToDebtResponse(debt, time.Now())
	c.JSON(http.StatusOK, resp)
}

// partialPayment godoc
// @Summary Pay part of a debt
// @Description Reduces a debt in place; an exact payment settles it
// @Tags credit
// @Accept  json
// @Produce  json
// @Param   debtID path string true "Debt ID"
// @Param   request body dto.PartialPaymentRequest true "Payment amount"
// @Success 200 {object} dto.DebtResponse
// @Failure 400 {object} map[string]string "Payment exceeds remaining value"
// @Failure 404 {object} map[string]string "Debt not found"
// @Failure 409 {object} map[string]string "Debt already paid"
// @Security BearerAuth
// @Router /debts/{debtID}/partial-payment [post]
func (h *creditHandler) partialPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PartialPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	debt, err := h.creditService.PartialPayment(c.Request.Context(), c.Param("debtID"), req.Amount, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Debt not found"})
		case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to apply partial payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply partial payment"})
		}
		return
	}

	resp := dto.ToDebtResponse(debt, time.Now())
	c.JSON(http.StatusOK, resp)
}
