package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/belafarma/backoffice/internal/apperrors"
	portssvc "github.com/belafarma/backoffice/internal/core/ports/services"
	"github.com/belafarma/backoffice/internal/dto"
	"github.com/belafarma/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// closeOutHandler handles HTTP requests for the close-out wizard, retroactive
// closings and reporting.
type closeOutHandler struct {
	closeOutService portssvc.CloseOutSvcFacade
}

// newCloseOutHandler creates a new closeOutHandler.
func newCloseOutHandler(cs portssvc.CloseOutSvcFacade) *closeOutHandler {
	return &closeOutHandler{
		closeOutService: cs,
	}
}

// registerCloseOutRoutes registers routes related to daily close-out.
func registerCloseOutRoutes(rg *gin.RouterGroup, closeOutService portssvc.CloseOutSvcFacade) {
	h := newCloseOutHandler(closeOutService)

	closeout := rg.Group("/closeout")
	{
		sessions := closeout.Group("/sessions")
		{
			sessions.POST("", h.startOrResume)
			sessions.GET("/:sessionID", h.getSession)
			sessions.PUT("/:sessionID/sales", h.enterSales)
			sessions.PUT("/:sessionID/cash", h.enterCash)
			sessions.PUT("/:sessionID/digital", h.enterDigital)
			sessions.POST("/:sessionID/advance", h.advance)
			sessions.POST("/:sessionID/back", h.back)
			sessions.GET("/:sessionID/summary", h.summary)
			sessions.POST("/:sessionID/confirm", h.confirmSummary)
			sessions.POST("/:sessionID/safe-deposit", h.confirmSafeDeposit)
		}
		closeout.POST("/retroactive", h.createRetroactive)
		closeout.GET("/closings/:day", h.getClosingByDay)
		closeout.GET("/reports/daily/:day", h.dailyTotals)
		closeout.GET("/reports/monthly", h.monthlyHistory)
	}
}

// startOrResume godoc
// @Summary Start or resume a close-out session
// @Description Opens the close-out wizard for a business day (default today), resuming any in-progress session
// @Tags closeout
// @Accept  json
// @Produce  json
// @Param   request body dto.StartCloseOutRequest false "Day to close"
// @Success 200 {object} dto.CloseOutSessionResponse
// @Failure 409 {object} map[string]string "Day already closed"
// @Failure 500 {object} map[string]string "Failed to start session"
// @Security BearerAuth
// @Router /closeout/sessions [post]
func (h *closeOutHandler) startOrResume(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.StartCloseOutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	day := time.Now()
	if req.Day != nil {
		day = *req.Day
	}

	session, err := h.closeOutService.StartOrResumeClose(c.Request.Context(), day, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateClosing) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to start close-out session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start close-out session"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCloseOutSessionResponse(session))
}

// getSession godoc
// @Summary Get a close-out session
// @Description Retrieves the current state of an in-progress close-out session
// @Tags closeout
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.CloseOutSessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Security BearerAuth
// @Router /closeout/sessions/{sessionID} [get]
func (h *closeOutHandler) getSession(c *gin.Context) {
	session, err := h.closeOutService.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Close-out session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get close-out session"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCloseOutSessionResponse(session))
}

// enterSales godoc
// @Summary Record the SALES step
// @Description Records declared gross sales, extra cash and the opening balance override
// @Tags closeout
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   request body dto.EnterSalesRequest true "Sales figures"
// @Success 200 {object} dto.CloseOutSessionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Wrong wizard step"
// @Security BearerAuth
// @Router /closeout/sessions/{sessionID}/sales [put]
func (h *closeOutHandler) enterSales(c *gin.Context) {
	var req dto.EnterSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	session, err := h.closeOutService.EnterSales(c.Request.Context(), c.Param("sessionID"), req)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCloseOutSessionResponse(session))
}

// enterCash godoc
// @Summary Record the CASH step
// @Description Records the physical denomination counts
// @Tags closeout
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   request body dto.EnterCashRequest true "Denomination counts"
// @Success 200 {object} dto.CloseOutSessionResponse
// @Failure 400 {object} map[string]string "Invalid denominations"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Wrong wizard step"
// @Security BearerAuth
// @Router /closeout/sessions/{sessionID}/cash [put]
func (h *closeOutHandler) enterCash(c *gin.Context) {
	var req dto.EnterCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	session, err := h.closeOutService.EnterCash(c.Request.Context(), c.Param("sessionID"), req)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCloseOutSessionResponse(session))
}

// enterDigital godoc
// @Summary Record the DIGITAL step
// @Description Records the four digital payment totals
// @Tags closeout
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   request body dto.EnterDigitalRequest true "Digital totals"
// @Success 200 {object} dto.CloseOutSessionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Wrong wizard step"
// @Security BearerAuth
// @Router /closeout/sessions/{sessionID}/digital [put]
func (h *closeOutHandler) enterDigital(c *gin.Context) {
	var req dto.EnterDigitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	session, err := h.closeOutService.EnterDigital(c.Request.Context(), c.Param("sessionID"), req)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCloseOutSessionResponse(session))
}

// advance godoc
// @Summary Advance the wizard one step
// @Description Moves the session one step forward; steps cannot be skipped
// @Tags closeout
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.CloseOutSessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Cannot advance from current step"
// @Security BearerAuth
// @Router /closeout/sessions/{sessionID}/advance [post]
func (h *closeOutHandler) advance(c *gin.Context) {
	session, err := h.closeOutService.Advance(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCloseOutSessionResponse(session))
}

// back godoc
// @Summary Move the wizard one step back
// @Description Moves the session one step backward; a closed session is terminal
// @Tags closeout
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.CloseOutSessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Cannot go back from current step"
// @Security BearerAuth
// @Router /closeout/sessions/{sessionID}/back [post]
func (h *closeOutHandler) back(c *gin.Context) {
	session, err := h.closeOutService.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCloseOutSessionResponse(session))
}

// summary godoc
// @Summary Get the SUMMARY projection
// @Description Computes expected vs counted totals from a snapshot of the day's open entries
// @Tags closeout
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.CloseOutSummary
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session is not at the SUMMARY step"
// @Security BearerAuth
// @Router /closeout/sessions/{sessionID}/summary [get]
func (h *closeOutHandler) summary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	summary, err := h.closeOutService.Summary(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrInvalidState) || errors.Is(err, apperrors.ErrValidation) {
			h.respondSessionError(c, err)
			return
		}
		logger.Error("Failed to compute close-out summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute close-out summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// confirmSummary godoc
// @Summary Confirm the summary
// @Description Enters the safe-deposit sub-step when drawer cash is above zero, seals the day otherwise
// @Tags closeout
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.ConfirmSummaryResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Wrong step or day already closed"
// @Security BearerAuth
// @Router /closeout/sessions/{sessionID}/confirm [post]
func (h *closeOutHandler) confirmSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	resp, err := h.closeOutService.ConfirmSummary(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrInvalidState) || errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrDuplicateClosing) {
			h.respondSessionError(c, err)
			return
		}
		logger.Error("Failed to confirm close-out summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm close-out summary"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// confirmSafeDeposit godoc
// @Summary Complete the close with a safe deposit
// @Description Seals the day, moving the given amount from the drawer to the vault
// @Tags closeout
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   request body dto.ConfirmSafeDepositRequest true "Deposit amount"
// @Success 200 {object} dto.ClosingRecordResponse
// @Failure 400 {object} map[string]string "Deposit exceeds counted cash"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Wrong step or day already closed"
// @Security BearerAuth
// @Router /closeout/sessions/{sessionID}/safe-deposit [post]
func (h *closeOutHandler) confirmSafeDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConfirmSafeDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	record, err := h.closeOutService.ConfirmSafeDeposit(c.Request.Context(), c.Param("sessionID"), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrExceedsAvailable), errors.Is(err, apperrors.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrDuplicateClosing):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to confirm safe deposit", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete close-out"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClosingRecordResponse(record))
}

// createRetroactive godoc
// @Summary Create a retroactive closing
// @Description Records declared sales for a past, never-closed, non-rest day without walking the wizard
// @Tags closeout
// @Accept  json
// @Produce  json
// @Param   request body dto.RetroactiveClosingRequest true "Day and declared sales"
// @Success 201 {object} dto.ClosingRecordResponse
// @Failure 400 {object} map[string]string "Invalid day or amount"
// @Failure 409 {object} map[string]string "Day already has a closing record"
// @Security BearerAuth
// @Router /closeout/retroactive [post]
func (h *closeOutHandler) createRetroactive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RetroactiveClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.closeOutService.CreateRetroactiveClosing(c.Request.Context(), req.Day, req.DeclaredGrossSales, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicateClosing):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create retroactive closing", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create retroactive closing"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToClosingRecordResponse(record))
}

// getClosingByDay godoc
// @Summary Get a closing record
// @Description Retrieves the closing record of a business day
// @Tags closeout
// @Produce  json
// @Param   day path string true "Business day (YYYY-MM-DD)"
// @Success 200 {object} dto.ClosingRecordResponse
// @Failure 404 {object} map[string]string "No closing record for that day"
// @Security BearerAuth
// @Router /closeout/closings/{day} [get]
func (h *closeOutHandler) getClosingByDay(c *gin.Context) {
	day, err := parseDayParam(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day parameter, expected YYYY-MM-DD"})
		return
	}

	record, err := h.closeOutService.GetClosingByDay(c.Request.Context(), day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No closing record for that day"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get closing record"})
		return
	}

	c.JSON(http.StatusOK, dto.ToClosingRecordResponse(record))
}

// dailyTotals godoc
// @Summary Get daily totals
// @Description Aggregates one business day's ledger movement
// @Tags closeout
// @Produce  json
// @Param   day path string true "Business day (YYYY-MM-DD)"
// @Success 200 {object} dto.DailyTotalsResponse
// @Failure 400 {object} map[string]string "Invalid day"
// @Security BearerAuth
// @Router /closeout/reports/daily/{day} [get]
func (h *closeOutHandler) dailyTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	day, err := parseDayParam(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day parameter, expected YYYY-MM-DD"})
		return
	}

	totals, err := h.closeOutService.DailyTotals(c.Request.Context(), day)
	if err != nil {
		logger.Error("Failed to compute daily totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute daily totals"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyTotalsResponse(totals))
}

// monthlyHistory godoc
// @Summary Get monthly history
// @Description Lists a month of closing records with aggregate figures
// @Tags closeout
// @Produce  json
// @Param   year query int true "Year"
// @Param   month query int true "Month (1-12)"
// @Success 200 {object} dto.MonthlyHistoryResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Security BearerAuth
// @Router /closeout/reports/monthly [get]
func (h *closeOutHandler) monthlyHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year parameter"})
		return
	}
	monthInt, err := strconv.Atoi(c.Query("month"))
	if err != nil || monthInt < 1 || monthInt > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month parameter"})
		return
	}

	history, err := h.closeOutService.MonthlyHistory(c.Request.Context(), time.Month(monthInt), year)
	if err != nil {
		logger.Error("Failed to list monthly history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list monthly history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlyHistoryResponse(history))
}

// respondSessionError maps wizard session errors onto HTTP statuses.
func (h *closeOutHandler) respondSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Close-out session not found"})
	case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrDuplicateClosing):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Close-out operation failed"})
	}
}
