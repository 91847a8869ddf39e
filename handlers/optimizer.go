package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Shiki0138/sms-sub001/models"
	"github.com/Shiki0138/sms-sub001/services/optimizer"
	"github.com/Shiki0138/sms-sub001/utils"
)

// OptimizerHandler exposes the optimization engine's four entry points.
type OptimizerHandler struct {
	Svc    optimizer.OptimizerService
	Logger *zap.Logger
}

// NewOptimizerHandler constructs an OptimizerHandler.
func NewOptimizerHandler(svc optimizer.OptimizerService, logger *zap.Logger) *OptimizerHandler {
	return &OptimizerHandler{Svc: svc, Logger: logger}
}

// OptimizeBooking handles POST /api/optimizer/booking.
func (h *OptimizerHandler) OptimizeBooking(c *gin.Context) {
	requestID := uuid.New().String()

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking request", err.Error())
		return
	}

	suggestions, err := h.Svc.OptimizeBooking(req)
	if err != nil {
		h.respondError(c, requestID, err)
		return
	}

	h.Logger.Info("booking optimization served",
		zap.String("requestID", requestID),
		zap.String("date", req.PreferredDate),
		zap.Int("suggestions", len(suggestions)))
	c.JSON(http.StatusOK, gin.H{
		"requestID":   requestID,
		"suggestions": suggestions,
	})
}

// PredictNoShow handles GET /api/optimizer/no-show/:customerID?date=YYYY-MM-DD.
func (h *OptimizerHandler) PredictNoShow(c *gin.Context) {
	requestID := uuid.New().String()
	customerID := c.Param("customerID")

	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	prediction, err := h.Svc.PredictNoShow(customerID, date)
	if err != nil {
		h.respondError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, prediction)
}

// PredictDemand handles GET /api/optimizer/demand?start=...&end=...
func (h *OptimizerHandler) PredictDemand(c *gin.Context) {
	requestID := uuid.New().String()

	start, err := parseDateParam(c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start date", err.Error())
		return
	}
	end, err := parseDateParam(c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid end date", err.Error())
		return
	}
	// The engine does not bound the range itself; keep dashboards sane here.
	if end.Sub(start) > 90*24*time.Hour {
		utils.JSONError(c, http.StatusBadRequest, "invalid range", "forecast range is limited to 90 days")
		return
	}

	predictions, err := h.Svc.PredictDemand(start, end)
	if err != nil {
		h.respondError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}

// GetAvailabilityAnalysis handles GET /api/optimizer/availability?date=...
func (h *OptimizerHandler) GetAvailabilityAnalysis(c *gin.Context) {
	requestID := uuid.New().String()

	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	analysis, err := h.Svc.GetAvailabilityAnalysis(date)
	if err != nil {
		h.respondError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// respondError maps engine error types onto HTTP statuses.
func (h *OptimizerHandler) respondError(c *gin.Context, requestID string, err error) {
	var validationErr *optimizer.ValidationError
	var notFoundErr *optimizer.CustomerNotFoundError

	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "validation failed", validationErr.Error())
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, "customer not found", notFoundErr.Error())
	default:
		h.Logger.Error("optimizer request failed",
			zap.String("requestID", requestID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "optimization failed", "予期しないエラーが発生しました。しばらくしてから再度お試しください。")
	}
}

func parseDateParam(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("date query parameter is required (YYYY-MM-DD)")
	}
	return time.ParseInLocation("2006-01-02", value, time.Local)
}
