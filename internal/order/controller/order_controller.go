package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"radagast/internal/domain"
	"radagast/internal/dto"
	apperrors "radagast/internal/errors"
	"radagast/internal/order/usecase"
)

type CheckoutUseCase interface {
	CreateOrder(ctx context.Context, userID int, items []usecase.CheckoutItem) (*domain.Order, error)
}

type StatusUseCase interface {
	UpdateOrderStatus(ctx context.Context, orderID uint, newStatus domain.OrderStatus) (*usecase.StatusUpdateResult, error)
}

type QueryUseCase interface {
	GetOrderByID(ctx context.Context, id uint) (*domain.Order, error)
	GetAllOrders(ctx context.Context) ([]domain.Order, error)
	GetOrdersByDate(ctx context.Context, from, to time.Time) ([]domain.Order, error)
}

type OrderController struct {
	checkout CheckoutUseCase
	status   StatusUseCase
	queries  QueryUseCase
	logger   *zap.Logger
}

func NewOrderController(checkout CheckoutUseCase, status StatusUseCase, queries QueryUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		checkout: checkout,
		status:   status,
		queries:  queries,
		logger:   logger,
	}
}

func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if validationErr := validateCreateOrderRequest(req); validationErr != nil {
		ve, _ := apperrors.IsValidationError(validationErr)
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	items := make([]usecase.CheckoutItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = usecase.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	order, err := c.checkout.CreateOrder(r.Context(), req.UserID, items)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.OrderResponse{
		TraceID:   traceID,
		Order:     dto.FromOrder(order),
		Timestamp: time.Now().UTC(),
	})
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.parseOrderID(w, r, traceID)
	if !ok {
		return
	}

	order, err := c.queries.GetOrderByID(r.Context(), orderID)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}
	if order == nil {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND",
			"order with id "+strconv.FormatUint(uint64(orderID), 10)+" not found", nil)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.OrderResponse{
		TraceID:   traceID,
		Order:     dto.FromOrder(order),
		Timestamp: time.Now().UTC(),
	})
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")

	var orders []domain.Order
	var err error

	switch {
	case fromRaw == "" && toRaw == "":
		orders, err = c.queries.GetAllOrders(r.Context())
	case fromRaw != "" && toRaw != "":
		from, parseErr := parseDate(fromRaw)
		if parseErr != nil {
			c.writeValidationError(w, traceID, "invalid date filter", apperrors.ValidationDetail{
				Field:   "from",
				Message: "from must be an RFC3339 timestamp or YYYY-MM-DD date",
			})
			return
		}
		to, parseErr := parseDate(toRaw)
		if parseErr != nil {
			c.writeValidationError(w, traceID, "invalid date filter", apperrors.ValidationDetail{
				Field:   "to",
				Message: "to must be an RFC3339 timestamp or YYYY-MM-DD date",
			})
			return
		}
		orders, err = c.queries.GetOrdersByDate(r.Context(), from, to)
	default:
		c.writeValidationError(w, traceID, "invalid date filter", apperrors.ValidationDetail{
			Field:   "from",
			Message: "from and to must be provided together",
		})
		return
	}

	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	orderDTOs := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		orderDTOs = append(orderDTOs, dto.FromOrder(&orders[i]))
	}

	c.writeJSON(w, http.StatusOK, dto.OrderListResponse{
		TraceID:   traceID,
		Orders:    orderDTOs,
		Timestamp: time.Now().UTC(),
	})
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.parseOrderID(w, r, traceID)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	newStatus, valid := domain.ParseOrderStatus(req.Status)
	if !valid {
		c.writeErrorResponse(w, traceID, http.StatusBadRequest, "INVALID_STATUS",
			apperrors.NewInvalidStatusError("", req.Status).Error(), nil)
		return
	}

	result, err := c.status.UpdateOrderStatus(r.Context(), orderID, newStatus)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	response := dto.OrderResponse{
		TraceID:   traceID,
		Order:     dto.FromOrder(result.Order),
		Timestamp: time.Now().UTC(),
	}
	for _, failure := range result.ReleaseFailures {
		response.Warnings = append(response.Warnings, dto.ReleaseWarningDTO{
			ProductID: failure.ProductID,
			Quantity:  failure.Quantity,
			Reason:    failure.Reason,
		})
	}

	c.writeJSON(w, http.StatusOK, response)
}

func validateCreateOrderRequest(req dto.CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if req.UserID <= 0 {
		msg := "userId must be a positive integer"
		if req.UserID == 0 {
			msg = "userId is required"
		}
		details = append(details, apperrors.ValidationDetail{
			Field:   "userId",
			Message: msg,
		})
	}

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	if len(req.Items) > 100 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items exceeds maximum of 100",
		})
	}

	productIDMap := make(map[int]bool)
	for idx, item := range req.Items {
		if item.ProductID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].productId",
				Message: "each productId must be a positive integer",
			})
		}

		if productIDMap[item.ProductID] {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].productId",
				Message: "productId must not be duplicated",
			})
		}
		productIDMap[item.ProductID] = true

		if item.Quantity < 1 || item.Quantity > 10000 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].quantity",
				Message: "quantity must be between 1 and 10000",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (c *OrderController) parseOrderID(w http.ResponseWriter, r *http.Request, traceID string) (uint, bool) {
	orderIDStr := chi.URLParam(r, "orderId")
	orderID, err := strconv.ParseUint(orderIDStr, 10, 64)
	if err != nil || orderID == 0 {
		c.writeValidationError(w, traceID, "invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return 0, false
	}
	return uint(orderID), true
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (c *OrderController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "MISSING_SHIPPING_ADDRESS", err.Error(), nil)
		return
	}

	if ise, ok := apperrors.IsInsufficientStockError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error(), &dto.ErrorDetails{
			ProductID: ise.ProductID,
			Requested: ise.Requested,
			Available: ise.Available,
		})
		return
	}

	if pe, ok := apperrors.IsPaymentError(err); ok {
		var details *dto.ErrorDetails
		if pe.OrderID != 0 {
			details = &dto.ErrorDetails{OrderID: pe.OrderID}
		}
		c.writeErrorResponse(w, traceID, http.StatusPaymentRequired, "PAYMENT_FAILED", err.Error(), details)
		return
	}

	if _, ok := apperrors.IsInvalidStatusError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "INVALID_STATUS", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsConcurrentModificationError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "CONCURRENT_MODIFICATION", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsUnavailableError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", err.Error(), nil)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR",
		"an unexpected error occurred", nil)
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	response := validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	}

	c.writeJSON(w, http.StatusBadRequest, response)
}

func (c *OrderController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code string, message string, details *dto.ErrorDetails) {
	response := dto.ErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}

	c.writeJSON(w, statusCode, response)
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
