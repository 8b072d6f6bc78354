package dto

import "time"

type OrderResponse struct {
	TraceID   string              `json:"traceId"`
	Order     OrderDTO            `json:"order"`
	Warnings  []ReleaseWarningDTO `json:"warnings,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

type OrderListResponse struct {
	TraceID   string     `json:"traceId"`
	Orders    []OrderDTO `json:"orders"`
	Timestamp time.Time  `json:"timestamp"`
}

// ReleaseWarningDTO reports a compensating RELEASE that failed during a
// cancellation. The status change itself succeeded.
type ReleaseWarningDTO struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

type ErrorResponse struct {
	TraceID   string        `json:"traceId"`
	Status    int           `json:"status"`
	Code      string        `json:"code"`
	Message   string        `json:"message"`
	Details   *ErrorDetails `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// ErrorDetails carries the structured identifiers a caller needs to decide
// whether and how to retry.
type ErrorDetails struct {
	OrderID   uint `json:"orderId,omitempty"`
	ProductID int  `json:"productId,omitempty"`
	Requested int  `json:"requested,omitempty"`
	Available int  `json:"available,omitempty"`
}
