package dto

import "strconv"

// BaseError is the wire format every error response uses.
// Code is machine-oriented (snake_case), Message is for humans,
// Fields carries per-field validation failures.
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

func NewValidationError(msg string, fields []FieldError) BaseError {
	return BaseError{Code: "validation_error", Message: msg, Fields: fields}
}

func NewConflictError(msg string) BaseError {
	return BaseError{Code: "conflict", Message: msg}
}

func NewUnauthorizedError(msg string) BaseError {
	return BaseError{Code: "unauthorized", Message: msg}
}

func NewForbiddenError(msg string) BaseError {
	return BaseError{Code: "forbidden", Message: msg}
}

func NewNotFoundError(msg string) BaseError {
	return BaseError{Code: "not_found", Message: msg}
}

// NewInsufficientStockError is returned by cart and checkout when the
// requested quantity cannot be reserved.
func NewInsufficientStockError(msg string, productName string, available int32) BaseError {
	return BaseError{
		Code:    "insufficient_stock",
		Message: msg,
		Fields: []FieldError{
			{Field: "product", Message: productName},
		},
		Details: "available: " + strconv.Itoa(int(available)),
	}
}

func NewInternalError(details string) BaseError {
	return BaseError{Code: "internal_error", Message: "internal server error", Details: details}
}
