package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorKind string

const (
	KindBadRequest   ErrorKind = "bad_request"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindValidation   ErrorKind = "validation_error"
	KindRateLimited  ErrorKind = "rate_limited"
	KindUnexpected   ErrorKind = "internal_error"
)

func (k ErrorKind) Status() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindRateLimited:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// APIError là lỗi trả cho client. Err chỉ dùng để log, không bao giờ gửi ra ngoài.
type APIError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

func BadRequest(msg string) *APIError   { return &APIError{Kind: KindBadRequest, Message: msg} }
func Unauthorized(msg string) *APIError { return &APIError{Kind: KindUnauthorized, Message: msg} }
func Forbidden(msg string) *APIError    { return &APIError{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *APIError     { return &APIError{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *APIError     { return &APIError{Kind: KindConflict, Message: msg} }
func Validation(msg string) *APIError   { return &APIError{Kind: KindValidation, Message: msg} }
func RateLimited(msg string) *APIError  { return &APIError{Kind: KindRateLimited, Message: msg} }

func Unexpected(msg string, err error) *APIError {
	return &APIError{Kind: KindUnexpected, Message: msg, Err: err}
}

// WriteError ghi {"code", "message"} và dừng chuỗi handler.
// Lỗi không phải *APIError được coi là lỗi hệ thống: log lại và trả 500.
func WriteError(c *gin.Context, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = Unexpected("Internal server error", err)
	}
	if apiErr.Kind == KindUnexpected {
		log.Printf("[%s %s] %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(apiErr.Kind.Status(), gin.H{
		"code":    apiErr.Kind,
		"message": apiErr.Message,
	})
}
