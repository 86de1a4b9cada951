package platformerrors

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatus_DerivedFromType(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  int
	}{
		{"not found", ErrorTypeNotFound, http.StatusNotFound},
		{"validation", ErrorTypeValidation, http.StatusBadRequest},
		{"conflict", ErrorTypeConflict, http.StatusConflict},
		{"unauthorized", ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrorTypeForbidden, http.StatusForbidden},
		{"external", ErrorTypeExternal, http.StatusBadGateway},
		{"internal", ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewError(context.Background(), LayerDomain, tt.errorType, "boom", nil, "uuid-1")
			if got := err.HTTPStatus(); got != tt.expected {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestNewUpstreamError_PreservesStatus(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		expectedType ErrorType
	}{
		{"not found", http.StatusNotFound, ErrorTypeNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrorTypeInternal},
		{"bad gateway", http.StatusBadGateway, ErrorTypeExternal},
		{"forbidden", http.StatusForbidden, ErrorTypeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUpstreamError(context.Background(), tt.status, "upstream rejected", nil, "uuid-2")
			if got := err.HTTPStatus(); got != tt.status {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.status)
			}
			if err.Type != tt.expectedType {
				t.Errorf("Type = %q, want %q", err.Type, tt.expectedType)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("network down")
	err := NewError(context.Background(), LayerInfrastructure, ErrorTypeExternal, "call failed", cause, "uuid-3")

	if !errors.Is(err, cause) {
		t.Error("errors.Is() should find the wrapped cause")
	}
}

func TestAsError_KeepsStatusOverride(t *testing.T) {
	upstream := NewUpstreamError(context.Background(), http.StatusTooManyRequests, "throttled", nil, "uuid-4")

	wrapped := AsError(context.Background(), LayerHandler, upstream, "query failed")
	if got := wrapped.HTTPStatus(); got != http.StatusTooManyRequests {
		t.Errorf("HTTPStatus() = %d, want 429 after wrapping", got)
	}
}

func TestIsErrorType(t *testing.T) {
	err := NewError(context.Background(), LayerDomain, ErrorTypeForbidden, "no access", nil, "uuid-5")

	if !IsErrorType(err, ErrorTypeForbidden) {
		t.Error("IsErrorType() = false, want true for matching type")
	}
	if IsErrorType(err, ErrorTypeNotFound) {
		t.Error("IsErrorType() = true for non-matching type")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeForbidden) {
		t.Error("IsErrorType() = true for non-platform error")
	}
}
