package models

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"checkout/pkg/platform/sentinel"
)

// Component names the logical step whose accessor failed.
type Component string

const (
	ComponentProfile Component = "profile"
	ComponentAddress Component = "address"
	ComponentPayment Component = "payment"
)

// AccessorError is returned by session, validation and instrument accessors
// when the remote call completed with a failure status.
type AccessorError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *AccessorError) Error() string {
	return fmt.Sprintf("accessor returned %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// ServiceError is an accessor failure tagged with the component that failed.
// It carries the accessor's own status code to the HTTP layer.
type ServiceError struct {
	Component  Component
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Component, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Component, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// HTTPStatus implements httputil.StatusCoder.
func (e *ServiceError) HTTPStatus() int { return e.StatusCode }

// ErrorCode implements httputil.ErrorCoder.
func (e *ServiceError) ErrorCode() string { return e.Code }

// FailedComponent implements httputil.ComponentTagger.
func (e *ServiceError) FailedComponent() string { return string(e.Component) }

// Tag wraps err as a ServiceError for component. Accessor status codes are
// kept; infrastructure sentinels map to their conventional status. A nil err
// stays nil and an existing ServiceError keeps its original tag.
func Tag(component Component, err error) error {
	if err == nil {
		return nil
	}
	var tagged *ServiceError
	if errors.As(err, &tagged) {
		return err
	}
	se := &ServiceError{Component: component, Err: err}
	var accessor *AccessorError
	switch {
	case errors.As(err, &accessor):
		se.StatusCode = accessor.StatusCode
		se.Code = accessor.Code
		se.Message = accessor.Message
	case errors.Is(err, sentinel.ErrNotFound):
		se.StatusCode, se.Code, se.Message = http.StatusNotFound, "not_found", "resource not found"
	case errors.Is(err, sentinel.ErrRejected):
		se.StatusCode, se.Code, se.Message = http.StatusBadRequest, "rejected", "request rejected"
	case errors.Is(err, sentinel.ErrConflict), errors.Is(err, sentinel.ErrInvalidState):
		se.StatusCode, se.Code, se.Message = http.StatusConflict, "conflict", "invalid session state"
	case errors.Is(err, sentinel.ErrUnavailable):
		se.StatusCode, se.Code, se.Message = http.StatusServiceUnavailable, "service_unavailable", "dependency unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		se.StatusCode, se.Code, se.Message = http.StatusGatewayTimeout, "timeout", "dependency timed out"
	default:
		se.StatusCode, se.Code, se.Message = http.StatusInternalServerError, "internal_error", "dependency failed"
	}
	if se.Code == "" {
		se.Code = http.StatusText(se.StatusCode)
	}
	return se
}

// ComponentError labels a local failure, such as a validation error, with the
// step that produced it. The wrapped error keeps deciding status and code.
type ComponentError struct {
	Component Component
	Err       error
}

func (e *ComponentError) Error() string { return fmt.Sprintf("%s: %v", e.Component, e.Err) }

func (e *ComponentError) Unwrap() error { return e.Err }

// FailedComponent implements httputil.ComponentTagger.
func (e *ComponentError) FailedComponent() string { return string(e.Component) }

// Label attaches component to err unless err already names one.
func Label(component Component, err error) error {
	if err == nil {
		return nil
	}
	var tagged *ServiceError
	if errors.As(err, &tagged) {
		return err
	}
	var labelled *ComponentError
	if errors.As(err, &labelled) {
		return err
	}
	return &ComponentError{Component: component, Err: err}
}
