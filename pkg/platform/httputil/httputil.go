// Package httputil holds the JSON request/response helpers shared by handlers.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	dErrors "checkout/pkg/domain-errors"
)

// maxBodyBytes caps request bodies; wallet token payloads are the largest input.
const maxBodyBytes = 1 << 20

// Validatable is implemented by request DTOs that normalize and validate
// themselves after decoding.
type Validatable interface {
	Validate() error
}

// StatusCoder is implemented by errors that carry their own HTTP status,
// typically a downstream service's status code.
type StatusCoder interface {
	HTTPStatus() int
}

// ErrorCoder is implemented by errors that carry a downstream error code.
type ErrorCoder interface {
	ErrorCode() string
}

// ComponentTagger is implemented by errors tagged with the failing logical component.
type ComponentTagger interface {
	FailedComponent() string
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	Component        string `json:"component,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into a JSON error body. Internal errors never
// leak their description.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.GetCode(err)
	status := statusForCode(code)
	resp := errorResponse{Error: string(code)}

	var sc StatusCoder
	if errors.As(err, &sc) && sc.HTTPStatus() > 0 {
		status = sc.HTTPStatus()
	}
	var ec ErrorCoder
	if errors.As(err, &ec) && ec.ErrorCode() != "" {
		resp.Error = ec.ErrorCode()
	}
	var tagged ComponentTagger
	if errors.As(err, &tagged) {
		resp.Component = tagged.FailedComponent()
	}
	if status < http.StatusInternalServerError || resp.Error != string(dErrors.CodeInternal) {
		resp.ErrorDescription = describe(err)
	}
	WriteJSON(w, status, resp)
}

func describe(err error) string {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

func statusForCode(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation, dErrors.CodeBadRequest, dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// DecodeAndPrepare decodes the JSON body into T and runs its Validate method.
// On failure it writes the error response, logs, and returns ok=false.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			err = dErrors.New(dErrors.CodeBadRequest, "request body is required")
		} else {
			err = dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid json body")
		}
		logDecodeFailure(ctx, logger, requestID, err)
		WriteError(w, err)
		return nil, false
	}
	if err := PT(&req).Validate(); err != nil {
		logDecodeFailure(ctx, logger, requestID, err)
		WriteError(w, err)
		return nil, false
	}
	return &req, true
}

func logDecodeFailure(ctx context.Context, logger *slog.Logger, requestID string, err error) {
	if logger == nil {
		return
	}
	logger.WarnContext(ctx, "rejected request body",
		"request_id", requestID,
		"error", err,
	)
}
