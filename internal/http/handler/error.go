package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docanchor/internal/http/middleware"
	"docanchor/internal/ledger"
	"docanchor/internal/repository"
	"docanchor/internal/service"
	"docanchor/internal/storage"
	"docanchor/internal/validate"
)

// errorPayload is the standardized error envelope. Every failed request
// carries success=false and a human-readable message; anchoring failures
// additionally name the step that failed, so a client can tell "never
// reached the ledger" from "anchored but not stored".
type errorPayload struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Step      string `json:"step,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeStepError(c, status, code, message, "")
}

func writeStepError(c *fiber.Ctx, status int, code, message, step string) error {
	return c.Status(status).JSON(errorPayload{
		Success:   false,
		Error:     message,
		Code:      code,
		Step:      step,
		RequestID: requestIDFromCtx(c),
	})
}

// writeServiceError maps a workflow error onto the HTTP surface. Domain
// error kinds keep their message (they are written for users); anything
// unrecognized degrades to a generic 500 without leaking internals.
func writeServiceError(c *fiber.Ctx, err error) error {
	status, code := classify(err)

	message := err.Error()
	step := ""
	var aerr *service.AnchorError
	if errors.As(err, &aerr) {
		step = aerr.Step
	}
	if code == "INTERNAL_ERROR" {
		message = "internal server error"
	}

	return writeStepError(c, status, code, message, step)
}

func classify(err error) (status int, code string) {
	var (
		verr *validate.ValidationError
		serr *ledger.SubmissionError
		lerr *ledger.LookupError
		uerr *storage.UploadError
		rerr *storage.RemovalError
		merr *repository.MetadataError
	)
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, service.ErrInvalidFilePayload):
		return fiber.StatusBadRequest, "INVALID_FILE_PAYLOAD"
	case errors.Is(err, service.ErrIDRequired), errors.Is(err, service.ErrOwnerRequired):
		return fiber.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, repository.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.As(err, &serr):
		return fiber.StatusBadGateway, "LEDGER_SUBMISSION_FAILED"
	case errors.As(err, &lerr):
		return fiber.StatusBadGateway, "LEDGER_LOOKUP_FAILED"
	case errors.As(err, &uerr):
		return fiber.StatusInternalServerError, "STORAGE_UPLOAD_FAILED"
	case errors.As(err, &rerr):
		return fiber.StatusInternalServerError, "STORAGE_REMOVAL_FAILED"
	case errors.As(err, &merr):
		return fiber.StatusInternalServerError, "METADATA_STORE_FAILED"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
