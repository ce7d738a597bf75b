package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/bissquit/subscribers-api/internal/pkg/ctxlog"
)

// ErrorMapping defines how a domain error maps to an HTTP response.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string // if empty, uses the error's public message or err.Error()
	// WithCause marks failures whose underlying cause may be returned
	// to the caller in the "error" field.
	WithCause bool
}

type publicMessager interface {
	PublicMessage() string
}

type causer interface {
	Cause() error
}

// HandleError maps a domain error to an HTTP response using provided mappings.
// Causes are written only when the mapping allows it and exposeCause is true.
// If no mapping matches, logs the error and returns 500 Internal Server Error.
func HandleError(ctx context.Context, w http.ResponseWriter, err error, mappings []ErrorMapping, exposeCause bool) {
	for _, m := range mappings {
		if !errors.Is(err, m.Error) {
			continue
		}

		msg := m.Message
		if msg == "" {
			msg = publicMessage(err)
		}

		if !m.WithCause {
			Error(w, m.Status, msg)
			return
		}

		cause := causeOf(err)
		ctxlog.FromContext(ctx).Error("request failed", "status", m.Status, "error", err)
		if exposeCause {
			ErrorWithCause(w, m.Status, msg, cause)
			return
		}
		Error(w, m.Status, msg)
		return
	}
	ctxlog.FromContext(ctx).Error("internal error", "error", err)
	Error(w, http.StatusInternalServerError, "internal error")
}

func publicMessage(err error) string {
	var pm publicMessager
	if errors.As(err, &pm) {
		return pm.PublicMessage()
	}
	return err.Error()
}

func causeOf(err error) error {
	var c causer
	if errors.As(err, &c) && c.Cause() != nil {
		return c.Cause()
	}
	return err
}
