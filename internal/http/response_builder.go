// Package http provides HTTP server and handler implementations.
//
// This file implements the Builder Pattern for JSON responses. Notifications
// are sent twice: as a show-notification entry in the HX-Trigger header and
// as the notification field of the body.

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"expensereport/internal/i18n"
)

// NotificationType represents the type of notification to display.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

const (
	headerTrigger        = "HX-Trigger"
	triggerNotification  = "show-notification"
	triggerReportChanged = "report:changed"
	contentTypeJSON      = "application/json; charset=utf-8"
)

// Notification is a translated user-facing message.
type Notification struct {
	Type       NotificationType `json:"type"`
	MessageKey string           `json:"messageKey"`
	Message    string           `json:"message"`
}

// envelope is the shape of every JSON body.
type envelope struct {
	Data         any           `json:"data,omitempty"`
	Error        string        `json:"error,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}

// ResponseBuilder provides a fluent API for building JSON responses.
type ResponseBuilder struct {
	triggers   map[string]any
	statusCode int
	body       envelope
	hasBody    bool
}

// NewResponse creates a new response builder with default 200 status.
func NewResponse() *ResponseBuilder {
	return &ResponseBuilder{
		triggers:   make(map[string]any),
		statusCode: http.StatusOK,
	}
}

// Status sets the HTTP status code for the response.
func (b *ResponseBuilder) Status(code int) *ResponseBuilder {
	b.statusCode = code
	return b
}

// Trigger adds a named trigger with optional data to the HX-Trigger header.
func (b *ResponseBuilder) Trigger(name string, data any) *ResponseBuilder {
	b.triggers[name] = data
	return b
}

// TriggerReportChanged tells listeners the collection moved to version.
func (b *ResponseBuilder) TriggerReportChanged(version uint64) *ResponseBuilder {
	return b.Trigger(triggerReportChanged, map[string]uint64{"version": version})
}

// Notify translates notifications.<key> and attaches it to header and body.
func (b *ResponseBuilder) Notify(tr *i18n.Translator, notifType NotificationType, key string, vars i18n.Vars) *ResponseBuilder {
	n := &Notification{
		Type:       notifType,
		MessageKey: key,
		Message:    tr.T("notifications."+key, vars),
	}
	b.body.Notification = n
	b.hasBody = true
	return b.Trigger(triggerNotification, n)
}

// Data sets the body payload.
func (b *ResponseBuilder) Data(v any) *ResponseBuilder {
	b.body.Data = v
	b.hasBody = true
	return b
}

// Error sets the body error string.
func (b *ResponseBuilder) Error(message string) *ResponseBuilder {
	b.body.Error = message
	b.hasBody = true
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *ResponseBuilder) Write(w http.ResponseWriter) {
	if len(b.triggers) > 0 {
		triggerJSON, err := json.Marshal(b.triggers)
		if err == nil {
			w.Header().Set(headerTrigger, asciiJSON(triggerJSON))
		}
	}

	if !b.hasBody {
		w.WriteHeader(b.statusCode)
		return
	}

	payload, err := json.Marshal(b.body)
	if err != nil {
		http.Error(w, `{"error":"encoding failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(b.statusCode)
	_, _ = w.Write(payload)
}

// ErrorResponse creates a standard error response with a translated notification.
func ErrorResponse(statusCode int, tr *i18n.Translator, key string, err error) *ResponseBuilder {
	b := NewResponse().Status(statusCode).Notify(tr, NotificationError, key, nil)
	if err != nil {
		b.Error(err.Error())
	}
	return b
}

// BadRequestError creates a 400 Bad Request error response.
func BadRequestError(tr *i18n.Translator, err error) *ResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, tr, "invalidInput", err)
}

// UnprocessableEntityError creates a 422 Unprocessable Entity error response.
func UnprocessableEntityError(tr *i18n.Translator, key string, err error) *ResponseBuilder {
	return ErrorResponse(http.StatusUnprocessableEntity, tr, key, err)
}

// NotFoundError creates a 404 Not Found error response.
func NotFoundError(tr *i18n.Translator, err error) *ResponseBuilder {
	return ErrorResponse(http.StatusNotFound, tr, "notFound", err)
}

// InternalServerError creates a 500 Internal Server Error response.
func InternalServerError(tr *i18n.Translator, key string, err error) *ResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, tr, key, err)
}

// asciiJSON escapes every non-ASCII rune as \uXXXX so translated messages
// survive header transports that assume Latin-1. The result is still valid JSON.
func asciiJSON(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, r := range string(b) {
		if r < utf8.RuneSelf {
			sb.WriteRune(r)
			continue
		}
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			fmt.Fprintf(&sb, `\u%04x\u%04x`, r1, r2)
			continue
		}
		fmt.Fprintf(&sb, `\u%04x`, r)
	}
	return sb.String()
}
