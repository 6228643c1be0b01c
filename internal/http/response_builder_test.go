package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"expensereport/internal/i18n"
)

func TestResponseBuilder_Basic(t *testing.T) {
	w := httptest.NewRecorder()

	NewResponse().
		Status(http.StatusCreated).
		Data(map[string]int{"n": 1}).
		Write(w)

	if w.Code != http.StatusCreated {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeJSON {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"data":{"n":1}}` {
		t.Errorf("Body = %q", got)
	}
	if w.Header().Get(headerTrigger) != "" {
		t.Error("HX-Trigger should not be set without triggers")
	}
}

func TestResponseBuilder_NoBody(t *testing.T) {
	w := httptest.NewRecorder()
	NewResponse().Status(http.StatusNoContent).TriggerReportChanged(7).Write(w)

	if w.Code != http.StatusNoContent {
		t.Errorf("Status code = %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Body = %q, want empty", w.Body.String())
	}
	if trigger := w.Header().Get(headerTrigger); !strings.Contains(trigger, `"report:changed":{"version":7}`) {
		t.Errorf("HX-Trigger = %s", trigger)
	}
}

func TestResponseBuilder_Notification(t *testing.T) {
	w := httptest.NewRecorder()
	tr := i18n.New(i18n.English)

	NewResponse().
		Notify(tr, NotificationSuccess, "saveSuccess", nil).
		Write(w)

	trigger := w.Header().Get(headerTrigger)
	for _, part := range []string{`"show-notification"`, `"type":"success"`, `"messageKey":"saveSuccess"`} {
		if !strings.Contains(trigger, part) {
			t.Errorf("HX-Trigger missing %q: %s", part, trigger)
		}
	}

	var body envelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Notification == nil || body.Notification.Message != tr.T("notifications.saveSuccess", nil) {
		t.Errorf("notification = %+v", body.Notification)
	}
}

func TestErrorResponses(t *testing.T) {
	tr := i18n.New(i18n.Spanish)
	tests := []struct {
		name    string
		builder *ResponseBuilder
		code    int
		key     string
	}{
		{"bad request", BadRequestError(tr, errors.New("x")), http.StatusBadRequest, "invalidInput"},
		{"not found", NotFoundError(tr, errors.New("x")), http.StatusNotFound, "notFound"},
		{"unprocessable", UnprocessableEntityError(tr, "fileReadError", nil), http.StatusUnprocessableEntity, "fileReadError"},
		{"internal", InternalServerError(tr, "saveError", errors.New("disk full")), http.StatusInternalServerError, "saveError"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.builder.Write(w)
			if w.Code != tt.code {
				t.Errorf("Status code = %d, want %d", w.Code, tt.code)
			}
			var body envelope
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Notification == nil || body.Notification.MessageKey != tt.key || body.Notification.Type != NotificationError {
				t.Errorf("notification = %+v", body.Notification)
			}
		})
	}
}

func TestResponseBuilder_TriggerHeaderIsASCII(t *testing.T) {
	w := httptest.NewRecorder()
	tr := i18n.New(i18n.Spanish)
	NewResponse().Notify(tr, NotificationSuccess, "saveSuccess", nil).Write(w)

	trigger := w.Header().Get(headerTrigger)
	for i := 0; i < len(trigger); i++ {
		if trigger[i] >= 0x80 {
			t.Fatalf("HX-Trigger has non-ASCII byte at %d: %s", i, trigger)
		}
	}
	if !strings.Contains(trigger, `\u00e9xito`) {
		t.Errorf("HX-Trigger = %s, want escaped \u00e9", trigger)
	}

	var decoded map[string]Notification
	if err := json.Unmarshal([]byte(trigger), &decoded); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if got := decoded[triggerNotification].Message; got != tr.T("notifications.saveSuccess", nil) {
		t.Errorf("decoded message = %q", got)
	}
}

func TestASCIIJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":"plain"}`, `{"a":"plain"}`},
		{`{"a":"Disminución"}`, `{"a":"Disminuci\u00f3n"}`},
		{`{"a":"€"}`, `{"a":"\u20ac"}`},
		{`{"a":"😀"}`, `{"a":"\ud83d\ude00"}`},
	}
	for _, tt := range tests {
		if got := asciiJSON([]byte(tt.in)); got != tt.want {
			t.Errorf("asciiJSON(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
