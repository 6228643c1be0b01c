package http

import (
	"errors"
	"fmt"
	"net/http"

	"expensereport/internal/core"
	"expensereport/internal/i18n"
	"expensereport/internal/log"
	"expensereport/internal/storage"
)

// preferencesRequest is a partial update; nil fields are left alone.
type preferencesRequest struct {
	Budget *core.Money `json:"budget"`
	Locale *string     `json:"locale"`
	Theme  *string     `json:"theme"`
}

type i18nResponse struct {
	Locale   i18n.Locale       `json:"locale"`
	Messages map[string]string `json:"messages"`
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	NewResponse().Data(s.local.Preferences(r.Context())).Write(w)
}

// handleUpdatePreferences validates every field before writing any.
func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)
	var req preferencesRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		BadRequestError(tr, err).Write(w)
		return
	}
	if req.Budget == nil && req.Locale == nil && req.Theme == nil {
		BadRequestError(tr, errors.New("no preferences to update")).Write(w)
		return
	}

	var (
		locale i18n.Locale
		theme  storage.Theme
		ok     bool
	)
	if req.Budget != nil {
		if err := req.Budget.Validate(); err != nil {
			BadRequestError(tr, err).Write(w)
			return
		}
	}
	if req.Locale != nil {
		if locale, ok = i18n.ParseLocale(*req.Locale); !ok {
			BadRequestError(tr, fmt.Errorf("unsupported locale %q", *req.Locale)).Write(w)
			return
		}
	}
	if req.Theme != nil {
		if theme, ok = storage.ParseTheme(*req.Theme); !ok {
			BadRequestError(tr, fmt.Errorf("unsupported theme %q", *req.Theme)).Write(w)
			return
		}
	}

	ctx := r.Context()
	var err error
	if req.Budget != nil {
		err = s.local.SetBudget(ctx, *req.Budget)
	}
	if err == nil && req.Locale != nil {
		err = s.local.SetLocale(ctx, locale)
		tr = i18n.New(locale)
	}
	if err == nil && req.Theme != nil {
		err = s.local.SetTheme(ctx, theme)
	}
	if err != nil {
		log.FromContext(ctx).WithComponent(log.ComponentStorage).ErrorContext(ctx, "Failed to save preferences",
			log.FieldOperation, log.OpSave, log.FieldError, err)
		InternalServerError(tr, "saveError", err).Write(w)
		return
	}

	NewResponse().Data(s.local.Preferences(ctx)).Write(w)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	next := s.local.Theme(ctx).Toggle()
	if err := s.local.SetTheme(ctx, next); err != nil {
		InternalServerError(s.translator(r), "saveError", err).Write(w)
		return
	}
	NewResponse().Data(s.local.Preferences(ctx)).Write(w)
}

func (s *Server) handleI18n(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)
	NewResponse().Data(i18nResponse{Locale: tr.Locale(), Messages: tr.Messages()}).Write(w)
}
