// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data:
// filter criteria from query strings, JSON bodies and receipt uploads.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"expensereport/internal/analytics"
	"expensereport/internal/core"
	"expensereport/internal/receipt"
)

const (
	// maxJSONBody caps PATCH/PUT bodies; no JSON request is legitimately larger.
	maxJSONBody = 64 * 1024

	// multipartOverhead is the slack allowed above the receipt limit for
	// boundaries and part headers.
	multipartOverhead = 64 * 1024

	uploadField = "file"
)

var errEmptyBody = errors.New("empty request body")

// ParseCriteria extracts the filter criteria from query parameters. Category
// and status must name a known value or "all"; dates must be YYYY-MM-DD.
func ParseCriteria(query url.Values) (analytics.Criteria, error) {
	c := analytics.Criteria{
		SearchTerm: sanitizeInput(query.Get("search")),
		Category:   strings.TrimSpace(query.Get("category")),
		Status:     strings.TrimSpace(query.Get("status")),
		StartDate:  strings.TrimSpace(query.Get("startDate")),
		EndDate:    strings.TrimSpace(query.Get("endDate")),
	}

	if c.Category != "" && !strings.EqualFold(c.Category, analytics.All) {
		kind, err := core.ParseCategoryKind(c.Category)
		if err != nil {
			return c, err
		}
		c.Category = string(kind)
	}
	if c.Status != "" && !strings.EqualFold(c.Status, analytics.All) {
		st, err := core.ParseStatus(c.Status)
		if err != nil {
			return c, err
		}
		c.Status = string(st)
	}
	for _, d := range []string{c.StartDate, c.EndDate} {
		if d == "" {
			continue
		}
		if _, err := core.ParseDate(d); err != nil {
			return c, err
		}
	}
	return c, nil
}

// DecodeJSON reads a single JSON object into v, rejecting unknown fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}

// ParseReceiptUpload reads the multipart "file" field and validates it. Every
// failure wraps one of the receipt package errors.
func ParseReceiptUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (core.Receipt, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return core.Receipt{}, fmt.Errorf("%w: request body over %d bytes", receipt.ErrTooLarge, tooLarge.Limit)
		}
		return core.Receipt{}, fmt.Errorf("%w: %v", receipt.ErrUnreadable, err)
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return core.Receipt{}, fmt.Errorf("%w: %v", receipt.ErrUnreadable, err)
	}
	defer file.Close()

	declared := header.Header.Get("Content-Type")
	if err := receipt.Check(header.Size, declared, maxBytes); err != nil {
		return core.Receipt{}, err
	}
	return receipt.FromReader(header.Filename, declared, file, maxBytes)
}

// sanitizeInput removes control characters other than tab and newlines.
// Spaces are significant in search terms and are kept.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
