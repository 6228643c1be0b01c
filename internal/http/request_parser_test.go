package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"expensereport/internal/analytics"
	"expensereport/internal/store"
)

func TestParseCriteria(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    analytics.Criteria
		wantErr bool
	}{
		{"empty", "", analytics.Criteria{}, false},
		{"all sentinels", "category=all&status=all", analytics.Criteria{Category: "all", Status: "all"}, false},
		{
			"normalizes case",
			"search=%20taxi%20&category=meals&status=approved&startDate=2025-01-01&endDate=2025-01-31",
			analytics.Criteria{SearchTerm: " taxi ", Category: "Meals", Status: "Approved", StartDate: "2025-01-01", EndDate: "2025-01-31"},
			false,
		},
		{"search keeps spaces drops controls", "search=taxi%20%07", analytics.Criteria{SearchTerm: "taxi "}, false},
		{"legacy spanish", "category=Comidas&status=Pendiente", analytics.Criteria{Category: "Meals", Status: "Pending"}, false},
		{"unknown category", "category=Food", analytics.Criteria{}, true},
		{"unknown status", "status=Paid", analytics.Criteria{}, true},
		{"bad date", "startDate=01/02/2025", analytics.Criteria{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			got, err := ParseCriteria(q)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCriteria() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseCriteria() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"description":"Taxi","amount":12.5}`, false},
		{"empty", ``, true},
		{"unknown field", `{"desc":"Taxi"}`, true},
		{"trailing data", `{"description":"a"}{"description":"b"}`, true},
		{"negative amount", `{"amount":-3}`, true},
		{"bad category", `{"category":"Food"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPatch, "/api/expenses/x", strings.NewReader(tt.body))
			var p store.Patch
			err := DecodeJSON(httptest.NewRecorder(), r, &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (p.Amount == nil || p.Amount.Cents != 1250) {
				t.Errorf("amount = %+v", p.Amount)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  a\x00b\tc\x07 "); got != "  ab\tc " {
		t.Errorf("sanitizeInput() = %q", got)
	}
}
