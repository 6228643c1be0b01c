package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"0", 0, true},
		{".5", 50, true},
		{"4500.00", 450000, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{".", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyAddSub(t *testing.T) {
	a, b := Money{Cents: 25050}, Money{Cents: 100000}
	if got := a.Add(b); got.Cents != 125050 {
		t.Errorf("Add = %d", got.Cents)
	}
	if got := a.Sub(b); got.Cents != -74950 {
		t.Errorf("Sub = %d", got.Cents)
	}
}

func TestMoneyFixed2(t *testing.T) {
	cases := map[int64]string{
		0:       "0.00",
		5:       "0.05",
		125050:  "1250.50",
		-40000:  "-400.00",
		-5:      "-0.05",
		450000:  "4500.00",
		1234567: "12345.67",
	}
	for cents, want := range cases {
		if got := (Money{Cents: cents}).Fixed2(); got != want {
			t.Errorf("Fixed2(%d) = %q, want %q", cents, got, want)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`1250.5`), &m); err != nil || m.Cents != 125050 {
		t.Fatalf("unexpected decode: %+v err=%v", m, err)
	}
	if err := json.Unmarshal([]byte(`1e3`), &m); err != nil || m.Cents != 100000 {
		t.Fatalf("unexpected exponent decode: %+v err=%v", m, err)
	}
	if err := json.Unmarshal([]byte(`-3`), &m); err == nil {
		t.Fatalf("expected error for negative amount")
	}
	b, err := json.Marshal(Money{Cents: 80000})
	if err != nil || string(b) != "800.00" {
		t.Fatalf("unexpected encode: %s err=%v", b, err)
	}
}
