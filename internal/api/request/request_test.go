package request

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		want    int64
	}{
		{name: "valid body", body: `{"intervalMs": 5000}`, want: 5000},
		{name: "unknown field", body: `{"interval": 5000}`, wantErr: true},
		{name: "malformed JSON", body: `{"intervalMs":`, wantErr: true},
		{name: "wrong type", body: `{"intervalMs": "fast"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/market/interval", strings.NewReader(tt.body))

			var body SetIntervalRequest
			err := Decode(req, &body)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() returned unexpected error: %v", err)
			}
			if body.IntervalMs == nil || *body.IntervalMs != tt.want {
				t.Errorf("Expected intervalMs %d, got %v", tt.want, body.IntervalMs)
			}
		})
	}

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/market/interval", http.NoBody)

		var body SetIntervalRequest
		if err := Decode(req, &body); !errors.Is(err, ErrEmptyBody) {
			t.Errorf("Expected ErrEmptyBody, got %v", err)
		}
	})
}

func TestParseTransactionFilter(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		limit   string
		want    TransactionFilter
		wantErr bool
	}{
		{name: "defaults", want: TransactionFilter{}},
		{name: "all", typ: "all", want: TransactionFilter{}},
		{name: "buy", typ: "buy", want: TransactionFilter{Type: "buy"}},
		{name: "case-insensitive sell with limit", typ: " SELL ", limit: "4", want: TransactionFilter{Type: "sell", Limit: 4}},
		{name: "unknown type", typ: "dividend", wantErr: true},
		{name: "zero limit", limit: "0", wantErr: true},
		{name: "negative limit", limit: "-2", wantErr: true},
		{name: "non-numeric limit", limit: "few", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransactionFilter(tt.typ, tt.limit)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
