package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/eagle-pass/models"
)

func TestWriteJSON(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name   string
		data   any
		status int
		want   string
		absent string
	}{
		{
			name:   "message",
			data:   models.MessageResponse{Message: "Password deleted"},
			status: http.StatusOK,
			want:   `{"message":"Password deleted"}`,
		},
		{
			name:   "owner id is never serialized",
			data:   models.PasswordEntry{ID: "p-1", UserID: "u-1", Title: "t", CreatedAt: created, UpdatedAt: created},
			status: http.StatusCreated,
			absent: "u-1",
		},
		{
			name:   "empty list",
			data:   []models.PasswordEntry{},
			status: http.StatusOK,
			want:   `[]`,
		},
		{
			name:   "nil",
			data:   nil,
			status: http.StatusNotFound,
			want:   `null`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if n != w.Body.Len() {
				t.Errorf("reported %d bytes, wrote %d", n, w.Body.Len())
			}
			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type 'application/json', got '%s'", ct)
			}

			body := w.Body.String()
			if tt.absent != "" {
				if strings.Contains(body, tt.absent) {
					t.Errorf("%q leaked into %s", tt.absent, body)
				}
				return
			}
			if body != tt.want {
				t.Errorf("expected body %s, got %s", tt.want, body)
			}
		})
	}
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	if err == nil {
		t.Fatal("expected error for non-serializable data, got nil")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Code string `json:"code"`
	}

	tests := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{"valid", `{"code":"123456"}`, "123456", false},
		{"unknown field", `{"code":"1","extra":true}`, "", true},
		{"trailing data", `{"code":"1"}{"code":"2"}`, "", true},
		{"malformed", `{"code":`, "", true},
		{"empty", ``, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.payload))
			w := httptest.NewRecorder()

			var got body
			err := DecodeJSON(w, r, &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.Code != tt.want {
				t.Errorf("got %q, want %q", got.Code, tt.want)
			}
		})
	}
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	payload := `{"code":"` + strings.Repeat("a", maxJSONBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	w := httptest.NewRecorder()

	var dst map[string]string
	if err := DecodeJSON(w, r, &dst); err == nil {
		t.Fatal("expected error for oversized body, got nil")
	}
}
