package shared

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		target      interface{}
		wantErr     bool
		errContains string
	}{
		{
			name:        "valid json",
			requestBody: `{"title": "test", "userId": 3}`,
			target: &struct {
				Title  string `json:"title"`
				UserID int    `json:"userId"`
			}{},
			wantErr: false,
		},
		{
			name:        "invalid json",
			requestBody: `{"title": "test",}`, // trailing comma
			target:      &struct{}{},
			wantErr:     true,
			errContains: "invalid character",
		},
		{
			name:        "empty body",
			requestBody: "",
			target:      &struct{}{},
			wantErr:     true,
			errContains: "EOF",
		},
		{
			name:        "oversized body",
			requestBody: `{"title":"` + strings.Repeat("x", maxBodyBytes) + `"}`,
			target:      &struct{ Title string }{},
			wantErr:     true,
			errContains: "too large",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(tc.requestBody))

			err := DecodeJSON(req, tc.target)

			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type validatedRequest struct {
	Title string `validate:"required"`
	Count int    `validate:"gte=0"`
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return assert.AnError
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(validatedRequest{Title: "x"}))
	assert.Error(t, ValidateRequest(validatedRequest{}))
	assert.Error(t, ValidateRequest(validatedRequest{Title: "x", Count: -1}))

	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.ErrorIs(t, ValidateRequest(selfValidating{}), assert.AnError)
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    int
		wantErr bool
	}{
		{name: "absent", query: "", want: 7},
		{name: "empty", query: "?n=", want: 7},
		{name: "present", query: "?n=42", want: 42},
		{name: "negative", query: "?n=-3", want: -3},
		{name: "malformed", query: "?n=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)
			got, err := QueryInt(req, "n", 7)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
