package product

import (
	"errors"
	"strings"
	"testing"

	"github.com/jjcarstens/nerves-hub-cli/apiclients/nerveshub"
)

func TestRenderProduct(t *testing.T) {
	tests := []struct {
		name    string
		product nerveshub.Product
		want    string
	}{
		{
			name:    "name only",
			product: nerveshub.Product{Name: "widget"},
			want:    "name: widget",
		},
		{
			name: "metadata keys sorted after name",
			product: nerveshub.Product{
				Name: "widget",
				Metadata: map[string]string{
					"updated_at":     "2026-01-01",
					"device_count":   "12",
					"firmware_count": "3",
				},
			},
			want: "name: widget\ndevice_count: 12\nfirmware_count: 3\nupdated_at: 2026-01-01",
		},
		{
			name:    "empty name still renders the field",
			product: nerveshub.Product{},
			want:    "name:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderProduct(tt.product)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if strings.TrimRight(got, " \t\n") != got {
				t.Errorf("rendered block has trailing whitespace: %q", got)
			}
		})
	}
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "structured field errors",
			err: &nerveshub.APIError{
				StatusCode: 422,
				Errors: map[string][]string{
					"name": {"has already been taken", "is too short"},
					"org":  {"not found"},
				},
			},
			want: "Error processing request:\n" +
				"  name has already been taken\n" +
				"  name is too short\n" +
				"  org not found",
		},
		{
			name: "empty error body falls back to the status",
			err:  &nerveshub.APIError{StatusCode: 500},
			want: "Unexpected response from server (status 500).",
		},
		{
			name: "malformed error body falls back to the status",
			err:  &nerveshub.APIError{StatusCode: 502, Body: "<html>bad gateway</html>"},
			want: "Unexpected response from server (status 502).",
		},
		{
			name: "transport failure",
			err:  errors.New("dial tcp: connection refused"),
			want: "Request failed: dial tcp: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderError(tt.err); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
