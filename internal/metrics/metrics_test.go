package metrics

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/v1/assets", "/v1/assets"},
		{"/v1/assets/123", "/v1/assets/{id}"},
		{"/v1/assets/123/audit", "/v1/assets/{id}/audit"},
		{"/health", "/health"},
		{"/v1/assets/0", "/v1/assets/{id}"},
	}
	for _, tc := range cases {
		if got := NormalizePath(tc.in); got != tc.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
