package assets

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/solarops/soltrack/cmd/cli/config"
	"github.com/solarops/soltrack/internal/models"
)

// captureOutput helps capture stdout during command execution.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func setupCLI(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("SOLTRACK_API_URL", srv.URL)
	t.Setenv("HOME", t.TempDir())
	if err := config.SaveToken("test-token"); err != nil {
		t.Fatalf("save token: %v", err)
	}
}

func TestListAssets_TableOutput(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/assets" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []models.Asset{
				{ID: 1, SerialNumber: "SN-100", AssetType: "Solar Panel", Status: "In Service"},
				{ID: 2, SerialNumber: "SN-200", AssetType: "Inverter", Status: "In Storage"},
			},
			"total": 2,
		})
	})

	cmd := listCmd()
	var runErr error
	out := captureOutput(t, func() {
		runErr = cmd.RunE(cmd, []string{})
	})
	if runErr != nil {
		t.Fatalf("list: %v", runErr)
	}

	if !strings.Contains(out, "SN-100") || !strings.Contains(out, "SN-200") {
		t.Fatalf("expected serials in output, got: %s", out)
	}
	if !strings.Contains(out, "2 of 2 assets") {
		t.Fatalf("expected pagination summary, got: %s", out)
	}
}

func TestListAssets_FiltersForwarded(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("status") != "Under Repair" || q.Get("search") != "Acme" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []models.Asset{}, "total": 0})
	})

	cmd := listCmd()
	_ = cmd.Flags().Set("status", "Under Repair")
	_ = cmd.Flags().Set("search", "Acme")

	var runErr error
	captureOutput(t, func() {
		runErr = cmd.RunE(cmd, []string{})
	})
	if runErr != nil {
		t.Fatalf("list: %v", runErr)
	}
}

func TestCreateAsset_SendsFlagsAsPayload(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/assets" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["serial_number"] != "SN-300" || payload["status"] != "In Service" {
			t.Fatalf("unexpected payload: %v", payload)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Asset{ID: 3, SerialNumber: "SN-300"})
	})

	cmd := createCmd()
	_ = cmd.Flags().Set("serial", "SN-300")
	_ = cmd.Flags().Set("type", "Solar Panel")
	_ = cmd.Flags().Set("status", "In Service")
	cmd.PreRun(cmd, nil)

	var runErr error
	out := captureOutput(t, func() {
		runErr = cmd.RunE(cmd, []string{})
	})
	if runErr != nil {
		t.Fatalf("create: %v", runErr)
	}
	if !strings.Contains(out, "Created asset 3 (SN-300)") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestListAssets_NotLoggedIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not reach server without a token")
	}))
	defer srv.Close()

	t.Setenv("SOLTRACK_API_URL", srv.URL)
	t.Setenv("HOME", t.TempDir())

	cmd := listCmd()
	err := cmd.RunE(cmd, []string{})
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("expected not-logged-in error, got: %v", err)
	}
}
