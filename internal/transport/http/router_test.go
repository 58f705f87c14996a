package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wrfweb/taskmonitor/internal/config"
	"github.com/wrfweb/taskmonitor/internal/transport/http/dto"
)

func testConfig(t *testing.T, upstream string) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Server.Upstream = upstream
	cfg.Server.StaticDir = t.TempDir()
	cfg.Server.RequestLogging = false
	return cfg
}

func TestApp_Health(t *testing.T) {
	app := NewApp(RouterConfig{Config: testConfig(t, "http://upstream.invalid")})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id on the response")
	}

	var body dto.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestApp_Settings(t *testing.T) {
	cfg := testConfig(t, "http://upstream.invalid")
	cfg.Poller.Interval = 4 * time.Second
	app := NewApp(RouterConfig{Config: cfg})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/taskmonitor/settings.json", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	var body dto.SettingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.PollIntervalMS != 4000 || body.CSRFEnabled || body.CSRFHeader != "X-CSRFToken" {
		t.Fatalf("unexpected settings %+v", body)
	}
}

func TestApp_ProxiesTaskRoutes(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks/t1/run" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"running","message":"submitted"}`)
	}))
	defer upstream.Close()

	app := NewApp(RouterConfig{Config: testConfig(t, upstream.URL)})

	req := httptest.NewRequest(http.MethodPost, "/api/tasks/t1/run", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if string(data) != `{"status":"running","message":"submitted"}` {
		t.Fatalf("unexpected body %s", data)
	}
}

func TestApp_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	addr := upstream.URL
	upstream.Close()

	app := NewApp(RouterConfig{Config: testConfig(t, addr)})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/tasks/t1/check", nil), 5000)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func TestApp_ServesStaticFiles(t *testing.T) {
	cfg := testConfig(t, "http://upstream.invalid")
	page := `<html><body><span data-task-status data-task-id="t1">pending</span></body></html>`
	if err := os.WriteFile(filepath.Join(cfg.Server.StaticDir, "index.html"), []byte(page), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	app := NewApp(RouterConfig{Config: cfg})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(data) != page {
		t.Fatalf("unexpected response %d %s", resp.StatusCode, data)
	}
}
