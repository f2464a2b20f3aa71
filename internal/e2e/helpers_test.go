package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"gatewayd/internal/auth"
	"gatewayd/internal/channel"
	"gatewayd/internal/httpapi"
	"gatewayd/internal/lora"
	"gatewayd/internal/observability"
	"gatewayd/internal/ratelimit"
	"gatewayd/internal/registry"
	"gatewayd/internal/routing"
	"gatewayd/pkg/types"
)

const testSecret = "e2e-secret"

// createTempAdaptersDir creates a temporary directory populated with empty
// adapter weight files and returns its path.
func createTempAdaptersDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte(""), 0o644); err != nil {
			t.Fatalf("write temp adapter %s: %v", p, err)
		}
	}
	return dir
}

// newServerForDir serves the full API over the adapters found in dir.
// Events from the manager are captured in the returned publisher.
func newServerForDir(t *testing.T, dir string) (*httptest.Server, *lora.MemoryPublisher) {
	t.Helper()
	seed, err := registry.ScanAdapters(dir)
	if err != nil {
		t.Fatalf("scan adapters: %v", err)
	}
	pub := lora.NewMemoryPublisher()
	mgr, err := lora.NewWithConfig(lora.Config{Seed: seed, Exclusive: true, Publisher: pub})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	gate, err := auth.New(auth.Config{Secret: testSecret})
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}
	models := registry.NewStore(nil)
	mux := httpapi.NewMux(httpapi.Deps{
		Adapters:  mgr,
		Seed:      func() ([]types.Adapter, error) { return registry.ScanAdapters(dir) },
		Models:    models,
		Limits:    ratelimit.NewStore(nil),
		Channels:  channel.NewStore(nil),
		Services:  routing.NewStore(models, nil),
		Dashboard: observability.New(models),
		Gate:      gate,
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, pub
}

// newClient returns a client with a cookie jar so the session cookie set
// by login is replayed.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func call(t *testing.T, c *http.Client, method, url, body string) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func login(t *testing.T, c *http.Client, base string) {
	t.Helper()
	if code, b := call(t, c, http.MethodPost, base+"/api/session", `{"secret":"`+testSecret+`"}`); code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", code, b)
	}
}

func snapshot(t *testing.T, b []byte) types.AdapterSetResponse {
	t.Helper()
	var s types.AdapterSetResponse
	if err := json.Unmarshal(b, &s); err != nil {
		t.Fatalf("decode snapshot: %v body=%s", err, b)
	}
	return s
}

func activeIDs(s types.AdapterSetResponse) []string {
	var ids []string
	for _, a := range s.Adapters {
		if a.Active {
			ids = append(ids, a.ID)
		}
	}
	return ids
}
