package explorer_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"inlay/internal/explorer"
	"inlay/internal/logging"
	"inlay/internal/lookup"
)

func newTestServer(t *testing.T) (*explorer.Server, string) {
	t.Helper()
	dir := t.TempDir()
	lookupPath := filepath.Join(dir, "lookup.json")

	file := lookup.New(map[string]lookup.Entry{
		"logo": {
			DataURI:     "data:image/png;base64,TE9HTw==",
			SizeBytes:   4,
			HasMetadata: true,
			Category:    "branding",
			Tags:        []string{"logo"},
			Description: "Primary logo",
			Filename:    "logo.png",
		},
		"hero": {
			DataURI:   "data:image/jpeg;base64,SEVSTw==",
			SizeBytes: 4,
			Category:  "uncategorized",
			Filename:  "hero.jpg",
		},
	})
	if err := file.Save(lookupPath); err != nil {
		t.Fatal(err)
	}

	return explorer.New(lookupPath, "", logging.NewNop()), lookupPath
}

func get(t *testing.T, server *explorer.Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return rec, body
}

func TestHealthz(t *testing.T) {
	server, _ := newTestServer(t)
	rec, body := get(t, server, "/healthz")
	if rec.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("unexpected health response: %d %v", rec.Code, body)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	rec, body := get(t, server, "/api/summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	summary, ok := body["summary"].(map[string]any)
	if !ok {
		t.Fatalf("summary missing: %v", body)
	}
	if summary["total_images"].(float64) != 2 {
		t.Fatalf("unexpected summary: %v", summary)
	}
}

func TestLookupEndpointOmitsPayloads(t *testing.T) {
	server, _ := newTestServer(t)
	rec, body := get(t, server, "/api/lookup")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["total"].(float64) != 2 {
		t.Fatalf("unexpected total: %v", body)
	}
	entries := body["entries"].([]any)
	first := entries[0].(map[string]any)
	if _, hasPayload := first["base64"]; hasPayload {
		t.Fatalf("listing must not include payloads: %v", first)
	}
	if first["key"] != "hero" {
		t.Fatalf("expected sorted keys, got %v", first["key"])
	}
}

func TestSearchEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	rec, body := get(t, server, "/api/search?tag=LOGO")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["total"].(float64) != 1 {
		t.Fatalf("expected 1 match: %v", body)
	}

	rec, _ = get(t, server, "/api/search")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty query should be rejected, got %d", rec.Code)
	}

	rec, body = get(t, server, "/api/search?tag=absent")
	if rec.Code != http.StatusOK || body["total"].(float64) != 0 {
		t.Fatalf("zero matches should still be 200: %d %v", rec.Code, body)
	}
}

func TestAssetEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	rec, body := get(t, server, "/api/asset/logo")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["base64"] != "data:image/png;base64,TE9HTw==" {
		t.Fatalf("unexpected asset body: %v", body)
	}

	rec, _ = get(t, server, "/api/asset/ghost")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown key should 404, got %d", rec.Code)
	}
}

func TestReloadsWhenLookupChanges(t *testing.T) {
	server, lookupPath := newTestServer(t)

	_, body := get(t, server, "/api/lookup")
	if body["total"].(float64) != 2 {
		t.Fatalf("unexpected initial total: %v", body)
	}

	updated := lookup.New(map[string]lookup.Entry{
		"only": {DataURI: "data:image/png;base64,eA==", Filename: "only.png"},
	})
	if err := updated.Save(lookupPath); err != nil {
		t.Fatal(err)
	}
	// Ensure a distinct mtime even on coarse-grained filesystems.
	if err := os.Chtimes(lookupPath, timeNowPlusSecond(), timeNowPlusSecond()); err != nil {
		t.Fatal(err)
	}

	_, body = get(t, server, "/api/lookup")
	if body["total"].(float64) != 1 {
		t.Fatalf("lookup not reloaded: %v", body)
	}
}

func timeNowPlusSecond() time.Time {
	return time.Now().Add(time.Second)
}

func TestMissingLookupIsServiceUnavailable(t *testing.T) {
	server := explorer.New(filepath.Join(t.TempDir(), "absent.json"), "", logging.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
