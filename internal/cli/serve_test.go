package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/scorewell/engrave/pkg/cache"
	"github.com/scorewell/engrave/pkg/document"
	"github.com/scorewell/engrave/pkg/pipeline"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	c, err := cache.NewMemoryCache(64)
	if err != nil {
		t.Fatalf("NewMemoryCache: %v", err)
	}
	runner := pipeline.NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
	t.Cleanup(func() { _ = runner.Close() })
	return newAPIHandler(runner, runner.Logger)
}

func testServeDocument() document.Document {
	size := 2.0
	return document.Document{
		Version: document.CurrentVersion,
		Systems: []document.System{{
			TargetWidth: 20,
			HorizontalLines: []document.GridLine{
				{Kind: document.LineSystemTop},
				{Kind: document.LineRowCenter, Constraints: []document.LineConstraint{
					{Kind: document.LockBelow, Line: 0, Distance: 2},
				}},
			},
			VerticalLines: []document.GridLine{
				{Kind: document.LineSystemStart},
			},
			Blocks: []document.Block{{
				Width:  &size,
				Height: &size,
				Constraints: []document.BlockConstraint{
					{Kind: "lock-vertical-center-to-line", Line: 1},
					{Kind: "lock-start-to-line", Line: 0},
				},
			}},
		}},
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := testHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestResolveEndpoint(t *testing.T) {
	handler := testHandler(t)

	payload, err := json.Marshal(pipeline.Options{
		Document: testServeDocument(),
		Formats:  []string{pipeline.FormatSVG, pipeline.FormatJSON},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/resolve", bytes.NewReader(payload)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp resolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.DocHash == "" {
		t.Error("doc hash should be set")
	}
	if resp.Stats.SystemCount != 1 || resp.Stats.BlockCount != 1 {
		t.Errorf("stats = %+v", resp.Stats)
	}
	svg, ok := resp.Artifacts[pipeline.FormatSVG]
	if !ok || !strings.HasPrefix(string(svg), "<svg") {
		t.Error("svg artifact missing or malformed")
	}
	if _, ok := resp.Artifacts[pipeline.FormatJSON]; !ok {
		t.Error("json artifact missing")
	}
}

func TestResolveEndpointCaches(t *testing.T) {
	handler := testHandler(t)

	payload, _ := json.Marshal(pipeline.Options{Document: testServeDocument()})

	for i, wantHit := range []bool{false, true} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/resolve", bytes.NewReader(payload)))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
		var resp resolveResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Cache.ResolveHit != wantHit {
			t.Errorf("request %d: resolve hit = %v, want %v", i, resp.Cache.ResolveHit, wantHit)
		}
	}
}

func TestResolveEndpointBadRequests(t *testing.T) {
	handler := testHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{not json"},
		{"empty document", "{}"},
		{"missing document with formats", `{"formats":["svg"]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/resolve", strings.NewReader(tc.body)))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			var envelope struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if envelope.Error.Code != "INVALID_INPUT" {
				t.Errorf("code = %q", envelope.Error.Code)
			}
		})
	}
}

func TestServeRunnerScopesKeys(t *testing.T) {
	c := New(io.Discard, LogInfo)
	runner, err := c.newServeRunner(context.Background(), true, "")
	if err != nil {
		t.Fatalf("newServeRunner: %v", err)
	}
	defer runner.Close()

	if key := runner.Keyer.ResultKey("abc"); key != "api:result:abc" {
		t.Errorf("API result keys should carry the api namespace, got %q", key)
	}
	if key := runner.Keyer.ArtifactKey("abc", cache.ArtifactKeyOpts{Format: "svg"}); !strings.HasPrefix(key, "api:artifact:") {
		t.Errorf("API artifact keys should carry the api namespace, got %q", key)
	}
}
