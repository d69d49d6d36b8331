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

	"github.com/matzehuels/depmap/pkg/golist"
	"github.com/matzehuels/depmap/pkg/pipeline"
	"github.com/matzehuels/depmap/pkg/report"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(golist.Runner{}, logger)
	result, err := runner.Execute(context.Background(), pipeline.Options{
		Module: testModule,
		Input:  strings.NewReader(testStream),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	srv := httptest.NewServer(newReportHandler(result, logger))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestServeHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got struct {
		Status   string `json:"status"`
		Module   string `json:"module"`
		Packages int    `json:"packages"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got.Status != "ok" || got.Module != testModule || got.Packages != 3 {
		t.Errorf("healthz = %+v", got)
	}
}

func TestServeReportMarkdown(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/report.md")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.HasPrefix(body, []byte(report.Header)) {
		t.Errorf("body should start with the report header:\n%s", body)
	}
}

func TestServeReportJSON(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/report.json")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var r report.Report
	if err := json.Unmarshal(body, &r); err != nil {
		t.Fatal(err)
	}
	if len(r.Sections) != 3 {
		t.Errorf("len(Sections) = %d, want 3", len(r.Sections))
	}
}

func TestServeGraphDOT(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/graph.dot")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !bytes.HasPrefix(body, []byte("digraph G {")) {
		t.Errorf("body is not DOT:\n%s", body)
	}
	if bytes.Contains(body, []byte(`"example.com/mod/a" -> "example.com/mod/c"`)) {
		t.Error("served graph should be transitively reduced")
	}
}

func TestServePackage(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path       string
		wantStatus int
		wantPkg    string
	}{
		{"/packages/example.com/mod/a", http.StatusOK, "example.com/mod/a"},
		{"/packages/example.com/mod/b/", http.StatusOK, "example.com/mod/b"},
		{"/packages/github.com/x/y", http.StatusNotFound, ""},
		{"/packages/fmt", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv, tt.path)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantPkg == "" {
				return
			}
			var s report.Section
			if err := json.Unmarshal(body, &s); err != nil {
				t.Fatal(err)
			}
			if s.Package != tt.wantPkg {
				t.Errorf("Package = %q, want %q", s.Package, tt.wantPkg)
			}
		})
	}
}

func TestServeUnknownRoute(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := get(t, srv, "/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestListenAndServeShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- listenAndServe(ctx, srv, log.New(io.Discard)) }()
	cancel()

	if err := <-done; err != context.Canceled {
		t.Errorf("listenAndServe() = %v, want context.Canceled", err)
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := []struct {
		addr, want string
	}{
		{":8080", "localhost:8080"},
		{"0.0.0.0:9000", "0.0.0.0:9000"},
	}
	for _, tt := range tests {
		if got := displayAddr(tt.addr); got != tt.want {
			t.Errorf("displayAddr(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}
