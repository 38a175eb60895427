package metrics

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
	graphio "github.com/matzehuels/graphkit/pkg/io"
	"github.com/matzehuels/graphkit/pkg/observability"
)

func TestImportHooks(t *testing.T) {
	c := New()
	ctx := context.Background()
	c.OnImportStart(ctx, "gml", "INT")
	c.OnImportComplete(ctx, "gml", "INT", observability.ImportStats{Vertices: 3, Edges: 2}, time.Millisecond, nil)
	c.OnImportComplete(ctx, "gml", "INT", observability.ImportStats{Vertices: 1}, time.Millisecond,
		errors.New(errors.ErrCodeImport, "bad"))

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"started", testutil.ToFloat64(c.importsStarted.WithLabelValues("gml", "INT")), 1},
		{"ok", testutil.ToFloat64(c.imports.WithLabelValues("gml", "INT", "OK")), 1},
		{"failed", testutil.ToFloat64(c.imports.WithLabelValues("gml", "INT", "IMPORT_ERROR")), 1},
		{"vertices", testutil.ToFloat64(c.importVertices.WithLabelValues("gml")), 4},
		{"edges", testutil.ToFloat64(c.importEdges.WithLabelValues("gml")), 2},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestEventHooks(t *testing.T) {
	c := New()
	c.OnDispatch("VERTEX_ADDED", 2)
	c.OnDispatch("VERTEX_ADDED", 0)
	c.OnListenerPanic("EDGE_ADDED", "boom")
	c.OnDepthExceeded(11)

	if got := testutil.ToFloat64(c.dispatched.WithLabelValues("VERTEX_ADDED")); got != 2 {
		t.Errorf("dispatched = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.deliveries.WithLabelValues("VERTEX_ADDED")); got != 2 {
		t.Errorf("deliveries = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.listenerPanics.WithLabelValues("EDGE_ADDED")); got != 1 {
		t.Errorf("panics = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.depthExceeded); got != 1 {
		t.Errorf("depth exceeded = %v, want 1", got)
	}
}

func TestInstalledCollectorSeesImports(t *testing.T) {
	c := New()
	c.Install()
	t.Cleanup(func() {
		observability.SetImportHooks(observability.NoopImportHooks{})
		observability.SetEventHooks(observability.NoopEventHooks{})
		observability.SetServerHooks(observability.NoopServerHooks{})
	})

	g := graph.NewInt(graph.NewType())
	if _, err := graphio.Import[int32](context.Background(), g, graphio.DIMACS, graphio.String("p edge 2 1\ne 1 2\n")); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(c.imports.WithLabelValues("dimacs", "INT", "OK")); got != 1 {
		t.Errorf("imports = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.importEdges.WithLabelValues("dimacs")); got != 1 {
		t.Errorf("edges = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	c := New()
	c.OnRequest(context.Background(), "/formats", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	if !strings.Contains(body, `graphkit_http_requests_total{route="/formats",status="200"} 1`) {
		t.Errorf("metrics output missing request counter:\n%s", body)
	}
}
