package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	i := NoopImportHooks{}
	i.OnImportStart(ctx, "gml", "INT")
	i.OnImportComplete(ctx, "gml", "INT", ImportStats{Vertices: 3, Edges: 2}, time.Second, nil)

	e := NoopEventHooks{}
	e.OnDispatch("VERTEX_ADDED", 2)
	e.OnListenerPanic("EDGE_REMOVED", "boom")
	e.OnDepthExceeded(17)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "/import", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Import().(NoopImportHooks); !ok {
		t.Error("Import() should return NoopImportHooks by default")
	}
	if _, ok := Events().(NoopEventHooks); !ok {
		t.Error("Events() should return NoopEventHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	customImport := &testImportHooks{}
	SetImportHooks(customImport)
	if Import() != customImport {
		t.Error("SetImportHooks should set custom hooks")
	}

	customEvents := &testEventHooks{}
	SetEventHooks(customEvents)
	if Events() != customEvents {
		t.Error("SetEventHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	Reset()
	if _, ok := Import().(NoopImportHooks); !ok {
		t.Error("Reset() should restore NoopImportHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testImportHooks{}
	SetImportHooks(custom)
	SetImportHooks(nil)

	if Import() != custom {
		t.Error("SetImportHooks(nil) should be ignored")
	}

	Reset()
}

func TestLoggerFromContext(t *testing.T) {
	if LoggerFromContext(context.Background()) != log.Default() {
		t.Error("LoggerFromContext without logger should return log.Default()")
	}

	var buf bytes.Buffer
	l := NewLogger(&buf, log.InfoLevel)
	ctx := WithLogger(context.Background(), l)
	LoggerFromContext(ctx).Info("imported", "vertices", 4)

	if !strings.Contains(buf.String(), "imported") {
		t.Errorf("log output = %q, want it to contain %q", buf.String(), "imported")
	}
}

type testImportHooks struct{ NoopImportHooks }
type testEventHooks struct{ NoopEventHooks }
type testServerHooks struct{ NoopServerHooks }
