// Package streamtest provides a recording sink for parser tests.
package streamtest

import (
	"fmt"
	"strings"

	"github.com/matzehuels/graphkit/pkg/io/stream"
)

// Recorder is a stream.Sink that logs every call as a line of text:
//
//	V 1
//	VA 1 label=x
//	VD 1
//	E 0 1 2
//	EA 0 weight=2.5
//	ED 0
//	GA name=g
type Recorder[K stream.ID] struct {
	Calls []string
	// Fail, when set, is returned by the call whose line matches it.
	Fail  string
	Error error
}

func format[K stream.ID](id K) string {
	switch v := any(id).(type) {
	case int64:
		return fmt.Sprint(v)
	case []byte:
		return string(v)
	}
	return "?"
}

func (r *Recorder[K]) record(line string) error {
	r.Calls = append(r.Calls, line)
	if r.Fail != "" && line == r.Fail {
		return r.Error
	}
	return nil
}

func (r *Recorder[K]) Vertex(id K) error { return r.record("V " + format(id)) }

func (r *Recorder[K]) VertexAttribute(id K, key, value []byte) error {
	return r.record(fmt.Sprintf("VA %s %s=%s", format(id), key, value))
}

func (r *Recorder[K]) VertexDone(id K) error { return r.record("VD " + format(id)) }

func (r *Recorder[K]) Edge(rank int, source, target K) error {
	return r.record(fmt.Sprintf("E %d %s %s", rank, format(source), format(target)))
}

func (r *Recorder[K]) EdgeAttribute(rank int, key, value []byte) error {
	return r.record(fmt.Sprintf("EA %d %s=%s", rank, key, value))
}

func (r *Recorder[K]) EdgeDone(rank int) error { return r.record(fmt.Sprintf("ED %d", rank)) }

func (r *Recorder[K]) GraphAttribute(key, value []byte) error {
	return r.record(fmt.Sprintf("GA %s=%s", key, value))
}

// Filter returns the recorded calls starting with prefix followed by a
// space.
func (r *Recorder[K]) Filter(prefix string) []string {
	var out []string
	for _, c := range r.Calls {
		if strings.HasPrefix(c, prefix+" ") {
			out = append(out, c)
		}
	}
	return out
}

// String joins the recorded calls with newlines.
func (r *Recorder[K]) String() string { return strings.Join(r.Calls, "\n") }
