// Package dimacs reads the line-oriented DIMACS challenge formats.
//
// The shortest-path ("p sp"), coloring ("p col", "p edge") and max-clique
// problem lines are accepted alike: the problem line announces n vertices,
// numbered 1..n, and every "e" or "a" line adds one edge with an optional
// trailing weight. Comment lines start with "c". Lines with any other
// descriptor are skipped.
//
//	c a tiny path
//	p sp 4 3
//	a 1 2
//	a 2 3 7.5
//	a 3 4
package dimacs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/matzehuels/graphkit/pkg/io/stream"
)

// Format is the tag used in errors.
const Format = "dimacs"

// Parser reads DIMACS input. Vertex ids are the one-based file ids.
type Parser struct{}

var _ stream.Parser[int64] = Parser{}

// Parse implements stream.Parser.
func (Parser) Parse(ctx context.Context, r io.Reader, sink stream.Sink[int64]) error {
	lines := stream.NewLines(ctx, r)
	n := int64(-1)
	rank := 0
	for lines.Next() {
		fields := bytes.Fields(lines.Bytes())
		if len(fields) == 0 {
			continue
		}
		line := lines.Line()
		switch string(fields[0]) {
		case "c":
		case "p":
			if n >= 0 {
				return stream.Errorf(Format, line, "duplicate problem line")
			}
			if len(fields) < 4 {
				return stream.Errorf(Format, line, "problem line needs a format, a vertex count and an edge count")
			}
			v, err := strconv.ParseInt(string(fields[2]), 10, 64)
			if err != nil || v < 0 {
				return stream.Errorf(Format, line, "invalid vertex count %q", fields[2])
			}
			n = v
			for id := int64(1); id <= n; id++ {
				if err := sink.Vertex(id); err != nil {
					return err
				}
				if err := sink.VertexDone(id); err != nil {
					return err
				}
			}
		case "e", "a":
			if n < 0 {
				return stream.Errorf(Format, line, "edge before problem line")
			}
			if len(fields) < 3 {
				return stream.Errorf(Format, line, "edge line needs two endpoints")
			}
			u, err := endpoint(fields[1], n)
			if err != nil {
				return stream.Errorf(Format, line, "%v", err)
			}
			v, err := endpoint(fields[2], n)
			if err != nil {
				return stream.Errorf(Format, line, "%v", err)
			}
			if err := sink.Edge(rank, u, v); err != nil {
				return err
			}
			if len(fields) > 3 {
				if _, err := strconv.ParseFloat(string(fields[3]), 64); err != nil {
					return stream.Errorf(Format, line, "invalid weight %q", fields[3])
				}
				if err := sink.EdgeAttribute(rank, []byte("weight"), fields[3]); err != nil {
					return err
				}
			}
			if err := sink.EdgeDone(rank); err != nil {
				return err
			}
			rank++
		}
	}
	return lines.Err()
}

func endpoint(field []byte, n int64) (int64, error) {
	id, err := strconv.ParseInt(string(field), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid vertex id %q", field)
	}
	if id < 1 || id > n {
		return 0, fmt.Errorf("vertex id %d outside 1..%d", id, n)
	}
	return id, nil
}
