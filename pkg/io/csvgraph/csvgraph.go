// Package csvgraph reads graphs from RFC 4180 CSV in the three layouts
// Gephi uses.
//
// Adjacency list, one vertex per record followed by its out-neighbors,
// with "id:weight" neighbors when weights are imported:
//
//	a,b,c
//	b,c:2.5
//
// Edge list, one edge per record with an optional weight field:
//
//	a,b
//	b,c,2.5
//
// Matrix, one row per vertex with an optional header row of ids:
//
//	,a,b
//	a,0,1
//	b,1,0
//
// [Parser] reports string ids for every layout. A matrix without node ids
// has no textual ids at all; [MatrixParser] reads it with integer ids
// 1..n.
package csvgraph

import (
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/graphkit/pkg/io/stream"
)

// Format is the tag used in errors.
const Format = "csv"

// Parser reads CSV with string ids.
type Parser struct {
	Options Options
}

// MatrixParser reads an id-less matrix with integer ids 1..n.
type MatrixParser struct {
	Options Options
}

var (
	_ stream.Parser[[]byte] = Parser{}
	_ stream.Parser[int64]  = MatrixParser{}
)

type records struct {
	ctx context.Context
	r   *csv.Reader
}

func newRecords(ctx context.Context, r io.Reader, opts Options) *records {
	cr := csv.NewReader(r)
	cr.Comma = opts.delimiter()
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return &records{ctx: ctx, r: cr}
}

// next returns the next record and its line, or io.EOF.
func (rs *records) next() ([]string, int, error) {
	if err := rs.ctx.Err(); err != nil {
		return nil, 0, err
	}
	rec, err := rs.r.Read()
	if err != nil {
		var pe *csv.ParseError
		if stderrors.As(err, &pe) {
			return nil, 0, stream.Errorf(Format, pe.Line, "%v", pe.Err)
		}
		return nil, 0, err
	}
	line, _ := rs.r.FieldPos(0)
	return rec, line, nil
}

// Parse implements stream.Parser.
func (p Parser) Parse(ctx context.Context, r io.Reader, sink stream.Sink[[]byte]) error {
	if err := p.Options.Validate(); err != nil {
		return stream.Wrap(Format, err)
	}
	rs := newRecords(ctx, r, p.Options)
	switch p.Options.Format {
	case EdgeList:
		return edgeList(rs, p.Options, sink)
	case Matrix:
		if !p.Options.MatrixNodeIDs {
			return matrix(rs, p.Options, sink, nil, func(i int) []byte { return strconv.AppendInt(nil, int64(i+1), 10) })
		}
		return matrix(rs, p.Options, sink, func(s string) []byte { return []byte(s) }, nil)
	}
	return adjacencyList(rs, p.Options, sink)
}

// Parse implements stream.Parser.
func (p MatrixParser) Parse(ctx context.Context, r io.Reader, sink stream.Sink[int64]) error {
	opts := p.Options
	opts.Format, opts.MatrixNodeIDs = Matrix, false
	if err := opts.Validate(); err != nil {
		return stream.Wrap(Format, err)
	}
	return matrix(newRecords(ctx, r, opts), opts, sink, nil, func(i int) int64 { return int64(i + 1) })
}

func adjacencyList(rs *records, opts Options, sink stream.Sink[[]byte]) error {
	rank := 0
	for {
		rec, line, err := rs.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if blank(rec) {
			continue
		}
		source := []byte(rec[0])
		if err := vertex(sink, source); err != nil {
			return err
		}
		for _, field := range rec[1:] {
			target, weight := field, ""
			if opts.ImportEdgeWeights {
				i := strings.LastIndexByte(field, ':')
				if i < 0 {
					return stream.Errorf(Format, line, "neighbor %q has no weight", field)
				}
				target, weight = field[:i], field[i+1:]
			}
			if err := edge(sink, rank, source, []byte(target), weight, line); err != nil {
				return err
			}
			rank++
		}
	}
}

func edgeList(rs *records, opts Options, sink stream.Sink[[]byte]) error {
	rank := 0
	for {
		rec, line, err := rs.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if blank(rec) {
			continue
		}
		if len(rec) < 2 {
			return stream.Errorf(Format, line, "edge needs a source and a target")
		}
		weight := ""
		if opts.ImportEdgeWeights {
			if len(rec) < 3 {
				return stream.Errorf(Format, line, "edge has no weight")
			}
			weight = rec[2]
		}
		if err := edge(sink, rank, []byte(rec[0]), []byte(rec[1]), weight, line); err != nil {
			return err
		}
		rank++
	}
}

// matrix reads an adjacency matrix. When named is set the first record is
// the header of vertex ids and every row starts with its id; otherwise
// vertex i is positional(i).
func matrix[K stream.ID](rs *records, opts Options, sink stream.Sink[K], named func(string) K, positional func(int) K) error {
	var ids []K
	if named != nil {
		rec, _, err := rs.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		for _, field := range rec[1:] {
			ids = append(ids, named(field))
		}
		if err := vertices(sink, ids); err != nil {
			return err
		}
	}
	rank, row := 0, 0
	for {
		rec, line, err := rs.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		var source K
		if named != nil {
			source, rec = named(rec[0]), rec[1:]
		} else {
			if row == 0 {
				for i := range rec {
					ids = append(ids, positional(i))
				}
				if err := vertices(sink, ids); err != nil {
					return err
				}
			}
			if row >= len(ids) {
				return stream.Errorf(Format, line, "more rows than columns")
			}
			source = ids[row]
		}
		if len(rec) != len(ids) {
			return stream.Errorf(Format, line, "row has %d cells, want %d", len(rec), len(ids))
		}
		for col, cell := range rec {
			present, weight, err := opts.cell(cell)
			if err != nil {
				return stream.Errorf(Format, line, "column %d: %v", col+1, err)
			}
			if !present {
				continue
			}
			if err := edge(sink, rank, source, ids[col], weight, line); err != nil {
				return err
			}
			rank++
		}
		row++
	}
	if named == nil && row != len(ids) {
		return stream.Errorf(Format, 0, "matrix has %d rows and %d columns", row, len(ids))
	}
	return nil
}

var errZeroCell = stderrors.New("explicit 0 cell is ambiguous without MatrixZeroWhenNoEdge or MatrixZeroWeightEdges")

// cell decodes one matrix cell into edge presence and, when weights are
// imported, the weight text.
func (o Options) cell(text string) (bool, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, "", nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return false, "", err
	}
	if v == 0 {
		switch {
		case o.MatrixZeroWhenNoEdge:
			return false, "", nil
		case !o.MatrixZeroWeightEdges:
			return false, "", errZeroCell
		}
	}
	if !o.ImportEdgeWeights {
		return true, "", nil
	}
	return true, text, nil
}

func vertex[K stream.ID](sink stream.Sink[K], id K) error {
	if err := sink.Vertex(id); err != nil {
		return err
	}
	return sink.VertexDone(id)
}

func vertices[K stream.ID](sink stream.Sink[K], ids []K) error {
	for _, id := range ids {
		if err := vertex(sink, id); err != nil {
			return err
		}
	}
	return nil
}

func edge[K stream.ID](sink stream.Sink[K], rank int, source, target K, weight string, line int) error {
	if err := sink.Edge(rank, source, target); err != nil {
		return err
	}
	if weight != "" {
		if _, err := strconv.ParseFloat(strings.TrimSpace(weight), 64); err != nil {
			return stream.Errorf(Format, line, "invalid weight %q", weight)
		}
		if err := sink.EdgeAttribute(rank, []byte("weight"), bytes.TrimSpace([]byte(weight))); err != nil {
			return err
		}
	}
	return sink.EdgeDone(rank)
}

func blank(rec []string) bool {
	return len(rec) == 0 || len(rec) == 1 && strings.TrimSpace(rec[0]) == ""
}
