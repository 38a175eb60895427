// Package g6 reads Brendan McKay's graph6 and sparse6 encodings.
//
// Both encode an undirected graph on vertices 0..n-1 as printable ASCII.
// graph6 stores the upper triangle of the adjacency matrix and therefore
// describes simple graphs only; sparse6, recognised by a leading ':',
// stores an edge list and admits self-loops and parallel edges. An
// optional ">>graph6<<" or ">>sparse6<<" header is skipped. Only the first
// graph of the input is read.
//
// Vertex ids are reported as decimal text. Each vertex also carries its
// position as the attribute "ID".
package g6

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/matzehuels/graphkit/pkg/io/stream"
)

// Format is the tag used in errors.
const Format = "graph6"

var headers = [][]byte{[]byte(">>graph6<<"), []byte(">>sparse6<<")}

// Parser reads graph6 or sparse6.
type Parser struct{}

var _ stream.Parser[[]byte] = Parser{}

// Parse implements stream.Parser.
func (Parser) Parse(ctx context.Context, r io.Reader, sink stream.Sink[[]byte]) error {
	line, offset, err := firstLine(r)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, h := range headers {
		if bytes.HasPrefix(line, h) {
			line, offset = line[len(h):], offset+int64(len(h))
			break
		}
	}
	d := &decoder{data: line, base: offset}
	sparse := false
	switch {
	case len(line) > 0 && line[0] == ':':
		sparse = true
		d.pos++
	case len(line) > 0 && line[0] == ';':
		return stream.AtOffset(Format, offset, fmt.Errorf("incremental sparse6 is not supported"))
	}
	for i, c := range line[d.pos:] {
		if c < 63 || c > 126 {
			return stream.AtOffset(Format, offset+int64(d.pos+i), fmt.Errorf("invalid character %q", c))
		}
	}
	n, err := d.size()
	if err != nil {
		return err
	}
	ids := make([][]byte, n)
	for v := range n {
		ids[v] = strconv.AppendInt(nil, int64(v), 10)
		if err := sink.Vertex(ids[v]); err != nil {
			return err
		}
		if err := sink.VertexAttribute(ids[v], []byte("ID"), ids[v]); err != nil {
			return err
		}
		if err := sink.VertexDone(ids[v]); err != nil {
			return err
		}
	}
	emit := func(rank, u, v int) error {
		if err := sink.Edge(rank, ids[u], ids[v]); err != nil {
			return err
		}
		return sink.EdgeDone(rank)
	}
	if sparse {
		return d.sparse(ctx, n, emit)
	}
	return d.dense(ctx, n, emit)
}

func firstLine(r io.Reader) ([]byte, int64, error) {
	br := bufio.NewReader(r)
	var offset int64
	for {
		line, err := br.ReadBytes('\n')
		trimmed := bytes.TrimRight(line, "\r\n")
		if len(bytes.TrimSpace(trimmed)) > 0 {
			return trimmed, offset, nil
		}
		offset += int64(len(line))
		if err == io.EOF {
			return nil, offset, stream.AtOffset(Format, offset, io.ErrUnexpectedEOF)
		}
		if err != nil {
			return nil, offset, err
		}
	}
}

// decoder walks the six-bit groups of one encoded graph.
type decoder struct {
	data []byte
	base int64
	pos  int
	bit  int // next bit within data[pos], 0 is the most significant
}

func (d *decoder) errorf(msg string, args ...any) error {
	return stream.AtOffset(Format, d.base+int64(d.pos), fmt.Errorf(msg, args...))
}

func (d *decoder) group() (int, error) {
	if d.pos >= len(d.data) {
		return 0, d.errorf("truncated input")
	}
	v := int(d.data[d.pos]) - 63
	d.pos++
	return v, nil
}

// size decodes N(n).
func (d *decoder) size() (int, error) {
	first, err := d.group()
	if err != nil {
		return 0, err
	}
	if first < 63 {
		return first, nil
	}
	groups := 3
	if d.pos < len(d.data) && d.data[d.pos] == 126 {
		d.pos++
		groups = 6
	}
	n := 0
	for range groups {
		g, err := d.group()
		if err != nil {
			return 0, err
		}
		n = n<<6 | g
	}
	return n, nil
}

// bits returns the next k bits, or false once the data is exhausted.
func (d *decoder) bits(k int) (int, bool) {
	v := 0
	for range k {
		if d.pos >= len(d.data) {
			return 0, false
		}
		b := (int(d.data[d.pos]) - 63) >> (5 - d.bit) & 1
		v = v<<1 | b
		if d.bit++; d.bit == 6 {
			d.bit = 0
			d.pos++
		}
	}
	return v, true
}

func (d *decoder) dense(ctx context.Context, n int, emit func(rank, u, v int) error) error {
	need := (n*(n-1)/2 + 5) / 6
	if len(d.data)-d.pos < need {
		return d.errorf("graph6 body has %d bytes, want %d", len(d.data)-d.pos, need)
	}
	rank := 0
	for j := 1; j < n; j++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range j {
			b, _ := d.bits(1)
			if b == 0 {
				continue
			}
			if err := emit(rank, i, j); err != nil {
				return err
			}
			rank++
		}
	}
	return nil
}

func (d *decoder) sparse(ctx context.Context, n int, emit func(rank, u, v int) error) error {
	k := 1
	for 1<<k < n {
		k++
	}
	rank, v := 0, 0
	for {
		if rank%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		b, ok := d.bits(1)
		if !ok {
			return nil
		}
		x, ok := d.bits(k)
		if !ok {
			return nil
		}
		if b == 1 {
			v++
		}
		// Padding may decode to an out-of-range vertex.
		if x >= n || v >= n {
			return nil
		}
		if x > v {
			v = x
			continue
		}
		if err := emit(rank, x, v); err != nil {
			return err
		}
		rank++
	}
}
