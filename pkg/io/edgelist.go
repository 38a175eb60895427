package io

import (
	"context"
	"strconv"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
	"github.com/matzehuels/graphkit/pkg/identity"
	"github.com/matzehuels/graphkit/pkg/io/stream"
)

// ReadEdgeList parses src without building a graph and returns its edges
// in input order. Endpoints are the file ids as text; weights default to
// 1. Vertices without edges and all other attributes are dropped.
func ReadEdgeList(ctx context.Context, format Format, src Source, opts ...Option[string]) ([]graph.Triple[string], error) {
	cfg := &config[string]{settings: DefaultSettings()}
	for _, opt := range opts {
		opt(cfg)
	}
	factory, err := lookup(format, identity.REF, src.kind)
	if err != nil {
		return nil, err
	}
	p, err := factory(cfg.settings)
	if err != nil {
		return nil, err
	}
	r, closer, err := open(src)
	if err != nil {
		return nil, err
	}
	defer closer()

	in := stream.Decode(r)
	if p.Integer != nil {
		c := &collector[int64]{ctx: inCallback(ctx), cfg: cfg}
		err = finish(format, p.Integer.Parse(ctx, in, c), noop)
		return c.edges, err
	}
	c := &collector[[]byte]{ctx: inCallback(ctx), cfg: cfg}
	err = finish(format, p.String.Parse(ctx, in, c), noop)
	return c.edges, err
}

func noop(bool) error { return nil }

// collector is a sink that keeps edges only.
type collector[K stream.ID] struct {
	ctx   context.Context
	cfg   *config[string]
	edges []graph.Triple[string]
	ranks map[int]int
}

func (c *collector[K]) id(id K) (string, error) {
	if n, ok := any(id).(int64); ok {
		if c.cfg.integerImportID != nil {
			return c.cfg.integerImportID(c.ctx, n)
		}
		if c.cfg.importID != nil {
			return c.cfg.importID(c.ctx, strconv.FormatInt(n, 10))
		}
	}
	s, err := text(id)
	if err != nil || c.cfg.importID == nil {
		return s, err
	}
	return c.cfg.importID(c.ctx, s)
}

func (c *collector[K]) Vertex(K) error                          { return nil }
func (c *collector[K]) VertexAttribute(K, []byte, []byte) error { return nil }
func (c *collector[K]) VertexDone(K) error                      { return nil }
func (c *collector[K]) EdgeDone(int) error                      { return nil }
func (c *collector[K]) GraphAttribute([]byte, []byte) error     { return nil }

func (c *collector[K]) Edge(rank int, source, target K) error {
	u, err := c.id(source)
	if err != nil {
		return err
	}
	v, err := c.id(target)
	if err != nil {
		return err
	}
	if c.ranks == nil {
		c.ranks = make(map[int]int)
	}
	c.ranks[rank] = len(c.edges)
	c.edges = append(c.edges, graph.Triple[string]{Source: u, Target: v, Weight: 1})
	return nil
}

func (c *collector[K]) EdgeAttribute(rank int, key, value []byte) error {
	if string(key) != graph.WeightKey {
		return nil
	}
	i, ok := c.ranks[rank]
	if !ok {
		return errors.New(errors.ErrCodeInvalidState, "weight for unknown edge rank %d", rank)
	}
	w, err := strconv.ParseFloat(string(value), 64)
	if err != nil {
		return errors.New(errors.ErrCodeClassCast, "edge weight %q is not a number", value)
	}
	c.edges[i].Weight = w
	return nil
}
