package csvgraph

import (
	"fmt"
	"strings"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// Mode selects the CSV sub-format.
type Mode int

const (
	// AdjacencyList lines hold a vertex followed by its out-neighbors.
	AdjacencyList Mode = iota
	// EdgeList lines hold one edge: source, target and optionally a weight.
	EdgeList
	// Matrix rows hold one adjacency-matrix row each.
	Matrix
)

var modeNames = [...]string{"adjacencylist", "edgelist", "matrix"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts the names printed by Mode.String, case-insensitively,
// with optional underscores ("ADJACENCY_LIST").
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.ReplaceAll(s, "_", ""))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, errors.InvalidArgument("unknown csv format %q", s)
}

// Options configures CSV parsing.
type Options struct {
	Format Mode
	// Delimiter separates fields. Zero means a comma.
	Delimiter rune
	// ImportEdgeWeights reads weights: "id:weight" neighbors in adjacency
	// lists, a third field in edge lists and cell values in matrices.
	ImportEdgeWeights bool
	// MatrixNodeIDs expects a header row of vertex ids and a leading id
	// field on every matrix row.
	MatrixNodeIDs bool
	// MatrixZeroWhenNoEdge makes a 0 cell mean "no edge". When false an
	// empty cell means "no edge".
	MatrixZeroWhenNoEdge bool
	// MatrixZeroWeightEdges accepts an explicit 0 cell as a zero-weight
	// edge when MatrixZeroWhenNoEdge is false. Without it such a cell is
	// rejected.
	MatrixZeroWeightEdges bool
}

// DefaultOptions returns the adjacency-list defaults.
func DefaultOptions() Options {
	return Options{Format: AdjacencyList, Delimiter: ',', MatrixZeroWhenNoEdge: true}
}

// Validate checks the delimiter.
func (o Options) Validate() error {
	if o.Format < AdjacencyList || o.Format > Matrix {
		return errors.InvalidArgument("unknown csv format %d", int(o.Format))
	}
	if o.Delimiter == 0 {
		return nil
	}
	if err := errors.ValidateDelimiter(o.Delimiter); err != nil {
		return err
	}
	if o.Format == AdjacencyList && o.ImportEdgeWeights && o.Delimiter == ':' {
		return errors.InvalidArgument("delimiter ':' clashes with weighted adjacency lists")
	}
	return nil
}

// IntegerShaped reports whether the options select the integer-id
// MatrixParser rather than Parser.
func (o Options) IntegerShaped() bool {
	return o.Format == Matrix && !o.MatrixNodeIDs
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}
