package graph

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strings"

	dgraph "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"go.trai.ch/zerr"
)

// Edge is one import from Source to Target, both bundle paths.
type Edge struct {
	Source string
	Target string
}

// ImportGraph is the import edge graph of a bundle.
type ImportGraph struct {
	g dgraph.Graph[string, string]
}

// NewImportGraph builds a graph with a vertex per file. Edge endpoints must
// be among files.
func NewImportGraph(files []string, edges []Edge) (*ImportGraph, error) {
	g := dgraph.New(dgraph.StringHash, dgraph.Directed())
	for _, f := range files {
		if err := g.AddVertex(f); err != nil && !errors.Is(err, dgraph.ErrVertexAlreadyExists) {
			return nil, zerr.Wrap(err, "failed to add import graph vertex")
		}
	}
	for _, e := range edges {
		err := g.AddEdge(e.Source, e.Target)
		if err != nil && !errors.Is(err, dgraph.ErrEdgeAlreadyExists) {
			return nil, zerr.With(zerr.Wrap(err, "failed to add import graph edge"), "edge", e.Source+" -> "+e.Target)
		}
	}
	return &ImportGraph{g: g}, nil
}

// Edges returns every import edge in sorted order.
func (ig *ImportGraph) Edges() []Edge {
	edges, err := ig.g.Edges()
	if err != nil {
		return nil
	}
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		out = append(out, Edge{Source: e.Source, Target: e.Target})
	}
	slices.SortFunc(out, func(a, b Edge) int {
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return strings.Compare(a.Target, b.Target)
	})
	return out
}

// Order returns the number of files in the graph.
func (ig *ImportGraph) Order() int {
	n, err := ig.g.Order()
	if err != nil {
		return 0
	}
	return n
}

// WriteDOT renders the graph in DOT. Statements are sorted so the output
// is stable between runs.
func (ig *ImportGraph) WriteDOT(w io.Writer) error {
	var buf bytes.Buffer
	if err := draw.DOT(ig.g, &buf); err != nil {
		return zerr.Wrap(err, "failed to render import graph")
	}

	var header, footer string
	var statements []string
	for line := range strings.Lines(buf.String()) {
		line = strings.TrimRight(line, "\n")
		switch trimmed := strings.TrimSpace(line); {
		case trimmed == "":
		case strings.HasPrefix(trimmed, "strict "):
			header = trimmed
		case trimmed == "}":
			footer = trimmed
		default:
			statements = append(statements, "\t"+trimmed)
		}
	}
	slices.Sort(statements)

	out := header + "\n" + strings.Join(statements, "\n")
	if len(statements) > 0 {
		out += "\n"
	}
	out += footer + "\n"
	_, err := io.WriteString(w, out)
	return err
}
