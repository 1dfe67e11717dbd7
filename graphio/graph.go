// Package graphio reads node-link graph files and watches them for changes
// The format is networkx node_link_data as consumed by netwulf
package graphio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrEmptyGraph is returned for files without a nodes array
var ErrEmptyGraph = errors.New("graph has no nodes")

// ID is a node reference that may be written as a JSON string or number
type ID string

// UnmarshalJSON accepts strings, numbers and booleans
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ID(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*id = ID(strconv.FormatBool(b))
		return nil
	}
	return fmt.Errorf("graph id %s: not a string or number", data)
}

// NodeData is one decoded node; pointer fields are nil when absent
type NodeData struct {
	ID    ID       `json:"id"`
	Size  *float64 `json:"size,omitempty"`
	Color string   `json:"color,omitempty"`
	Group *ID      `json:"group,omitempty"`
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
}

// LinkData is one decoded link
type LinkData struct {
	Source ID       `json:"source"`
	Target ID       `json:"target"`
	Weight *float64 `json:"weight,omitempty"`
}

// Graph is a decoded node-link document
type Graph struct {
	Nodes []NodeData `json:"nodes"`
	Links []LinkData `json:"links"`
}

// document accepts bare node-link data and netwulf saves that wrap it
type document struct {
	Graph
	Edges    []LinkData `json:"edges"`
	Stylized *Graph     `json:"stylized_network"`
	Wrapped  *Graph     `json:"Graph"`
	Network  *Graph     `json:"network"`
}

// Decode reads a graph from r
// A netwulf save prefers the stylized network, which carries the drawn positions
func Decode(r io.Reader) (*Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}

	g := doc.Graph
	for _, alt := range []*Graph{doc.Stylized, doc.Network, doc.Wrapped} {
		if len(g.Nodes) == 0 && alt != nil {
			g = *alt
		}
	}
	// networkx 3.4 writes "edges" instead of "links"
	if len(g.Links) == 0 && len(doc.Edges) > 0 {
		g.Links = doc.Edges
	}
	if len(g.Nodes) == 0 {
		return nil, ErrEmptyGraph
	}
	return &g, nil
}

// ReadFile decodes the graph at path
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// HasPositions reports whether every node carries both x and y
func (g *Graph) HasPositions() bool {
	if len(g.Nodes) == 0 {
		return false
	}
	for i := range g.Nodes {
		if g.Nodes[i].X == nil || g.Nodes[i].Y == nil {
			return false
		}
	}
	return true
}
