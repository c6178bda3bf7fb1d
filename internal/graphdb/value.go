package graphdb

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Value is the closed set of shapes a query-result value can take once it
// crosses the driver boundary. Handlers and the projector only ever see
// these five variants, never driver types.
type Value interface {
	isValue()
}

// Node is a graph node value.
type Node struct {
	ElementID  string
	Labels     []string
	Properties map[string]any
}

// Relationship is a graph relationship value. Start and End are nil when the
// driver reported no endpoint identifier for that side.
type Relationship struct {
	ElementID  string
	Type       string
	Start      *Node
	End        *Node
	Properties map[string]any
}

// List is an ordered collection value (collect(), path decomposition, ...).
type List []Value

// Map is a projected map value; keys carry no graph identity.
type Map map[string]Value

// Scalar wraps every remaining value kind (string, number, bool, nil,
// temporal and spatial types).
type Scalar struct {
	Val any
}

func (Node) isValue()         {}
func (Relationship) isValue() {}
func (List) isValue()         {}
func (Map) isValue()          {}
func (Scalar) isValue()       {}

// Record is one query-result row. Values holds one entry per key, in the
// column order the database returned.
type Record struct {
	Keys   []string
	Values []Value
}

// ConvertRecords adapts driver records to the closed value model.
func ConvertRecords(records []*neo4j.Record) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		out = append(out, convertRecord(rec))
	}
	return out
}

func convertRecord(rec *neo4j.Record) Record {
	// Index every hydrated node in the record first so relationship
	// endpoints resolve to the same snapshot the record itself carries,
	// regardless of column order.
	nodes := map[string]*Node{}
	for _, v := range rec.Values {
		indexNodes(v, nodes)
	}

	converted := Record{
		Keys:   rec.Keys,
		Values: make([]Value, 0, len(rec.Values)),
	}
	for _, v := range rec.Values {
		converted.Values = append(converted.Values, convertValue(v, nodes))
	}
	return converted
}

func indexNodes(v any, nodes map[string]*Node) {
	switch val := v.(type) {
	case dbtype.Node:
		n := convertNode(val)
		nodes[n.ElementID] = n
	case dbtype.Path:
		for _, pn := range val.Nodes {
			n := convertNode(pn)
			nodes[n.ElementID] = n
		}
	case []any:
		for _, item := range val {
			indexNodes(item, nodes)
		}
	case map[string]any:
		for _, item := range val {
			indexNodes(item, nodes)
		}
	}
}

func convertNode(n dbtype.Node) *Node {
	return &Node{
		ElementID:  n.ElementId,
		Labels:     n.Labels,
		Properties: n.Props,
	}
}

// endpoint resolves a relationship endpoint by element id. A node hydrated
// elsewhere in the record wins; otherwise an id-only stub is emitted, and an
// empty id means the endpoint is unknown.
func endpoint(elementID string, nodes map[string]*Node) *Node {
	if elementID == "" {
		return nil
	}
	if n, ok := nodes[elementID]; ok {
		return n
	}
	return &Node{
		ElementID:  elementID,
		Labels:     []string{},
		Properties: map[string]any{},
	}
}

func convertRelationship(r dbtype.Relationship, nodes map[string]*Node) Relationship {
	return Relationship{
		ElementID:  r.ElementId,
		Type:       r.Type,
		Start:      endpoint(r.StartElementId, nodes),
		End:        endpoint(r.EndElementId, nodes),
		Properties: r.Props,
	}
}

func convertValue(v any, nodes map[string]*Node) Value {
	switch val := v.(type) {
	case dbtype.Node:
		return *convertNode(val)
	case dbtype.Relationship:
		return convertRelationship(val, nodes)
	case dbtype.Path:
		// A path decomposes into its nodes followed by its relationships.
		list := make(List, 0, len(val.Nodes)+len(val.Relationships))
		for _, n := range val.Nodes {
			list = append(list, *convertNode(n))
		}
		for _, r := range val.Relationships {
			list = append(list, convertRelationship(r, nodes))
		}
		return list
	case []any:
		list := make(List, 0, len(val))
		for _, item := range val {
			list = append(list, convertValue(item, nodes))
		}
		return list
	case map[string]any:
		m := make(Map, len(val))
		for k, item := range val {
			m[k] = convertValue(item, nodes)
		}
		return m
	default:
		return Scalar{Val: v}
	}
}
