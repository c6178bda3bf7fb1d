package query

import (
	"sort"

	"github.com/nervousmammoth/neo4j-api/internal/graphdb"
)

// orderedMap deduplicates items by key while preserving first-insertion
// order. A later put for an existing key replaces the item in place without
// moving it.
type orderedMap[T any] struct {
	index map[string]int
	items []T
}

func newOrderedMap[T any]() *orderedMap[T] {
	// items starts non-nil so an empty result serializes as [] rather
	// than null.
	return &orderedMap[T]{index: map[string]int{}, items: []T{}}
}

func (m *orderedMap[T]) put(key string, item T) {
	if i, ok := m.index[key]; ok {
		m.items[i] = item
		return
	}
	m.index[key] = len(m.items)
	m.items = append(m.items, item)
}

func (m *orderedMap[T]) ordered() []T {
	return m.items
}

// ExtractGraphElements walks query-result records depth-first and collects
// every node and relationship into deduplicated, insertion-ordered
// collections in Linkurious format.
//
// Cypher gives no static shape guarantee for projected values: nodes and
// relationships may arrive at any nesting depth (inside collect(), inside
// maps, inside decomposed paths), so every list and map is recursed into.
// Scalars contribute nothing.
func ExtractGraphElements(records []graphdb.Record) ([]Node, []Edge) {
	nodes := newOrderedMap[Node]()
	edges := newOrderedMap[Edge]()

	for _, rec := range records {
		for _, value := range rec.Values {
			processValue(value, nodes, edges)
		}
	}

	return nodes.ordered(), edges.ordered()
}

func processValue(v graphdb.Value, nodes *orderedMap[Node], edges *orderedMap[Edge]) {
	switch val := v.(type) {
	case graphdb.Node:
		nodes.put(val.ElementID, convertNode(val))

	case graphdb.Relationship:
		// An edge is only emitted when both endpoints are known; a
		// resolvable endpoint is still projected as a node either way.
		if val.Start != nil && val.End != nil {
			edges.put(val.ElementID, Edge{
				ID:     val.ElementID,
				Source: val.Start.ElementID,
				Target: val.End.ElementID,
				Data: EdgeData{
					Type:       val.Type,
					Properties: orEmptyProps(val.Properties),
				},
			})
		}
		if val.Start != nil {
			nodes.put(val.Start.ElementID, convertNode(*val.Start))
		}
		if val.End != nil {
			nodes.put(val.End.ElementID, convertNode(*val.End))
		}

	case graphdb.List:
		for _, item := range val {
			processValue(item, nodes, edges)
		}

	case graphdb.Map:
		// Sorted keys keep the walk deterministic; Go map iteration
		// order is randomized.
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			processValue(val[k], nodes, edges)
		}
	}
}

func convertNode(n graphdb.Node) Node {
	categories := n.Labels
	if categories == nil {
		categories = []string{}
	}
	return Node{
		ID: n.ElementID,
		Data: NodeData{
			Categories: categories,
			Properties: orEmptyProps(n.Properties),
		},
	}
}

func orEmptyProps(props map[string]any) map[string]any {
	if props == nil {
		return map[string]any{}
	}
	return props
}
