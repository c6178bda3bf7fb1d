package query

// QueryRequest is the request body for the query endpoint.
type QueryRequest struct {
	Query      string         `json:"query"`
	Parameters map[string]any `json:"parameters"`
}

// Node is a graph node in Linkurious format.
type Node struct {
	ID   string   `json:"id"`
	Data NodeData `json:"data"`
}

// NodeData carries a node's categories (labels) and properties.
type NodeData struct {
	Categories []string       `json:"categories"`
	Properties map[string]any `json:"properties"`
}

// Edge is a graph relationship in Linkurious format.
type Edge struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Data   EdgeData `json:"data"`
}

// EdgeData carries a relationship's type and properties.
type EdgeData struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// QueryMeta describes one query execution.
type QueryMeta struct {
	QueryType       string  `json:"query_type"`
	RecordsReturned int     `json:"records_returned"`
	ExecutionTimeMs float64 `json:"execution_time_ms"`
}

// QueryResponse is the query endpoint's success payload.
//
// TruncatedByLimit is a constant false: the gateway performs no limit
// detection, the field exists for wire compatibility.
type QueryResponse struct {
	Nodes            []Node    `json:"nodes"`
	Edges            []Edge    `json:"edges"`
	TruncatedByLimit bool      `json:"truncatedByLimit"`
	Meta             QueryMeta `json:"meta"`
}
