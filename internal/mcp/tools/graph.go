package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const defaultGraphLimit = 20

// GraphReader runs read-only Cypher; *neo4j.Client from pkg/neo4j satisfies it
type GraphReader interface {
	Read(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error)
}

// GraphToolParams defines the arguments for the graph_tool tool
type GraphToolParams struct {
	Cypher  string         `json:"cypher,omitempty" jsonschema:"Custom read-only Cypher query to run"`
	Params  map[string]any `json:"params,omitempty" jsonschema:"Parameters for the custom query"`
	Company string         `json:"company,omitempty" jsonschema:"List the postings of this company"`
	Skill   string         `json:"skill,omitempty" jsonschema:"List stored trends of this skill across roles"`
	Limit   int            `json:"limit,omitempty" jsonschema:"Row cap for canned queries (default 20)"`
}

type graphToolHandler struct {
	client GraphReader
}

// WithGraphTool registers the graph_tool. A nil client skips registration.
func WithGraphTool(client GraphReader) Option {
	return func(reg *registry) {
		if client == nil {
			return
		}
		handler := graphToolHandler{client: client}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "graph_tool",
			Description: "Developer tool for inspecting the Neo4j posting graph",
		}, handler.handle)
		reg.add("graph_tool")
	}
}

func (h *graphToolHandler) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *GraphToolParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &GraphToolParams{}
	}
	query, queryParams := graphQuery(*params)

	records, err := h.client.Read(ctx, query, queryParams)
	if err != nil {
		return errorResult("graph_tool", "query execution failed: %v", err), nil, nil
	}

	return textResult(formatRecords(records)), nil, nil
}

func graphQuery(p GraphToolParams) (string, map[string]any) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultGraphLimit
	}

	switch {
	case p.Cypher != "":
		return p.Cypher, p.Params
	case p.Company != "":
		return `
			MATCH (p:Posting)-[:POSTED_BY]->(c:Company {name: $company})
			RETURN p.title AS title, p.location AS location, p.postedDate AS posted
			ORDER BY p.postedDate DESC
			LIMIT $limit
		`, map[string]any{"company": p.Company, "limit": limit}
	case p.Skill != "":
		return `
			MATCH (t:SkillTrend)-[:OF]->(s:Skill {name: $skill})
			RETURN t.role AS role, t.frequency AS frequency
			ORDER BY t.frequency DESC, t.role ASC
			LIMIT $limit
		`, map[string]any{"skill": strings.ToLower(p.Skill), "limit": limit}
	default:
		return "MATCH (n) RETURN labels(n) AS labels, count(n) AS count ORDER BY count DESC LIMIT $limit",
			map[string]any{"limit": limit}
	}
}

func formatRecords(records []*neo4j.Record) string {
	if len(records) == 0 {
		return "Query executed successfully but returned no rows"
	}

	var sb strings.Builder
	sb.WriteString("Results:\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for i, record := range records {
		sb.WriteString(fmt.Sprintf("Row %d:\n", i+1))
		for _, key := range record.Keys {
			val, _ := record.Get(key)
			sb.WriteString(fmt.Sprintf("  %s: %s\n", key, formatValue(val)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatValue(val any) string {
	if val == nil {
		return "null"
	}

	switch v := val.(type) {
	case neo4j.Node:
		propsJSON, _ := json.Marshal(v.Props)
		return fmt.Sprintf("Node%v %s", v.Labels, propsJSON)
	case neo4j.Relationship:
		propsJSON, _ := json.Marshal(v.Props)
		return fmt.Sprintf("Relationship[%s] %s", v.Type, propsJSON)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, formatValue(item))
		}
		return "[" + strings.Join(items, ", ") + "]"
	case string:
		return fmt.Sprintf("%q", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%.2f", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
