package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// calls exercises every tool once with representative arguments
var calls = []struct {
	tool string
	args map[string]any
}{
	{"market_summary", nil},
	{"analyze_skills", map[string]any{"role": "python"}},
	{"skill_demand", map[string]any{"top": 10}},
	{"job_volume", map[string]any{"days": 30}},
	{"avg_salary", nil},
	{"company_distribution", map[string]any{"top": 5}},
	{"location_distribution", nil},
	{"experience_breakdown", nil},
	{"salary_histogram", map[string]any{"bins": 5}},
	{"role_distribution", map[string]any{"limit": 10}},
	{"skill_correlation", map[string]any{"mode": "pairs"}},
	{"skill_correlation", map[string]any{"mode": "graph", "top": 10}},
	{"job_ingest", map[string]any{"query": "developer"}},
	{"graph_tool", nil},
}

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	flag.Parse()

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "jobmarket-test-client",
		Version: "0.2.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	available := listTools(ctx, session)

	failed := 0
	for _, c := range calls {
		if !available[c.tool] {
			fmt.Printf("\nSKIP: %s (not registered)\n", c.tool)
			continue
		}
		if !callTool(ctx, session, c.tool, c.args) {
			failed++
		}
	}

	if failed > 0 {
		log.Fatalf("%d tool call(s) failed", failed)
	}
	fmt.Println("\nAll tests completed")
}

func listTools(ctx context.Context, session *mcp.ClientSession) map[string]bool {
	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		log.Fatalf("ListTools failed: %v", err)
	}

	names := make(map[string]bool, len(res.Tools))
	fmt.Println("Registered tools:")
	for _, t := range res.Tools {
		names[t.Name] = true
		fmt.Printf("  %s - %s\n", t.Name, t.Description)
	}
	return names
}

func callTool(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) bool {
	fmt.Printf("\nTEST: %s %v\n", name, args)
	if args == nil {
		args = map[string]any{}
	}

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		log.Printf("%s failed: %v", name, err)
		return false
	}

	printResult(result)
	if result.IsError {
		log.Printf("%s returned a tool error", name)
		return false
	}
	fmt.Printf("%s passed\n", name)
	return true
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
