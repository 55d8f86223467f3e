package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	query := flag.String("q", "Electrician", "job title passed to resolve_job")
	flag.Parse()

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "occupation-insights-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testBackendHealth(ctx, session)
	testResolveJob(ctx, session, *query)
	testSOCInsights(ctx, session)

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func testBackendHealth(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: backend_health")
	call(ctx, session, "backend_health", map[string]any{})
}

func testResolveJob(ctx context.Context, session *mcp.ClientSession, query string) {
	fmt.Println("\nTEST: resolve_job")

	call(ctx, session, "resolve_job", map[string]any{
		"query":      query,
		"session_id": "test-client",
	})

	fmt.Println("\n  resolve_job with a misspelled title")
	call(ctx, session, "resolve_job", map[string]any{
		"query": "Sfotware Dev",
	})

	fmt.Println("\n  resolve_job with an empty query")
	call(ctx, session, "resolve_job", map[string]any{
		"query": "   ",
	})
}

func testSOCInsights(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: soc_insights")

	call(ctx, session, "soc_insights", map[string]any{})

	fmt.Println("\n  soc_insights for skills of 15-1252.00")
	call(ctx, session, "soc_insights", map[string]any{
		"soc_code": "15-1252.00",
		"category": "skills",
	})
}

func call(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		log.Printf("%s failed: %v", name, err)
		return
	}
	if result.IsError {
		fmt.Printf("  (%s reported an error)\n", name)
	}
	printResult(result)
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
