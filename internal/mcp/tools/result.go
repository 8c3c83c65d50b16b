package tools

import (
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

// errorResult reports a tool-level failure to the client without failing the call
func errorResult(tool, format string, args ...any) *sdkmcp.CallToolResult {
	res := textResult(fmt.Sprintf("[%s] ", tool) + fmt.Sprintf(format, args...))
	res.IsError = true
	return res
}
