package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
)

// Ingester runs one fetch-clean-store pass
type Ingester interface {
	Ingest(ctx context.Context, query domain.SearchQuery) (domain.IngestResult, error)
}

// JobIngestParams defines the arguments for the job_ingest tool
type JobIngestParams struct {
	Query    string `json:"query,omitempty" jsonschema:"Keywords passed to every provider"`
	Location string `json:"location,omitempty" jsonschema:"Optional location filter"`
}

type jobIngestTool struct {
	service  Ingester
	defaults domain.SearchQuery
	after    func(context.Context)
}

// WithJobIngest registers the job_ingest tool. after runs when postings were added.
func WithJobIngest(service Ingester, defaults domain.SearchQuery, after func(context.Context)) Option {
	return func(reg *registry) {
		if service == nil {
			return
		}
		handler := jobIngestTool{service: service, defaults: defaults, after: after}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_ingest",
			Description: "Fetch postings from the configured providers, clean and store them",
		}, handler.handle)
		reg.add("job_ingest")
	}
}

func (t jobIngestTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *JobIngestParams) (*sdkmcp.CallToolResult, any, error) {
	query := t.defaults
	if params != nil {
		if q := strings.TrimSpace(params.Query); q != "" {
			query.Keywords = q
		}
		if l := strings.TrimSpace(params.Location); l != "" {
			query.Location = l
		}
	}

	res, err := t.service.Ingest(ctx, query)
	if err != nil {
		return errorResult("job_ingest", "ingest failed: %v", err), nil, nil
	}
	if res.Added > 0 && t.after != nil {
		t.after(ctx)
	}

	msg := fmt.Sprintf("[job_ingest] fetched %d, added %d from %d source(s)", res.Fetched, res.Added, res.Sources)
	if len(res.Failures) > 0 {
		msg += fmt.Sprintf(" (failed: %s)", strings.Join(res.Failures, ", "))
	}
	return textResult(msg), res, nil
}
