package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
)

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server *sdkmcp.Server
	logger *logging.Logger
	names  []string
}

// Register applies the provided tool options and returns the registered tool names
func Register(server *sdkmcp.Server, logger *logging.Logger, opts ...Option) []string {
	if logger == nil {
		logger = logging.NewNop()
	}
	reg := &registry{server: server, logger: logger.Named("tools")}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
	reg.logger.Info("mcp tools registered", "tools", reg.names)
	return reg.names
}

func (r *registry) add(name string) {
	r.names = append(r.names, name)
}
