package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Client wraps the Neo4j driver for reuse across repositories
type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

// Config holds Neo4j connection configuration
type Config struct {
	URI      string
	Username string
	Password string
	// Database selects a named database; empty uses the server default
	Database string
}

// NewClient creates and verifies a Neo4j client connection
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("neo4j: uri is required")
	}

	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	return &Client{driver: driver, database: cfg.Database}, nil
}

// Close closes the Neo4j driver connection
func (c *Client) Close(ctx context.Context) error {
	if c != nil && c.driver != nil {
		return c.driver.Close(ctx)
	}
	return nil
}

// NewSession opens a session on the configured database
func (c *Client) NewSession(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode, DatabaseName: c.database})
}

// Read runs query in a managed read transaction and collects every record
func (c *Client) Read(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	session := c.NewSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return out.([]*neo4j.Record), nil
}

// Write runs query in a managed write transaction and collects every record
func (c *Client) Write(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	session := c.NewSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return out.([]*neo4j.Record), nil
}

// Apply runs schema statements one by one, each in its own auto-commit transaction
func (c *Client) Apply(ctx context.Context, statements ...string) error {
	session := c.NewSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	for _, stmt := range statements {
		result, err := session.Run(ctx, stmt, nil)
		if err != nil {
			return fmt.Errorf("neo4j: %q: %w", stmt, err)
		}
		if _, err := result.Consume(ctx); err != nil {
			return fmt.Errorf("neo4j: %q: %w", stmt, err)
		}
	}
	return nil
}
