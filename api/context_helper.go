package api

import (
	"context"
	"time"
)

// QueryTimeout is the default timeout for database queries
var QueryTimeout = 10 * time.Second

// SetQueryTimeout overrides QueryTimeout, ignoring non-positive values
func SetQueryTimeout(d time.Duration) {
	if d > 0 {
		QueryTimeout = d
	}
}

// WithQueryTimeout creates a context with query timeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}
