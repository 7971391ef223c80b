package steam

import (
	"context"
	"encoding/json"
)

// API defines the interface for Steam operations
type API interface {
	// GetRequest performs an authenticated GET and returns the raw JSON body
	GetRequest(ctx context.Context, endpoint string, query []QueryParam) (json.RawMessage, error)

	// GetUserLibrary retrieves the games owned by a user
	GetUserLibrary(ctx context.Context, steamID string) (*UserLibrary, error)
}

var _ API = (*Client)(nil)
