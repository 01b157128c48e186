package client

import (
	"context"

	"github.com/heva-credit/heva/internal/client/models"
)

// Client is the transport contract to the HEVA auth backend.
type Client interface {
	Close() error
	// Register submits a registration. On success it returns the raw
	// response body, which callers treat as opaque.
	Register(ctx context.Context, data models.RegisterData) ([]byte, error)
	// CheckEmail reports whether email is still free to register.
	CheckEmail(ctx context.Context, email string) (bool, error)
	RequestPasswordReset(ctx context.Context, email string) error
	Ping(ctx context.Context) error
}
