package main

import "context"

// DB is the slice of the connection pool the HTTP layer needs.
// *pgxpool.Pool and pgxmock pools both satisfy it.
type DB interface {
	Ping(ctx context.Context) error
}

type StatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
