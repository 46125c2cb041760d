// Package idempotency replays stored responses for duplicate create
// requests identified by an Idempotency-Key header.
package idempotency

import "context"

// StoredResponse is the captured result of a previously processed request.
type StoredResponse struct {
	StatusCode int
	Body       []byte
	EntityID   string
}

// Store persists responses keyed by idempotency key. Get returns (nil, nil)
// when the key has not been seen. Save keeps the first response written for
// a key; later writes for the same key are ignored.
type Store interface {
	Get(ctx context.Context, key string) (*StoredResponse, error)
	Save(ctx context.Context, key string, response StoredResponse) error
}
