package cricket

import "context"

// Provider exposes the upstream match feed.
type Provider interface {
	FetchCurrentMatches(ctx context.Context) ([]RawMatch, error)
	FetchRaw(ctx context.Context) ([]byte, error)
}
