package cache

import "github.com/pkg/errors"

// Contract violations. Both fail fast, before any state mutation;
// match with errors.Is.
var (
	// ErrInvalidCapacity is returned by New for a non-positive capacity.
	ErrInvalidCapacity = errors.New("cache: capacity must be a positive number of entries")

	// ErrInvalidTTL is returned for a TTL that is neither positive nor
	// the NoExpiry sentinel.
	ErrInvalidTTL = errors.New("cache: ttl must be a positive duration or NoExpiry")
)
