package shard

import "errors"

var (
	// ErrInvalidConfig is returned by Validate and LoadConfig.
	ErrInvalidConfig = errors.New("shard: invalid config")

	// ErrNoShard is returned when a task names a shard the pool does not have.
	ErrNoShard = errors.New("shard: no such shard")

	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("shard: pool closed")
)
