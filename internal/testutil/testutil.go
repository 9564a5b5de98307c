// Package testutil provides shared test helpers, including an in-memory
// Redis (miniredis) for exercising the Redis persistence medium without a
// running server.
package testutil
