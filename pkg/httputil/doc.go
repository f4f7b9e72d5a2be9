// Package httputil provides HTTP helpers shared by registry clients:
// retry with exponential backoff and a file-based response cache.
//
// Registry lookups (e.g. resolving the latest version of a package for
// "catalog add") are slow and rate-limited, so responses are cached on disk
// under ~/.cache/pnpm-extra/ with a configurable TTL. Only errors wrapped in
// [RetryableError] are retried; 4xx responses fail immediately.
package httputil
