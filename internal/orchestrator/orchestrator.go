// Package orchestrator implements the key-failover scan used by every
// generation call: try each credential in stored order until one
// succeeds, reporting failed indices back to the caller.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
)

// CallFunc performs one generation attempt with a single credential.
type CallFunc[T any] func(ctx context.Context, key string) (T, error)

// ErrNoCredentials is returned when the scan is given an empty pool.
var ErrNoCredentials = fmt.Errorf("no credentials configured")

// ExhaustedCredentialsError means every credential in the pool failed
// for this call. LastErr carries the final provider error for display.
type ExhaustedCredentialsError struct {
	Attempts int
	LastErr  error
}

func (e *ExhaustedCredentialsError) Error() string {
	return fmt.Sprintf("all %d credentials failed: %v", e.Attempts, e.LastErr)
}

func (e *ExhaustedCredentialsError) Unwrap() error {
	return e.LastErr
}

// GenerateWithFailover attempts call against each key in order starting
// at index 0, returning the first success and the index that served it.
// Each failure invokes onKeyFailure(i) before the next attempt. Stored
// key status is advisory only: every key in the slice is attempted,
// since a key marked valid at check time can still be over quota now.
//
// The scan always restarts from the front rather than from the last
// successful index, so a recovered key earlier in the list is preferred
// on the very next call.
func GenerateWithFailover[T any](ctx context.Context, keys []string, call CallFunc[T], onKeyFailure func(index int)) (T, int, error) {
	var zero T

	if len(keys) == 0 {
		return zero, -1, ErrNoCredentials
	}

	var lastErr error
	for i, key := range keys {
		if err := ctx.Err(); err != nil {
			return zero, -1, err
		}

		result, err := call(ctx, key)
		if err == nil {
			return result, i, nil
		}

		lastErr = err
		slog.Debug("credential failed, trying next", "index", i, "error", err)
		if onKeyFailure != nil {
			onKeyFailure(i)
		}
	}

	return zero, -1, &ExhaustedCredentialsError{Attempts: len(keys), LastErr: lastErr}
}
