package provider

import (
	"context"
	"sync"
	"time"

	"github.com/elsanchez/niche-finder/internal/domain"
)

// probeTimeout bounds each individual validation probe so one dead key
// cannot hold the whole fan-out open.
const probeTimeout = 15 * time.Second

// ValidateAll probes every key concurrently and waits for all results.
// Each probe resolves independently; the join only batches delivery.
// The caller is expected to have flipped statuses to checking before
// dispatching this.
func ValidateAll(ctx context.Context, c Client, keys []string) []domain.CredentialStatus {
	statuses := make([]domain.CredentialStatus, len(keys))

	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
			defer cancel()

			if c.Validate(probeCtx, key) {
				statuses[i] = domain.StatusValid
			} else {
				statuses[i] = domain.StatusInvalid
			}
		}(i, key)
	}
	wg.Wait()

	return statuses
}
