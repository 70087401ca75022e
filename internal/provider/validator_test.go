package provider

import (
	"context"
	"testing"

	"github.com/elsanchez/niche-finder/internal/domain"
)

// stubClient validates only the keys in its allow set
type stubClient struct {
	valid map[string]bool
}

func (s *stubClient) Provider() domain.Provider { return domain.ProviderGemini }

func (s *stubClient) Complete(_ context.Context, _ string, _ CompletionRequest) (string, error) {
	return "", nil
}

func (s *stubClient) Validate(_ context.Context, key string) bool {
	return s.valid[key]
}

func TestValidateAll_MixedPool(t *testing.T) {
	c := &stubClient{valid: map[string]bool{"good-1": true, "good-2": true}}

	statuses := ValidateAll(context.Background(), c, []string{"good-1", "dead", "good-2"})

	want := []domain.CredentialStatus{domain.StatusValid, domain.StatusInvalid, domain.StatusValid}
	if len(statuses) != len(want) {
		t.Fatalf("statuses len = %d, want %d", len(statuses), len(want))
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("statuses[%d] = %s, want %s", i, statuses[i], want[i])
		}
	}
}

func TestValidateAll_EmptyPool(t *testing.T) {
	statuses := ValidateAll(context.Background(), &stubClient{}, nil)
	if len(statuses) != 0 {
		t.Errorf("statuses = %v, want empty", statuses)
	}
}
