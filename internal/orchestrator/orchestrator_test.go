package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// flakyCall fails for every key except the ones listed in good.
func flakyCall(good map[string]bool, calls *[]string) CallFunc[string] {
	return func(_ context.Context, key string) (string, error) {
		*calls = append(*calls, key)
		if good[key] {
			return "result-" + key, nil
		}
		return "", fmt.Errorf("provider rejected %s", key)
	}
}

func TestGenerateWithFailover_FirstSuccessWins(t *testing.T) {
	var calls []string
	var failures []int

	result, index, err := GenerateWithFailover(
		context.Background(),
		[]string{"a", "b", "c"},
		flakyCall(map[string]bool{"c": true}, &calls),
		func(i int) { failures = append(failures, i) },
	)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if index != 2 {
		t.Errorf("successful index = %d, want 2", index)
	}
	if result != "result-c" {
		t.Errorf("result = %q, want result-c", result)
	}
	if len(failures) != 2 || failures[0] != 0 || failures[1] != 1 {
		t.Errorf("failure callbacks = %v, want [0 1]", failures)
	}
	if len(calls) != 3 {
		t.Errorf("attempts = %d, want 3 (no calls after first success)", len(calls))
	}
}

func TestGenerateWithFailover_StopsAtFirstSuccess(t *testing.T) {
	var calls []string

	_, index, err := GenerateWithFailover(
		context.Background(),
		[]string{"a", "b", "c"},
		flakyCall(map[string]bool{"a": true, "b": true}, &calls),
		nil,
	)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if index != 0 {
		t.Errorf("successful index = %d, want 0", index)
	}
	if len(calls) != 1 {
		t.Errorf("attempts = %d, want 1", len(calls))
	}
}

func TestGenerateWithFailover_Exhaustion(t *testing.T) {
	var calls []string
	var failures []int

	_, index, err := GenerateWithFailover(
		context.Background(),
		[]string{"a", "b", "c"},
		flakyCall(nil, &calls),
		func(i int) { failures = append(failures, i) },
	)

	var exhausted *ExhaustedCredentialsError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error = %v, want ExhaustedCredentialsError", err)
	}
	if exhausted.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", exhausted.Attempts)
	}
	if exhausted.LastErr == nil || exhausted.LastErr.Error() != "provider rejected c" {
		t.Errorf("last error = %v, want the final provider error", exhausted.LastErr)
	}
	if index != -1 {
		t.Errorf("index = %d, want -1", index)
	}
	if len(failures) != 3 || failures[0] != 0 || failures[1] != 1 || failures[2] != 2 {
		t.Errorf("failure callbacks = %v, want [0 1 2] in order", failures)
	}
}

func TestGenerateWithFailover_EmptyPool(t *testing.T) {
	_, _, err := GenerateWithFailover(
		context.Background(),
		nil,
		flakyCall(nil, &[]string{}),
		nil,
	)

	if !errors.Is(err, ErrNoCredentials) {
		t.Errorf("error = %v, want ErrNoCredentials", err)
	}
}

func TestGenerateWithFailover_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls []string
	_, _, err := GenerateWithFailover(
		ctx,
		[]string{"a"},
		flakyCall(map[string]bool{"a": true}, &calls),
		nil,
	)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(calls) != 0 {
		t.Errorf("attempts = %d, want 0 after cancellation", len(calls))
	}
}

// Escenario: k1 inválida, k2 válida — la llamada termina en índice 1
// y la callback de fallo se invoca solo para el índice 0.
func TestGenerateWithFailover_InvalidThenValidKey(t *testing.T) {
	var calls []string
	var failures []int

	result, index, err := GenerateWithFailover(
		context.Background(),
		[]string{"k1", "k2"},
		flakyCall(map[string]bool{"k2": true}, &calls),
		func(i int) { failures = append(failures, i) },
	)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if index != 1 {
		t.Errorf("successful index = %d, want 1", index)
	}
	if result != "result-k2" {
		t.Errorf("result = %q", result)
	}
	if len(failures) != 1 || failures[0] != 0 {
		t.Errorf("failure callbacks = %v, want [0]", failures)
	}
}
