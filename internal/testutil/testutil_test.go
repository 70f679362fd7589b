package testutil

import (
	"testing"
	"time"
)

func TestContextCarriesTimeout(t *testing.T) {
	ctx := Context(t, 50*time.Millisecond)
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatalf("expected a deadline")
	}
	if remaining := time.Until(deadline); remaining > 50*time.Millisecond {
		t.Fatalf("expected at most 50ms, got %v", remaining)
	}
}

func TestContextWithoutTestDeadline(t *testing.T) {
	result := testing.Benchmark(func(b *testing.B) {
		ctx := Context(b, time.Second)
		if _, ok := ctx.Deadline(); !ok {
			b.Fatalf("expected a deadline")
		}
	})
	if result.N == 0 {
		t.Fatalf("expected the benchmark body to run")
	}
}
