package processing

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFakeTask_UppercasesInput(t *testing.T) {
	svc := New(time.Millisecond)
	out, err := svc.FakeTask(context.Background(), "sample data")
	if err != nil {
		t.Fatalf("task failed: %v", err)
	}
	if out != "SAMPLE DATA" {
		t.Fatalf("want SAMPLE DATA, got %q", out)
	}
}

func TestFakeTask_HonorsCancellation(t *testing.T) {
	svc := New(5 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.FakeTask(ctx, "sample data")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("task did not stop on cancellation")
	}
}
