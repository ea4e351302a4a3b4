package usage

import (
	"context"
	"errors"
	"testing"
)

func TestServiceDefaults(t *testing.T) {
	svc := NewService()
	u, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.Plan != "free" || u.Limit != 5 || u.Used != 0 {
		t.Fatalf("unexpected defaults: %+v", u)
	}
	if u.ResetsAt.IsZero() {
		t.Fatal("expected a reset timestamp")
	}
}

func TestServiceConsumeWithinLimit(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		u, err := svc.Consume(ctx, "user-1", 1)
		if err != nil {
			t.Fatalf("consume %d: %v", i, err)
		}
		if u.Used != i {
			t.Fatalf("expected used %d, got %d", i, u.Used)
		}
	}

	if _, err := svc.Consume(ctx, "user-1", 1); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
}

func TestServiceCanConsume(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	ok, u, err := svc.CanConsume(ctx, "user-1", 1)
	if err != nil || !ok {
		t.Fatalf("expected fresh user to pass, ok=%v err=%v", ok, err)
	}
	if _, err := svc.Consume(ctx, "user-1", u.Limit); err != nil {
		t.Fatalf("prime: %v", err)
	}
	ok, _, err = svc.CanConsume(ctx, "user-1", 1)
	if err != nil {
		t.Fatalf("can consume: %v", err)
	}
	if ok {
		t.Fatal("expected exhausted allowance to fail")
	}

	// Zero-cost checks always pass.
	ok, _, err = svc.CanConsume(ctx, "user-1", 0)
	if err != nil || !ok {
		t.Fatalf("expected zero-cost check to pass, ok=%v err=%v", ok, err)
	}
}

func TestServiceReset(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "user-1", 3); err != nil {
		t.Fatalf("consume: %v", err)
	}
	u, err := svc.Reset(ctx, "user-1")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if u.Used != 0 {
		t.Fatalf("expected reset to zero, got %d", u.Used)
	}
}

func TestServiceUsersAreIndependent(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "user-1", 2); err != nil {
		t.Fatalf("consume: %v", err)
	}
	u, err := svc.Get(ctx, "user-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.Used != 0 {
		t.Fatalf("expected independent allowance, got used=%d", u.Used)
	}
}
