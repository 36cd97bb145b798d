package session

import (
	"context"
	"errors"
	"testing"

	"github.com/carecompass/platform/internal/modules"
)

func TestInflightRegistry_RejectsConcurrentSubmission(t *testing.T) {
	r := NewInflightRegistry()

	_, done, err := r.Begin(context.Background(), "s1", modules.ModuleTriage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer done()

	if _, _, err := r.Begin(context.Background(), "s1", modules.ModuleTriage); !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}

	// A different module of the same session is independent.
	_, done2, err := r.Begin(context.Background(), "s1", modules.ModuleQueue)
	if err != nil {
		t.Fatalf("unexpected error for other module: %v", err)
	}
	done2()

	// Same module of a different session is independent.
	_, done3, err := r.Begin(context.Background(), "s2", modules.ModuleTriage)
	if err != nil {
		t.Fatalf("unexpected error for other session: %v", err)
	}
	done3()
}

func TestInflightRegistry_DoneAllowsResubmission(t *testing.T) {
	r := NewInflightRegistry()

	_, done, err := r.Begin(context.Background(), "s1", modules.ModuleDiary)
	if err != nil {
		t.Fatal(err)
	}
	done()

	_, done2, err := r.Begin(context.Background(), "s1", modules.ModuleDiary)
	if err != nil {
		t.Fatalf("expected resubmission after completion, got %v", err)
	}
	done2()
}

func TestInflightRegistry_CancelAbortsContext(t *testing.T) {
	r := NewInflightRegistry()

	ctx, done, err := r.Begin(context.Background(), "s1", modules.ModuleNavigation)
	if err != nil {
		t.Fatal(err)
	}
	defer done()

	if !r.Cancel("s1", modules.ModuleNavigation) {
		t.Fatal("expected cancel to find the call")
	}
	select {
	case <-ctx.Done():
	default:
		t.Error("expected context to be cancelled")
	}

	if r.Cancel("s1", modules.ModuleNavigation) {
		t.Error("second cancel should find nothing")
	}
}

func TestInflightRegistry_CancelAll(t *testing.T) {
	r := NewInflightRegistry()

	ctx1, done1, _ := r.Begin(context.Background(), "s1", modules.ModuleTriage)
	ctx2, done2, _ := r.Begin(context.Background(), "s1", modules.ModuleSurgery)
	ctxOther, doneOther, _ := r.Begin(context.Background(), "s2", modules.ModuleTriage)
	defer done1()
	defer done2()
	defer doneOther()

	r.CancelAll("s1")

	for _, ctx := range []context.Context{ctx1, ctx2} {
		select {
		case <-ctx.Done():
		default:
			t.Error("expected session s1 contexts to be cancelled")
		}
	}
	select {
	case <-ctxOther.Done():
		t.Error("other session must be untouched")
	default:
	}
}
