package orders

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

type fakeCounters struct {
	counts map[string]int64
	err    error
	calls  []string
}

func (f *fakeCounters) AllocateCounter(_ context.Context, tag string) (int64, error) {
	f.calls = append(f.calls, tag)
	if f.err != nil {
		return 0, f.err
	}
	if f.counts == nil {
		f.counts = make(map[string]int64)
	}
	f.counts[tag]++
	return f.counts[tag], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_NextOrderID(t *testing.T) {
	ctx := context.Background()

	t.Run("formats tag and counter", func(t *testing.T) {
		repo := &fakeCounters{}
		s := NewService(repo, "ManagerApple", testLogger())

		id, err := s.NextOrderID(ctx, "ShopTag")
		if err != nil {
			t.Fatalf("allocate: %v", err)
		}
		if id != "ShopTag_1" {
			t.Errorf("id = %q, want ShopTag_1", id)
		}

		id, _ = s.NextOrderID(ctx, "ShopTag")
		if id != "ShopTag_2" {
			t.Errorf("id = %q, want ShopTag_2", id)
		}
	})

	t.Run("empty tag falls back to the configured one", func(t *testing.T) {
		repo := &fakeCounters{}
		s := NewService(repo, "ManagerApple", testLogger())

		id, err := s.NextOrderID(ctx, "")
		if err != nil {
			t.Fatalf("allocate: %v", err)
		}
		if id != "ManagerApple_1" {
			t.Errorf("id = %q, want ManagerApple_1", id)
		}
		if len(repo.calls) != 1 || repo.calls[0] != "ManagerApple" {
			t.Errorf("repository saw tags %v", repo.calls)
		}
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		sentinel := errors.New("down")
		s := NewService(&fakeCounters{err: sentinel}, "ManagerApple", testLogger())

		_, err := s.NextOrderID(ctx, "ShopTag")
		if !errors.Is(err, sentinel) {
			t.Errorf("expected wrapped repository error, got %v", err)
		}
	})
}
