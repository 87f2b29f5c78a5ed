package repository

import (
	"context"
	"sync"
	"testing"
)

func TestMemory_AllocateCounter(t *testing.T) {
	ctx := context.Background()

	t.Run("starts at one and increments per tag", func(t *testing.T) {
		m := NewMemory()

		for want := int64(1); want <= 3; want++ {
			got, err := m.AllocateCounter(ctx, "ShopA")
			if err != nil {
				t.Fatalf("allocate: %v", err)
			}
			if got != want {
				t.Errorf("allocation %d = %d, want %d", want, got, want)
			}
		}

		got, err := m.AllocateCounter(ctx, "ShopB")
		if err != nil {
			t.Fatalf("allocate: %v", err)
		}
		if got != 1 {
			t.Errorf("tags must count independently, got %d", got)
		}
	})

	t.Run("concurrent allocations are distinct and gapless", func(t *testing.T) {
		const workers = 50
		const perWorker = 20

		m := NewMemory()
		results := make(chan int64, workers*perWorker)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < perWorker; j++ {
					n, err := m.AllocateCounter(ctx, "shared")
					if err != nil {
						t.Errorf("allocate: %v", err)
						return
					}
					results <- n
				}
			}()
		}
		wg.Wait()
		close(results)

		seen := make(map[int64]bool)
		for n := range results {
			if seen[n] {
				t.Fatalf("duplicate allocation %d", n)
			}
			seen[n] = true
		}
		if len(seen) != workers*perWorker {
			t.Fatalf("got %d allocations, want %d", len(seen), workers*perWorker)
		}
		for i := int64(1); i <= workers*perWorker; i++ {
			if !seen[i] {
				t.Fatalf("gap in allocations at %d", i)
			}
		}
	})
}

func TestMemory_MerchantDirectory(t *testing.T) {
	ctx := context.Background()

	t.Run("grant before first contact is reconciled on upsert", func(t *testing.T) {
		m := NewMemory()

		if err := m.GrantMerchantAccess(ctx, "early", "shop-1", "key-1", "Tag"); err != nil {
			t.Fatalf("grant: %v", err)
		}
		if err := m.UpsertUser(ctx, 100, "early"); err != nil {
			t.Fatalf("upsert: %v", err)
		}

		ok, err := m.IsMerchant(ctx, 100)
		if err != nil || !ok {
			t.Fatalf("expected merchant after reconciliation, got ok=%v err=%v", ok, err)
		}
		settings, err := m.GetMerchantSettings(ctx, 100)
		if err != nil || settings == nil {
			t.Fatalf("settings: %v, %v", settings, err)
		}
		if settings.ShopID != "shop-1" || settings.OrderIDTag != "Tag" {
			t.Errorf("wrong settings after reconciliation: %+v", settings)
		}

		ids, _ := m.AllUserIDs(ctx)
		if len(ids) != 1 || ids[0] != 100 {
			t.Errorf("placeholder id must not leak into broadcasts: %v", ids)
		}
	})

	t.Run("revoke clears access but keeps the user", func(t *testing.T) {
		m := NewMemory()
		m.UpsertUser(ctx, 200, "merchant")
		m.GrantMerchantAccess(ctx, "merchant", "shop-2", "key-2", "")

		if err := m.RevokeMerchantAccess(ctx, 200); err != nil {
			t.Fatalf("revoke: %v", err)
		}

		ok, _ := m.IsMerchant(ctx, 200)
		if ok {
			t.Error("access must be revoked")
		}
		ids, _ := m.AllUserIDs(ctx)
		if len(ids) != 1 {
			t.Errorf("user must survive revocation: %v", ids)
		}
	})

	t.Run("delete removes the record entirely", func(t *testing.T) {
		m := NewMemory()
		m.UpsertUser(ctx, 300, "gone")
		m.GrantMerchantAccess(ctx, "gone", "shop-3", "key-3", "")

		if err := m.DeleteMerchant(ctx, "gone"); err != nil {
			t.Fatalf("delete: %v", err)
		}

		record, _ := m.GetMerchantByUsername(ctx, "gone")
		if record != nil {
			t.Errorf("record must be gone, got %+v", record)
		}
		merchants, _ := m.ListMerchants(ctx)
		if len(merchants) != 0 {
			t.Errorf("listing must be empty, got %v", merchants)
		}
	})
}
