package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricelens/backend/internal/infrastructure/catalog"
)

type countingReloader struct {
	calls chan struct{}
	err   error
}

func (r *countingReloader) Reload(ctx context.Context) error {
	r.calls <- struct{}{}
	return r.err
}

func waitCall(t *testing.T, calls <-chan struct{}) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("reload was not called")
	}
}

func TestWatchReload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	r := &countingReloader{calls: make(chan struct{}, 2), err: errors.New("broken file")}

	done := make(chan struct{})
	go func() {
		watchReload(ctx, signals, r, zerolog.Nop())
		close(done)
	}()

	signals <- syscall.SIGHUP
	waitCall(t, r.calls)
	signals <- syscall.SIGHUP
	waitCall(t, r.calls)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watchReload did not return after cancel")
	}
}

func TestWatchReload_SwapsCatalogSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"produit":"ABC123","designation":"Lady Dior Bag"}]`), 0o644))
	store, err := catalog.NewJSONFileStore(path, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signals := make(chan os.Signal, 1)
	go watchReload(ctx, signals, store, zerolog.Nop())

	require.NoError(t, os.WriteFile(path, []byte(`[{"produit":"NEW1","designation":"Book Tote"}]`), 0o644))
	signals <- syscall.SIGHUP

	assert.Eventually(t, func() bool {
		item, err := store.GetByReference(ctx, "NEW1")
		return err == nil && item.ProductName == "Book Tote"
	}, time.Second, 10*time.Millisecond)
}
