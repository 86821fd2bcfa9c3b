package settings

import (
	"os"
	"testing"
	"time"

	"github.com/mobile-next/facepointer/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeFixture(t, fixture)
	store, err := Open(path)
	require.NoError(t, err)

	changed := make(chan struct{}, 16)
	w, err := Watch(store, func(*Store) { changed <- struct{}{} })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[pointer]\nUP_SPEED = 1\n"), 0o644))

	require.Eventually(t, func() bool {
		v, err := store.Value(engine.KeyUpSpeed)
		return err == nil && v == 175
	}, 5*time.Second, 20*time.Millisecond)

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("change callback not invoked")
	}

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close(), "close is idempotent")
}
