package statusfile

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cahaseler/cc-track/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PublishAndLatest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cc-track", "status.json")
	store := New(path)
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	artifact := domain.NewStatusArtifact(ts, domain.StatusSourceStopReview, "deviation: touched auth", domain.ReviewDeviation)
	require.NoError(t, store.Publish(artifact))

	got, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, artifact, *got)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"source": "stop_review"`)
	assert.NoFileExists(t, path+".tmp")
}

func TestStore_PublishOverwrites(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "status.json"))

	require.NoError(t, store.Publish(domain.NewStatusArtifact(time.Now(), "a", "first", "")))
	require.NoError(t, store.Publish(domain.NewStatusArtifact(time.Now(), "b", "second", "")))

	got, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, "second", got.Message)
	assert.Equal(t, "b", got.Source)
}

func TestStore_Latest_NoStatus(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "status.json")).Latest()
	assert.ErrorIs(t, err, domain.ErrNoStatus)
}

func TestStore_Latest_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := New(path).Latest()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoStatus)
}

func TestStore_ConcurrentPublish(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "status.json"))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Publish(domain.NewStatusArtifact(time.Now(), "x", "msg", "")))
		}()
	}
	wg.Wait()

	got, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, "msg", got.Message)
}

func TestStore_Paths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	store := New(path)

	assert.Equal(t, []string{path, path + ".lock", path + ".tmp"}, store.Paths())
}
