package roundstate

import (
	"fmt"
	"sync"
	"testing"

	"github.com/phrazzld/appforge-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGet(t *testing.T) {
	t.Parallel()

	store := NewStore()
	record := domain.RoundRecord{
		RepoURL: "https://github.com/owner/t1-abcd1234",
		Brief:   "build a calculator",
		Email:   "student@example.com",
	}

	store.Put("t1", record)

	got, ok := store.Get("t1")
	require.True(t, ok)
	assert.Equal(t, record, got)
}

// Absence is a normal, checked outcome, not an error.
func TestStoreGetAbsent(t *testing.T) {
	t.Parallel()

	store := NewStore()

	got, ok := store.Get("never-submitted")
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestStoreCount(t *testing.T) {
	t.Parallel()

	store := NewStore()
	assert.Equal(t, 0, store.Count())

	store.Put("t1", domain.RoundRecord{RepoURL: "a"})
	store.Put("t2", domain.RoundRecord{RepoURL: "b"})
	store.Put("t1", domain.RoundRecord{RepoURL: "c"}) // overwrite, not a new entry

	assert.Equal(t, 2, store.Count())
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Put("t1", domain.RoundRecord{RepoURL: "a"})

	snapshot := store.Snapshot()
	snapshot["t2"] = domain.RoundRecord{RepoURL: "b"}

	assert.Equal(t, 1, store.Count(), "mutating the snapshot must not affect the store")
}

// Concurrent writers and readers on different keys must not interfere.
func TestStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := NewStore()
	const workers = 32

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			taskID := fmt.Sprintf("t%d", i)
			store.Put(taskID, domain.RoundRecord{RepoURL: taskID})
			got, ok := store.Get(taskID)
			assert.True(t, ok)
			assert.Equal(t, taskID, got.RepoURL)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, workers, store.Count())
}
