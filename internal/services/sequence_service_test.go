package services_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gymdesk_backend/internal/repositories"
)

var errAbort = errors.New("abort")

func TestSequenceFormatting(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.sequences.NextMemberID(env.db)
	require.NoError(t, err)
	assert.Equal(t, "GYM00001", first)

	second, err := env.sequences.NextMemberID(env.db)
	require.NoError(t, err)
	assert.Equal(t, "GYM00002", second)

	trainer, err := env.sequences.NextTrainerID(env.db)
	require.NoError(t, err)
	assert.Equal(t, "TRN00001", trainer)

	receipt, err := env.sequences.NextReceiptNumber(env.db)
	require.NoError(t, err)
	assert.Equal(t, "REC000001", receipt)
}

func TestSequenceCountersAreIndependent(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		_, err := env.sequences.NextMemberID(env.db)
		require.NoError(t, err)
	}

	trainer, err := env.sequences.NextTrainerID(env.db)
	require.NoError(t, err)
	assert.Equal(t, "TRN00001", trainer, "trainer counter must not be advanced by member allocations")
}

// Concurrent allocators must never observe the same value: the counter
// row is incremented and read inside one transaction, so the write lock
// serializes them.
func TestSequenceConcurrentAllocation(t *testing.T) {
	env := newTestEnv(t)

	const workers = 8
	const perWorker = 5

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id, err := env.sequences.NextMemberID(env.db)
				if err != nil {
					t.Errorf("allocation failed: %v", err)
					return
				}
				mu.Lock()
				if seen[id] {
					t.Errorf("duplicate ID allocated: %s", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

// An allocation inside a failed transaction must roll back with it: the
// next successful caller gets the value the aborted one would have used.
func TestSequenceRollsBackWithTransaction(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.sequences.NextMemberID(env.db)
	require.NoError(t, err)
	assert.Equal(t, "GYM00001", first)

	err = env.db.Transaction(func(tx *gorm.DB) error {
		id, err := env.sequences.NextMemberID(tx)
		require.NoError(t, err)
		assert.Equal(t, "GYM00002", id)
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	current, err := repositories.NewSequenceRepository(env.db).Current("member_id")
	require.NoError(t, err)
	assert.EqualValues(t, 1, current, "aborted allocation must not burn the value")

	next, err := env.sequences.NextMemberID(env.db)
	require.NoError(t, err)
	assert.Equal(t, "GYM00002", next)
}
