package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-engine/go-core/pkg/types"
)

func testPolicy(id string, state types.PolicyState) *types.Policy {
	return &types.Policy{
		ID:          id,
		DisplayName: "Test " + id,
		State:       state,
	}
}

func TestMemoryStore_AddAndGet(t *testing.T) {
	store := NewMemoryStore()

	err := store.Add(testPolicy("p1", types.StateEnabled))
	require.NoError(t, err)

	policy, err := store.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", policy.ID)

	_, err = store.Get("missing")
	assert.Error(t, err)
}

func TestMemoryStore_AddValidation(t *testing.T) {
	store := NewMemoryStore()

	assert.Error(t, store.Add(nil))
	assert.Error(t, store.Add(&types.Policy{}))
}

func TestMemoryStore_GetAllOrderedByID(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Add(testPolicy("p3", types.StateEnabled)))
	require.NoError(t, store.Add(testPolicy("p1", types.StateEnabled)))
	require.NoError(t, store.Add(testPolicy("p2", types.StateEnabled)))

	all := store.GetAll()
	require.Len(t, all, 3)
	assert.Equal(t, "p1", all[0].ID)
	assert.Equal(t, "p2", all[1].ID)
	assert.Equal(t, "p3", all[2].ID)
}

func TestMemoryStore_GetActiveExcludesDisabled(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Add(testPolicy("p-enabled", types.StateEnabled)))
	require.NoError(t, store.Add(testPolicy("p-report", types.StateReportOnly)))
	require.NoError(t, store.Add(testPolicy("p-disabled", types.StateDisabled)))

	active := store.GetActive()
	require.Len(t, active, 2)
	for _, p := range active {
		assert.NotEqual(t, types.StateDisabled, p.State)
	}
}

func TestMemoryStore_Remove(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Add(testPolicy("p1", types.StateEnabled)))

	require.NoError(t, store.Remove("p1"))
	assert.Equal(t, 0, store.Count())
	assert.Error(t, store.Remove("p1"))
}

func TestMemoryStore_ReplaceIsAtomic(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Add(testPolicy("old", types.StateEnabled)))

	store.Replace([]*types.Policy{
		testPolicy("new-1", types.StateEnabled),
		testPolicy("new-2", types.StateEnabled),
		nil,
	})

	assert.Equal(t, 2, store.Count())
	_, err := store.Get("old")
	assert.Error(t, err)
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Add(testPolicy("p1", types.StateEnabled)))

	store.Clear()
	assert.Equal(t, 0, store.Count())
}
