package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltcraft/troubleshoot/pkg/domain"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewState(sessionID)
		state.Category = "generator"
		state.CurrentNodeID = "dead-start"
		state.History = []string{"start", "wont-start"}
		state.Result = &domain.Result{
			Diagnosis: "Dead or Discharged Battery",
			Severity:  domain.SeverityLow,
			Causes:    []string{"Battery left discharged"},
		}

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state, loaded)
	})

	t.Run("Empty History Survives", func(t *testing.T) {
		id := sessionID + "-empty"
		defer func() { _ = store.Delete(ctx, id) }()

		require.NoError(t, store.Save(ctx, id, domain.NewState(id)))
		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.NotNil(t, loaded.History)
		assert.Empty(t, loaded.History)
		assert.Equal(t, domain.PhaseCategorySelect, loaded.Phase())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Stored State Is Isolated", func(t *testing.T) {
		id := sessionID + "-isolated"
		defer func() { _ = store.Delete(ctx, id) }()

		state := domain.NewState(id)
		state.Category = "solar"
		state.History = []string{"start"}
		require.NoError(t, store.Save(ctx, id, state))

		state.History[0] = "mutated"
		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "start", loaded.History[0])
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewState(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState(id1))
		_ = store.Save(ctx, id2, domain.NewState(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
