package troubleshoot_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltcraft/troubleshoot"
	"github.com/voltcraft/troubleshoot/pkg/adapters/memory"
	"github.com/voltcraft/troubleshoot/pkg/domain"
)

func run(t *testing.T, input string, store *memory.Store) (*domain.State, string) {
	t.Helper()
	eng := newEngine(t)

	var out strings.Builder
	r := troubleshoot.NewRunner(strings.NewReader(input), &out)
	if store != nil {
		r.Store = store
	}
	state, err := r.Run(context.Background(), eng, eng.NewState("cli"))
	require.NoError(t, err)
	return state, out.String()
}

func TestRunner_ReachesDiagnosis(t *testing.T) {
	state, out := run(t, "1\n1\n1\n1\n", nil)

	require.NotNil(t, state.Result)
	assert.Equal(t, "Dead or Discharged Battery", state.Result.Diagnosis)
	assert.Contains(t, out, "What problem are you experiencing with your generator?")
	assert.Contains(t, out, "[b]ack, [r]estart or [q]uit")
}

func TestRunner_BackAndRestart(t *testing.T) {
	state, _ := run(t, "1\n1\nback\n", nil)
	assert.Equal(t, "start", state.CurrentNodeID)
	assert.Equal(t, "generator", state.Category)
	assert.Empty(t, state.History)

	state, out := run(t, "2\nr\n", nil)
	assert.Equal(t, domain.PhaseCategorySelect, state.Phase())
	assert.Equal(t, 2, strings.Count(out, "What equipment needs attention?"))
}

func TestRunner_InvalidInputKeepsState(t *testing.T) {
	state, out := run(t, "banana\n42\n1\n", nil)

	assert.Contains(t, out, "unknown command")
	assert.Contains(t, out, "option index out of range")
	assert.Equal(t, "generator", state.Category)
}

func TestRunner_NumbersOnResultAreRejected(t *testing.T) {
	state, out := run(t, "1\n1\n1\n1\n1\nq\n", nil)

	assert.Contains(t, out, "no active question")
	assert.Contains(t, out, "Bye!")
	assert.NotNil(t, state.Result)
}

func TestRunner_PersistsState(t *testing.T) {
	store := memory.NewStore()
	_, _ = run(t, "3\n", store)

	saved, err := store.Load(context.Background(), "cli")
	require.NoError(t, err)
	assert.Equal(t, "borehole", saved.Category)
}

func TestRunner_RequiresIO(t *testing.T) {
	eng := newEngine(t)
	_, err := (&troubleshoot.Runner{}).Run(context.Background(), eng, nil)
	assert.Error(t, err)
}

func TestRunner_SanitizesInput(t *testing.T) {
	state, out := run(t, "\x1b1\x07\n"+strings.Repeat("1", troubleshoot.MaxInputSize+1)+"\n", nil)

	assert.Equal(t, "generator", state.Category)
	assert.Equal(t, "start", state.CurrentNodeID)
	assert.Contains(t, out, "input exceeds maximum allowed size")
}
