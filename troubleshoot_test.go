package troubleshoot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltcraft/troubleshoot"
	"github.com/voltcraft/troubleshoot/pkg/adapters/memory"
	"github.com/voltcraft/troubleshoot/pkg/domain"
	"github.com/voltcraft/troubleshoot/pkg/dsl"
)

func newEngine(t *testing.T, opts ...troubleshoot.Option) *troubleshoot.Engine {
	t.Helper()
	eng, err := troubleshoot.New(opts...)
	require.NoError(t, err)
	return eng
}

func TestEngine_BuiltinCategories(t *testing.T) {
	eng := newEngine(t)

	keys := make([]string, 0)
	for _, c := range eng.Categories() {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"generator", "solar", "borehole", "hvac", "motor"}, keys)
}

func TestEngine_GeneratorScenario(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	s := eng.NewState("s1")
	view, err := eng.Render(s)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewCategories, view.Kind)
	assert.False(t, view.CanGoBack)

	s, err = eng.Start(ctx, s, "generator")
	require.NoError(t, err)
	view, err = eng.Render(s)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewQuestion, view.Kind)
	assert.Equal(t, "What problem are you experiencing with your generator?", view.Node.Question)

	s, err = eng.Select(ctx, s, 0)
	require.NoError(t, err)
	assert.Equal(t, "wont-start", s.CurrentNodeID)
	assert.Equal(t, []string{"start"}, s.History)

	s, err = eng.Select(ctx, s, 0)
	require.NoError(t, err)
	assert.Equal(t, "dead-start", s.CurrentNodeID)
	assert.Equal(t, []string{"start", "wont-start"}, s.History)

	s, err = eng.Select(ctx, s, 0)
	require.NoError(t, err)
	require.NotNil(t, s.Result)
	assert.Equal(t, "Dead or Discharged Battery", s.Result.Diagnosis)
	assert.Equal(t, domain.SeverityLow, s.Result.Severity)
	assert.Equal(t, "dead-start", s.CurrentNodeID)
	assert.Equal(t, []string{"start", "wont-start"}, s.History)

	view, err = eng.Render(s)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewResult, view.Kind)
	assert.Equal(t, 2, view.Depth)

	s, err = eng.Back(ctx, s)
	require.NoError(t, err)
	assert.Nil(t, s.Result)
	assert.Equal(t, "dead-start", s.CurrentNodeID)
	assert.Equal(t, []string{"start", "wont-start"}, s.History)
}

func TestEngine_SelectErrors(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	_, err := eng.Select(ctx, eng.NewState("s"), 0)
	assert.ErrorIs(t, err, domain.ErrNoActiveQuestion)

	s, err := eng.Start(ctx, eng.NewState("s"), "solar")
	require.NoError(t, err)

	_, err = eng.Select(ctx, s, 99)
	assert.ErrorIs(t, err, domain.ErrOptionOutOfRange)
	_, err = eng.Select(ctx, s, -1)
	assert.ErrorIs(t, err, domain.ErrOptionOutOfRange)

	_, err = eng.Start(ctx, s, "spaceship")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	_, err = eng.Select(ctx, nil, 0)
	assert.ErrorIs(t, err, troubleshoot.ErrNilState)
}

func TestEngine_ResetFromAnywhere(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	s, err := eng.Start(ctx, eng.NewState("keep-me"), "motor")
	require.NoError(t, err)
	s, err = eng.Select(ctx, s, 0)
	require.NoError(t, err)

	reset, err := eng.Reset(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, domain.NewState("keep-me"), reset)

	reset, err = eng.Reset(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.NewState(""), reset)
}

func TestEngine_WithSourceAndHooks(t *testing.T) {
	b := dsl.New("pump", "Pumps")
	b.Add("start").Question("Does it run?").
		Conclude("No", dsl.Diagnosis("No supply", domain.SeverityMedium))
	tree, err := b.Build()
	require.NoError(t, err)

	var results []string
	eng := newEngine(t,
		troubleshoot.WithSource(memory.NewSource(tree)),
		troubleshoot.WithLifecycleHooks(domain.LifecycleHooks{
			OnResult: func(ctx context.Context, e *domain.ResultEvent) {
				results = append(results, e.Diagnosis)
			},
		}),
	)
	ctx := context.Background()

	s, err := eng.Start(ctx, eng.NewState("s"), "pump")
	require.NoError(t, err)
	_, err = eng.Select(ctx, s, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"No supply"}, results)
	assert.Len(t, eng.Categories(), 1)
}

func TestEngine_RejectsInvalidSource(t *testing.T) {
	broken := domain.NewTree("pump", "Pumps", "", []domain.Node{
		{ID: "entry", Question: "Q", Options: []domain.Option{domain.Goto("A", "entry")}},
	})
	_, err := troubleshoot.New(troubleshoot.WithSource(memory.NewSource(broken)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing 'start' node")
}
