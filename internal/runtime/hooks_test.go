package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltcraft/troubleshoot/internal/runtime"
	"github.com/voltcraft/troubleshoot/pkg/domain"
)

func TestNavigator_LifecycleHooks(t *testing.T) {
	var trace []string
	hooks := domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			trace = append(trace, "enter:"+e.NodeID)
		},
		OnNodeLeave: func(_ context.Context, e *domain.NodeEvent) {
			trace = append(trace, "leave:"+e.NodeID)
		},
		OnResult: func(_ context.Context, e *domain.ResultEvent) {
			trace = append(trace, "result:"+string(e.Severity))
		},
		OnExit: func(_ context.Context, e *domain.ExitEvent) {
			trace = append(trace, "exit:"+e.Reason)
		},
	}

	ctx := context.Background()
	nav := runtime.NewNavigator(runtime.WithLifecycleHooks(hooks))
	tree := generatorTree()

	s, err := nav.Start(ctx, domain.NewState("s"), tree)
	require.NoError(t, err)
	s, err = nav.Select(ctx, s, tree, option(t, tree, "start", 1))
	require.NoError(t, err)
	s, err = nav.Select(ctx, s, tree, option(t, tree, "runs-rough", 0))
	require.NoError(t, err)
	s = nav.Back(ctx, s)
	s = nav.Back(ctx, s)
	s = nav.Back(ctx, s)
	_ = nav.Reset(ctx, s)

	assert.Equal(t, []string{
		"enter:start",
		"leave:start", "enter:runs-rough",
		"result:medium",
		"enter:runs-rough",
		"leave:runs-rough", "enter:start",
		"leave:start", "exit:back",
	}, trace)
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	nav := runtime.NewNavigator()
	tree := generatorTree()
	categories := []domain.CategorySummary{tree.Summary()}

	s := domain.NewState("s")
	view, err := runtime.Render(s, nil, categories)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewCategories, view.Kind)
	assert.False(t, view.CanGoBack)
	assert.Len(t, view.Categories, 1)

	s, err = nav.Start(ctx, s, tree)
	require.NoError(t, err)
	s, err = nav.Select(ctx, s, tree, option(t, tree, "start", 1))
	require.NoError(t, err)
	view, err = runtime.Render(s, tree, categories)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewQuestion, view.Kind)
	assert.Equal(t, "runs-rough", view.Node.ID)
	assert.Equal(t, 1, view.Depth)
	assert.True(t, view.CanGoBack)

	s, err = nav.Select(ctx, s, tree, option(t, tree, "runs-rough", 0))
	require.NoError(t, err)
	view, err = runtime.Render(s, tree, categories)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewResult, view.Kind)
	assert.Equal(t, "Rich mixture", view.Result.Diagnosis)
}
