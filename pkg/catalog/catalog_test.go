package catalog_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltcraft/troubleshoot/pkg/catalog"
	"github.com/voltcraft/troubleshoot/pkg/domain"
	"github.com/voltcraft/troubleshoot/pkg/ports/tests"
)

const pumpDoc = `
category: pump
title: Pumps
nodes:
  - id: start
    question: Does it run?
    options:
      - label: "No"
        next: dead
      - label: "Yes"
        result:
          diagnosis: Working
          severity: low
  - id: dead
    question: Is there power?
    options:
      - label: "No"
        result:
          diagnosis: No supply
          severity: medium
          diy_friendly: true
`

func TestBuiltin_Contract(t *testing.T) {
	tests.TreeSourceContractTest(t, catalog.Builtin(), []string{"generator", "solar", "borehole", "hvac", "motor"})
}

func TestBuiltin_GeneratorScenarioValues(t *testing.T) {
	cat, err := catalog.Load(context.Background(), catalog.Builtin())
	require.NoError(t, err)

	tree, err := cat.Get("generator")
	require.NoError(t, err)

	start, ok := tree.Node(domain.StartNodeID)
	require.True(t, ok)
	assert.Equal(t, "What problem are you experiencing with your generator?", start.Question)
	assert.Equal(t, "Generator won't start", start.Options[0].Label)
	next, ok := start.Options[0].NextID()
	require.True(t, ok)
	assert.Equal(t, "wont-start", next)

	wontStart, ok := tree.Node("wont-start")
	require.True(t, ok)
	assert.Equal(t, "Nothing at all - completely dead", wontStart.Options[0].Label)
	next, _ = wontStart.Options[0].NextID()
	assert.Equal(t, "dead-start", next)

	deadStart, ok := tree.Node("dead-start")
	require.True(t, ok)
	assert.Equal(t, "Battery is dead/low", deadStart.Options[0].Label)
	result, ok := deadStart.Options[0].Result()
	require.True(t, ok)
	assert.Equal(t, "Dead or Discharged Battery", result.Diagnosis)
	assert.Equal(t, domain.SeverityLow, result.Severity)
	assert.True(t, result.DIYFriendly)
}

func TestDecodeYAML(t *testing.T) {
	tree, err := catalog.DecodeYAML("pump.yaml", []byte(pumpDoc))
	require.NoError(t, err)

	assert.Equal(t, "pump", tree.Category)
	assert.Equal(t, "Pumps", tree.Title)
	require.Len(t, tree.Nodes, 2)

	dead, ok := tree.Node("dead")
	require.True(t, ok)
	result, ok := dead.Options[0].Result()
	require.True(t, ok)
	assert.Equal(t, "No supply", result.Diagnosis)
	assert.True(t, result.DIYFriendly)
}

func TestDecodeYAML_Rejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		is   error
	}{
		{
			name: "unknown severity",
			doc: `
category: pump
title: Pumps
nodes:
  - id: start
    question: Q
    options:
      - label: A
        result: {diagnosis: D, severity: catastrophic}
`,
		},
		{
			name: "unknown key",
			doc: `
category: pump
title: Pumps
colour: red
nodes:
  - id: start
    question: Q
    options:
      - label: A
        next: start
`,
		},
		{
			name: "missing title",
			doc: `
category: pump
nodes:
  - id: start
    question: Q
    options:
      - label: A
        next: start
`,
		},
		{
			name: "bad category key",
			doc: `
category: Big Pumps
title: Pumps
nodes:
  - id: start
    question: Q
    options:
      - label: A
        next: start
`,
		},
		{
			name: "both next and result",
			doc: `
category: pump
title: Pumps
nodes:
  - id: start
    question: Q
    options:
      - label: A
        next: start
        result: {diagnosis: D, severity: low}
`,
			is: domain.ErrAmbiguousOption,
		},
		{
			name: "not yaml",
			doc:  "category: [unterminated",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalog.DecodeYAML("doc.yaml", []byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "doc.yaml")
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func TestSchema(t *testing.T) {
	data, err := catalog.Schema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "Troubleshooting decision tree", schema["title"])
	assert.Contains(t, string(data), "diagnosis")
	assert.Contains(t, string(data), "critical")
}

func TestNew(t *testing.T) {
	valid := func(category string) *domain.Tree {
		return domain.NewTree(category, category, "", []domain.Node{
			{ID: "start", Question: "Q", Options: []domain.Option{
				domain.Finish("A", domain.Result{Diagnosis: "D", Severity: domain.SeverityLow}),
			}},
		})
	}

	t.Run("Ordered", func(t *testing.T) {
		cat, err := catalog.New([]*domain.Tree{valid("b"), valid("a")})
		require.NoError(t, err)
		assert.Equal(t, 2, cat.Len())

		summaries := cat.Categories()
		require.Len(t, summaries, 2)
		assert.Equal(t, "b", summaries[0].Key)
		assert.Equal(t, "a", summaries[1].Key)
		assert.Equal(t, "b", cat.Trees()[0].Category)
	})

	t.Run("Unknown Category", func(t *testing.T) {
		cat, err := catalog.New([]*domain.Tree{valid("a")})
		require.NoError(t, err)
		_, err = cat.Get("z")
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})

	t.Run("Duplicate Category", func(t *testing.T) {
		_, err := catalog.New([]*domain.Tree{valid("a"), valid("a")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate category "a"`)
	})

	t.Run("Invalid Tree", func(t *testing.T) {
		broken := domain.NewTree("broken", "Broken", "", []domain.Node{
			{ID: "start", Question: "Q", Options: []domain.Option{domain.Goto("A", "nowhere")}},
		})
		_, err := catalog.New([]*domain.Tree{valid("a"), broken})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nowhere")
	})
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "10-pump.yml"), []byte(pumpDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	tests.TreeSourceContractTest(t, catalog.DirSource(dir), []string{"pump"})
}

func TestFSSource_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := catalog.Builtin().LoadTrees(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
