/*
Package troubleshoot is a guided equipment troubleshooting wizard.

Each equipment category (generator, solar, borehole, HVAC, motor) owns a static
decision tree of questions. A visitor picks a category, answers questions one at
a time and ends on a canned diagnosis with causes, fixes and estimates.

# Concept

The engine is a small deterministic state machine. A State records the selected
category, the displayed node, the stack of previously visited nodes and the
active result. Every transition returns a new State and never mutates its
input, so the same Engine can serve many sessions and the caller decides where
State lives (memory, Redis, a browser cookie).

# Usage

	eng, err := troubleshoot.New()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	state := eng.NewState("session-123")

	state, _ = eng.Start(ctx, state, "generator")
	state, _ = eng.Select(ctx, state, 0) // "Generator won't start"

	view, _ := eng.Render(state)
	fmt.Println(view.Node.Question)

Back steps out one level at a time (result, then question, then category) and
Reset returns to the category list from anywhere.

Trees come from YAML documents embedded in the binary by default. WithSource and
WithLoamRepository load them from elsewhere; every tree is validated when the
engine is built, so traversal never meets a dangling reference.
*/
package troubleshoot
