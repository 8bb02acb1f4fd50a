package troubleshoot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/voltcraft/troubleshoot/internal/presentation/tui"
	"github.com/voltcraft/troubleshoot/pkg/domain"
	"github.com/voltcraft/troubleshoot/pkg/ports"
)

// Runner drives a wizard over line-oriented IO.
// This allows for easy testing and integration with different frontends (CLI, pipes, tests).
//
// Commands: a number picks a category or an option, "b"/"back" steps back,
// "r"/"reset"/"restart" returns to the category list and "q"/"quit"/"exit" stops.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer

	// Store, when set, receives the state after every transition.
	Store ports.StateStore
}

// ContentRenderer transforms markdown before it is written.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner over the given IO.
func NewRunner(in io.Reader, out io.Writer) *Runner {
	return &Runner{Input: in, Output: out}
}

// Run executes the loop until the user quits or the input ends,
// returning the last state.
func (r *Runner) Run(ctx context.Context, wizard ports.Wizard, state *domain.State) (*domain.State, error) {
	if r.Input == nil {
		return nil, fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return nil, fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	if state == nil {
		state = wizard.NewState("")
	}

	lines := bufio.NewReader(r.Input)
	redraw := true

	for {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		view, err := wizard.Render(state)
		if err != nil {
			return state, fmt.Errorf("render error: %w", err)
		}
		if redraw {
			r.display(view)
		}

		if !r.Headless {
			fmt.Fprint(r.Output, prompt(view))
		}
		text, err := lines.ReadString('\n')
		input := strings.TrimSpace(text)
		if err != nil && (!errors.Is(err, io.EOF) || input == "") {
			if errors.Is(err, io.EOF) {
				return state, nil
			}
			return state, fmt.Errorf("input error: %w", err)
		}

		input, err = SanitizeInput(input)
		if err != nil {
			fmt.Fprintf(r.Output, "%v\n", err)
			redraw = false
			continue
		}

		next, quit, err := r.dispatch(ctx, wizard, state, view, input)
		if quit {
			fmt.Fprintln(r.Output, "Bye!")
			return state, nil
		}
		if err != nil {
			if isUserError(err) {
				fmt.Fprintf(r.Output, "%v\n", err)
				redraw = false
				continue
			}
			return state, err
		}

		redraw = next != state
		if redraw && r.Store != nil && next.SessionID != "" {
			if err := r.Store.Save(ctx, next.SessionID, next); err != nil {
				return next, fmt.Errorf("failed to save session: %w", err)
			}
		}
		state = next
	}
}

// dispatch maps one input line to a transition. It returns the same state
// pointer when nothing changed.
func (r *Runner) dispatch(ctx context.Context, wizard ports.Wizard, state *domain.State, view domain.View, input string) (*domain.State, bool, error) {
	switch strings.ToLower(input) {
	case "":
		return state, false, nil
	case "q", "quit", "exit":
		return state, true, nil
	case "b", "back":
		next, err := wizard.Back(ctx, state)
		return next, false, err
	case "r", "reset", "restart":
		next, err := wizard.Reset(ctx, state)
		return next, false, err
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return state, false, errUnknownCommand
	}

	switch view.Kind {
	case domain.ViewCategories:
		if n < 1 || n > len(view.Categories) {
			return state, false, fmt.Errorf("%w: %d", domain.ErrOptionOutOfRange, n)
		}
		next, err := wizard.Start(ctx, state, view.Categories[n-1].Key)
		return next, false, err
	case domain.ViewQuestion:
		next, err := wizard.Select(ctx, state, n-1)
		return next, false, err
	default:
		return state, false, domain.ErrNoActiveQuestion
	}
}

var errUnknownCommand = errors.New("unknown command (number, b=back, r=restart, q=quit)")

func isUserError(err error) bool {
	return errors.Is(err, errUnknownCommand) ||
		errors.Is(err, domain.ErrOptionOutOfRange) ||
		errors.Is(err, domain.ErrNoActiveQuestion)
}

func (r *Runner) display(view domain.View) {
	output := tui.FormatView(view)
	if r.Renderer != nil {
		if rendered, err := r.Renderer(output); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(output))
}

func prompt(view domain.View) string {
	switch view.Kind {
	case domain.ViewResult:
		return "[b]ack, [r]estart or [q]uit > "
	case domain.ViewCategories:
		return "choose a category > "
	}
	return "> "
}
