package eventsvc

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/rzbill/eventreg/internal/registry"
)

// eventFilter wraps a compiled CEL program evaluated once per event. When
// disabled, match always returns true.
type eventFilter struct {
	prog    cel.Program
	enabled bool
}

func newEventFilter(expr string, maxLen int) (eventFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return eventFilter{}, nil
	}
	if maxLen > 0 && len(expr) > maxLen {
		return eventFilter{}, fmt.Errorf("%w: longer than %d bytes", ErrInvalidFilter, maxLen)
	}
	env, err := cel.NewEnv(
		cel.Variable("event_id", cel.IntType),
		cel.Variable("name", cel.StringType),
		cel.Variable("description", cel.StringType),
		cel.Variable("start_date", cel.IntType),
		cel.Variable("end_date", cel.IntType),
		cel.Variable("status", cel.StringType),
	)
	if err != nil {
		return eventFilter{}, err
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return eventFilter{}, fmt.Errorf("%w: %v", ErrInvalidFilter, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return eventFilter{}, fmt.Errorf("%w: expression must evaluate to bool, got %s", ErrInvalidFilter, ast.OutputType())
	}
	prog, err := env.Program(ast)
	if err != nil {
		return eventFilter{}, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return eventFilter{prog: prog, enabled: true}, nil
}

// match evaluates the filter against ev. Runtime evaluation errors count as
// a non-match.
func (f eventFilter) match(ev registry.Event) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"event_id":    int64(ev.EventID),
		"name":        ev.Name,
		"description": ev.Description,
		"start_date":  clampInt64(ev.StartDate),
		"end_date":    clampInt64(ev.EndDate),
		"status":      ev.Status.String(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}

func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
