package engine

import (
	"context"
	"errors"
	"fmt"
)

// Command is one reversible step of a multi-step mutation. Apply performs
// the step; Compensate undoes it if a later step fails. Compensate may be
// nil for steps with nothing to undo.
type Command struct {
	Name       string
	Apply      func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// RunCommands applies commands in order. When one fails, the already
// applied prefix is compensated in reverse order and the apply error is
// returned, joined with any compensation errors.
func RunCommands(ctx context.Context, cmds []Command) error {
	for i, cmd := range cmds {
		err := cmd.Apply(ctx)
		if err == nil {
			continue
		}
		err = fmt.Errorf("%s: %w", cmd.Name, err)
		for j := i - 1; j >= 0; j-- {
			if cmds[j].Compensate == nil {
				continue
			}
			if cerr := cmds[j].Compensate(ctx); cerr != nil {
				err = errors.Join(err, fmt.Errorf("compensate %s: %w", cmds[j].Name, cerr))
			}
		}
		return err
	}
	return nil
}
