// Package option binds a display name to a command, an optional input
// preparation step and a success message.
package option

import (
	"context"
	"strings"

	"github.com/nikbrunner/bark/internal/command"
	"github.com/nikbrunner/bark/internal/prompt"
)

// ResultPlaceholder is replaced by the rendered payload in success messages.
const ResultPlaceholder = "{result}"

// PrepFunc gathers the input of a command, usually by prompting.
type PrepFunc[In any] func(ctx context.Context, p prompt.Prompter) (In, error)

// Outcome is what choosing an option produced for display.
type Outcome struct {
	// Message is the rendered success message. Empty unless Shown.
	Message string
	Shown   bool
	// Exit asks the menu loop to stop.
	Exit bool
}

// Option is a menu entry as the menu loop sees it.
type Option interface {
	Choose(ctx context.Context, p prompt.Prompter) (Outcome, error)
	String() string
}

type boundOption[In any] struct {
	name           string
	cmd            command.Command[In]
	prep           PrepFunc[In]
	successMessage string
}

// Setting configures an Option.
type Setting func(*settings)

type settings struct {
	successMessage string
}

// WithSuccessMessage sets the message shown when the command succeeds.
// ResultPlaceholder in tmpl is replaced by the rendered payload.
func WithSuccessMessage(tmpl string) Setting {
	return func(s *settings) {
		s.successMessage = tmpl
	}
}

// New binds cmd under name. prep may be nil when cmd takes no input
// beyond its zero value.
func New[In any](name string, cmd command.Command[In], prep PrepFunc[In], opts ...Setting) Option {
	s := settings{successMessage: ResultPlaceholder}
	for _, opt := range opts {
		opt(&s)
	}

	return &boundOption[In]{
		name:           name,
		cmd:            cmd,
		prep:           prep,
		successMessage: s.successMessage,
	}
}

// Choose runs prep, then the command, then renders the result. Failed
// results show nothing. Errors from prep or the command are returned as is.
func (o *boundOption[In]) Choose(ctx context.Context, p prompt.Prompter) (Outcome, error) {
	var data In
	if o.prep != nil {
		var err error
		if data, err = o.prep(ctx, p); err != nil {
			return Outcome{}, err
		}
	}

	res, err := o.cmd.Execute(ctx, data)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Exit: res.Exit}
	if res.Success {
		out.Message = Render(o.successMessage, res.Payload)
		out.Shown = true
	}
	return out, nil
}

func (o *boundOption[In]) String() string {
	return o.name
}

// Render fills tmpl with the rendered payload.
func Render(tmpl string, p command.Payload) string {
	result := ""
	if p != nil {
		result = p.Render()
	}
	return strings.ReplaceAll(tmpl, ResultPlaceholder, result)
}
