// Package command holds the user-triggered actions of bark.
//
// Every action is a Command: it takes its input, talks to the persistence
// gateway or a remote source, and reports a Result. Commands never prompt
// or print; presentation belongs to the option and menu packages, so the
// same commands can be driven by the menu, the CLI subcommands or tests.
package command

import (
	"context"
	"strconv"
	"strings"

	"github.com/nikbrunner/bark/internal/model"
)

// Command is a single executable action taking input of type In.
//
// The returned error carries collaborator failures (storage, network,
// files). They are never recovered here. Result.Success is the only
// outcome the command itself reports.
type Command[In any] interface {
	Execute(ctx context.Context, in In) (Result, error)
}

// None is the input of commands that need no data.
type None struct{}

// Result is what a command reports back.
type Result struct {
	Success bool
	Payload Payload
	// Exit asks the menu loop to stop. Only Quit sets it.
	Exit bool
}

// OK returns a successful Result carrying p.
func OK(p Payload) Result {
	return Result{Success: true, Payload: p}
}

// Payload is the data part of a Result: one of Empty, Message, Count
// or Rows. Each variant renders itself for display.
type Payload interface {
	Render() string
	payload()
}

// Empty is the payload of commands with nothing to report.
type Empty struct{}

// Message is a fixed confirmation text.
type Message string

// Count is a number of affected bookmarks.
type Count int

// Rows is an ordered list of bookmarks.
type Rows []model.Bookmark

func (Empty) payload()   {}
func (Message) payload() {}
func (Count) payload()   {}
func (Rows) payload()    {}

func (Empty) Render() string { return "" }

func (m Message) Render() string { return string(m) }

func (c Count) Render() string { return strconv.Itoa(int(c)) }

// Render puts each bookmark on its own line as tab-separated
// id, title, url, notes, date_added. Absent notes render empty.
func (r Rows) Render() string {
	lines := make([]string, len(r))
	for i, b := range r {
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Quit asks the menu loop to stop. It never ends the process itself.
type Quit struct{}

func (Quit) Execute(context.Context, None) (Result, error) {
	return Result{Success: true, Payload: Empty{}, Exit: true}, nil
}
