// Package cli is the BookKeeper read loop: it reads command lines, routes
// them to handlers and prints results in bordered blocks.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"

	"bookkeeper/library"
)

const prompt = "Enter a command: "

// Shell runs commands against a LibraryManager.
type Shell struct {
	mgr      *library.LibraryManager
	out      io.Writer
	log      zerolog.Logger
	commands []*Command
	byName   map[string]*Command
}

func NewShell(mgr *library.LibraryManager, out io.Writer, log zerolog.Logger) *Shell {
	s := &Shell{mgr: mgr, out: out, log: log, commands: commands()}
	s.byName = make(map[string]*Command, len(s.commands))
	for _, c := range s.commands {
		s.byName[c.Name()] = c
	}
	return s
}

// CommandNames lists every command name, in help order.
func (s *Shell) CommandNames() []string {
	names := make([]string, len(s.commands))
	for i, c := range s.commands {
		names[i] = c.Name()
	}
	return names
}

// Run shows the help, then executes lines from in until exit or end of
// input.
func (s *Shell) Run(in LineReader) error {
	for _, w := range s.mgr.Warnings() {
		s.say(w)
	}
	s.say(formatHelp(s.commands))

	for {
		line, err := in.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if s.Execute(line) {
			break
		}
	}
	s.say("Exiting BookKeeper...")
	return nil
}

// Execute runs one command line and reports whether the shell should exit.
// Command failures are printed, never returned.
func (s *Shell) Execute(line string) (exit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		s.say("Please enter a command")
		return false
	}
	if strings.Contains(line, "|") {
		s.say(`Please do not use "|" in your inputs`)
		return false
	}

	if err := s.mgr.Reconcile(); err != nil {
		s.fail(err)
	}

	name, args := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		name, args = line[:i], line[i:]
	}
	name = strings.ToLower(name)
	if name == "exit" {
		return true
	}
	cmd, ok := s.byName[name]
	if !ok {
		s.unknown(name)
		return false
	}

	s.log.Debug().Str("command", name).Msg("dispatch")
	if err := cmd.Exec(s, args); err != nil {
		s.fail(err)
	}
	return false
}

func (s *Shell) unknown(name string) {
	msg := "Unknown command: " + name
	matches := fuzzy.Find(name, s.CommandNames())
	if len(matches) > 0 {
		var hints []string
		for i, m := range matches {
			if i == 3 {
				break
			}
			hints = append(hints, m.Str)
		}
		msg += "\nDid you mean: " + strings.Join(hints, ", ") + "?"
	}
	s.say(msg + "\nType \"help\" for the list of commands.")
}

func (s *Shell) say(msg string) {
	fmt.Fprintln(s.out, bordered(msg))
}

// fail prints err. The sentinel kind prefix is dropped for everything but
// storage failures, whose detail the user needs to retry.
func (s *Shell) fail(err error) {
	s.log.Warn().Err(err).Msg("command failed")
	msg := err.Error()
	if errors.Is(err, library.ErrStorage) {
		msg = "Something went wrong while saving: " + msg
	} else {
		msg = userMessage(err)
	}
	s.say(errorStyle.Render(msg))
}

func userMessage(err error) string {
	msg := err.Error()
	for _, kind := range []error{
		library.ErrNotFound, library.ErrDuplicate, library.ErrConflict, library.ErrInvalidArgument,
	} {
		if errors.Is(err, kind) {
			msg = strings.TrimPrefix(msg, kind.Error()+": ")
			break
		}
	}
	return capitalize(msg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
