package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// LineReader supplies command lines to the shell. ReadLine returns io.EOF
// when input ends or the user aborts.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// ScanReader reads lines from a plain reader, such as a pipe or a script.
// Prompts are not echoed.
type ScanReader struct {
	sc *bufio.Scanner
}

func NewScanReader(r io.Reader) *ScanReader {
	return &ScanReader{sc: bufio.NewScanner(r)}
}

func (r *ScanReader) ReadLine(string) (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

func (r *ScanReader) Close() error { return nil }

// LinerReader is the interactive reader: line editing, persistent history
// and tab completion of command names.
type LinerReader struct {
	state       *liner.State
	historyPath string
}

// NewLinerReader takes over the terminal until Close is called.
func NewLinerReader(historyPath string, commands []string) *LinerReader {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	st.SetCompleter(func(line string) []string {
		var out []string
		for _, c := range commands {
			if strings.HasPrefix(c, strings.ToLower(line)) {
				out = append(out, c+" ")
			}
		}
		return out
	})

	if f, err := os.Open(historyPath); err == nil {
		st.ReadHistory(f)
		f.Close()
	}
	return &LinerReader{state: st, historyPath: historyPath}
}

func (r *LinerReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}
	return line, nil
}

// Close writes the history file and restores the terminal.
func (r *LinerReader) Close() error {
	var histErr error
	if r.historyPath != "" {
		if f, err := os.Create(r.historyPath); err == nil {
			if _, err := r.state.WriteHistory(f); err != nil {
				histErr = fmt.Errorf("write history: %w", err)
			}
			f.Close()
		}
	}
	return errors.Join(histErr, r.state.Close())
}
