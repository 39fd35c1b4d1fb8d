package retention

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the operator about path and returns the raw answer.
type Prompter func(path string) (string, error)

// ConsolePrompter returns a Prompter asking on out and reading one line from in per call.
func ConsolePrompter(in io.Reader, out io.Writer) Prompter {
	reader := bufio.NewReader(in)
	return func(path string) (string, error) {
		if _, err := fmt.Fprintf(out, "Do you want to delete: %s ? y/N ", path); err != nil {
			return "", err
		}
		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		return line, nil
	}
}

// Gate decides, path by path, whether a removal may proceed.
type Gate struct {
	Force  bool
	Prompt Prompter
	Emit   func(Event)
}

// ShouldDelete returns true without prompting when Force is set. Otherwise only an
// answer of "Y" (any case, surrounding blanks ignored) allows the removal.
func (g *Gate) ShouldDelete(path string) bool {
	if g.Force {
		return true
	}

	var answer string
	if g.Prompt != nil {
		var err error
		if answer, err = g.Prompt(path); err != nil {
			answer = ""
		}
	}
	if strings.ToUpper(strings.TrimSpace(answer)) == "Y" {
		return true
	}

	if g.Emit != nil {
		g.Emit(EventDeclined{Path: path})
	}
	return false
}
