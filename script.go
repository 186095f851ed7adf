package gridsheet

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ScriptStep is one parsed line of a command script: a command to execute,
// or an "undo" / "redo" directive.
type ScriptStep struct {
	Line    int
	Text    string
	Command Command
	Undo    bool
	Redo    bool
}

// attrPattern matches key="value" pairs, supporting straight, single and smart quotes.
var attrPattern = regexp.MustCompile(`(\w+)\s*=\s*["'\x{201C}\x{201D}\x{2018}\x{2019}]([^"'\x{201C}\x{201D}\x{2018}\x{2019}]*)["'\x{201C}\x{201D}\x{2018}\x{2019}]`)

// ParseScript reads one step per line, e.g.
//
//	setFormat(range="A1:C1" background="#ffcc00" fontWeight="bold")
//	mergeCells(range="A3:B4")
//	undo
//
// Blank lines and lines starting with '#' are ignored.
func ParseScript(r io.Reader, registry *CommandRegistry) ([]ScriptStep, error) {
	if registry == nil {
		registry = NewCommandRegistry()
	}
	var steps []ScriptStep
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		step := ScriptStep{Line: lineNo, Text: line}
		switch line {
		case "undo":
			step.Undo = true
		case "redo":
			step.Redo = true
		default:
			cmd, err := parseCommandLine(line, registry)
			if err != nil {
				return nil, &ScriptError{Line: lineNo, Text: line, Err: err}
			}
			step.Command = cmd
		}
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

// parseCommandLine parses a single line like name(key="value" ...).
func parseCommandLine(line string, registry *CommandRegistry) (Command, error) {
	parenIdx := strings.Index(line, "(")
	if parenIdx < 0 {
		return nil, fmt.Errorf("missing '(' in command: %q", line)
	}
	closeIdx := strings.LastIndex(line, ")")
	if closeIdx < parenIdx {
		return nil, fmt.Errorf("missing ')' in command: %q", line)
	}
	name := strings.TrimSpace(line[:parenIdx])
	return registry.Create(name, parseAttributes(line[parenIdx+1:closeIdx]))
}

// parseAttributes extracts key="value" pairs.
func parseAttributes(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrPattern.FindAllStringSubmatch(s, -1) {
		attrs[m[1]] = m[2]
	}
	return attrs
}

// RunScript executes steps against a history, stopping at the first command
// or directive that fails.
func RunScript(h *History, steps []ScriptStep) error {
	for _, st := range steps {
		var ok bool
		switch {
		case st.Undo:
			ok = h.Undo()
		case st.Redo:
			ok = h.Redo()
		default:
			ok = h.Execute(st.Command)
		}
		if !ok {
			err := fmt.Errorf("step did not apply")
			if mc, isMerge := st.Command.(*MergeCellsCommand); isMerge && mc.Err() != nil {
				err = mc.Err()
			}
			return &ScriptError{Line: st.Line, Text: st.Text, Err: err}
		}
	}
	return nil
}
