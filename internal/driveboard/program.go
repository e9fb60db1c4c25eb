package driveboard

import (
	"io"
)

// A Program is an ordered sequence of commands. Programs are built once and not modified afterwards.
type Program struct {
	commands []Command
}

func (p *Program) append(c ...Command) {
	p.commands = append(p.commands, c...)
}

// Commands returns the program's commands in order.
func (p *Program) Commands() []Command {
	return p.commands
}

// Len returns the number of commands in the program.
func (p *Program) Len() int {
	return len(p.commands)
}

// Lines returns the text of each command.
func (p *Program) Lines() []string {
	lines := make([]string, len(p.commands))
	var buf []byte
	for i, c := range p.commands {
		buf = c.AppendText(buf[:0])
		lines[i] = string(buf)
	}
	return lines
}

// String returns the program's text, one newline-terminated command per line.
func (p *Program) String() string {
	var buf []byte
	for _, c := range p.commands {
		buf = append(c.AppendText(buf), '\n')
	}
	return string(buf)
}

// WriteTo writes the program's text to w, one command per Write call.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	var total int64
	var buf []byte
	for _, c := range p.commands {
		buf = append(c.AppendText(buf[:0]), '\n')
		n, err := w.Write(buf)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
