// Command sxcinspect compiles a source file and lets the user browse
// its Type/Import/Function/Memory/Export/Code sections interactively.
// Retargeted from the teacher's cmd/run/interactive.go, which inspects
// a running component instance: here there is no instance, only the
// static shape of a module this repository's own compiler just
// produced.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sxwasm/sxc/compiler"
	"github.com/sxwasm/sxc/parser"
	"github.com/sxwasm/sxc/token"
	"github.com/sxwasm/sxc/valtype"
	"github.com/sxwasm/sxc/wasmbin"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: sxcinspect <input_path>")
		os.Exit(1)
	}

	m := newModel(os.Args[1])
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type pane int

const (
	paneSections pane = iota
	paneEntries
)

type model struct {
	filename string
	err      error
	mod      *wasmbin.Module
	sections []string
	selected int // index into sections
	cursor   int // index into the current section's entry list
	entries  []string
	pane     pane
}

func newModel(filename string) *model {
	return &model{filename: filename, pane: paneSections}
}

type loadedMsg struct {
	mod *wasmbin.Module
	err error
}

func (m *model) Init() tea.Cmd {
	return m.load
}

func (m *model) load() tea.Msg {
	src, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	tokens := token.Tokenize(string(src))
	arena, err := parser.New(tokens).Parse()
	if err != nil {
		return loadedMsg{err: err}
	}
	mod, _, err := compiler.CompileModule(arena, compiler.Options{})
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{mod: mod}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.err = msg.err
		m.mod = msg.mod
		if m.mod != nil {
			m.sections = []string{"Types", "Imports", "Functions", "Memory", "Exports", "Code"}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.pane == paneEntries {
				m.pane = paneSections
				m.entries = nil
			}
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "enter":
			if m.pane == paneSections && m.mod != nil {
				m.entries = sectionEntries(m.mod, m.sections[m.selected])
				m.pane = paneEntries
				m.cursor = 0
			}
		}
	}
	return m, nil
}

func (m *model) moveCursor(delta int) {
	switch m.pane {
	case paneSections:
		m.selected += delta
		if m.selected < 0 {
			m.selected = 0
		}
		if m.selected >= len(m.sections) {
			m.selected = len(m.sections) - 1
		}
	case paneEntries:
		m.cursor += delta
		if m.cursor < 0 {
			m.cursor = 0
		}
		if m.cursor >= len(m.entries) {
			m.cursor = len(m.entries) - 1
		}
	}
}

func (m *model) View() string {
	if m.err != nil {
		return titleStyle.Render("sxcinspect") + "\n\n" + errorStyle.Render(m.err.Error()) + "\n"
	}
	if m.mod == nil {
		return titleStyle.Render("sxcinspect") + "\n\ncompiling " + m.filename + "...\n"
	}

	var b []byte
	b = append(b, titleStyle.Render("sxcinspect: "+m.filename)...)
	b = append(b, '\n', '\n')

	for i, s := range m.sections {
		line := fmt.Sprintf("  %s", s)
		if m.pane == paneSections && i == m.selected {
			line = selectedStyle.Render(fmt.Sprintf("> %s", s))
		} else {
			line = sectionStyle.Render(line)
		}
		b = append(b, line...)
		b = append(b, '\n')
	}

	if m.pane == paneEntries {
		b = append(b, '\n')
		for i, e := range m.entries {
			line := fmt.Sprintf("    %s", e)
			if i == m.cursor {
				line = selectedStyle.Render(fmt.Sprintf("  > %s", e))
			} else {
				line = detailStyle.Render(line)
			}
			b = append(b, line...)
			b = append(b, '\n')
		}
	}

	b = append(b, '\n')
	b = append(b, helpStyle.Render("up/down: move  enter: open  esc: back  q: quit")...)
	b = append(b, '\n')
	return string(b)
}

func sectionEntries(mod *wasmbin.Module, section string) []string {
	switch section {
	case "Types":
		out := make([]string, len(mod.Types))
		for i, t := range mod.Types {
			out[i] = fmt.Sprintf("type[%d]: %s -> %s", i, formatTypes(t.Params), formatTypes(t.Results))
		}
		return out

	case "Imports":
		out := make([]string, len(mod.Imports))
		for i, imp := range mod.Imports {
			out[i] = fmt.Sprintf("import[%d]: %q.%q type=%d", i, imp.Module, imp.Name, imp.TypeIdx)
		}
		return out

	case "Functions":
		out := make([]string, len(mod.Funcs))
		for i, f := range mod.Funcs {
			out[i] = fmt.Sprintf("func[%d]: type=%d", len(mod.Imports)+i, f.TypeIdx)
		}
		return out

	case "Memory":
		if mod.HasMemory {
			return []string{"memory 0: min=1 page, no max"}
		}
		return []string{"(module declares no memory)"}

	case "Exports":
		out := make([]string, len(mod.Exports))
		for i, e := range mod.Exports {
			kind := "func"
			if e.Kind == wasmbin.KindMemory {
				kind = "memory"
			}
			out[i] = fmt.Sprintf("export[%d]: %q (%s) -> idx %d", i, e.Name, kind, e.Idx)
		}
		return out

	case "Code":
		out := make([]string, len(mod.Code))
		for i, c := range mod.Code {
			out[i] = fmt.Sprintf("code[%d]: %d locals, %d instructions", len(mod.Imports)+i, len(c.Locals), len(c.Code))
		}
		return out
	}
	return nil
}

func formatTypes(ts []valtype.ValType) string {
	if len(ts) == 0 {
		return "void"
	}
	s := ""
	for i, t := range ts {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	return s
}
