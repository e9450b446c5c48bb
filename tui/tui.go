// Package tui is the interactive presenter: it owns the query, the recipe
// pool, and the current selection, and drives the Edamam pool builder.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/glamour/v2"
	"charm.land/lipgloss/v2"
	"charm.land/log/v2"

	"potluck/edamam"
	"potluck/output"
	"potluck/recipe"
)

// Tokyo Night palette.
var (
	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1b26")).
			Background(lipgloss.Color("#7aa2f7")).
			Bold(true).
			Padding(0, 1)
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7"))
)

// fetchState is the single source of truth for what the presenter shows.
type fetchState int

const (
	stateIdle fetchState = iota
	stateLoading
	stateReady
	stateError
)

type model struct {
	fetch func(query string, gen int) tea.Cmd

	input   textinput.Model
	spinner spinner.Model
	picker  recipe.Picker

	state  fetchState
	errMsg string
	card   string // glamour-rendered current selection

	// gen correlates in-flight fetches with the search that started them.
	// Incremented on every submit; a poolBuiltMsg with a stale gen loses.
	gen int

	typing    bool
	pagesDone int
	hitsSoFar int

	wordWrap int
	width    int
	height   int
}

func newModel(fetch func(query string, gen int) tea.Cmd, defaultQuery string, wordWrap int) model {
	ti := textinput.New()
	ti.Prompt = "Search: "
	tis := ti.Styles()
	tis.Focused.Prompt = promptStyle
	tis.Blurred.Prompt = promptStyle
	ti.SetStyles(tis)
	ti.SetValue(defaultQuery)

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7"))),
	)

	return model{
		fetch:    fetch,
		input:    ti,
		spinner:  s,
		picker:   recipe.NewPicker(),
		state:    stateLoading,
		gen:      1,
		wordWrap: wordWrap,
	}
}

// Init fires the initial search with the default query, no user action
// required.
func (m model) Init() tea.Cmd {
	if m.fetch == nil {
		return m.spinner.Tick
	}
	return tea.Batch(m.spinner.Tick, m.fetch(m.input.Value(), m.gen))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.card != "" {
			m.card = m.renderCard()
		}
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg.String(), msg)

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageFetchedMsg:
		if m.state == stateLoading {
			m.pagesDone = msg.page
			m.hitsSoFar += msg.hits
		}
		return m, nil

	case poolBuiltMsg:
		return m.handlePoolBuilt(msg)
	}

	return m, nil
}

func (m model) handlePoolBuilt(msg poolBuiltMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		// A newer search superseded this one.
		return m, nil
	}

	if msg.err != nil {
		if errors.Is(msg.err, edamam.ErrNoResults) {
			// No-results clears the pool; transport failures keep the
			// previous pool usable.
			m.picker.Clear()
			m.card = ""
		}
		m.state = stateError
		m.errMsg = msg.err.Error()
		return m, nil
	}

	// Pool replacement and index randomization happen as one step.
	m.picker.SetPool(msg.pool)
	m.state = stateReady
	m.errMsg = ""
	m.card = m.renderCard()
	return m, nil
}

func (m model) handleKey(key string, msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.typing {
		switch key {
		case "esc":
			m.typing = false
			m.input.Blur()
			return m, nil
		case "enter":
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "/":
		m.typing = true
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "enter":
		return m.submit()
	case "n":
		if m.state == stateLoading || m.picker.Len() == 0 {
			return m, nil
		}
		m.picker.Shuffle()
		m.card = m.renderCard()
		return m, nil
	}

	return m, nil
}

func (m model) submit() (tea.Model, tea.Cmd) {
	m.typing = false
	m.input.Blur()
	m.state = stateLoading
	m.errMsg = ""
	m.pagesDone = 0
	m.hitsSoFar = 0
	m.gen++
	if m.fetch == nil {
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, m.fetch(m.input.Value(), m.gen))
}

func (m model) renderCard() string {
	r, ok := m.picker.Current()
	if !ok {
		return ""
	}
	md := output.CardMarkdown(r)

	ww := m.wordWrap
	if m.width > 0 {
		ww = min(ww, m.width-4)
	}
	ww = max(20, ww)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(ww),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (m model) View() tea.View {
	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(logoStyle.Render("potluck"))
	if n := m.picker.Len(); n > 0 {
		b.WriteString("  ")
		b.WriteString(countStyle.Render(strconv.Itoa(n)))
		b.WriteString(dimStyle.Render(" recipes in pool"))
	}
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch m.state {
	case stateLoading:
		b.WriteString("  " + m.spinner.View() + " " + dimStyle.Render("Searching..."))
		if m.pagesDone > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf(" page %d, %d hits", m.pagesDone, m.hitsSoFar)))
		}
		b.WriteString("\n")
	case stateError:
		b.WriteString("  " + errStyle.Render(m.errMsg) + "\n")
	}

	if m.state != stateLoading {
		if m.card != "" {
			b.WriteString("\n")
			b.WriteString(m.card)
		} else if m.state != stateError {
			b.WriteString("\n  " + dimStyle.Render("Press enter to search, then n for a new random recipe."))
		}
	}

	b.WriteString("\n\n")
	if m.typing {
		b.WriteString(dimStyle.Render("  enter search  •  esc cancel"))
	} else {
		b.WriteString(dimStyle.Render("  enter search  •  / edit query  •  n new random  •  q quit"))
	}

	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}

// IsTTY reports whether stderr is connected to a terminal.
func IsTTY() bool {
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// Options configures a run of the presenter.
type Options struct {
	Edamam   edamam.Options
	Query    string
	WordWrap int
}

// Run launches the interactive presenter. Falls back to a single
// fetch-and-pick with log output when no TTY is available.
func Run(ctx context.Context, opts Options) error {
	if !IsTTY() {
		return runOnce(ctx, opts)
	}

	// The program pointer is captured before the client exists so page
	// progress can stream into the update loop.
	var prog *tea.Program
	opts.Edamam.OnPage = func(page, hits int) {
		if prog != nil {
			prog.Send(pageFetchedMsg{page: page, hits: hits})
		}
	}
	client := edamam.NewClient(opts.Edamam)

	fetch := func(query string, gen int) tea.Cmd {
		return func() tea.Msg {
			pool, err := client.FetchPool(ctx, query)
			return poolBuiltMsg{gen: gen, pool: pool, err: err}
		}
	}

	m := newModel(fetch, opts.Query, opts.WordWrap)
	prog = tea.NewProgram(m)
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func runOnce(ctx context.Context, opts Options) error {
	logger := log.New(os.Stderr)
	logger.SetLevel(log.InfoLevel)

	logger.Info("Searching recipes", "query", opts.Query)
	opts.Edamam.OnPage = func(page, hits int) {
		logger.Info("Fetched page", "page", page, "hits", hits)
	}
	client := edamam.NewClient(opts.Edamam)

	pool, err := client.FetchPool(ctx, opts.Query)
	if err != nil {
		return err
	}

	picker := recipe.NewPicker()
	picker.SetPool(pool)
	logger.Info("Search complete", "pool", picker.Len(), "picked", picker.Index())

	r, _ := picker.Current()
	out, err := output.RenderTerminal(r, opts.WordWrap)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
