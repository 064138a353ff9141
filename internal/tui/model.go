// Package tui renders the search screen with bubbletea.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"starsearch/internal/component"
	"starsearch/internal/starwars"
)

// maxListed caps how many records of a list are rendered.
const maxListed = 15

// Controller receives the user's actions.
type Controller interface {
	ChangeCharactersInput(component.InputEvent)
	LoadCharactersAndPlanets()
}

// StateMsg carries a component snapshot into the update loop.
type StateMsg component.State

// Model is the bubbletea model of the search screen.
type Model struct {
	ctrl    Controller
	input   textinput.Model
	spinner spinner.Model
	styles  *Styles
	state   component.State
}

// New creates the screen model.
func New(ctrl Controller) Model {
	input := textinput.New()
	input.Placeholder = "Search characters (4+ letters)"
	input.CharLimit = 64
	input.Focus()

	return Model{
		ctrl:    ctrl,
		input:   input,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		styles:  NewStyles(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+l", "enter":
			// Off the update loop: releasing a previous load can wait on a
			// callback that is itself sending to this loop.
			ctrl := m.ctrl
			return m, func() tea.Msg {
				ctrl.LoadCharactersAndPlanets()
				return nil
			}
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != before {
			m.ctrl.ChangeCharactersInput(component.InputEvent{Value: v})
		}
		return m, cmd

	case StateMsg:
		m.state = component.State(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Star Wars search"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.state.IsLoading {
		b.WriteString(m.styles.Loading.Render(m.spinner.View() + " Loading..."))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Section.Render("Characters"))
	b.WriteString("\n")
	if m.state.SearchErr != nil {
		b.WriteString(m.styles.Error.Render("search failed: " + m.state.SearchErr.Error()))
		b.WriteString("\n")
	}
	m.renderList(&b, m.state.Results, "no results")

	b.WriteString(m.styles.Section.Render("Characters and planets"))
	b.WriteString("\n")
	if m.state.CombinedErr != nil {
		b.WriteString(m.styles.Error.Render("load failed: " + m.state.CombinedErr.Error()))
		b.WriteString("\n")
	}
	m.renderList(&b, m.state.Combined, "press enter to load")

	b.WriteString(m.styles.Help.Render("enter/ctrl+l: load characters and planets • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderList(b *strings.Builder, records []starwars.Record, empty string) {
	if len(records) == 0 {
		b.WriteString(m.styles.Dim.Render(empty))
		b.WriteString("\n")
		return
	}
	for i, r := range records {
		if i == maxListed {
			b.WriteString(m.styles.Dim.Render("…"))
			b.WriteString("\n")
			break
		}
		b.WriteString(m.styles.Item.Render(r.Name))
		b.WriteString("\n")
	}
}

// Run drives comp from a terminal program until the user quits or ctx is
// done. comp is initialised here and destroyed on return.
func Run(ctx context.Context, comp *component.Component, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(New(comp), append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)

	comp.OnChange(func(s component.State) { p.Send(StateMsg(s)) })
	comp.Init(ctx)
	defer comp.Destroy()

	_, err := p.Run()
	return err
}
