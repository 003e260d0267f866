package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"heartgate/internal/card"
	"heartgate/internal/config"
)

// shakeKeyframes are the horizontal offsets of the shake, in cells.
var shakeKeyframes = []int{-2, 2, -2, 2, 0}

const lockArt = " ┌─┐ \n┌┴─┴┐\n│ ♥ │\n└───┘"

// PasswordView is the locked first screen.
type PasswordView struct {
	ctrl   *card.Controller
	text   config.Text
	timing Timing
	input  textinput.Model
	width  int
	height int

	shakeGen int
	shakeX   int
}

// Ensure PasswordView implements View.
var _ View = (*PasswordView)(nil)

// NewPasswordView creates the password screen.
func NewPasswordView(ctrl *card.Controller, text config.Text, timing Timing) *PasswordView {
	ti := textinput.New()
	ti.Placeholder = text.Placeholder
	ti.Width = 16
	ti.Prompt = ""
	ti.SetValue(ctrl.Session().PasswordInput)
	ti.Focus()
	return &PasswordView{ctrl: ctrl, text: text, timing: timing, input: ti}
}

// Init implements View.
func (p *PasswordView) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (p *PasswordView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		return p, nil
	case shakeMsg:
		p.shakeGen++
		p.shakeX = shakeKeyframes[0]
		return p, shakeFrameCmd(p.timing.ShakeFrame, p.shakeGen, 1)
	case shakeFrameMsg:
		if msg.Gen != p.shakeGen || msg.Step >= len(shakeKeyframes) {
			return p, nil
		}
		p.shakeX = shakeKeyframes[msg.Step]
		if msg.Step == len(shakeKeyframes)-1 {
			return p, nil
		}
		return p, shakeFrameCmd(p.timing.ShakeFrame, msg.Gen, msg.Step+1)
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			return p, p.submit()
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	// Only fails off the password screen, where this view is not routed to.
	_ = p.ctrl.SetInput(p.input.Value())
	return p, cmd
}

func (p *PasswordView) submit() tea.Cmd {
	if err := p.ctrl.SetInput(p.input.Value()); err != nil {
		return nil
	}
	effects, err := p.ctrl.Submit()
	if err != nil {
		return nil
	}
	return effectsCmd(effects)
}

// View implements View.
func (p *PasswordView) View() string {
	inputStyle := Styles.Input
	if p.ctrl.Session().ErrorFlag {
		inputStyle = Styles.InputError
	}
	field := inputStyle.Render(p.input.View())
	// Margins sum to a constant so the shake does not reflow the card.
	field = lipgloss.NewStyle().
		MarginLeft(2 + p.shakeX).
		MarginRight(2 - p.shakeX).
		Render(field)

	body := lipgloss.JoinVertical(lipgloss.Center,
		Styles.Title.Render(lockArt),
		"",
		Styles.Title.Render(p.text.LockTitle),
		Styles.Prompt.Render(p.text.LockPrompt),
		"",
		field,
		"",
		Styles.Submit.Render(p.text.Unlock),
	)
	box := Styles.Card.Render(body)
	if p.width == 0 || p.height == 0 {
		return box
	}
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, box)
}

// HelpKeys returns view-level bindings for the help footer.
func (p *PasswordView) HelpKeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", p.text.Unlock)),
	}
}
