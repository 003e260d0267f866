package ui

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"heartgate/internal/card"
	"heartgate/internal/config"
	"heartgate/internal/ui/textutil"
)

const (
	focusYes = "yes"
	focusNo  = "no"
)

const (
	heartSmall = "♥"
	heartLarge = "▄█▄ ▄█▄\n███████\n ▀███▀ \n   ▀   "
	heartMid   = "     \n▄▄ ▄▄\n█████\n ▀█▀ "
)

// ProposalView asks the question. The yes button grows and the no button
// runs away whenever it is hovered, clicked or focused.
type ProposalView struct {
	ctrl    *card.Controller
	text    config.Text
	timing  Timing
	marginX int
	marginY int
	focus   *FocusManager
	width   int
	height  int

	pulseGen   int
	pulseBig   bool
	hoveringNo bool
}

// Ensure ProposalView implements View.
var _ View = (*ProposalView)(nil)

// NewProposalView creates the proposal screen.
func NewProposalView(ctrl *card.Controller, cfg config.Config, timing Timing) *ProposalView {
	p := &ProposalView{
		ctrl:    ctrl,
		text:    cfg.Text,
		timing:  timing,
		marginX: cfg.MarginX,
		marginY: cfg.MarginY,
	}
	p.focus = &FocusManager{
		Current: focusYes,
		Order:   []string{focusYes, focusNo},
		OnChange: func(_, to string) {
			if to == focusNo {
				p.dodge()
			}
		},
	}
	return p
}

// Init implements View.
func (p *ProposalView) Init() tea.Cmd {
	p.pulseGen++
	return pulseCmd(p.timing.Pulse, p.pulseGen)
}

// Update implements View.
func (p *ProposalView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		return p, nil
	case pulseMsg:
		if msg.Gen != p.pulseGen || p.ctrl.Session().Screen != card.ScreenProposal {
			return p, nil
		}
		p.pulseBig = !p.pulseBig
		return p, pulseCmd(p.timing.Pulse, msg.Gen)
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "right", "l", "down", "j":
			p.focus.Next()
		case "shift+tab", "left", "h", "up", "k":
			p.focus.Prev()
		case "enter", " ":
			if p.focus.Current == focusNo {
				p.dodge()
				return p, nil
			}
			return p, p.accept()
		case "y":
			return p, p.accept()
		case "n":
			p.dodge()
		}
		return p, nil
	case tea.MouseMsg:
		return p, p.handleMouse(msg)
	}
	return p, nil
}

func (p *ProposalView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	yes, no := p.buttonRects()
	top := p.stageTop()
	x, y := msg.X, msg.Y-top
	// The yes button is drawn on top of the no button.
	overYes := yes.Contains(x, y)
	overNo := no.Contains(x, y) && !overYes

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if overYes {
			return p.accept()
		}
		if overNo {
			p.dodge()
			p.hoveringNo = p.pointerOverNo(x, y)
		}
	case msg.Action == tea.MouseActionMotion:
		if overNo && !p.hoveringNo {
			p.dodge()
			p.hoveringNo = p.pointerOverNo(x, y)
			return nil
		}
		p.hoveringNo = overNo
	}
	return nil
}

// pointerOverNo rechecks the pointer after the button moved.
func (p *ProposalView) pointerOverNo(x, y int) bool {
	yes, no := p.buttonRects()
	return no.Contains(x, y) && !yes.Contains(x, y)
}

func (p *ProposalView) dodge() {
	_ = p.ctrl.DodgeNo(p.viewport())
}

func (p *ProposalView) accept() tea.Cmd {
	effects, err := p.ctrl.AcceptYes()
	if err != nil {
		return nil
	}
	p.focus.Current = focusYes
	return effectsCmd(effects)
}

// viewport is the stage the no button moves within.
func (p *ProposalView) viewport() card.Viewport {
	return card.Viewport{
		Width:   float64(p.width),
		Height:  float64(p.stageHeight()),
		MarginX: float64(p.marginX),
		MarginY: float64(p.marginY),
	}
}

func (p *ProposalView) header() string {
	heart := heartMid
	if p.pulseBig {
		heart = heartLarge
	}
	if p.height > 0 && p.height < 16 {
		heart = heartSmall
	}
	question := p.text.Question
	if p.width > 0 {
		question = textutil.Truncate(question, p.width)
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		Styles.Heart.Render(heart),
		"",
		Styles.Question.Render(question),
		"",
	)
}

func (p *ProposalView) stageTop() int {
	return lipgloss.Height(p.header())
}

func (p *ProposalView) stageHeight() int {
	return max(p.height-p.stageTop(), 0)
}

// yesBlock renders the yes button at the current scale.
func (p *ProposalView) yesBlock() string {
	scale := p.ctrl.Session().YesButtonScale
	padX := int(math.Round(4 * scale))
	padY := int(math.Floor((scale - 1) / 0.6))
	style := Styles.Yes
	if p.focus.Current == focusYes {
		style = Styles.YesFocused
	}
	label := p.text.Yes
	labelW := textutil.VisualWidth(label)
	if p.width > 0 {
		padX = min(padX, max((p.width-labelW-2)/2, 0))
	}
	if sh := p.stageHeight(); sh > 0 {
		padY = min(padY, max((sh-3)/2, 0))
	}
	return style.Padding(padY, padX).Render(label)
}

func (p *ProposalView) noBlock() string {
	style := Styles.No
	if p.focus.Current == focusNo {
		style = Styles.NoFocused
	}
	return style.Padding(0, 2).Render(p.text.No)
}

// buttonRects returns the stage-relative rectangles of both buttons.
func (p *ProposalView) buttonRects() (yes, no Rect) {
	w, h := p.width, p.stageHeight()
	cx, cy := w/2, h/2

	yb := p.yesBlock()
	yw, yh := lipgloss.Width(yb), lipgloss.Height(yb)
	yes = Rect{X: cx - yw/2, Y: cy - 2 - yh/2, W: yw, H: yh}.Clamp(w, h)

	nb := p.noBlock()
	nw, nh := lipgloss.Width(nb), lipgloss.Height(nb)
	off := p.ctrl.Session().NoButtonOffset
	nx := cx + int(math.Round(off.X)) - nw/2
	ny := cy + 3 + int(math.Round(off.Y)) - nh/2
	no = Rect{X: nx, Y: ny, W: nw, H: nh}.Clamp(w, h)
	return yes, no
}

// View implements View.
func (p *ProposalView) View() string {
	header := p.header()
	if p.width == 0 || p.height == 0 {
		return lipgloss.JoinVertical(lipgloss.Center, header, p.yesBlock(), p.noBlock())
	}
	header = lipgloss.PlaceHorizontal(p.width, lipgloss.Center, header)

	yes, no := p.buttonRects()
	stage := NewCanvas(p.width, p.stageHeight())
	stage.Place(no.X, no.Y, p.noBlock())
	stage.Place(yes.X, yes.Y, p.yesBlock())
	return header + "\n" + stage.String()
}

// HelpKeys returns view-level bindings for the help footer.
func (p *ProposalView) HelpKeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y/enter", p.text.Yes)),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", p.text.No)),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
	}
}
