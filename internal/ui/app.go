package ui

import (
	"log/slog"
	"math/rand/v2"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"heartgate/internal/card"
	"heartgate/internal/confetti"
	"heartgate/internal/config"
)

// footerHeight is the number of rows reserved for the help footer.
const footerHeight = 1

// AppModel is the root model. It owns the controller (and through it the
// session) and hands the same controller to every screen view.
type AppModel struct {
	Controller *card.Controller
	Password   *PasswordView
	Proposal   *ProposalView
	Gallery    *GalleryView
	Keys       *KeybindRegistry
	Logger     *slog.Logger

	// PhotoChanges, when set, reloads gallery slots whose photo changed.
	PhotoChanges <-chan int

	timing Timing
	rand   *rand.Rand
	burst  *confetti.Burst
	width  int
	height int
}

// Options configures NewAppModel.
type Options struct {
	Config     config.Config
	Controller *card.Controller
	Loader     ImageLoader
	Timing     Timing
	Rand       *rand.Rand
	Logger     *slog.Logger
}

// NewAppModel creates the root application model.
func NewAppModel(opts Options) *AppModel {
	if opts.Timing == (Timing{}) {
		opts.Timing = DefaultTiming()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	ctrl := opts.Controller

	reg := NewKeybindRegistry()
	reg.Bind("ctrl+c", tea.Quit, "quit")
	reg.BindForScreens("q", tea.Quit, "quit", []card.Screen{card.ScreenProposal, card.ScreenGallery})
	back := func() tea.Msg { return BackMsg{} }
	reg.BindForScreens("esc", back, opts.Config.Text.Back, []card.Screen{card.ScreenGallery})
	reg.BindForScreens("b", back, "", []card.Screen{card.ScreenGallery})

	return &AppModel{
		Controller: ctrl,
		Password:   NewPasswordView(ctrl, opts.Config.Text, opts.Timing),
		Proposal:   NewProposalView(ctrl, opts.Config, opts.Timing),
		Gallery:    NewGalleryView(ctrl, opts.Config.Text, opts.Timing, opts.Loader),
		Keys:       reg,
		Logger:     opts.Logger,
		timing:     opts.Timing,
		rand:       opts.Rand,
	}
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Screen returns the current screen.
func (m *AppModel) Screen() card.Screen {
	return m.Controller.Session().Screen
}

// Bursting reports whether the confetti burst is running.
func (m *AppModel) Bursting() bool {
	return m.burst != nil
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(a.currentView().Init(), waitForPhotoCmd(a.PhotoChanges))
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := a.Screen()
	cmd := a.update(msg)
	if after := a.Screen(); after != before {
		a.Logger.Debug("view switched", "from", before.String(), "to", after.String())
		cmd = tea.Batch(cmd, a.currentView().Init())
	}
	return a, cmd
}

func (a *appModelAdapter) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-footerHeight, 0)}
		a.Password.Update(inner)
		a.Proposal.Update(inner)
		a.Gallery.Update(inner)
		return nil
	case clearErrorMsg:
		a.Controller.Fire(msg.Task)
		return nil
	case burstMsg:
		a.burst = confetti.New(msg.Burst, a.width, a.height, a.rand)
		return confettiFrameCmd(a.timing.ConfettiFrame)
	case confettiFrameMsg:
		if a.burst == nil {
			return nil
		}
		if !a.burst.Step() {
			a.burst = nil
			return nil
		}
		return confettiFrameCmd(a.timing.ConfettiFrame)
	case photoChangedMsg:
		a.Logger.Debug("photo changed", "slot", msg.Index)
		return tea.Batch(a.Gallery.Reload(msg.Index), waitForPhotoCmd(a.PhotoChanges))
	case BackMsg:
		if err := a.Controller.Back(); err != nil {
			a.Logger.Debug("back ignored", "error", err)
		}
		return nil
	case tea.KeyMsg:
		if c := a.Keys.Lookup(msg.String(), a.Screen()); c != nil {
			return c
		}
	case shakeMsg, shakeFrameMsg:
		_, cmd := a.Password.Update(msg)
		return cmd
	case pulseMsg:
		_, cmd := a.Proposal.Update(msg)
		return cmd
	case revealSlotMsg, slotLoadedMsg, slotFailedMsg, spinner.TickMsg:
		_, cmd := a.Gallery.Update(msg)
		return cmd
	}

	_, cmd := a.currentView().Update(msg)
	return cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	base := a.currentView().View()
	if a.width > 0 && a.height > 0 {
		base = lipgloss.PlaceVertical(a.height-footerHeight, lipgloss.Top, base)
	}
	base += "\n" + RenderKeybindHelp(a.Keys, a.Screen(), a.width, a.helpKeys()...)
	if a.burst == nil || a.width == 0 || a.height == 0 {
		return base
	}
	c := CanvasFrom(base, a.width, a.height)
	for _, p := range a.burst.Particles() {
		c.Set(int(p.X), int(p.Y), p.Glyph, lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)))
	}
	return c.String()
}

func (a *appModelAdapter) helpKeys() []key.Binding {
	if v, ok := a.currentView().(interface{ HelpKeys() []key.Binding }); ok {
		return v.HelpKeys()
	}
	return nil
}

func (a *appModelAdapter) currentView() View {
	switch a.Screen() {
	case card.ScreenProposal:
		return a.Proposal
	case card.ScreenGallery:
		return a.Gallery
	default:
		return a.Password
	}
}
