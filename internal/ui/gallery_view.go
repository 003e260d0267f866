package ui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"heartgate/internal/card"
	"heartgate/internal/config"
	"heartgate/internal/gallery"
	"heartgate/internal/ui/textutil"
)

const (
	thumbCols = 16
	thumbRows = 7
	tileGap   = 2
	// tileChrome is the tile border plus its caption row.
	tileChrome = 3
	// galleryChrome is title, subtitle, the blank rows and the back link.
	galleryChrome = 5
)

// tile is the render state of one gallery slot.
type tile struct {
	revealed  bool
	loading   bool
	img       image.Image
	thumb     string
	thumbRows int
}

// GalleryView shows the photo grid. Slots appear one after another and
// fall back to a generated placeholder when their photo cannot be loaded.
type GalleryView struct {
	ctrl    *card.Controller
	text    config.Text
	timing  Timing
	loader  ImageLoader
	tiles   []tile
	spinner spinner.Model
	width   int
	height  int

	spinning bool
	started  bool
	backLink Rect
}

// Ensure GalleryView implements View.
var _ View = (*GalleryView)(nil)

// NewGalleryView creates the gallery screen.
func NewGalleryView(ctrl *card.Controller, text config.Text, timing Timing, loader ImageLoader) *GalleryView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRose))
	return &GalleryView{
		ctrl:    ctrl,
		text:    text,
		timing:  timing,
		loader:  loader,
		tiles:   make([]tile, len(ctrl.Slots())),
		spinner: s,
	}
}

// Init implements View. The first call staggers the reveal of every slot;
// returning to the gallery keeps what is already loaded.
func (g *GalleryView) Init() tea.Cmd {
	if g.started {
		return nil
	}
	g.started = true
	cmds := make([]tea.Cmd, 0, len(g.tiles))
	for i := range g.tiles {
		cmds = append(cmds, revealSlotCmd(g.timing.SlotStagger, i+1))
	}
	return tea.Batch(cmds...)
}

// Update implements View.
func (g *GalleryView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.width, g.height = msg.Width, msg.Height
		return g, nil
	case revealSlotMsg:
		t := g.tile(msg.Index)
		if t == nil || t.revealed {
			return g, nil
		}
		t.revealed = true
		return g, g.load(msg.Index)
	case slotLoadedMsg:
		t := g.tile(msg.Index)
		if t == nil || !g.current(msg.Index, msg.Ref) {
			return g, nil
		}
		t.loading = false
		t.img = msg.Image
		t.thumbRows = g.tileRows()
		t.thumb = gallery.Thumbnail(t.img, thumbCols, t.thumbRows)
		return g, nil
	case slotFailedMsg:
		t := g.tile(msg.Index)
		if t == nil || !g.current(msg.Index, msg.Ref) {
			return g, nil
		}
		slot, err := g.ctrl.SlotFailed(msg.Index)
		if err != nil || slot.Ref == msg.Ref {
			// The placeholder itself failed; leave the tile empty.
			t.loading = false
			return g, nil
		}
		return g, g.load(msg.Index)
	case spinner.TickMsg:
		if !g.anyLoading() {
			g.spinning = false
			return g, nil
		}
		var cmd tea.Cmd
		g.spinner, cmd = g.spinner.Update(msg)
		return g, cmd
	case tea.KeyMsg:
		return g, nil
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && g.backLink.Contains(msg.X, msg.Y) {
			return g, func() tea.Msg { return BackMsg{} }
		}
		return g, nil
	}
	return g, nil
}

// Reload points slot i back at its photo and loads it again if visible.
func (g *GalleryView) Reload(i int) tea.Cmd {
	t := g.tile(i)
	if t == nil {
		return nil
	}
	if _, err := g.ctrl.ReloadSlot(i); err != nil {
		return nil
	}
	if !t.revealed {
		return nil
	}
	return g.load(i)
}

func (g *GalleryView) load(i int) tea.Cmd {
	slot, err := g.ctrl.Slot(i)
	if err != nil {
		return nil
	}
	g.tiles[i-1].loading = true
	cmd := loadSlotCmd(g.loader, slot)
	if !g.spinning {
		g.spinning = true
		return tea.Batch(cmd, g.spinner.Tick)
	}
	return cmd
}

func (g *GalleryView) tile(i int) *tile {
	if i < 1 || i > len(g.tiles) {
		return nil
	}
	return &g.tiles[i-1]
}

// current reports whether ref is still what slot i requests.
func (g *GalleryView) current(i int, ref string) bool {
	slot, err := g.ctrl.Slot(i)
	return err == nil && slot.Ref == ref
}

func (g *GalleryView) anyLoading() bool {
	for _, t := range g.tiles {
		if t.loading {
			return true
		}
	}
	return false
}

// columns picks 1, 2 or 4 tiles per row depending on width.
func (g *GalleryView) columns() int {
	tw := thumbCols + 2 + tileGap
	switch {
	case g.width == 0 || g.width >= 4*tw:
		return 4
	case g.width >= 2*tw:
		return 2
	default:
		return 1
	}
}

// tileRows picks the thumbnail height so the whole grid fits the screen.
func (g *GalleryView) tileRows() int {
	if g.height == 0 {
		return thumbRows
	}
	cols := g.columns()
	gridRows := max((len(g.tiles)+cols-1)/cols, 1)
	per := (g.height-galleryChrome)/gridRows - tileChrome
	return min(max(per, 1), thumbRows)
}

func (g *GalleryView) renderTile(i, rows int) string {
	t := &g.tiles[i-1]
	if t.img != nil && t.thumbRows != rows {
		t.thumbRows = rows
		t.thumb = gallery.Thumbnail(t.img, thumbCols, rows)
	}
	var body string
	switch {
	case !t.revealed:
		body = strings.Repeat(strings.Repeat(" ", thumbCols)+"\n", rows-1) + strings.Repeat(" ", thumbCols)
	case t.loading:
		body = lipgloss.Place(thumbCols, rows, lipgloss.Center, lipgloss.Center, g.spinner.View())
	case t.thumb == "":
		body = lipgloss.Place(thumbCols, rows, lipgloss.Center, lipgloss.Center, Styles.Heart.Render("♥"))
	default:
		body = t.thumb
	}
	frame := Styles.Tile.Render(body)
	caption := ""
	if t.revealed {
		caption = textutil.Center(fmt.Sprintf("♥ %d", i), thumbCols+2)
	}
	return lipgloss.JoinVertical(lipgloss.Left, frame, Styles.TileCaption.Render(caption))
}

// View implements View.
func (g *GalleryView) View() string {
	sparkle := Styles.Sparkle.Render("✦")
	title := sparkle + " " + Styles.Title.Render(g.text.GalleryTitle) + " " + sparkle

	cols := g.columns()
	tileRows := g.tileRows()
	var rows []string
	for start := 1; start <= len(g.tiles); start += cols {
		var row []string
		for i := start; i < start+cols && i <= len(g.tiles); i++ {
			if i > start {
				row = append(row, strings.Repeat(" ", tileGap))
			}
			row = append(row, g.renderTile(i, tileRows))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	top := lipgloss.JoinVertical(lipgloss.Center,
		title,
		Styles.Prompt.Render(g.text.GallerySubtle),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
	)
	back := Styles.Back.Render(g.text.Back)
	lines := strings.Split(lipgloss.JoinVertical(lipgloss.Center, top, back), "\n")
	if g.height > 0 && len(lines) > g.height {
		// Too short even for one-row thumbnails: keep the back link visible.
		link := lines[len(lines)-1]
		lines = append(lines[:max(g.height-1, 0)], link)
	}
	out := strings.Join(lines, "\n")
	if g.width > 0 {
		out = lipgloss.PlaceHorizontal(g.width, lipgloss.Center, out)
	}
	placed := strings.Split(out, "\n")
	g.backLink = linkRect(placed[len(placed)-1], g.text.Back, len(placed)-1)
	return out
}

// linkRect locates text on a rendered line.
func linkRect(line, text string, row int) Rect {
	plain := ansi.Strip(line)
	idx := strings.Index(plain, text)
	if idx < 0 {
		return Rect{}
	}
	return Rect{X: ansi.StringWidth(plain[:idx]), Y: row, W: ansi.StringWidth(text), H: 1}
}
