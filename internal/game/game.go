// Package game composes the rain engines, the starfield, the logo field and
// the soundtrack into an ebiten game.
package game

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/neon-rain/internal/config"
	"github.com/iburimskiy/neon-rain/internal/misc"
	"github.com/iburimskiy/neon-rain/internal/rain"
	"github.com/iburimskiy/neon-rain/internal/soundtrack"
	"github.com/iburimskiy/neon-rain/internal/starfield"
	"github.com/iburimskiy/neon-rain/internal/vectorfield"
)

// logoSteps is how many segments the logo outline is stroked with.
const logoSteps = 240

var (
	boxFill   = color.NRGBA{A: 210}
	boxBorder = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 255}
)

type Game struct {
	preset *config.Preset
	seed   uint64

	matrix       *rain.Engine
	fire         *rain.Engine
	matrixRegion *region
	fireRegion   *region
	stars        *starfield.Field
	logo         *vectorfield.Field
	logoCancels  []func()
	player       *soundtrack.Player

	width, height int
	starsSize     image.Point
	started       time.Time
	lastErr       error
}

// New builds every layer from p. A zero seed draws fresh randomness.
func New(p *config.Preset, seed uint64) (*Game, error) {
	initClipboard()
	g := &Game{
		seed:    seed,
		player:  soundtrack.NewPlayer(),
		started: time.Now(),
	}
	if err := g.apply(p); err != nil {
		return nil, err
	}
	if p.Soundtrack != "" {
		if err := g.player.Play(p.Soundtrack); err != nil {
			misc.WarnLogger.Printf("soundtrack %s: %v", p.Soundtrack, err)
			g.lastErr = err
		}
	}
	return g, nil
}

func (g *Game) rng(stream uint64) *rand.Rand {
	if g.seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(g.seed, stream))
}

// apply replaces every visual layer with ones built from p. On error the
// current layers are kept.
func (g *Game) apply(p *config.Preset) error {
	matrix, err := rain.New(p.Matrix, rain.WithRand(g.rng(1)))
	if err != nil {
		return fmt.Errorf("matrix rain: %w", err)
	}
	var fire *rain.Engine
	if p.FireEnabled {
		if fire, err = rain.New(p.Fire, rain.WithRand(g.rng(2))); err != nil {
			return fmt.Errorf("fire rain: %w", err)
		}
	}
	stars, err := starfield.New(p.StarField, starfield.WithRand(g.rng(3)))
	if err != nil {
		return err
	}
	logo, err := vectorfield.New(vectorfield.Logo, p.VectorField, vectorfield.WithRand(g.rng(4)))
	if err != nil {
		return err
	}

	g.closeLayers()

	g.preset = p
	g.matrix, g.fire, g.stars, g.logo = matrix, fire, stars, logo
	g.starsSize = image.Point{}
	g.matrixRegion = newRegion(p.Matrix.FontSize)
	g.matrix.Attach(g.matrixRegion)

	g.fireRegion = newRegion(p.Fire.FontSize)
	if g.fire != nil {
		g.fire.Attach(g.fireRegion)
	}
	g.logoCancels = []func(){
		g.fireRegion.OnResize(g.logo.Resize),
		g.fireRegion.OnPointerMove(g.logo.PointerMove),
		g.fireRegion.OnPointerLeave(g.logo.PointerLeave),
	}

	if g.width > 0 && g.height > 0 {
		g.layout()
	}
	misc.InfoLogger.Printf("preset %q applied", p.Title)
	return nil
}

func (g *Game) closeLayers() {
	for _, cancel := range g.logoCancels {
		cancel()
	}
	g.logoCancels = nil
	if g.matrix != nil {
		g.matrix.Close()
	}
	if g.fire != nil {
		g.fire.Close()
	}
}

// Close stops the soundtrack and releases every surface.
func (g *Game) Close() {
	g.closeLayers()
	g.player.Close()
}

func (g *Game) layout() {
	if size := image.Pt(g.width, g.height); size != g.starsSize {
		g.stars.Resize(g.width, g.height)
		g.starsSize = size
	}
	g.matrixRegion.setBounds(contentBox(g.width, g.height, 1, 1))
	g.fireRegion.setBounds(contentBox(g.width, g.height, config.BoxWidthRatio, config.BoxHeightRatio))
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.player.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := g.openPresetDialog(); err != nil {
			g.lastErr = err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if err := g.openSoundtrackDialog(); err != nil {
			g.lastErr = err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := g.copyPreset(); err != nil {
			g.lastErr = err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if err := g.pastePreset(); err != nil {
			g.lastErr = err
		} else {
			g.lastErr = nil
		}
	}

	g.layout()

	x, y := ebiten.CursorPosition()
	focused := ebiten.IsFocused()
	g.matrixRegion.track(x, y, focused)
	g.fireRegion.track(x, y, focused)

	g.stars.Update()
	g.logo.Pulse(g.player.Level())
	g.logo.Update()
	g.matrix.Tick()
	if g.fire != nil {
		g.fire.Tick()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	g.matrixRegion.draw(screen)
	g.drawStars(screen)

	box := g.fireRegion.bounds
	vector.DrawFilledRect(screen, float32(box.Min.X), float32(box.Min.Y), float32(box.Dx()), float32(box.Dy()), boxFill, false)
	g.fireRegion.draw(screen)
	vector.StrokeRect(screen, float32(box.Min.X), float32(box.Min.Y), float32(box.Dx()), float32(box.Dy()), 1, boxBorder, false)

	g.drawLogo(screen, float64(box.Min.X), float64(box.Min.Y))
	g.drawTitle(screen, float64(box.Min.Y))

	status := fmt.Sprintf("%s  matrix %d", formatDuration(time.Since(g.started)), len(g.matrix.Streams()))
	if g.fire != nil {
		status += fmt.Sprintf("  fire %d", len(g.fire.Streams()))
	}
	switch {
	case g.player.Playing():
		status += "  | Space: pause"
	default:
		status += "  | M: soundtrack"
	}
	status += "  O: preset  C/V: copy/paste preset  Esc/Q: quit"
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, config.StatusMargin, config.StatusMargin)
}

func (g *Game) drawStars(screen *ebiten.Image) {
	for _, s := range g.stars.Stars() {
		a := s.Alpha()
		if a <= 0 {
			continue
		}
		c := s.Color
		c.A = uint8(a * 255)
		vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), float32(s.Size), c, true)
	}
	size := float32(g.stars.Options().ShootingStarSize)
	for _, s := range g.stars.ShootingStars() {
		tx, ty := s.Tail()
		head := color.NRGBA{R: 255, G: 255, B: 255, A: uint8(s.Opacity * 255)}
		vector.StrokeLine(screen, float32(tx), float32(ty), float32(s.X), float32(s.Y), size/2, head, true)
		vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), size, head, true)
		for _, sp := range g.stars.Sparks(s) {
			vector.DrawFilledCircle(screen, float32(sp.X), float32(sp.Y), float32(sp.Size), sp.Color, true)
		}
	}
}

// drawLogo strokes the outline with the field's gradient, offset to the box.
func (g *Game) drawLogo(screen *ebiten.Image, ox, oy float64) {
	path, length := g.logo.Path(), g.logo.Length()
	if len(g.logo.Stops()) == 0 {
		return
	}
	px, py := g.logo.ToScreen(path.PointAt(0))
	for i := 1; i <= logoSteps; i++ {
		t := float64(i) / logoSteps
		x, y := g.logo.ToScreen(path.PointAt(t * length))
		c := g.logo.ColorAt(t)
		if c.A > 0 {
			vector.StrokeLine(screen, float32(ox+px), float32(oy+py), float32(ox+x), float32(oy+y), config.LogoLineWidth, c, true)
		}
		px, py = x, y
	}
}

func (g *Game) drawTitle(screen *ebiten.Image, boxTop float64) {
	if g.preset.Title == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(g.width)/2, boxTop-config.TitleFontSize*1.5)
	op.ColorScale.ScaleWithColor(titleColor(time.Since(g.started)))
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, g.preset.Title, monoFace(config.TitleFontSize), op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) openPresetDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Preset"),
		zenity.FileFilters{{
			Name:     "Preset",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	p, err := config.LoadPreset(filename)
	if err != nil {
		return err
	}
	if err := g.apply(p); err != nil {
		return err
	}
	g.lastErr = nil
	return nil
}

func (g *Game) openSoundtrackDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	if err := g.player.Play(filename); err != nil {
		return err
	}
	g.lastErr = nil
	return nil
}
