package main

import (
	"context"
	"errors"
	"flag"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/iburimskiy/neon-rain/internal/config"
	"github.com/iburimskiy/neon-rain/internal/game"
	"github.com/iburimskiy/neon-rain/internal/misc"
	"github.com/iburimskiy/neon-rain/internal/rain"
	"github.com/iburimskiy/neon-rain/internal/terminal"
)

func main() {
	presetPath := flag.String("preset", "", "YAML preset to load")
	soundtrack := flag.String("soundtrack", "", "wav, mp3 or flac file to loop")
	term := flag.Bool("term", false, "render the matrix rain in the terminal")
	seed := flag.Uint64("seed", 0, "random seed, 0 for a fresh one")
	flag.Parse()

	preset := config.DefaultPreset()
	p := &preset
	if *presetPath != "" {
		loaded, err := config.LoadPreset(*presetPath)
		if err != nil {
			misc.ErrLogger.Fatalln(err)
		}
		p = loaded
	}
	if *soundtrack != "" {
		p.Soundtrack = *soundtrack
	}

	if *term {
		if err := runTerminal(p, *seed); err != nil {
			misc.ErrLogger.Fatalln(err)
		}
		return
	}

	g, err := game.New(p, *seed)
	if err != nil {
		misc.ErrLogger.Fatalln(err)
	}
	defer g.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(p.Title + " - O: preset, M: soundtrack, Space: pause, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		misc.ErrLogger.Println(err)
	}
}

// runTerminal renders the preset's matrix layer with one glyph per cell.
// Pointer distances are rescaled from pixels to cells.
func runTerminal(p *config.Preset, seed uint64) error {
	opts := p.Matrix
	if opts.FontSize > 0 {
		opts.PointerRadius /= float64(opts.FontSize)
	}
	opts.FontSize = 1
	opts.Speed *= config.TerminalSpeed
	var options []rain.Option
	if seed != 0 {
		options = append(options, rain.WithRand(rand.New(rand.NewPCG(seed, 1))))
	}
	engine, err := rain.New(opts, options...)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return terminal.Run(ctx, screen, engine, config.TerminalFPS)
}
