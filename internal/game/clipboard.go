package game

import (
	"errors"
	"unicode/utf8"

	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/neon-rain/internal/config"
	"github.com/iburimskiy/neon-rain/internal/misc"
)

var errClipboardEmpty = errors.New("clipboard holds no text")

var clipboardReady bool

func initClipboard() {
	if err := clipboard.Init(); err != nil {
		misc.WarnLogger.Printf("clipboard unavailable: %v", err)
		return
	}
	clipboardReady = true
}

// copyPreset writes the active preset to the clipboard as YAML.
func (g *Game) copyPreset() error {
	if !clipboardReady {
		return nil
	}
	data, err := yaml.Marshal(g.preset)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	misc.InfoLogger.Printf("preset %q copied", g.preset.Title)
	return nil
}

// pastePreset applies a YAML preset read from the clipboard.
func (g *Game) pastePreset() error {
	if !clipboardReady {
		return nil
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 || !utf8.Valid(data) {
		return errClipboardEmpty
	}
	p, err := config.ParsePreset(data)
	if err != nil {
		return err
	}
	return g.apply(p)
}
