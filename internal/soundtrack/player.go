// Package soundtrack plays an optional background track and reports how loud
// it currently is.
package soundtrack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/neon-rain/internal/misc"
)

const (
	RingSize        = 8192
	WindowSize      = 2048
	SmoothingFactor = 0.6
)

var ErrUnsupported = errors.New("soundtrack: unsupported file type")

// Player owns the speaker and at most one playing track.
type Player struct {
	mu       sync.Mutex
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap
	meter    *Meter
	paused   bool
	initDone bool
}

func NewPlayer() *Player {
	return &Player{meter: NewMeter(SmoothingFactor)}
}

// Decode opens a wav, mp3 or flac stream chosen by file extension.
func Decode(path string) (*os.File, beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, nil, beep.Format{}, err
	}
	return f, streamer, format, nil
}

// Play stops the current track and starts path, looping it.
func (p *Player) Play(path string) error {
	f, streamer, format, err := Decode(path)
	if err != nil {
		return err
	}

	bufferSize := format.SampleRate.N(time.Second / 20)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initDone {
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return err
		}
		p.initDone = true
	} else {
		speaker.Clear()
		if p.format.SampleRate != format.SampleRate {
			if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
				_ = streamer.Close()
				_ = f.Close()
				return err
			}
		}
	}
	p.closeCurrent()

	tap := NewTap(beep.Loop(-1, streamer), RingSize)
	p.file = f
	p.streamer = streamer
	p.format = format
	p.tap = tap
	p.ctrl = &beep.Ctrl{Streamer: tap}
	p.paused = false

	speaker.Play(p.ctrl)
	misc.InfoLogger.Printf("playing soundtrack %s", path)
	return nil
}

// TogglePause pauses or resumes the current track.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// Level samples the tap and returns the smoothed loudness.
func (p *Player) Level() float64 {
	p.mu.Lock()
	tap, paused := p.tap, p.paused
	p.mu.Unlock()

	if tap == nil || paused {
		return p.meter.Decay()
	}
	return p.meter.Feed(tap.Snapshot(WindowSize))
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl != nil && !p.paused
}

// Close stops playback and releases the file. Safe to call repeatedly.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initDone {
		speaker.Clear()
	}
	p.closeCurrent()
}

func (p *Player) closeCurrent() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		_ = p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.tap = nil
}
