package game

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// titleHueSpeed is degrees of hue per second.
const titleHueSpeed = 24

// titleColor slowly cycles the title hue around the neon end of the wheel.
func titleColor(elapsed time.Duration) color.NRGBA {
	h := math.Mod(100+elapsed.Seconds()*titleHueSpeed, 360)
	r, g, b := colorful.Hsv(h, 0.55, 1).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// contentBox centers a box of the given ratios in a width x height window.
func contentBox(width, height int, wRatio, hRatio float64) image.Rectangle {
	bw := int(float64(width) * wRatio)
	bh := int(float64(height) * hRatio)
	x := (width - bw) / 2
	y := (height - bh) / 2
	return image.Rect(x, y, x+bw, y+bh)
}
