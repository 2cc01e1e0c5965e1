package indicator

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"parrot/internal/i18n"
)

// drawIndicator draws the complete indicator.
func drawIndicator(gtx layout.Context, levels []float32, elapsed time.Duration, cfg Config) {
	drawBackground(gtx, cfg.BGColor)

	layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			// Top row: dot, label, timer
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return drawRecordingDot(gtx, elapsed, cfg.DotColor)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						th := material.NewTheme()
						th.Palette.Fg = cfg.TextColor
						lbl := material.Label(th, unit.Sp(13), i18n.T("indicator_recording"))
						lbl.Font.Weight = font.Medium
						return lbl.Layout(gtx)
					}),
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return layout.Dimensions{}
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return drawTimerBadge(gtx, elapsed, cfg)
					}),
				)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),

			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return drawLevelBars(gtx, levels, cfg)
			}),
		)
	})
}

// drawBackground draws a rectangle background.
func drawBackground(gtx layout.Context, col color.NRGBA) {
	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, col, rect.Op())
}

// drawRecordingDot draws a pulsing recording indicator.
func drawRecordingDot(gtx layout.Context, elapsed time.Duration, col color.NRGBA) layout.Dimensions {
	size := gtx.Dp(unit.Dp(10))

	pulse := float32(math.Sin(float64(elapsed.Milliseconds())/200.0)*0.3 + 0.7)
	pulseCol := color.NRGBA{R: col.R, G: col.G, B: col.B, A: uint8(float32(col.A) * pulse)}

	circle := clip.Ellipse{Max: image.Pt(size, size)}
	paint.FillShape(gtx.Ops, pulseCol, circle.Op(gtx.Ops))

	return layout.Dimensions{Size: image.Pt(size, size)}
}

// formatElapsed renders a duration as m:ss.
func formatElapsed(d time.Duration) string {
	seconds := max(int(d.Seconds()), 0)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// drawTimerBadge draws the elapsed time in a badge.
func drawTimerBadge(gtx layout.Context, elapsed time.Duration, cfg Config) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := layout.Inset{
		Top: unit.Dp(3), Bottom: unit.Dp(3),
		Left: unit.Dp(8), Right: unit.Dp(8),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		th := material.NewTheme()
		th.Palette.Fg = cfg.TextColor
		lbl := material.Label(th, unit.Sp(12), formatElapsed(elapsed))
		lbl.Font.Weight = font.Bold
		return lbl.Layout(gtx)
	})
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(6))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, cfg.PanelColor, rect.Op(gtx.Ops))

	call.Add(gtx.Ops)
	return dims
}

// barColor picks the bar color for a level.
func barColor(level float32, cfg Config) color.NRGBA {
	switch {
	case level > 0.7:
		return cfg.LoudColor
	case level > 0.4:
		return cfg.MediumColor
	default:
		return cfg.LevelColor
	}
}

// drawLevelBars renders recent levels as vertical bars, newest on the right.
func drawLevelBars(gtx layout.Context, levels []float32, cfg Config) layout.Dimensions {
	width := gtx.Constraints.Max.X
	height := gtx.Constraints.Max.Y

	rr := gtx.Dp(unit.Dp(6))
	panel := clip.RRect{
		Rect: image.Rectangle{Max: image.Pt(width, height)},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, cfg.PanelColor, panel.Op(gtx.Ops))

	bars := max(cfg.Bars, 1)
	slot := width / bars
	gap := max(slot/4, 1)
	centerY := height / 2

	// Align the newest level to the right edge
	offset := bars - len(levels)
	for i := 0; i < bars; i++ {
		level := float32(0)
		col := cfg.TrackColor
		if j := i - offset; j >= 0 && j < len(levels) {
			level = levels[j]
			col = barColor(level, cfg)
		}

		// Speech RMS is rarely above 0.3
		half := max(int(min(level*3, 1)*float32(centerY-2)), 1)
		x := i*slot + gap/2
		bar := clip.Rect{
			Min: image.Pt(x, centerY-half),
			Max: image.Pt(x+slot-gap, centerY+half),
		}
		paint.FillShape(gtx.Ops, col, bar.Op())
	}

	return layout.Dimensions{Size: image.Pt(width, height)}
}
