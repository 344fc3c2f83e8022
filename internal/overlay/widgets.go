package overlay

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
)

// drawRecording draws the recording view: pulsing dot, timer and level bars.
func drawRecording(gtx layout.Context, bars []float32, elapsed time.Duration, cfg Config) {
	drawBackground(gtx, cfg.BGColor)

	layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			// Top row: recording indicator + timer
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return drawRecordingDot(gtx, elapsed, color.NRGBA{R: 255, G: 100, B: 100, A: 255})
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						th := material.NewTheme()
						th.Palette.Fg = cfg.TextColor
						lbl := material.Label(th, unit.Sp(14), "Recording")
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

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			// Level bars
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return drawBarPanel(gtx, bars, cfg)
			}),
		)
	})
}

// drawTranscribing draws the processing view with a spinner.
func drawTranscribing(gtx layout.Context, elapsed time.Duration, cfg Config) {
	drawBackground(gtx, cfg.BGColor)

	layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return drawSpinner(gtx, elapsed, cfg.AccentColor)
			}),

			layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						th := material.NewTheme()
						th.Palette.Fg = cfg.TextColor
						lbl := material.Label(th, unit.Sp(15), "Transcribing")
						lbl.Font.Weight = font.Medium
						return lbl.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Height: unit.Dp(2)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						th := material.NewTheme()
						th.Palette.Fg = cfg.DimColor
						lbl := material.Label(th, unit.Sp(11), "Esc to cancel")
						return lbl.Layout(gtx)
					}),
				)
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

	// Pulsing effect
	pulse := float32(math.Sin(float64(elapsed.Milliseconds())/200.0)*0.3 + 0.7)
	alpha := uint8(float32(col.A) * pulse)
	pulseCol := color.NRGBA{R: col.R, G: col.G, B: col.B, A: alpha}

	center := size / 2
	circle := clip.Ellipse{
		Min: image.Pt(0, 0),
		Max: image.Pt(size, size),
	}
	paint.FillShape(gtx.Ops, pulseCol, circle.Op(gtx.Ops))

	return layout.Dimensions{Size: image.Pt(size, size+center/2)}
}

// drawTimerBadge draws the elapsed time in a badge.
func drawTimerBadge(gtx layout.Context, elapsed time.Duration, cfg Config) layout.Dimensions {
	seconds := int(elapsed.Seconds())
	timeText := fmt.Sprintf("%d:%02d", seconds/60, seconds%60)

	// Record content to measure
	macro := op.Record(gtx.Ops)
	dims := layout.Inset{
		Top: unit.Dp(4), Bottom: unit.Dp(4),
		Left: unit.Dp(10), Right: unit.Dp(10),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		th := material.NewTheme()
		th.Palette.Fg = cfg.TextColor
		lbl := material.Label(th, unit.Sp(13), timeText)
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

// drawBarPanel draws the smoothed level bars in a rounded panel.
func drawBarPanel(gtx layout.Context, bars []float32, cfg Config) layout.Dimensions {
	rr := gtx.Dp(unit.Dp(8))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: image.Pt(gtx.Constraints.Max.X, gtx.Constraints.Max.Y)},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, cfg.PanelColor, rect.Op(gtx.Ops))

	return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return drawBars(gtx, bars, cfg.BarColor)
	})
}

// drawBars renders vertical level bars centered on the mid line.
func drawBars(gtx layout.Context, bars []float32, col color.NRGBA) layout.Dimensions {
	width := gtx.Constraints.Max.X
	height := gtx.Constraints.Max.Y
	if len(bars) == 0 || width == 0 {
		return layout.Dimensions{Size: image.Pt(width, height)}
	}

	gap := gtx.Dp(unit.Dp(3))
	barWidth := (width - gap*(len(bars)-1)) / len(bars)
	if barWidth < 1 {
		barWidth = 1
	}
	minBar := gtx.Dp(unit.Dp(2))
	centerY := height / 2

	for i, level := range bars {
		if level > 1 {
			level = 1
		}
		if level < 0 {
			level = 0
		}
		barHeight := int(level * float32(height))
		if barHeight < minBar {
			barHeight = minBar
		}
		x := i * (barWidth + gap)
		rr := barWidth / 2
		bar := clip.RRect{
			Rect: image.Rectangle{
				Min: image.Pt(x, centerY-barHeight/2),
				Max: image.Pt(x+barWidth, centerY+barHeight/2+barHeight%2),
			},
			NE: rr, NW: rr, SE: rr, SW: rr,
		}
		paint.FillShape(gtx.Ops, col, bar.Op(gtx.Ops))
	}

	return layout.Dimensions{Size: image.Pt(width, height)}
}

// drawSpinner draws a circular dotted spinner.
func drawSpinner(gtx layout.Context, elapsed time.Duration, col color.NRGBA) layout.Dimensions {
	size := gtx.Dp(unit.Dp(36))
	thickness := gtx.Dp(unit.Dp(3))

	rotation := float64(elapsed.Milliseconds()) / 800.0 * 2 * math.Pi

	center := image.Pt(size/2, size/2)
	radius := size/2 - thickness

	numDots := 12
	for i := 0; i < numDots; i++ {
		angle := rotation + float64(i)*2*math.Pi/float64(numDots)
		x := center.X + int(float64(radius)*math.Cos(angle))
		y := center.Y + int(float64(radius)*math.Sin(angle))

		// Fade based on position
		alpha := uint8(255 - i*20)
		if alpha < 40 {
			alpha = 40
		}
		dotColor := color.NRGBA{R: col.R, G: col.G, B: col.B, A: alpha}

		dotRadius := thickness / 2
		dot := clip.Ellipse{
			Min: image.Pt(x-dotRadius, y-dotRadius),
			Max: image.Pt(x+dotRadius, y+dotRadius),
		}
		paint.FillShape(gtx.Ops, dotColor, dot.Op(gtx.Ops))
	}

	return layout.Dimensions{Size: image.Pt(size, size)}
}
