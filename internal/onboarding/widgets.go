package onboarding

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"murmur/internal/models"
)

// Color palette - same dark theme as the settings window
var (
	colorBG         = color.NRGBA{R: 30, G: 30, B: 34, A: 255}
	colorPanel      = color.NRGBA{R: 45, G: 45, B: 50, A: 255}
	colorPanelLight = color.NRGBA{R: 55, G: 55, B: 62, A: 255}
	colorText       = color.NRGBA{R: 240, G: 240, B: 245, A: 255}
	colorTextDim    = color.NRGBA{R: 140, G: 140, B: 150, A: 255}
	colorAccent     = color.NRGBA{R: 88, G: 166, B: 255, A: 255}
	colorSuccess    = color.NRGBA{R: 80, G: 200, B: 120, A: 255}
	colorWarning    = color.NRGBA{R: 255, G: 180, B: 0, A: 255}
)

func (w *Window) draw(gtx layout.Context) layout.Dimensions {
	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, colorBG, rect.Op())

	downloading, progress, progressModel := w.downloadState()
	canContinue := w.manager.HasAnyDownloaded()

	return layout.UniformInset(unit.Dp(20)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				th.Palette.Fg = colorText
				label := material.Label(th, unit.Sp(22), "Welcome to Murmur")
				label.Font.Weight = font.Bold
				return label.Layout(gtx)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				th.Palette.Fg = colorTextDim
				lbl := material.Label(th, unit.Sp(13), "Download a speech model to get started. Smaller models are faster, larger ones are more accurate.")
				return lbl.Layout(gtx)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),

			// Model list
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				states := w.manager.Available()
				return material.List(th, &w.modelList).Layout(gtx, len(states), func(gtx layout.Context, i int) layout.Dimensions {
					return layout.Inset{Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return w.drawModelCard(gtx, states[i])
					})
				})
			}),

			// Progress bar
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if !downloading {
					return layout.Dimensions{}
				}
				return layout.Inset{Top: unit.Dp(12), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return w.drawProgressBar(gtx, progress, progressModel)
				})
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Continue button
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return layout.Dimensions{}
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						bg := colorAccent
						if !canContinue {
							bg = colorPanel
						}
						return w.drawButton(gtx, &w.continueBtn, "Continue", bg, canContinue)
					}),
				)
			}),
		)
	})
}

func (w *Window) drawModelCard(gtx layout.Context, st models.ModelState) layout.Dimensions {
	downloadBtn := w.downloadBtns[st.ID]

	macro := op.Record(gtx.Ops)
	dims := layout.Inset{
		Top: unit.Dp(12), Bottom: unit.Dp(12),
		Left: unit.Dp(14), Right: unit.Dp(14),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						th := material.NewTheme()
						th.Palette.Fg = colorText
						lbl := material.Label(th, unit.Sp(15), st.Name)
						lbl.Font.Weight = font.Medium
						return lbl.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Height: unit.Dp(2)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						th := material.NewTheme()
						th.Palette.Fg = colorTextDim
						lbl := material.Label(th, unit.Sp(11), fmt.Sprintf("%d MB", st.SizeMB()))
						return lbl.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return drawScoreRow(gtx, "Accuracy", st.Accuracy, colorAccent)
					}),
					layout.Rigid(layout.Spacer{Height: unit.Dp(3)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return drawScoreRow(gtx, "Speed", st.Speed, colorSuccess)
					}),
				)
			}),

			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if st.Downloaded {
					th := material.NewTheme()
					th.Palette.Fg = colorSuccess
					lbl := material.Label(th, unit.Sp(16), "✓")
					lbl.Font.Weight = font.Bold
					return lbl.Layout(gtx)
				}
				return w.drawButton(gtx, downloadBtn, "Download", colorAccent, true)
			}),
		)
	})
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(10))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, colorPanelLight, rect.Op(gtx.Ops))

	call.Add(gtx.Ops)
	return dims
}

// drawScoreRow renders one labelled score bar.
func drawScoreRow(gtx layout.Context, label string, score float64, col color.NRGBA) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(56))
			th := material.NewTheme()
			th.Palette.Fg = colorTextDim
			lbl := material.Label(th, unit.Sp(10), label)
			return lbl.Layout(gtx)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			width := gtx.Dp(unit.Dp(120))
			height := gtx.Dp(unit.Dp(5))

			rr := height / 2
			bgRect := clip.RRect{
				Rect: image.Rectangle{Max: image.Pt(width, height)},
				NE:   rr, NW: rr, SE: rr, SW: rr,
			}
			paint.FillShape(gtx.Ops, colorPanel, bgRect.Op(gtx.Ops))

			fill := int(float64(width) * score)
			if fill > 0 {
				fillRect := clip.RRect{
					Rect: image.Rectangle{Max: image.Pt(fill, height)},
					NE:   rr, NW: rr, SE: rr, SW: rr,
				}
				paint.FillShape(gtx.Ops, col, fillRect.Op(gtx.Ops))
			}

			return layout.Dimensions{Size: image.Pt(width, height)}
		}),
	)
}

func (w *Window) drawProgressBar(gtx layout.Context, progress float64, modelID string) layout.Dimensions {
	info, _ := models.GetModel(modelID)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			height := gtx.Dp(unit.Dp(6))
			width := gtx.Constraints.Max.X

			rr := height / 2
			bgRect := clip.RRect{
				Rect: image.Rectangle{Max: image.Pt(width, height)},
				NE:   rr, NW: rr, SE: rr, SW: rr,
			}
			paint.FillShape(gtx.Ops, colorPanel, bgRect.Op(gtx.Ops))

			fillWidth := int(float64(width) * progress)
			if fillWidth > 0 {
				fillRect := clip.RRect{
					Rect: image.Rectangle{Max: image.Pt(fillWidth, height)},
					NE:   rr, NW: rr, SE: rr, SW: rr,
				}
				paint.FillShape(gtx.Ops, colorWarning, fillRect.Op(gtx.Ops))
			}

			return layout.Dimensions{Size: image.Pt(width, height)}
		}),

		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = colorTextDim
			text := fmt.Sprintf("Downloading %s... %.0f%%", info.Name, progress*100)
			lbl := material.Label(th, unit.Sp(11), text)
			return lbl.Layout(gtx)
		}),
	)
}

func (w *Window) drawButton(gtx layout.Context, btn *widget.Clickable, label string, bgColor color.NRGBA, enabled bool) layout.Dimensions {
	textColor := colorText
	if !enabled {
		textColor = colorTextDim
	}

	macro := op.Record(gtx.Ops)
	dims := material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{
			Top: unit.Dp(10), Bottom: unit.Dp(10),
			Left: unit.Dp(20), Right: unit.Dp(20),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = textColor
			lbl := material.Label(th, unit.Sp(14), label)
			lbl.Font.Weight = font.Medium
			return lbl.Layout(gtx)
		})
	})
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(8))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, bgColor, rect.Op(gtx.Ops))

	call.Add(gtx.Ops)
	return dims
}
