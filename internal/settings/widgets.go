package settings

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"murmur/internal/config"
	"murmur/internal/input"
	"murmur/internal/models"
)

// Color palette - modern dark theme
var (
	colorBG         = color.NRGBA{R: 30, G: 30, B: 34, A: 255}
	colorPanel      = color.NRGBA{R: 45, G: 45, B: 50, A: 255}
	colorPanelLight = color.NRGBA{R: 55, G: 55, B: 62, A: 255}
	colorText       = color.NRGBA{R: 240, G: 240, B: 245, A: 255}
	colorTextDim    = color.NRGBA{R: 140, G: 140, B: 150, A: 255}
	colorAccent     = color.NRGBA{R: 88, G: 166, B: 255, A: 255}
	colorSuccess    = color.NRGBA{R: 80, G: 200, B: 120, A: 255}
	colorWarning    = color.NRGBA{R: 255, G: 180, B: 0, A: 255}
	colorSelected   = color.NRGBA{R: 60, G: 100, B: 160, A: 255}
)

func (w *Window) draw(gtx layout.Context) layout.Dimensions {
	// Fill background
	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, colorBG, rect.Op())

	// The whole window is a pointer target so chord recording can see
	// clicks that land outside the widgets.
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, w)

	downloading, progress, progressModel := w.downloadState()
	recordingID, recording := w.rec.ActiveID()

	return layout.UniformInset(unit.Dp(20)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			// Title (fixed)
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				th.Palette.Fg = colorText
				label := material.Label(th, unit.Sp(22), "Settings")
				label.Font.Weight = font.Bold
				return label.Layout(gtx)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),

			// Scrollable content area
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				return material.List(th, &w.contentList).Layout(gtx, 1, func(gtx layout.Context, _ int) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return w.drawShortcutsSection(gtx, recording, recordingID)
						}),

						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return w.drawGeneralSection(gtx)
						}),

						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return w.drawAPIKeySection(gtx)
						}),

						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return w.drawModelsSection(gtx)
						}),
					)
				})
			}),

			// Progress bar (fixed, visible while downloading)
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if !downloading {
					return layout.Dimensions{}
				}
				return layout.Inset{Top: unit.Dp(12), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return w.drawProgressBar(gtx, progress, progressModel)
				})
			}),
		)
	})
}

func (w *Window) drawSectionHeader(gtx layout.Context, text string) layout.Dimensions {
	th := material.NewTheme()
	th.Palette.Fg = colorTextDim

	label := material.Label(th, unit.Sp(12), text)
	label.Font.Weight = font.Medium
	return label.Layout(gtx)
}

func (w *Window) drawShortcutsSection(gtx layout.Context, recording bool, recordingID string) layout.Dimensions {
	bindings := w.store.Bindings()

	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		children := []layout.FlexChild{
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, "Shortcuts")
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		}
		for i, b := range bindings {
			binding := b // capture
			if i > 0 {
				children = append(children, layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout))
			}
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawBindingRow(gtx, binding, recording && recordingID == binding.ID)
			}))
		}
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
}

func (w *Window) drawBindingRow(gtx layout.Context, b config.Binding, active bool) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		// Name and description
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					th := material.NewTheme()
					th.Palette.Fg = colorText
					lbl := material.Label(th, unit.Sp(14), b.Name)
					lbl.Font.Weight = font.Medium
					return lbl.Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					th := material.NewTheme()
					th.Palette.Fg = colorTextDim
					lbl := material.Label(th, unit.Sp(11), b.Description)
					return lbl.Layout(gtx)
				}),
			)
		}),

		layout.Rigid(layout.Spacer{Width: unit.Dp(10)}.Layout),

		// Current chord, or recording progress
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawChordBadge(gtx, b, active)
		}),

		layout.Rigid(layout.Spacer{Width: unit.Dp(10)}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			label := "Edit"
			bg := colorAccent
			if active {
				label = "Cancel"
				bg = colorWarning
			}
			return w.drawButton(gtx, w.editBtns[b.ID], label, bg)
		}),

		layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawButton(gtx, w.resetBtns[b.ID], "Reset", colorPanelLight)
		}),
	)
}

func (w *Window) drawChordBadge(gtx layout.Context, b config.Binding, active bool) layout.Dimensions {
	var text string
	textColor := colorAccent
	bgColor := colorPanelLight

	if active {
		text = w.rec.FormatCurrentKeys()
		textColor = colorWarning
		bgColor = color.NRGBA{R: 80, G: 60, B: 20, A: 255}
	} else {
		text = input.FormatChordDisplay(b.Current)
		if text == "" {
			text = "Not set"
			textColor = colorTextDim
		}
	}

	// Record content to measure size
	macro := op.Record(gtx.Ops)
	dims := layout.Inset{
		Top: unit.Dp(6), Bottom: unit.Dp(6),
		Left: unit.Dp(10), Right: unit.Dp(10),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		th := material.NewTheme()
		th.Palette.Fg = textColor
		lbl := material.Label(th, unit.Sp(13), text)
		lbl.Font.Weight = font.Medium
		return lbl.Layout(gtx)
	})
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(6))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, bgColor, rect.Op(gtx.Ops))

	call.Add(gtx.Ops)
	return dims
}

func (w *Window) drawGeneralSection(gtx layout.Context) layout.Dimensions {
	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, "General")
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawToggleRow(gtx, &w.pushToTalk, "Push to talk",
					"Hold the shortcut to record, release to transcribe")
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(10)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawToggleRow(gtx, &w.notifications, "Notifications",
					"Show desktop notifications for errors")
			}),
		)
	})
}

func (w *Window) drawToggleRow(gtx layout.Context, toggle *widget.Bool, title, hint string) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			sw := material.Switch(th, toggle, title)
			sw.Color.Enabled = colorAccent
			sw.Color.Disabled = colorPanel
			return sw.Layout(gtx)
		}),

		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),

		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					th := material.NewTheme()
					th.Palette.Fg = colorText
					lbl := material.Label(th, unit.Sp(14), title)
					lbl.Font.Weight = font.Medium
					return lbl.Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					th := material.NewTheme()
					th.Palette.Fg = colorTextDim
					lbl := material.Label(th, unit.Sp(11), hint)
					return lbl.Layout(gtx)
				}),
			)
		}),
	)
}

func (w *Window) drawAPIKeySection(gtx layout.Context) layout.Dimensions {
	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, "API key")
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				// Editor in a sunken field
				macro := op.Record(gtx.Ops)
				dims := layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					th := material.NewTheme()
					th.Palette.Fg = colorText
					ed := material.Editor(th, &w.apiKeyEditor, "sk-...")
					ed.TextSize = unit.Sp(14)
					ed.Color = colorText
					ed.HintColor = colorTextDim
					return ed.Layout(gtx)
				})
				call := macro.Stop()

				rr := gtx.Dp(unit.Dp(6))
				rect := clip.RRect{
					Rect: image.Rectangle{Max: image.Pt(gtx.Constraints.Max.X, dims.Size.Y)},
					NE:   rr, NW: rr, SE: rr, SW: rr,
				}
				paint.FillShape(gtx.Ops, colorPanelLight, rect.Op(gtx.Ops))

				call.Add(gtx.Ops)
				return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, dims.Size.Y)}
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				th.Palette.Fg = colorTextDim
				lbl := material.Label(th, unit.Sp(11), "Saved when the field loses focus")
				return lbl.Layout(gtx)
			}),
		)
	})
}

func (w *Window) drawModelsSection(gtx layout.Context) layout.Dimensions {
	states := w.manager.Available()
	selected := w.store.ModelID()

	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		children := []layout.FlexChild{
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, "Models")
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		}
		for _, st := range states {
			state := st // capture
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return w.drawModelItem(gtx, state, selected == state.ID)
				})
			}))
		}
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
}

func (w *Window) drawModelItem(gtx layout.Context, st models.ModelState, selected bool) layout.Dimensions {
	btn := w.modelBtns[st.ID]
	downloadBtn := w.downloadBtns[st.ID]

	bgColor := colorPanelLight
	if selected {
		bgColor = colorSelected
	}

	// Record content to measure size
	macro := op.Record(gtx.Ops)
	dims := material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{
			Top: unit.Dp(10), Bottom: unit.Dp(10),
			Left: unit.Dp(12), Right: unit.Dp(12),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				// Radio indicator
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return drawRadioIndicator(gtx, selected)
				}),

				layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),

				// Model info
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							th := material.NewTheme()
							th.Palette.Fg = colorText
							lbl := material.Label(th, unit.Sp(14), st.Name)
							lbl.Font.Weight = font.Medium
							return lbl.Layout(gtx)
						}),
						layout.Rigid(layout.Spacer{Height: unit.Dp(2)}.Layout),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							th := material.NewTheme()
							th.Palette.Fg = colorTextDim
							lbl := material.Label(th, unit.Sp(11), formatSize(st.Size))
							return lbl.Layout(gtx)
						}),
						layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return drawScoreBars(gtx, st.Accuracy, st.Speed)
						}),
					)
				}),

				// Status badge or download button
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if st.Downloaded {
						return drawStatusBadge(gtx, "✓", colorSuccess)
					}
					return w.drawDownloadButton(gtx, downloadBtn)
				}),
			)
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

// drawScoreBars renders the accuracy and speed scores as small bars.
func drawScoreBars(gtx layout.Context, accuracy, speed float64) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return drawScoreBar(gtx, "Accuracy", accuracy, colorAccent)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return drawScoreBar(gtx, "Speed", speed, colorSuccess)
		}),
	)
}

func drawScoreBar(gtx layout.Context, label string, score float64, col color.NRGBA) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = colorTextDim
			lbl := material.Label(th, unit.Sp(10), label)
			return lbl.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			width := gtx.Dp(unit.Dp(50))
			height := gtx.Dp(unit.Dp(4))

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

func drawRadioIndicator(gtx layout.Context, selected bool) layout.Dimensions {
	size := gtx.Dp(unit.Dp(18))
	borderWidth := gtx.Dp(unit.Dp(2))

	center := image.Pt(size/2, size/2)
	outerRadius := size / 2

	if selected {
		circle := clip.Ellipse{
			Min: image.Pt(center.X-outerRadius, center.Y-outerRadius),
			Max: image.Pt(center.X+outerRadius, center.Y+outerRadius),
		}
		paint.FillShape(gtx.Ops, colorAccent, circle.Op(gtx.Ops))

		innerRadius := outerRadius - borderWidth*2
		innerCircle := clip.Ellipse{
			Min: image.Pt(center.X-innerRadius, center.Y-innerRadius),
			Max: image.Pt(center.X+innerRadius, center.Y+innerRadius),
		}
		paint.FillShape(gtx.Ops, colorText, innerCircle.Op(gtx.Ops))
	} else {
		circle := clip.Ellipse{
			Min: image.Pt(center.X-outerRadius, center.Y-outerRadius),
			Max: image.Pt(center.X+outerRadius, center.Y+outerRadius),
		}
		paint.FillShape(gtx.Ops, colorTextDim, circle.Op(gtx.Ops))

		innerRadius := outerRadius - borderWidth
		innerCircle := clip.Ellipse{
			Min: image.Pt(center.X-innerRadius, center.Y-innerRadius),
			Max: image.Pt(center.X+innerRadius, center.Y+innerRadius),
		}
		paint.FillShape(gtx.Ops, colorPanelLight, innerCircle.Op(gtx.Ops))
	}

	return layout.Dimensions{Size: image.Pt(size, size)}
}

func drawStatusBadge(gtx layout.Context, text string, col color.NRGBA) layout.Dimensions {
	th := material.NewTheme()
	th.Palette.Fg = col
	lbl := material.Label(th, unit.Sp(16), text)
	lbl.Font.Weight = font.Bold
	return lbl.Layout(gtx)
}

func (w *Window) drawDownloadButton(gtx layout.Context, btn *widget.Clickable) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{
			Top: unit.Dp(4), Bottom: unit.Dp(4),
			Left: unit.Dp(8), Right: unit.Dp(8),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = colorText
			lbl := material.Label(th, unit.Sp(11), "↓")
			lbl.Font.Weight = font.Bold
			return lbl.Layout(gtx)
		})
	})
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(4))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, colorAccent, rect.Op(gtx.Ops))

	call.Add(gtx.Ops)
	return dims
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

func (w *Window) drawButton(gtx layout.Context, btn *widget.Clickable, label string, bgColor color.NRGBA) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{
			Top: unit.Dp(8), Bottom: unit.Dp(8),
			Left: unit.Dp(14), Right: unit.Dp(14),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = colorText
			lbl := material.Label(th, unit.Sp(13), label)
			lbl.Font.Weight = font.Medium
			return lbl.Layout(gtx)
		})
	})
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(6))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, bgColor, rect.Op(gtx.Ops))

	call.Add(gtx.Ops)
	return dims
}

func (w *Window) drawPanel(gtx layout.Context, content layout.Widget) layout.Dimensions {
	// First layout content to get its size
	macro := op.Record(gtx.Ops)
	dims := layout.UniformInset(unit.Dp(16)).Layout(gtx, content)
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(12))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, colorPanel, rect.Op(gtx.Ops))

	call.Add(gtx.Ops)

	return dims
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.0f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
