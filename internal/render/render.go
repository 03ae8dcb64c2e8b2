package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Entry is one panel of a comparison: the method's label and its rendered
// composition image.
type Entry struct {
	Label string
	Image image.Image
}

// RenderError reports panel images the grid layout can't work with.
type RenderError struct {
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render: %s", e.Reason)
}

const (
	panelGap    = 8
	titleHeight = 24
	labelHeight = 18
	margin      = 8
)

var (
	background = color.RGBA{255, 255, 255, 255}
	textColor  = color.RGBA{20, 20, 20, 255}
)

// Panel lays the supplied images out in a single row, in the order they were
// given, each annotated with its label, under a shared figure title. Panels
// are scaled to a common height so methods with different factors stay
// visually comparable.
func Panel(title string, entries []Entry) (*image.RGBA, error) {
	if len(entries) == 0 {
		return nil, &RenderError{Reason: "no panels to lay out"}
	}

	maxHeight := 0
	for _, entry := range entries {
		if entry.Image == nil {
			return nil, &RenderError{Reason: fmt.Sprintf("panel %s has no image", entry.Label)}
		}
		bounds := entry.Image.Bounds()
		if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
			return nil, &RenderError{Reason: fmt.Sprintf("panel %s has empty bounds %v", entry.Label, bounds)}
		}
		if bounds.Dy() > maxHeight {
			maxHeight = bounds.Dy()
		}
	}

	// scale every panel to the common height, preserving aspect ratio
	scaled := make([]image.Image, len(entries))
	widths := make([]int, len(entries))
	totalWidth := 0
	for i, entry := range entries {
		bounds := entry.Image.Bounds()
		if bounds.Dy() == maxHeight {
			scaled[i] = entry.Image
		} else {
			w := bounds.Dx() * maxHeight / bounds.Dy()
			dst := image.NewRGBA(image.Rect(0, 0, w, maxHeight))
			draw.CatmullRom.Scale(dst, dst.Rect, entry.Image, bounds, draw.Over, nil)
			scaled[i] = dst
		}
		widths[i] = scaled[i].Bounds().Dx()
		totalWidth += widths[i]
	}

	width := totalWidth + panelGap*(len(entries)-1) + 2*margin
	height := titleHeight + labelHeight + maxHeight + 2*margin

	combined := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(combined, combined.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	drawLabel(combined, title, width/2, margin+basicfont.Face7x13.Ascent, true)

	x := margin
	for i, img := range scaled {
		drawLabel(combined, entries[i].Label, x+widths[i]/2, titleHeight+margin+basicfont.Face7x13.Ascent, true)

		topLeft := image.Point{x, titleHeight + labelHeight + margin}
		rect := image.Rectangle{topLeft, topLeft.Add(img.Bounds().Size())}
		draw.Draw(combined, rect, img, img.Bounds().Min, draw.Src)

		x += widths[i] + panelGap
	}

	return combined, nil
}

// drawLabel draws text at (x, y); centered horizontally around x when
// centered is set.
func drawLabel(dst *image.RGBA, text string, x, y int, centered bool) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
	}
	if centered {
		x -= drawer.MeasureString(text).Round() / 2
	}
	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(text)
}
