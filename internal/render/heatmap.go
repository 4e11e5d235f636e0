package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/KaramelBytes/datasight-cli/internal/profile"
)

const (
	cellW      = 56
	cellH      = 32
	topMargin  = 40
	glyphWidth = 7 // basicfont.Face7x13 advance
)

// Diverging scale endpoints, centered at zero.
var (
	heatNeg  = color.RGBA{R: 59, G: 76, B: 192, A: 255}
	heatZero = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	heatPos  = color.RGBA{R: 180, G: 4, B: 38, A: 255}
)

// Heatmap renders a correlation matrix as an annotated grid with a diverging
// color scale centered at zero. It returns an error only when the matrix is
// empty or malformed.
func Heatmap(m *profile.CorrMatrix) (*Chart, error) {
	n := len(m.Columns)
	if n == 0 || len(m.Values) != n {
		return nil, fmt.Errorf("render heatmap: malformed %dx%d matrix", n, len(m.Values))
	}
	leftMargin := 0
	for _, name := range m.Columns {
		if w := len(truncateLabel(name, 14)) * glyphWidth; w > leftMargin {
			leftMargin = w
		}
	}
	leftMargin += 12

	w := leftMargin + n*cellW + 10
	h := topMargin + n*cellH + 10
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Column labels across the top, row labels down the left.
	for j, name := range m.Columns {
		label := truncateLabel(name, 7)
		x := leftMargin + j*cellW + (cellW-len(label)*glyphWidth)/2
		drawText(img, label, x, topMargin-8, color.Black)
	}
	for i, name := range m.Columns {
		label := truncateLabel(name, 14)
		y := topMargin + i*cellH + cellH/2 + 4
		drawText(img, label, leftMargin-len(label)*glyphWidth-6, y, color.Black)
	}

	for i := 0; i < n; i++ {
		if len(m.Values[i]) != n {
			return nil, fmt.Errorf("render heatmap: ragged row %d", i)
		}
		for j := 0; j < n; j++ {
			r := m.Values[i][j]
			cell := image.Rect(leftMargin+j*cellW, topMargin+i*cellH, leftMargin+(j+1)*cellW, topMargin+(i+1)*cellH)
			draw.Draw(img, cell, image.NewUniform(divergingColor(r)), image.Point{}, draw.Src)

			label := fmt.Sprintf("%.2f", r)
			fg := color.Color(color.Black)
			if r < -0.6 || r > 0.6 {
				fg = color.White
			}
			x := cell.Min.X + (cellW-len(label)*glyphWidth)/2
			y := cell.Min.Y + cellH/2 + 4
			drawText(img, label, x, y, fg)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render heatmap: encode png: %w", err)
	}
	return &Chart{PNG: buf.Bytes(), Caption: "Correlation heatmap (Pearson)"}, nil
}

// divergingColor maps r in [-1, 1] onto the blue-white-red scale.
func divergingColor(r float64) color.RGBA {
	if r < -1 {
		r = -1
	} else if r > 1 {
		r = 1
	}
	if r < 0 {
		return lerpColor(heatZero, heatNeg, -r)
	}
	return lerpColor(heatZero, heatPos, r)
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func drawText(img *image.RGBA, s string, x, y int, fg color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
