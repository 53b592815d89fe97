package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"point-projector/internal/postprocess"
	"point-projector/internal/projection"
)

var (
	// Default palette: black point on white.
	BackgroundColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	PointColor      = color.NRGBA{A: 255}
	LabelColor      = color.NRGBA{R: 200, G: 30, B: 30, A: 255}
)

// Options control how a projection is drawn.
type Options struct {
	Width       int
	Height      int
	Supersample int
	PointRadius int

	// Background, when set, is scaled to the canvas instead of a white fill.
	Background *image.NRGBA

	// Label prints the pixel coordinate (or "not visible") on the canvas.
	Label bool
}

// RenderPoint draws the projected point onto a Width×Height canvas. A result
// that is not visible yields the bare background.
func RenderPoint(res projection.Result, opts Options) *image.NRGBA {
	ss := max(opts.Supersample, 1)
	w, h := opts.Width*ss, opts.Height*ss

	fb := NewFrameBuffer(w, h)
	img := fb.Image()
	if opts.Background != nil {
		draw.CatmullRom.Scale(img, img.Bounds(), opts.Background, opts.Background.Bounds(), draw.Src, nil)
	} else {
		fb.Fill(BackgroundColor)
	}

	if res.Visible {
		cx := (float64(res.Pixel.X) + 0.5) * float64(ss)
		cy := (float64(res.Pixel.Y) + 0.5) * float64(ss)
		r := float64(max(opts.PointRadius, 1) * ss)
		fb.FillDisc(cx, cy, r, PointColor)
	}

	if ss > 1 {
		img = postprocess.Downsample(img, opts.Width, opts.Height)
	}

	if opts.Label {
		drawLabel(img, res)
	}
	return img
}

// LabelText is the caption drawn for a result.
func LabelText(res projection.Result) string {
	if !res.Visible {
		return "not visible"
	}
	return res.Pixel.String()
}

func drawLabel(img *image.NRGBA, res projection.Result) {
	face := basicfont.Face7x13
	x, y := 4, face.Ascent+4
	if res.Visible {
		// Keep the caption beside the point, inside the canvas.
		x, y = res.Pixel.X+6, res.Pixel.Y-6
		width := font.MeasureString(face, LabelText(res)).Ceil()
		if x+width > img.Bounds().Dx() {
			x = res.Pixel.X - 6 - width
		}
		if y-face.Ascent < 0 {
			y = res.Pixel.Y + 6 + face.Ascent
		}
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(LabelColor),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(LabelText(res))
}
