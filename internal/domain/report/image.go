package report

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"shiftpay/internal/domain/schedule"
)

var (
	markColors = map[schedule.Kind]color.RGBA{
		schedule.KindShift:    {R: 0xd1, G: 0xe7, B: 0xdd, A: 0xff},
		schedule.KindOff:      {R: 0xf8, G: 0xd7, B: 0xda, A: 0xff},
		schedule.KindVacation: {R: 0xff, G: 0xf3, B: 0xcd, A: 0xff},
		schedule.KindSick:     {R: 0xcf, G: 0xe2, B: 0xff, A: 0xff},
	}
	headerColor = color.RGBA{R: 0xe9, G: 0xec, B: 0xef, A: 0xff}
	gridColor   = color.RGBA{R: 0xad, G: 0xb5, B: 0xbd, A: 0xff}

	loadFont = sync.OnceValues(func() (*opentype.Font, error) {
		return opentype.Parse(goregular.TTF)
	})
)

// MarkColor returns the fill used for a cell, if its kind has one.
func MarkColor(cell string) (color.RGBA, bool) {
	c, ok := markColors[schedule.ParseMark(cell).Kind]
	return c, ok
}

type ImageOptions struct {
	// HeaderLabel is drawn in the top-left cell.
	HeaderLabel string
	// DisplayName maps a schedule name to the label drawn in its row.
	DisplayName func(name string) string
	// Scale multiplies every dimension; values below 1 mean 1.
	Scale int
}

// RenderSchedulePNG draws the columns of table within [start, end] as a
// coloured grid and encodes it as PNG.
func RenderSchedulePNG(w io.Writer, table schedule.Table, start, end time.Time, opts ImageOptions) error {
	img, err := RenderSchedule(table.Window(start, end), opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// RenderSchedule draws window as is; the first column holds names.
func RenderSchedule(window schedule.Table, opts ImageOptions) (*image.RGBA, error) {
	if window.IsEmpty() {
		return nil, schedule.ErrEmptyTable
	}
	scale := max(opts.Scale, 1)

	parsed, err := loadFont()
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    13 * float64(scale),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()

	labels := cellLabels(window, opts)
	pad := 8 * scale
	rowHeight := 26 * scale
	line := scale

	widths := make([]int, len(labels[0]))
	for _, row := range labels {
		for c := range widths {
			if c >= len(row) {
				continue
			}
			width := font.MeasureString(face, row[c]).Ceil() + 2*pad
			widths[c] = max(widths[c], width, 28*scale)
		}
	}
	total := 0
	for _, width := range widths {
		total += width
	}

	img := image.NewRGBA(image.Rect(0, 0, total+line, len(labels)*rowHeight+line))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	metrics := face.Metrics()
	baseline := (rowHeight + metrics.Ascent.Ceil() - metrics.Descent.Ceil()) / 2

	y := 0
	for r, row := range labels {
		x := 0
		for c, width := range widths {
			cell := image.Rect(x, y, x+width, y+rowHeight)
			switch {
			case r == 0:
				fill(img, cell, headerColor)
			case c > 0:
				if col, ok := MarkColor(window.Cell(r, c)); ok {
					fill(img, cell, col)
				}
			}
			if c < len(row) {
				drawer := font.Drawer{Dst: img, Src: image.Black, Face: face, Dot: fixed.P(x+pad, y+baseline)}
				drawer.DrawString(row[c])
			}
			fill(img, image.Rect(x, y, x+width, y+line), gridColor)
			fill(img, image.Rect(x, y, x+line, y+rowHeight), gridColor)
			x += width
		}
		y += rowHeight
	}
	bounds := img.Bounds()
	fill(img, image.Rect(bounds.Max.X-line, 0, bounds.Max.X, bounds.Max.Y), gridColor)
	fill(img, image.Rect(0, bounds.Max.Y-line, bounds.Max.X, bounds.Max.Y), gridColor)
	return img, nil
}

func cellLabels(window schedule.Table, opts ImageOptions) [][]string {
	labels := make([][]string, len(window.Rows))
	width := len(window.Header())
	for r := range window.Rows {
		row := make([]string, width)
		for c := range row {
			row[c] = window.Cell(r, c)
		}
		switch {
		case r == 0:
			row[0] = opts.HeaderLabel
		case opts.DisplayName != nil && row[0] != "":
			row[0] = opts.DisplayName(row[0])
		}
		labels[r] = row
	}
	return labels
}

func fill(img draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}
