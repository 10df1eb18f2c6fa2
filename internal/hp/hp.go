package hp

import (
	"image"
	"image/color"

	"screenserver/internal/helpers"
	"screenserver/internal/state"
)

// Цвета полоски HP в окне OnTopReplica
var (
	DefaultFullColor   = color.RGBA{R: 48, G: 199, B: 141, A: 255}
	DefaultDangerColor = color.RGBA{R: 210, G: 106, B: 92, A: 255}
)

// Reader переводит снимок экрана в процент HP по двум эталонным цветам
type Reader struct {
	full   color.RGBA
	danger color.RGBA
}

// NewReader создает Reader с заданными цветами заполненной и потерянной части полоски
func NewReader(full, danger color.RGBA) *Reader {
	return &Reader{full: full, danger: danger}
}

// NewDefaultReader создает Reader со стандартными цветами
func NewDefaultReader() *Reader {
	return NewReader(DefaultFullColor, DefaultDangerColor)
}

// FindBarStart ищет первый пиксель полоски: сначала по столбцам, внутри столбца сверху вниз
func (r *Reader) FindBarStart(img image.Image) (image.Point, bool) {
	bounds := img.Bounds()
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			c := helpers.GetPixelColor(img, x, y)
			if c == r.full || c == r.danger {
				return image.Point{X: x, Y: y}, true
			}
		}
	}
	return image.Point{}, false
}

// ScanBar считает пиксели строки от start до правого края: full - заполненная часть, danger - потерянная.
// Пиксели других цветов пропускаются.
func (r *Reader) ScanBar(img image.Image, start image.Point) (full, danger int) {
	bounds := img.Bounds()
	for x := start.X; x < bounds.Max.X; x++ {
		switch helpers.GetPixelColor(img, x, start.Y) {
		case r.full:
			full++
		case r.danger:
			danger++
		}
	}
	return full, danger
}

// Read возвращает процент HP или BarNotFound, если полоски на снимке нет
func (r *Reader) Read(img image.Image) state.HealthState {
	if img == nil {
		return state.BarNotFound()
	}

	start, ok := r.FindBarStart(img)
	if !ok {
		return state.BarNotFound()
	}

	full, danger := r.ScanBar(img, start)
	if full+danger == 0 {
		return state.BarNotFound()
	}

	return state.Health(100 * float64(full) / float64(full+danger))
}
