package screenshot

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"screenserver/internal/config"
)

// Точки подмены для тестов
var (
	findWindow    = FindWindow
	captureRect   = screenshot.CaptureRect
	displayBounds = func() image.Rectangle { return screenshot.GetDisplayBounds(0) }
)

// Sample один снимок: изображение и положение окна, если оно найдено
type Sample struct {
	Image       image.Image
	Window      image.Rectangle
	WindowFound bool
}

// ScreenshotManager снимает область окна по заголовку или весь экран, если окна нет
type ScreenshotManager struct {
	title   string
	margins config.Capture
}

// NewScreenshotManager создает новый экземпляр ScreenshotManager
func NewScreenshotManager(title string, margins config.Capture) *ScreenshotManager {
	return &ScreenshotManager{
		title:   title,
		margins: margins,
	}
}

// CaptureArea область захвата внутри окна без рамки.
// Для окна меньше отступов результат пустой (image.Rect здесь не подходит: он переставил бы углы).
func (m *ScreenshotManager) CaptureArea(window image.Rectangle) image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(window.Min.X+m.margins.MarginLeft, window.Min.Y+m.margins.MarginTop),
		Max: image.Pt(window.Max.X-m.margins.MarginRight, window.Max.Y-m.margins.MarginBottom),
	}
}

// Sample ищет окно заново на каждом снимке: его могли передвинуть или закрыть
func (m *ScreenshotManager) Sample() (Sample, error) {
	window, found := findWindow(m.title)

	area := displayBounds()
	if found {
		area = m.CaptureArea(window)
	}

	s := Sample{Window: window, WindowFound: found}
	if area.Empty() {
		// свернутое окно: снимать нечего
		s.Image = image.NewRGBA(image.Rectangle{})
		return s, nil
	}

	img, err := captureRect(area)
	if err != nil {
		return s, fmt.Errorf("failed to capture screenshot %v: %w", area, err)
	}
	s.Image = img
	return s, nil
}
