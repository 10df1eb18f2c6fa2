package click_manager

import (
	"fmt"
	"image"
	"time"

	"screenserver/internal/config"
	"screenserver/internal/logger"
)

// Clicker драйвер мыши: перемещение, нажатие, удержание hold, отпускание
type Clicker interface {
	Click(p image.Point, button string, hold time.Duration) error
}

// ClickManager кликает по кнопке воровства с учетом положения окна
type ClickManager struct {
	clicker Clicker
	click   config.Click
	logger  *logger.LoggerManager
	sleep   func(time.Duration)
}

// NewClickManager создает новый экземпляр ClickManager
func NewClickManager(clicker Clicker, click config.Click, loggerManager *logger.LoggerManager) *ClickManager {
	return &ClickManager{
		clicker: clicker,
		click:   click,
		logger:  loggerManager,
		sleep:   time.Sleep,
	}
}

// Target абсолютная точка клика. Для относительных координат origin левый верхний угол окна.
func (m *ClickManager) Target(origin image.Point) image.Point {
	p := image.Pt(m.click.X, m.click.Y)
	if m.click.Relative {
		p = p.Add(origin)
	}
	return p
}

// Click ждет delay и кликает. Задержка отличает клик остановки от клика запуска.
func (m *ClickManager) Click(delay time.Duration, origin image.Point) error {
	if delay > 0 {
		m.sleep(delay)
	}

	target := m.Target(origin)
	m.logger.Debug("🖱️ Клик %s по %v", m.click.Button, target)
	if err := m.clicker.Click(target, m.click.Button, m.click.Hold()); err != nil {
		return fmt.Errorf("click at %v: %w", target, err)
	}
	return nil
}
