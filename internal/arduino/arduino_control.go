package arduino

import (
	"fmt"
	"image"
	"io"
	"time"
)

// Arduino эмулирует мышь через прошивку на плате: перемещение, нажатие, удержание и отпускание
// выполняет сама плата.
type Arduino struct {
	port io.ReadWriter
}

// NewArduino создает драйвер поверх открытого порта
func NewArduino(port io.ReadWriter) *Arduino {
	return &Arduino{port: port}
}

// ClickMessage команда прошивки для клика кнопкой button в точке p
func ClickMessage(p image.Point, button string) (string, error) {
	switch button {
	case "left":
		return fmt.Sprintf("click:%d,%d\n", p.X, p.Y), nil
	case "right":
		return fmt.Sprintf("right_click:%d,%d\n", p.X, p.Y), nil
	default:
		return "", fmt.Errorf("unsupported mouse button %q", button)
	}
}

// Click время удержания задается прошивкой, hold здесь не используется
func (a *Arduino) Click(p image.Point, button string, hold time.Duration) error {
	message, err := ClickMessage(p, button)
	if err != nil {
		return err
	}
	return ProcessAndWait(a.port, message)
}
