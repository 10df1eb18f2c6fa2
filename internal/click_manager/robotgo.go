package click_manager

import (
	"fmt"
	"image"
	"time"

	"github.com/go-vgo/robotgo"
)

// RobotgoClicker кликает средствами ОС через robotgo
type RobotgoClicker struct{}

// Click перемещает курсор, нажимает, держит hold и отпускает
func (RobotgoClicker) Click(p image.Point, button string, hold time.Duration) error {
	robotgo.Move(p.X, p.Y)
	if err := robotgo.Toggle(button); err != nil {
		return fmt.Errorf("mouse down: %w", err)
	}
	time.Sleep(hold)
	if err := robotgo.Toggle(button, "up"); err != nil {
		return fmt.Errorf("mouse up: %w", err)
	}
	return nil
}
