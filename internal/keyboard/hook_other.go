//go:build !windows

package keyboard

import "context"

// HookSource глобальный хук есть только в Windows
type HookSource struct{}

// NewHookSource на этой платформе всегда возвращает ErrUnsupported
func NewHookSource() (*HookSource, error) {
	return nil, ErrUnsupported
}

// Next всегда возвращает ErrUnsupported
func (s *HookSource) Next(ctx context.Context) (KeyEvent, error) {
	return KeyEvent{}, ErrUnsupported
}

// Close ничего не делает
func (s *HookSource) Close() error {
	return nil
}
