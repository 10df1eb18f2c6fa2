//go:build windows

package keyboard

import (
	"context"
	"io"

	"github.com/moutend/go-hook/pkg/keyboard"
	"github.com/moutend/go-hook/pkg/types"
)

// HookSource глобальный перехват клавиатуры, работает без фокуса на консоли
type HookSource struct {
	events chan types.KeyboardEvent
}

// NewHookSource устанавливает low-level хук клавиатуры
func NewHookSource() (*HookSource, error) {
	events := make(chan types.KeyboardEvent, 100)
	if err := keyboard.Install(nil, events); err != nil {
		return nil, err
	}
	return &HookSource{events: events}, nil
}

// Next ждет следующее событие хука
func (s *HookSource) Next(ctx context.Context) (KeyEvent, error) {
	select {
	case <-ctx.Done():
		return KeyEvent{}, ctx.Err()
	case event, ok := <-s.events:
		if !ok {
			return KeyEvent{}, io.EOF
		}
		return hookEvent(event), nil
	}
}

// Close снимает хук
func (s *HookSource) Close() error {
	return keyboard.Uninstall()
}

// hookEvent виртуальные коды букв совпадают с заглавной латиницей, код Esc с байтом ESC
func hookEvent(event types.KeyboardEvent) KeyEvent {
	ev := KeyEvent{
		Released: event.Message != types.WM_KEYDOWN,
	}
	switch {
	case event.VKCode == esc:
		ev.Esc = true
	case event.VKCode >= 'A' && event.VKCode <= 'Z':
		ev.Rune = rune(event.VKCode)
	}
	return ev
}
