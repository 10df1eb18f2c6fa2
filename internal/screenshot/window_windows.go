//go:build windows

package screenshot

import (
	"image"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// FindWindow возвращает прямоугольник окна с точным заголовком title
func FindWindow(title string) (image.Rectangle, bool) {
	name, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return image.Rectangle{}, false
	}

	hwnd := win.FindWindow(nil, name)
	if hwnd == 0 {
		return image.Rectangle{}, false
	}

	var rect win.RECT
	if !win.GetWindowRect(hwnd, &rect) {
		return image.Rectangle{}, false
	}

	return image.Rect(int(rect.Left), int(rect.Top), int(rect.Right), int(rect.Bottom)), true
}
