// hp_probe делает один снимок окна и печатает, что видит HealthReader.
// Использование: hp_probe [файл.png]
package main

import (
	"fmt"
	"log"
	"os"

	"screenserver/internal/config"
	"screenserver/internal/helpers"
	"screenserver/internal/hp"
	"screenserver/internal/screenshot"
)

func main() {
	c, err := config.InitConfig(".")
	if err != nil {
		log.Fatal("Error reading config: ", err)
	}

	screenshotManager := screenshot.NewScreenshotManager(c.WindowTitle, c.Capture)
	reader := hp.NewReader(c.Colors.Full.RGBA(), c.Colors.Danger.RGBA())

	sample, err := screenshotManager.Sample()
	if err != nil {
		log.Fatal("Ошибка захвата экрана: ", err)
	}

	if sample.WindowFound {
		fmt.Printf("✅ Окно %q: %v\n", c.WindowTitle, sample.Window)
		fmt.Printf("Область захвата: %v\n", screenshotManager.CaptureArea(sample.Window))
	} else {
		fmt.Printf("❌ Окно %q не найдено, снимок всего экрана\n", c.WindowTitle)
	}

	start, ok := reader.FindBarStart(sample.Image)
	if ok {
		full, danger := reader.ScanBar(sample.Image, start)
		fmt.Printf("Начало полоски: %v, заполнено: %d, потеряно: %d\n", start, full, danger)
	}
	fmt.Printf("Hp: %s\n", reader.Read(sample.Image))

	if len(os.Args) > 1 {
		if err := helpers.SavePNG(sample.Image, os.Args[1]); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Снимок сохранен как %s\n", os.Args[1])
	}
}
