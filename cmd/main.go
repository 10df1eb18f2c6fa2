package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"screenserver/internal/arduino"
	"screenserver/internal/automation"
	"screenserver/internal/click_manager"
	"screenserver/internal/config"
	"screenserver/internal/display"
	"screenserver/internal/hp"
	"screenserver/internal/interrupt"
	"screenserver/internal/keyboard"
	"screenserver/internal/logger"
	"screenserver/internal/notifier"
	"screenserver/internal/screenshot"
	"screenserver/internal/state"
)

type keySource interface {
	keyboard.KeySource
	Close() error
}

func main() {
	// init конфигурации
	c, err := config.InitConfig(".")
	if err != nil {
		log.Fatal("Error reading config: ", err)
	}

	// Инициализация логгера
	loggerManager, err := logger.NewLoggerManager(c.LogFilePath, c.Debug)
	if err != nil {
		log.Fatal("Error initializing logger: ", err)
	}
	defer loggerManager.Close()

	loggerManager.Info("🚀 Запуск screenserver")

	// Параметры сессии: прошлые значения предлагаются по умолчанию
	prev := config.LoadSession(c.SessionFilePath)
	session, err := config.NewPrompter(os.Stdin, os.Stdout).Ask(prev)
	if err != nil {
		loggerManager.LogError(err, "Ошибка ввода параметров сессии")
		return
	}
	if err := session.Save(c.SessionFilePath); err != nil {
		loggerManager.LogError(err, "Не удалось сохранить параметры сессии")
	}
	loggerManager.Info("✅ Сессия: max_hp=%d min_hp=%d volume=%.2f threshold=%d%%",
		session.MaxHP, session.MinHP, session.Volume, session.SignalThreshold)

	clicker, closeClicker, err := newClicker(c.Input)
	if err != nil {
		loggerManager.LogError(err, "Error initializing input driver")
		return
	}
	defer func() {
		if err := closeClicker(); err != nil {
			loggerManager.LogError(err, "Error closing input driver")
		}
	}()

	// Инициализация всех менеджеров
	st := state.NewState()
	screenshotManager := screenshot.NewScreenshotManager(c.WindowTitle, c.Capture)
	reader := hp.NewReader(c.Colors.Full.RGBA(), c.Colors.Danger.RGBA())
	alerts := notifier.NewNotifier(notifier.NewAudioPlayer(), session.Volume, c.Sounds.LowHP, c.Sounds.HighHP)
	clickManager := click_manager.NewClickManager(clicker, c.Click, loggerManager.Named("click"))
	engine := automation.NewEngine(st, screenshotManager, reader, alerts, clickManager,
		c.Engine, session.SignalThreshold, loggerManager.Named("engine"))
	engine.SetCaptureDump(c.DebugCapture)
	presenter := display.NewStatusPresenter(st, termenv.NewOutput(os.Stdout), c.Display.Tick())

	source, err := newKeySource(c.Keyboard.Source)
	if err != nil {
		loggerManager.LogError(err, "Error initializing key source")
		return
	}
	processor := keyboard.NewCommandProcessor(st, source, loggerManager.Named("keyboard"))

	interruptManager := interrupt.NewInterruptManager(st, loggerManager)
	interruptManager.StartMonitoring()
	defer interruptManager.Close()

	// ожидание клавиши прерывается остановкой
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-st.Stopped()
		cancel()
	}()

	// экран занят статусом, логи только в файл
	loggerManager.SetConsole(false)

	var g errgroup.Group
	g.Go(func() error {
		if err := engine.Run(); err != nil {
			loggerManager.LogError(err, "Цикл автоматизации остановлен")
			return err
		}
		return nil
	})
	g.Go(presenter.Run)
	g.Go(func() error {
		if err := processor.Run(ctx); err != nil {
			loggerManager.LogError(err, "Обработка клавиш остановлена")
			return err
		}
		return nil
	})

	waitErr := g.Wait()

	if err := source.Close(); err != nil {
		loggerManager.LogError(err, "Error restoring terminal")
	}
	loggerManager.SetConsole(true)
	fmt.Println("Exiting...")

	if waitErr != nil {
		loggerManager.Info("⚠️ Сессия завершена с ошибкой: %v", waitErr)
		return
	}
	loggerManager.Info("👋 Сессия завершена")
}

// newClicker выбирает драйвер мыши по input.driver
func newClicker(in config.Input) (click_manager.Clicker, func() error, error) {
	if in.Driver != "arduino" {
		return click_manager.RobotgoClicker{}, func() error { return nil }, nil
	}

	port, err := arduino.InitializePort(in.Port, in.BaudRate)
	if err != nil {
		return nil, nil, err
	}
	return arduino.NewArduino(port), port.Close, nil
}

// newKeySource выбирает источник клавиш по keyboard.source
func newKeySource(source string) (keySource, error) {
	if source == "hook" {
		return keyboard.NewHookSource()
	}
	return keyboard.NewTerminalSource(os.Stdin)
}
