// Package automation цикл замера HP и принятия решений: звуковые сигналы и
// включение/выключение воровства кликом.
//
// Защелка highNotified принадлежит только движку и в общее состояние не попадает.
// Режимы (звук, авто режим) живут в state.State и меняются и движком, и клавиатурой.
package automation

import (
	"fmt"
	"image"
	"time"

	"screenserver/internal/config"
	"screenserver/internal/helpers"
	"screenserver/internal/logger"
	"screenserver/internal/screenshot"
	"screenserver/internal/state"
)

// Sampler снимает экран вместе с положением окна
type Sampler interface {
	Sample() (screenshot.Sample, error)
}

// HealthReader переводит снимок в процент HP
type HealthReader interface {
	Read(img image.Image) state.HealthState
}

// Notifier звуковые сигналы; ошибка означает, что звук играть больше нельзя
type Notifier interface {
	LowHP() error
	HighHP() error
}

// Clicker клик по кнопке воровства после задержки delay
type Clicker interface {
	Click(delay time.Duration, origin image.Point) error
}

// Engine цикл автоматизации
type Engine struct {
	state    *state.State
	sampler  Sampler
	reader   HealthReader
	notifier Notifier
	clicker  Clicker
	logger   *logger.LoggerManager

	timing    config.Engine
	threshold float64

	// highNotified сигнал полного HP уже прозвучал в этом эпизоде
	highNotified bool
	// window положение окна на последнем снимке, пустое если окна не было
	window      image.Rectangle
	windowFound bool

	// capturePath куда сохранить снимок, на котором полоска потерялась
	capturePath  string
	captureSaved bool
}

// NewEngine создает движок. threshold процент HP, ниже которого срабатывает сигнал.
func NewEngine(
	st *state.State,
	sampler Sampler,
	reader HealthReader,
	notifier Notifier,
	clicker Clicker,
	timing config.Engine,
	threshold uint,
	loggerManager *logger.LoggerManager,
) *Engine {
	return &Engine{
		state:     st,
		sampler:   sampler,
		reader:    reader,
		notifier:  notifier,
		clicker:   clicker,
		logger:    loggerManager,
		timing:    timing,
		threshold: float64(threshold),
	}
}

// SetCaptureDump включает сохранение первого снимка без полоски после каждой потери
func (e *Engine) SetCaptureDump(path string) {
	e.capturePath = path
}

// Run крутит циклы, пока не сброшен флаг running. Ошибка звука или клика завершает цикл.
func (e *Engine) Run() error {
	for e.state.Running() {
		next, err := e.Cycle()
		if err != nil {
			return err
		}

		timer := time.NewTimer(next)
		select {
		case <-timer.C:
		case <-e.state.Stopped():
			timer.Stop()
			return nil
		}
	}
	return nil
}

// Cycle один замер и реакция на него. Возвращает паузу до следующего замера.
func (e *Engine) Cycle() (time.Duration, error) {
	world := e.state.Snapshot()
	health, img := e.sample()
	next := e.timing.Period()
	e.dumpCapture(health, img)

	if health.Found {
		switch {
		case health.Percent >= e.timing.HighHPPercent:
			if err := e.onHighHealth(world); err != nil {
				return next, err
			}
		case health.Percent < e.threshold:
			alerted, err := e.onLowHealth(world)
			if err != nil {
				return next, err
			}
			if alerted {
				next = e.timing.AlertPeriod()
			}
		}

		// временное отключение снимается на любом замере не ниже порога, в том числе на полном HP
		if health.Percent >= e.threshold && world.Mute == state.TemporarilyMuted {
			e.state.SetMuteMode(state.Unmuted)
		}
	}

	e.state.SetHealth(health)
	return next, nil
}

// sample снимает экран и пишет флаг окна. Ошибка захвата не фатальна: считаем, что полоски нет.
func (e *Engine) sample() (state.HealthState, image.Image) {
	s, err := e.sampler.Sample()
	e.state.SetWindowFound(s.WindowFound)
	e.windowFound = s.WindowFound
	e.window = image.Rectangle{}
	if s.WindowFound {
		e.window = s.Window
	}
	if err != nil {
		e.logger.LogError(err, "Ошибка захвата экрана")
		return state.BarNotFound(), nil
	}
	return e.reader.Read(s.Image), s.Image
}

func (e *Engine) dumpCapture(health state.HealthState, img image.Image) {
	if health.Found {
		e.captureSaved = false
		return
	}
	if e.capturePath == "" || img == nil || e.captureSaved {
		return
	}

	e.captureSaved = true
	if err := helpers.SavePNG(img, e.capturePath); err != nil {
		e.logger.LogError(err, "Не удалось сохранить снимок")
		return
	}
	e.logger.Debug("📸 Полоска HP не найдена, снимок сохранен в %s", e.capturePath)
}

// clickOrigin левый верхний угол окна с текущего снимка. Без окна клик идет по абсолютным координатам.
func (e *Engine) clickOrigin() image.Point {
	if !e.windowFound {
		e.logger.Info("⚠️ Окно не найдено, клик без смещения окна")
		return image.Point{}
	}
	return e.window.Min
}

func (e *Engine) onHighHealth(world state.WorldState) error {
	if world.Automation.Engaged() && !world.ThievingActive {
		e.logger.Info("🟢 HP восстановлено, запускаем воровство")
		e.state.SetThievingActive(true)
		if err := e.clicker.Click(0, e.clickOrigin()); err != nil {
			return fmt.Errorf("start thieving: %w", err)
		}
	}

	if !e.highNotified {
		if err := e.notifier.HighHP(); err != nil {
			return err
		}
		e.highNotified = true
	}
	return nil
}

// onLowHealth возвращает true, если прозвучал сигнал низкого HP
func (e *Engine) onLowHealth(world state.WorldState) (bool, error) {
	if world.ThievingActive {
		e.logger.Info("🔴 HP ниже порога %.0f%%, останавливаем воровство", e.threshold)
		e.state.SetThievingActive(false)
		if world.Automation == state.AutoTemporary {
			e.state.SetAutomationMode(state.AutoOff)
		}
		if err := e.clicker.Click(e.timing.StopClickDelay(), e.clickOrigin()); err != nil {
			return false, fmt.Errorf("stop thieving: %w", err)
		}
	}

	e.highNotified = false

	if world.Mute != state.Unmuted {
		return false, nil
	}
	if err := e.notifier.LowHP(); err != nil {
		return false, err
	}
	return true, nil
}
