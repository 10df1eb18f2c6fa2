// Package keyboard команды с клавиатуры: переключение звука, авто режима,
// ручное воровство и выход.
package keyboard

import (
	"context"
	"errors"
	"io"

	"screenserver/internal/logger"
	"screenserver/internal/state"
)

// ErrUnsupported источник клавиш недоступен на этой платформе
var ErrUnsupported = errors.New("key source is not supported on this platform")

// Command команда, назначенная клавише
type Command int

const (
	CmdNone Command = iota
	CmdMute
	CmdTempMute
	CmdAuto
	CmdTempAuto
	CmdThieving
	CmdQuit
)

// String имя команды для логов
func (c Command) String() string {
	switch c {
	case CmdMute:
		return "mute"
	case CmdTempMute:
		return "temporary mute"
	case CmdAuto:
		return "auto mode"
	case CmdTempAuto:
		return "temporary auto mode"
	case CmdThieving:
		return "thieving"
	case CmdQuit:
		return "quit"
	default:
		return "none"
	}
}

// KeyEvent одно нажатие или отпускание клавиши
type KeyEvent struct {
	Rune     rune
	Esc      bool
	Released bool
}

const ctrlC = 0x03

// aliases латиница и соседние буквы русской раскладки
var aliases = map[rune]Command{
	'M': CmdMute, 'm': CmdMute, 'Ь': CmdMute, 'ь': CmdMute,
	'T': CmdTempMute, 't': CmdTempMute, 'Е': CmdTempMute, 'е': CmdTempMute,
	'A': CmdAuto, 'a': CmdAuto, 'Ф': CmdAuto, 'ф': CmdAuto,
	'S': CmdTempAuto, 's': CmdTempAuto, 'Ы': CmdTempAuto, 'ы': CmdTempAuto,
	'B': CmdThieving, 'b': CmdThieving, 'И': CmdThieving, 'и': CmdThieving,
	'Q': CmdQuit, 'q': CmdQuit, 'Й': CmdQuit, 'й': CmdQuit,
	ctrlC: CmdQuit,
}

// CommandFor переводит событие в команду. Отпускание клавиши игнорируется.
func CommandFor(ev KeyEvent) Command {
	if ev.Released {
		return CmdNone
	}
	if ev.Esc {
		return CmdTempMute
	}
	return aliases[ev.Rune]
}

// KeySource блокирующее ожидание следующего события клавиатуры
type KeySource interface {
	Next(ctx context.Context) (KeyEvent, error)
}

// CommandProcessor применяет команды к общему состоянию
type CommandProcessor struct {
	state  *state.State
	source KeySource
	logger *logger.LoggerManager
}

// NewCommandProcessor создает новый экземпляр CommandProcessor
func NewCommandProcessor(st *state.State, source KeySource, loggerManager *logger.LoggerManager) *CommandProcessor {
	return &CommandProcessor{
		state:  st,
		source: source,
		logger: loggerManager,
	}
}

// Run ждет клавиши, пока не сброшен флаг running или не отменен ctx
func (p *CommandProcessor) Run(ctx context.Context) error {
	for p.state.Running() {
		ev, err := p.source.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				p.logger.Debug("Ожидание клавиш завершено: %v", err)
				return nil
			}
			return err
		}
		p.Handle(ev)
	}
	return nil
}

// Handle выполняет команду события. Переключатели читают текущее значение и пишут
// новое без атомарной проверки, конкурентная запись движка между ними теряется.
func (p *CommandProcessor) Handle(ev KeyEvent) Command {
	cmd := CommandFor(ev)
	if cmd == CmdNone {
		return cmd
	}
	w := p.state.Snapshot()

	switch cmd {
	case CmdMute:
		next := state.Muted
		if w.Mute == state.Muted {
			next = state.Unmuted
		}
		p.state.SetMuteMode(next)
		p.logger.Info("🔈 Звук: %s", next)
	case CmdTempMute:
		next := state.TemporarilyMuted
		if w.Mute == state.TemporarilyMuted {
			next = state.Unmuted
		}
		p.state.SetMuteMode(next)
		p.logger.Info("🔈 Звук: %s", next)
	case CmdAuto:
		next := state.AutoOn
		if w.Automation == state.AutoOn {
			next = state.AutoOff
		}
		p.state.SetAutomationMode(next)
		p.logger.Info("🤖 Авто режим: %s", next)
	case CmdTempAuto:
		next := state.AutoTemporary
		if w.Automation == state.AutoTemporary {
			next = state.AutoOff
		}
		p.state.SetAutomationMode(next)
		p.logger.Info("🤖 Авто режим: %s", next)
	case CmdThieving:
		p.state.SetThievingActive(!w.ThievingActive)
		p.logger.Info("🖐 Воровство вручную: %t", !w.ThievingActive)
	case CmdQuit:
		p.logger.Info("👋 Exiting...")
		p.state.Stop()
	}
	return cmd
}
