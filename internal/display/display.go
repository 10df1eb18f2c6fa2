package display

import (
	"fmt"
	"time"

	"github.com/muesli/termenv"

	"screenserver/internal/state"
)

// Legend подсказка по горячим клавишам, печатается под статусом
var Legend = []string{
	"",
	"M|m: Mute on/off",
	"Esc|T|t: Temporarily mute on/off",
	"A|a: Auto mode on/off",
	"S|s: Temporarily auto mode on/off",
	"B|b: Thieving on/off",
	"Q|q: Quit",
}

// ANSI цвета значений
const (
	colorGood = "2"
	colorWarn = "3"
	colorBad  = "1"
)

// StatusPresenter перерисовывает статус на месте с фиксированной частотой
type StatusPresenter struct {
	state *state.State
	out   *termenv.Output
	tick  time.Duration
	drawn bool
}

// NewStatusPresenter создает новый экземпляр StatusPresenter
func NewStatusPresenter(st *state.State, out *termenv.Output, tick time.Duration) *StatusPresenter {
	return &StatusPresenter{
		state: st,
		out:   out,
		tick:  tick,
	}
}

func (p *StatusPresenter) paint(text, color string) string {
	return p.out.String(text).Foreground(p.out.Color(color)).String()
}

func (p *StatusPresenter) yesNo(v bool) string {
	if v {
		return p.paint("Yes", colorGood)
	}
	return p.paint("No", colorBad)
}

// Lines изменяемая часть экрана; количество строк постоянно
func (p *StatusPresenter) Lines(w state.WorldState) []string {
	health := p.paint(w.Health.String(), colorGood)
	if !w.Health.Found {
		health = p.paint(w.Health.String(), colorWarn)
	}

	muteColor := map[state.MuteMode]string{
		state.Unmuted:          colorGood,
		state.TemporarilyMuted: colorWarn,
		state.Muted:            colorBad,
	}[w.Mute]
	autoColor := map[state.AutomationMode]string{
		state.AutoOn:        colorGood,
		state.AutoTemporary: colorWarn,
		state.AutoOff:       colorBad,
	}[w.Automation]

	return []string{
		"Hp: " + health,
		fmt.Sprintf("OnTopReplica found: %t", w.WindowFound),
		"",
		"Muted: " + p.paint(w.Mute.String(), muteColor),
		"Auto mode: " + p.paint(w.Automation.String(), autoColor),
		"Is thieving active: " + p.yesNo(w.ThievingActive),
	}
}

// Draw первый вызов печатает весь блок, последующие возвращают курсор к началу блока
// и переписывают только строки статуса.
func (p *StatusPresenter) Draw(w state.WorldState) {
	lines := p.Lines(w)

	if !p.drawn {
		for _, line := range append(lines, Legend...) {
			fmt.Fprint(p.out, line, "\r\n")
		}
		p.drawn = true
		return
	}

	p.out.CursorUp(len(lines) + len(Legend))
	for _, line := range lines {
		p.out.ClearLine()
		fmt.Fprint(p.out, "\r", line)
		p.out.CursorNextLine(1)
	}
	p.out.CursorNextLine(len(Legend))
}

// Run перерисовывает экран, пока не сброшен флаг running
func (p *StatusPresenter) Run() error {
	p.out.HideCursor()
	defer p.out.ShowCursor()

	for {
		w := p.state.Snapshot()
		p.Draw(w)
		if !w.Running {
			return nil
		}

		timer := time.NewTimer(p.tick)
		select {
		case <-timer.C:
		case <-p.state.Stopped():
			timer.Stop()
			// последний кадр с итоговым состоянием
			p.Draw(p.state.Snapshot())
			return nil
		}
	}
}
