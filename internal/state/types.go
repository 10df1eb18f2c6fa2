package state

import "fmt"

// HealthState результат одного замера полоски HP: процент или "полоска не найдена".
type HealthState struct {
	Percent float64
	Found   bool
}

// Health создает валидный замер
func Health(percent float64) HealthState {
	return HealthState{Percent: percent, Found: true}
}

// BarNotFound создает замер без полоски
func BarNotFound() HealthState {
	return HealthState{}
}

func (h HealthState) String() string {
	if !h.Found {
		return "HP bar not found"
	}
	return fmt.Sprintf("%.2f%%", h.Percent)
}

// MuteMode управляет проигрыванием сигнала о низком HP.
// TemporarilyMuted сбрасывается в Unmuted, когда HP снова поднимается выше порога.
type MuteMode int

const (
	Unmuted MuteMode = iota
	TemporarilyMuted
	Muted
)

func (m MuteMode) String() string {
	switch m {
	case Muted:
		return "Yes"
	case TemporarilyMuted:
		return "Temporarily"
	default:
		return "No"
	}
}

// AutomationMode управляет автоматическим включением/выключением воровства.
// AutoTemporary работает как AutoOn, но возвращается в AutoOff при первой остановке по низкому HP.
type AutomationMode int

const (
	AutoOff AutomationMode = iota
	AutoOn
	AutoTemporary
)

func (a AutomationMode) String() string {
	switch a {
	case AutoOn:
		return "On"
	case AutoTemporary:
		return "Temporarily"
	default:
		return "Off"
	}
}

// Engaged сообщает, должен ли движок запускать воровство в этом режиме
func (a AutomationMode) Engaged() bool {
	return a == AutoOn || a == AutoTemporary
}

// WorldState общая картина мира, которую видят все три цикла.
type WorldState struct {
	Health         HealthState
	WindowFound    bool
	Mute           MuteMode
	Automation     AutomationMode
	ThievingActive bool
	Running        bool
}
