// Package state хранит общую картину мира для циклов автоматизации, отображения и клавиатуры.
//
// Весь доступ идет через *State. Чтение возвращает полную копию под read-блокировкой,
// каждая запись меняет ровно одно поле под write-блокировкой. Переход, затрагивающий
// несколько полей, это последовательность таких записей: читатель может увидеть
// любое их чередование, но никогда не увидит наполовину записанное поле.
//
// Переключения вида "прочитать, затем записать" не атомарны: между Snapshot и Set
// другой цикл может успеть записать свое значение.
package state

import "sync"

// State потокобезопасная обертка над WorldState.
// Блокировка никогда не удерживается во время внешних вызовов.
type State struct {
	mu    sync.RWMutex
	world WorldState

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewState создает состояние по умолчанию: HP 0%, звук включен, авто режим выключен, работаем
func NewState() *State {
	return &State{
		world: WorldState{
			Health:     Health(0),
			Mute:       Unmuted,
			Automation: AutoOff,
			Running:    true,
		},
		stopped: make(chan struct{}),
	}
}

// Snapshot возвращает копию текущего состояния
func (s *State) Snapshot() WorldState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.world
}

// Running сообщает, продолжают ли работать циклы
func (s *State) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.world.Running
}

// Stopped закрывается, когда флаг running сбрасывается
func (s *State) Stopped() <-chan struct{} {
	return s.stopped
}

// SetHealth записывает последний замер HP
func (s *State) SetHealth(h HealthState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.world.Health = h
}

// SetWindowFound записывает, найдено ли окно OnTopReplica
func (s *State) SetWindowFound(found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.world.WindowFound = found
}

// SetMuteMode записывает режим звука
func (s *State) SetMuteMode(m MuteMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.world.Mute = m
}

// SetAutomationMode записывает авто режим
func (s *State) SetAutomationMode(a AutomationMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.world.Automation = a
}

// SetThievingActive записывает, идет ли воровство
func (s *State) SetThievingActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.world.ThievingActive = active
}

// Stop сбрасывает флаг running. Повторный вызов ничего не делает.
func (s *State) Stop() {
	s.mu.Lock()
	s.world.Running = false
	s.mu.Unlock()

	s.stopOnce.Do(func() { close(s.stopped) })
}
