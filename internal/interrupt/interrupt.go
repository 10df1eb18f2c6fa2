package interrupt

import (
	"os"
	"os/signal"
	"syscall"

	"screenserver/internal/logger"
	"screenserver/internal/state"
)

// InterruptManager переводит сигналы ОС в остановку всех циклов
type InterruptManager struct {
	state         *state.State
	signals       chan os.Signal
	loggerManager *logger.LoggerManager
}

// NewInterruptManager создает новый менеджер прерываний
func NewInterruptManager(st *state.State, loggerManager *logger.LoggerManager) *InterruptManager {
	return &InterruptManager{
		state:         st,
		signals:       make(chan os.Signal, 1),
		loggerManager: loggerManager,
	}
}

// StartMonitoring подписывается на SIGINT/SIGTERM
func (im *InterruptManager) StartMonitoring() {
	signal.Notify(im.signals, os.Interrupt, syscall.SIGTERM)
	go im.monitorSignals()
}

// Close отписывается от сигналов
func (im *InterruptManager) Close() {
	signal.Stop(im.signals)
}

// monitorSignals ждет первый сигнал или остановку по команде
func (im *InterruptManager) monitorSignals() {
	select {
	case sig := <-im.signals:
		im.loggerManager.Info("🛑 Получен сигнал %s, останавливаемся", sig)
		im.state.Stop()
	case <-im.state.Stopped():
	}
}
