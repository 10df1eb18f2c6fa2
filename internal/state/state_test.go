package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewState_Defaults(t *testing.T) {
	s := NewState()
	w := s.Snapshot()

	assert.Equal(t, Health(0), w.Health)
	assert.False(t, w.WindowFound)
	assert.Equal(t, Unmuted, w.Mute)
	assert.Equal(t, AutoOff, w.Automation)
	assert.False(t, w.ThievingActive)
	assert.True(t, w.Running)
	assert.True(t, s.Running())
}

func TestSetters_ChangeOnlyTheirField(t *testing.T) {
	s := NewState()

	s.SetHealth(Health(42.5))
	s.SetWindowFound(true)
	s.SetMuteMode(TemporarilyMuted)
	s.SetAutomationMode(AutoTemporary)
	s.SetThievingActive(true)

	w := s.Snapshot()
	assert.Equal(t, WorldState{
		Health:         Health(42.5),
		WindowFound:    true,
		Mute:           TemporarilyMuted,
		Automation:     AutoTemporary,
		ThievingActive: true,
		Running:        true,
	}, w)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := NewState()
	w := s.Snapshot()
	w.Mute = Muted
	w.Running = false

	assert.Equal(t, Unmuted, s.Snapshot().Mute)
	assert.True(t, s.Running())
}

func TestStop_ClosesStoppedOnce(t *testing.T) {
	s := NewState()

	select {
	case <-s.Stopped():
		t.Fatal("stopped closed before Stop")
	default:
	}

	s.Stop()
	s.Stop()

	_, open := <-s.Stopped()
	assert.False(t, open)
	assert.False(t, s.Running())
}

func TestState_ConcurrentAccess(t *testing.T) {
	s := NewState()
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				s.SetHealth(Health(float64(j % 101)))
				s.SetThievingActive(j%2 == 0)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				s.SetMuteMode(MuteMode(j % 3))
				s.SetAutomationMode(AutomationMode(j % 3))
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				w := s.Snapshot()
				assert.True(t, w.Health.Found)
				assert.GreaterOrEqual(t, w.Health.Percent, 0.0)
				assert.LessOrEqual(t, w.Health.Percent, 100.0)
			}
		}()
	}
	wg.Wait()
}

func TestHealthState_String(t *testing.T) {
	assert.Equal(t, "87.50%", Health(87.5).String())
	assert.Equal(t, "HP bar not found", BarNotFound().String())
}

func TestModes_String(t *testing.T) {
	assert.Equal(t, "Yes", Muted.String())
	assert.Equal(t, "Temporarily", TemporarilyMuted.String())
	assert.Equal(t, "No", Unmuted.String())

	assert.Equal(t, "On", AutoOn.String())
	assert.Equal(t, "Off", AutoOff.String())
	assert.Equal(t, "Temporarily", AutoTemporary.String())

	assert.True(t, AutoOn.Engaged())
	assert.True(t, AutoTemporary.Engaged())
	assert.False(t, AutoOff.Engaged())
}
