package keyboard

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"screenserver/internal/logger"
	"screenserver/internal/state"
)

func newProcessor(t *testing.T, source KeySource) (*CommandProcessor, *state.State) {
	st := state.NewState()
	return NewCommandProcessor(st, source, logger.NewFromZap(zaptest.NewLogger(t))), st
}

func press(r rune) KeyEvent { return KeyEvent{Rune: r} }

func TestCommandFor_Aliases(t *testing.T) {
	tests := []struct {
		keys string
		cmd  Command
	}{
		{"MmЬь", CmdMute},
		{"TtЕе", CmdTempMute},
		{"AaФф", CmdAuto},
		{"SsЫы", CmdTempAuto},
		{"BbИи", CmdThieving},
		{"QqЙй\x03", CmdQuit},
		{"xz1 ", CmdNone},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.String(), func(t *testing.T) {
			for _, r := range tt.keys {
				assert.Equal(t, tt.cmd, CommandFor(press(r)), "key %q", r)
			}
		})
	}
}

func TestCommandFor_EscAndRelease(t *testing.T) {
	assert.Equal(t, CmdTempMute, CommandFor(KeyEvent{Esc: true}))
	assert.Equal(t, CmdNone, CommandFor(KeyEvent{Rune: 'm', Released: true}))
	assert.Equal(t, CmdNone, CommandFor(KeyEvent{Esc: true, Released: true}))
}

func TestHandle_MuteToggleCycle(t *testing.T) {
	p, st := newProcessor(t, nil)

	p.Handle(press('m'))
	assert.Equal(t, state.Muted, st.Snapshot().Mute)

	p.Handle(press('m'))
	assert.Equal(t, state.Unmuted, st.Snapshot().Mute)
}

func TestHandle_MuteTransitions(t *testing.T) {
	tests := []struct {
		name string
		from state.MuteMode
		key  KeyEvent
		want state.MuteMode
	}{
		{"mute from unmuted", state.Unmuted, press('M'), state.Muted},
		{"mute from temporary", state.TemporarilyMuted, press('M'), state.Muted},
		{"mute from muted", state.Muted, press('M'), state.Unmuted},
		{"temporary from muted", state.Muted, press('t'), state.TemporarilyMuted},
		{"temporary from temporary", state.TemporarilyMuted, press('t'), state.Unmuted},
		{"temporary from unmuted", state.Unmuted, press('t'), state.TemporarilyMuted},
		{"escape from unmuted", state.Unmuted, KeyEvent{Esc: true}, state.TemporarilyMuted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, st := newProcessor(t, nil)
			st.SetMuteMode(tt.from)

			p.Handle(tt.key)
			assert.Equal(t, tt.want, st.Snapshot().Mute)
		})
	}
}

func TestHandle_AutomationTransitions(t *testing.T) {
	tests := []struct {
		name string
		from state.AutomationMode
		key  rune
		want state.AutomationMode
	}{
		{"auto from off", state.AutoOff, 'a', state.AutoOn},
		{"auto from on", state.AutoOn, 'a', state.AutoOff},
		{"auto from temporary", state.AutoTemporary, 'a', state.AutoOn},
		{"temporary from off", state.AutoOff, 's', state.AutoTemporary},
		{"temporary from on", state.AutoOn, 's', state.AutoTemporary},
		{"temporary from temporary", state.AutoTemporary, 's', state.AutoOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, st := newProcessor(t, nil)
			st.SetAutomationMode(tt.from)

			p.Handle(press(tt.key))
			assert.Equal(t, tt.want, st.Snapshot().Automation)
		})
	}
}

func TestHandle_ThievingFlips(t *testing.T) {
	p, st := newProcessor(t, nil)

	p.Handle(press('и'))
	assert.True(t, st.Snapshot().ThievingActive)
	p.Handle(press('b'))
	assert.False(t, st.Snapshot().ThievingActive)
}

func TestHandle_QuitStops(t *testing.T) {
	p, st := newProcessor(t, nil)

	assert.Equal(t, CmdQuit, p.Handle(press('й')))
	assert.False(t, st.Running())
}

func TestHandle_IgnoresRelease(t *testing.T) {
	p, st := newProcessor(t, nil)

	assert.Equal(t, CmdNone, p.Handle(KeyEvent{Rune: 'q', Released: true}))
	assert.True(t, st.Running())
	assert.Equal(t, state.WorldState{Health: state.Health(0), Running: true}, st.Snapshot())
}

type scriptedSource struct {
	events []KeyEvent
	err    error
}

func (s *scriptedSource) Next(ctx context.Context) (KeyEvent, error) {
	if len(s.events) == 0 {
		if s.err != nil {
			return KeyEvent{}, s.err
		}
		<-ctx.Done()
		return KeyEvent{}, ctx.Err()
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

func TestRun_StopsOnQuit(t *testing.T) {
	src := &scriptedSource{events: []KeyEvent{press('m'), press('a'), press('q'), press('m')}}
	p, st := newProcessor(t, src)

	require.NoError(t, p.Run(context.Background()))

	w := st.Snapshot()
	assert.False(t, w.Running)
	assert.Equal(t, state.Muted, w.Mute)
	assert.Equal(t, state.AutoOn, w.Automation)
	assert.Len(t, src.events, 1)
}

func TestRun_ContextCancelIsClean(t *testing.T) {
	p, st := newProcessor(t, &scriptedSource{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("processor did not stop")
	}
	assert.True(t, st.Running())
}

func TestRun_SourceErrorPropagates(t *testing.T) {
	p, _ := newProcessor(t, &scriptedSource{err: errors.New("hook failed")})

	assert.ErrorContains(t, p.Run(context.Background()), "hook failed")
}

func TestReaderSource_Keys(t *testing.T) {
	src := NewReaderSource(strings.NewReader("mЬ\x1bq"))
	ctx := context.Background()

	var got []KeyEvent
	for {
		ev, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, ev)
	}

	assert.Equal(t, []KeyEvent{press('m'), press('Ь'), {Esc: true}, press('q')}, got)
}

func TestReaderSource_SkipsArrowKeys(t *testing.T) {
	src := NewReaderSource(strings.NewReader("\x1b[A\x1bOB\x1b[1;5Ct"))

	ev, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, press('t'), ev)
}

func TestReaderSource_SequenceSplitAcrossReads(t *testing.T) {
	pr, pw := io.Pipe()
	src := NewReaderSource(pr)

	go func() {
		for _, chunk := range []string{"\x1b", "[", "A", "\x1bO", "B", "t"} {
			if _, err := pw.Write([]byte(chunk)); err != nil {
				return
			}
		}
		pw.Close()
	}()

	var got []KeyEvent
	for {
		ev, err := src.Next(context.Background())
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, ev)
	}

	assert.Equal(t, []KeyEvent{press('t')}, got)
}

func TestReaderSource_LoneEscAfterWait(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	src := NewReaderSource(pr)

	go pw.Write([]byte{esc})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	ev, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, KeyEvent{Esc: true}, ev)

	// клавиша после паузы не склеивается с ESC
	go pw.Write([]byte("A"))
	ev, err = src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, CmdAuto, CommandFor(ev))
}

func TestReaderSource_EOFEndsRun(t *testing.T) {
	p, st := newProcessor(t, NewReaderSource(strings.NewReader("s")))

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, state.AutoTemporary, st.Snapshot().Automation)
}
