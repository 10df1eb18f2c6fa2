package keyboard

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

const esc = 0x1b

// DefaultEscWait сколько ждать продолжения после ESC, прежде чем считать его отдельной клавишей
const DefaultEscWait = 50 * time.Millisecond

type readResult struct {
	ev  KeyEvent
	err error
}

type rawRune struct {
	r   rune
	err error
}

// ReaderSource разбирает поток байт терминала на нажатия. Терминал сообщает только
// нажатия, поэтому Released всегда false.
type ReaderSource struct {
	in      *bufio.Reader
	escWait time.Duration
	once    sync.Once
	raw     chan rawRune
	results chan readResult
}

// NewReaderSource создает источник клавиш поверх произвольного потока
func NewReaderSource(in io.Reader) *ReaderSource {
	return &ReaderSource{
		in:      bufio.NewReader(in),
		escWait: DefaultEscWait,
		raw:     make(chan rawRune, 16),
		results: make(chan readResult, 16),
	}
}

// Next ждет следующую клавишу. Чтение идет в отдельной горутине, поэтому отмена ctx
// не ждет завершения Read.
func (s *ReaderSource) Next(ctx context.Context) (KeyEvent, error) {
	s.once.Do(func() {
		go s.readLoop()
		go s.decodeLoop()
	})

	select {
	case <-ctx.Done():
		return KeyEvent{}, ctx.Err()
	case r, ok := <-s.results:
		if !ok {
			return KeyEvent{}, io.EOF
		}
		return r.ev, r.err
	}
}

// readLoop читает руны как есть; первая ошибка последняя
func (s *ReaderSource) readLoop() {
	defer close(s.raw)
	for {
		r, _, err := s.in.ReadRune()
		s.raw <- rawRune{r: r, err: err}
		if err != nil {
			return
		}
	}
}

// decodeLoop превращает руны в нажатия. Стрелки и функциональные клавиши приходят как
// ESC [ ... или ESC O ... и пропускаются целиком, даже если пришли разными чтениями.
func (s *ReaderSource) decodeLoop() {
	defer close(s.results)

	var pending *rawRune
	for {
		var cur rawRune
		if pending != nil {
			cur, pending = *pending, nil
		} else {
			r, ok := <-s.raw
			if !ok {
				return
			}
			cur = r
		}

		if cur.err != nil {
			s.results <- readResult{err: cur.err}
			return
		}
		if cur.r != esc {
			s.results <- readResult{ev: KeyEvent{Rune: cur.r}}
			continue
		}

		next, ok := s.nextWithin(s.escWait)
		if ok && next.err == nil && (next.r == '[' || next.r == 'O') {
			pending = s.skipSequence()
			continue
		}

		s.results <- readResult{ev: KeyEvent{Esc: true}}
		if ok {
			pending = &next
		}
	}
}

func (s *ReaderSource) nextWithin(d time.Duration) (rawRune, bool) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case r, ok := <-s.raw:
		return r, ok
	case <-timer.C:
		return rawRune{}, false
	}
}

// skipSequence пропускает CSI/SS3 последовательность до финального байта.
// Ошибка чтения возвращается, чтобы decodeLoop ее передал.
func (s *ReaderSource) skipSequence() *rawRune {
	for {
		r, ok := s.nextWithin(s.escWait)
		if !ok {
			return nil
		}
		if r.err != nil {
			return &r
		}
		if r.r >= 0x40 && r.r <= 0x7e {
			return nil
		}
	}
}

// TerminalSource stdin в raw режиме
type TerminalSource struct {
	*ReaderSource
	restore func() error
}

// NewTerminalSource переводит терминал в raw режим. Если f не терминал, режим не меняется.
func NewTerminalSource(f *os.File) (*TerminalSource, error) {
	s := &TerminalSource{
		ReaderSource: NewReaderSource(f),
		restore:      func() error { return nil },
	}

	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return nil, err
		}
		s.restore = func() error { return term.Restore(fd, old) }
	}
	return s, nil
}

// Close возвращает терминал в исходный режим
func (s *TerminalSource) Close() error {
	return s.restore()
}
