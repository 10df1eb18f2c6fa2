package notifier

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const (
	sampleRate   = 44100
	pollInterval = 10 * time.Millisecond
)

// AudioPlayer играет wav/mp3/ogg через аудио контекст ebiten.
// Контекст в процессе может быть только один, поэтому плеер создается один раз.
type AudioPlayer struct {
	ctx *audio.Context
}

// NewAudioPlayer создает плеер и открывает устройство вывода
func NewAudioPlayer() *AudioPlayer {
	return &AudioPlayer{ctx: audio.NewContext(sampleRate)}
}

type decodeFunc func(src io.Reader) (io.Reader, error)

func decoderFor(path string) (decodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return func(src io.Reader) (io.Reader, error) { return wav.DecodeWithSampleRate(sampleRate, src) }, nil
	case ".mp3":
		return func(src io.Reader) (io.Reader, error) { return mp3.DecodeWithSampleRate(sampleRate, src) }, nil
	case ".ogg":
		return func(src io.Reader) (io.Reader, error) { return vorbis.DecodeWithSampleRate(sampleRate, src) }, nil
	default:
		return nil, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
}

// Play блокируется до конца проигрывания
func (p *AudioPlayer) Play(path string, volume float64) error {
	decode, err := decoderFor(path)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	stream, err := decode(file)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	player, err := p.ctx.NewPlayer(stream)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	defer player.Close()

	player.SetVolume(volume)
	player.Play()
	for player.IsPlaying() {
		time.Sleep(pollInterval)
	}
	return nil
}
