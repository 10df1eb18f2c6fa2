package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter спрашивает параметры сессии у оператора. Пустой ввод оставляет прошлое значение.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter создает Prompter поверх произвольного ввода/вывода
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Ask заполняет max_hp, min_hp и volume, пересчитывает порог сигнала
func (p *Prompter) Ask(prev Session) (Session, error) {
	s := prev

	maxHP, err := p.askUint("max_hp", prev.MaxHP)
	if err != nil {
		return prev, err
	}
	s.MaxHP = maxHP

	minHP, err := p.askUint("min_hp", prev.MinHP)
	if err != nil {
		return prev, err
	}
	s.MinHP = minHP

	volume, err := p.askVolume(prev.Volume)
	if err != nil {
		return prev, err
	}
	s.Volume = volume

	s = s.WithThreshold()
	fmt.Fprintf(p.out, "Signal threshold: %d\n", s.SignalThreshold)
	return s, nil
}

// readLine возвращает введенную строку; ok=false означает пустой ввод или конец потока
func (p *Prompter) readLine(name string, prev string) (string, bool, error) {
	fmt.Fprintf(p.out, "Enter %s [%s]: ", name, prev)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", false, fmt.Errorf("error reading %s: %w", name, err)
		}
		return "", false, nil
	}
	line := strings.TrimSpace(p.in.Text())
	return line, line != "", nil
}

func (p *Prompter) askUint(name string, prev uint) (uint, error) {
	for {
		line, ok, err := p.readLine(name, strconv.FormatUint(uint64(prev), 10))
		if err != nil || !ok {
			return prev, err
		}
		v, err := strconv.ParseUint(line, 10, 32)
		if err == nil {
			return uint(v), nil
		}
		fmt.Fprintf(p.out, "%q is not a valid %s\n", line, name)
	}
}

func (p *Prompter) askVolume(prev float64) (float64, error) {
	for {
		line, ok, err := p.readLine("volume", strconv.FormatFloat(prev, 'g', -1, 64))
		if err != nil || !ok {
			return prev, err
		}
		v, err := strconv.ParseFloat(line, 64)
		if err == nil && v >= 0 && v <= 1 {
			return v, nil
		}
		fmt.Fprintf(p.out, "%q is not a volume between 0.0 and 1.0\n", line)
	}
}
