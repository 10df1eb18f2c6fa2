package config

import (
	"fmt"
	"math"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DefaultSessionFile файл, в котором сохраняются значения прошлого запуска
const DefaultSessionFile = "default_screenserver.json"

// Session параметры персонажа, которые спрашиваются при запуске и переживают перезапуск
type Session struct {
	MaxHP           uint    `mapstructure:"max_hp"`
	MinHP           uint    `mapstructure:"min_hp"`
	Volume          float64 `mapstructure:"volume"`
	SignalThreshold uint    `mapstructure:"signal_threshold"`
}

// DefaultSession значения при отсутствии файла
func DefaultSession() Session {
	return Session{Volume: 1.0}
}

// Threshold процент HP, ниже которого срабатывает сигнал
func Threshold(maxHP, minHP uint) uint {
	if maxHP == 0 {
		return 0
	}
	return uint(uint64(minHP) * 100 / uint64(maxHP))
}

// WithThreshold пересчитывает порог из max/min HP
func (s Session) WithThreshold() Session {
	s.SignalThreshold = Threshold(s.MaxHP, s.MinHP)
	return s
}

// ReadSession читает файл сессии и возвращает ошибку при отсутствии или порче файла
func ReadSession(path string) (Session, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return Session{}, fmt.Errorf("error reading session file %s: %w", path, err)
	}

	for _, key := range []string{"max_hp", "min_hp", "signal_threshold"} {
		if err := checkUint32(v, key); err != nil {
			return Session{}, fmt.Errorf("invalid session file %s: %w", path, err)
		}
	}
	if !v.IsSet("volume") {
		return Session{}, fmt.Errorf("invalid session file %s: volume is missing", path)
	}

	var s Session
	strict := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = false
	})
	if err := v.Unmarshal(&s, strict); err != nil {
		return Session{}, fmt.Errorf("unable to decode session file %s: %w", path, err)
	}
	return s, nil
}

// checkUint32 ключ есть и содержит целое число в диапазоне uint32
func checkUint32(v *viper.Viper, key string) error {
	if !v.IsSet(key) {
		return fmt.Errorf("%s is missing", key)
	}

	var n float64
	switch raw := v.Get(key).(type) {
	case float64:
		n = raw
	case int:
		n = float64(raw)
	case int64:
		n = float64(raw)
	default:
		return fmt.Errorf("%s must be a number, got %T", key, raw)
	}

	if n < 0 || n > math.MaxUint32 || n != math.Trunc(n) {
		return fmt.Errorf("%s is not an unsigned 32-bit integer: %v", key, n)
	}
	return nil
}

// LoadSession как ReadSession, но при любой ошибке молча возвращает DefaultSession
func LoadSession(path string) Session {
	s, err := ReadSession(path)
	if err != nil {
		return DefaultSession()
	}
	return s
}

// Save записывает сессию в JSON
func (s Session) Save(path string) error {
	v := viper.New()
	v.SetConfigType("json")
	v.Set("max_hp", s.MaxHP)
	v.Set("min_hp", s.MinHP)
	v.Set("volume", s.Volume)
	v.Set("signal_threshold", s.SignalThreshold)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("error writing session file %s: %w", path, err)
	}
	return nil
}
