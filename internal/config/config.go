package config

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/spf13/viper"
)

// Звуковые файлы оповещений
type Sounds struct {
	LowHP  string `mapstructure:"low_hp"`
	HighHP string `mapstructure:"high_hp"`
}

// Тайминги цикла автоматизации
type Engine struct {
	PeriodMs         int     `mapstructure:"period_ms"`
	AlertPeriodMs    int     `mapstructure:"alert_period_ms"`
	StopClickDelayMs int     `mapstructure:"stop_click_delay_ms"`
	HighHPPercent    float64 `mapstructure:"high_hp_percent"`
}

// Period пауза между замерами
func (e Engine) Period() time.Duration { return time.Duration(e.PeriodMs) * time.Millisecond }

// AlertPeriod пауза после сигнала низкого HP
func (e Engine) AlertPeriod() time.Duration { return time.Duration(e.AlertPeriodMs) * time.Millisecond }

// StopClickDelay задержка перед кликом, останавливающим воровство
func (e Engine) StopClickDelay() time.Duration {
	return time.Duration(e.StopClickDelayMs) * time.Millisecond
}

// Частота перерисовки экрана статуса
type Display struct {
	TickMs int `mapstructure:"tick_ms"`
}

// Tick пауза между кадрами
func (d Display) Tick() time.Duration { return time.Duration(d.TickMs) * time.Millisecond }

// Отступы от краев окна, чтобы не захватывать рамку
type Capture struct {
	MarginLeft   int `mapstructure:"margin_left"`
	MarginTop    int `mapstructure:"margin_top"`
	MarginRight  int `mapstructure:"margin_right"`
	MarginBottom int `mapstructure:"margin_bottom"`
}

// Цвет в конфиге
type RGB struct {
	R uint8 `mapstructure:"r"`
	G uint8 `mapstructure:"g"`
	B uint8 `mapstructure:"b"`
}

// RGBA возвращает непрозрачный цвет
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Цвета полоски HP
type Colors struct {
	Full   RGB `mapstructure:"full"`
	Danger RGB `mapstructure:"danger"`
}

// Точка клика, запускающего/останавливающего воровство
type Click struct {
	X        int    `mapstructure:"x"`
	Y        int    `mapstructure:"y"`
	Button   string `mapstructure:"button"`
	HoldMs   int    `mapstructure:"hold_ms"`
	Relative bool   `mapstructure:"relative"` // координаты относительно окна
}

// Hold сколько держать кнопку нажатой
func (c Click) Hold() time.Duration { return time.Duration(c.HoldMs) * time.Millisecond }

// Драйвер эмуляции мыши: robotgo или arduino
type Input struct {
	Driver   string `mapstructure:"driver"`
	Port     string `mapstructure:"port"`
	BaudRate int    `mapstructure:"baud_rate"`
}

// Источник нажатий: terminal или hook
type Keyboard struct {
	Source string `mapstructure:"source"`
}

// Основная структура конфигурации
type Config struct {
	WindowTitle     string   `mapstructure:"window_title"`
	LogFilePath     string   `mapstructure:"log_file_path"`
	SessionFilePath string   `mapstructure:"session_file_path"`
	Debug           bool     `mapstructure:"debug"`
	DebugCapture    string   `mapstructure:"debug_capture_path"`
	Sounds          Sounds   `mapstructure:"sounds"`
	Engine          Engine   `mapstructure:"engine"`
	Display         Display  `mapstructure:"display"`
	Capture         Capture  `mapstructure:"capture"`
	Colors          Colors   `mapstructure:"colors"`
	Click           Click    `mapstructure:"click"`
	Input           Input    `mapstructure:"input"`
	Keyboard        Keyboard `mapstructure:"keyboard"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window_title", "OnTopReplica")
	v.SetDefault("log_file_path", "logs/screenserver.log")
	v.SetDefault("session_file_path", DefaultSessionFile)
	v.SetDefault("debug", false)
	v.SetDefault("debug_capture_path", "")

	v.SetDefault("sounds.low_hp", "sounds/low_hp.wav")
	v.SetDefault("sounds.high_hp", "sounds/high_hp.wav")

	v.SetDefault("engine.period_ms", 1000)
	v.SetDefault("engine.alert_period_ms", 3000)
	v.SetDefault("engine.stop_click_delay_ms", 3000)
	v.SetDefault("engine.high_hp_percent", 99.0)

	v.SetDefault("display.tick_ms", 200)

	v.SetDefault("capture.margin_left", 5)
	v.SetDefault("capture.margin_top", 10)
	v.SetDefault("capture.margin_right", 5)
	v.SetDefault("capture.margin_bottom", 8)

	v.SetDefault("colors.full.r", 48)
	v.SetDefault("colors.full.g", 199)
	v.SetDefault("colors.full.b", 141)
	v.SetDefault("colors.danger.r", 210)
	v.SetDefault("colors.danger.g", 106)
	v.SetDefault("colors.danger.b", 92)

	v.SetDefault("click.x", 0)
	v.SetDefault("click.y", 0)
	v.SetDefault("click.button", "left")
	v.SetDefault("click.hold_ms", 20)
	v.SetDefault("click.relative", true)

	v.SetDefault("input.driver", "robotgo")
	v.SetDefault("input.port", "COM3")
	v.SetDefault("input.baud_rate", 9600)

	v.SetDefault("keyboard.source", "terminal")
}

// InitConfig читает config.yaml из dir. Отсутствие файла не ошибка: используются значения по умолчанию.
func InitConfig(dir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate проверяет значения, без которых циклы не могут работать
func (c Config) Validate() error {
	if c.Engine.PeriodMs <= 0 {
		return fmt.Errorf("engine.period_ms must be positive, got %d", c.Engine.PeriodMs)
	}
	if c.Engine.AlertPeriodMs <= 0 {
		return fmt.Errorf("engine.alert_period_ms must be positive, got %d", c.Engine.AlertPeriodMs)
	}
	if c.Engine.StopClickDelayMs < 0 {
		return fmt.Errorf("engine.stop_click_delay_ms must not be negative, got %d", c.Engine.StopClickDelayMs)
	}
	if c.Display.TickMs <= 0 {
		return fmt.Errorf("display.tick_ms must be positive, got %d", c.Display.TickMs)
	}
	switch c.Input.Driver {
	case "robotgo", "arduino":
	default:
		return fmt.Errorf("unknown input.driver %q", c.Input.Driver)
	}
	switch c.Keyboard.Source {
	case "terminal", "hook":
	default:
		return fmt.Errorf("unknown keyboard.source %q", c.Keyboard.Source)
	}
	switch c.Click.Button {
	case "left", "right":
	default:
		return fmt.Errorf("unknown click.button %q", c.Click.Button)
	}
	return nil
}
