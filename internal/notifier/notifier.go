package notifier

import "fmt"

// Player проигрывает файл целиком и возвращается только после окончания звука
type Player interface {
	Play(path string, volume float64) error
}

// Notifier звуковые оповещения о низком и полном HP
type Notifier struct {
	lowHPAlert  string
	highHPAlert string
	volume      float64
	player      Player
}

// NewNotifier создает Notifier. Громкость ограничивается диапазоном [0, 1].
func NewNotifier(player Player, volume float64, lowHPAlert, highHPAlert string) *Notifier {
	return &Notifier{
		lowHPAlert:  lowHPAlert,
		highHPAlert: highHPAlert,
		volume:      clampVolume(volume),
		player:      player,
	}
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Volume громкость, с которой играются оповещения
func (n *Notifier) Volume() float64 {
	return n.volume
}

// LowHP играет сигнал низкого HP
func (n *Notifier) LowHP() error {
	if err := n.player.Play(n.lowHPAlert, n.volume); err != nil {
		return fmt.Errorf("low hp alert: %w", err)
	}
	return nil
}

// HighHP играет сигнал полного HP
func (n *Notifier) HighHP() error {
	if err := n.player.Play(n.highHPAlert, n.volume); err != nil {
		return fmt.Errorf("high hp alert: %w", err)
	}
	return nil
}
