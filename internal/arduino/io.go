package arduino

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tarm/serial"
)

// Ответ прошивки на успешно выполненную команду
const ackResponse = "received"

// InitializePort открывает последовательный порт Arduino
func InitializePort(name string, baud int) (*serial.Port, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:     name,
		Baud:     baud,
		Parity:   serial.ParityNone,
		StopBits: serial.Stop1,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening arduino port %s: %w", name, err)
	}
	return port, nil
}

// SendCommandToArduino пишет одну команду в порт
func SendCommandToArduino(port io.Writer, message string) error {
	if _, err := port.Write([]byte(message)); err != nil {
		return fmt.Errorf("error writing to Arduino: %w", err)
	}
	return nil
}

// WaitForArduinoResponse читает порт до перевода строки и сверяет ответ с ожидаемым
func WaitForArduinoResponse(port io.Reader, expectedResponse string) (string, error) {
	var response []byte
	buf := make([]byte, 128)
	for {
		n, err := port.Read(buf)
		if n > 0 {
			response = append(response, buf[:n]...)
		}

		if i := bytes.IndexByte(response, '\n'); i >= 0 {
			got := string(bytes.TrimSpace(response[:i]))
			if got == expectedResponse {
				return got, nil
			}
			return "", fmt.Errorf("unexpected response: '%s'", got)
		}

		if err != nil {
			return "", fmt.Errorf("error reading from Arduino: %w", err)
		}
	}
}

// ProcessAndWait отправляет команду и ждет подтверждения от Arduino
func ProcessAndWait(port io.ReadWriter, message string) error {
	if err := SendCommandToArduino(port, message); err != nil {
		return err
	}
	if _, err := WaitForArduinoResponse(port, ackResponse); err != nil {
		return fmt.Errorf("error waiting for Arduino response: %w", err)
	}
	return nil
}
