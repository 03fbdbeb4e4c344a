package media

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"skelreview/internal/logging"
)

// ErrNotTerminal is returned when key polling is requested without a terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Named keys reported by KeyPoller. Printable keys are reported as themselves.
const (
	KeyEscape    = "esc"
	KeyCtrlC     = "ctrl+c"
	KeySpace     = "space"
	KeyEnter     = "enter"
	KeyTab       = "tab"
	KeyBackspace = "backspace"
)

// KeyPoller delivers operator key presses read from a terminal.
type KeyPoller struct {
	keys    chan string
	restore func() error
	once    sync.Once
	logger  *slog.Logger
}

// OpenKeyPoller switches stdin to raw mode and starts reading keys. Close
// restores the terminal.
func OpenKeyPoller(logger *slog.Logger) (*KeyPoller, error) {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	state, err := term.MakeRaw(int(fd))
	if err != nil {
		return nil, fmt.Errorf("raw terminal: %w", err)
	}
	if err := keepOutputProcessing(int(fd)); err != nil {
		_ = term.Restore(int(fd), state)
		return nil, fmt.Errorf("terminal output mode: %w", err)
	}
	k := newKeyPoller(os.Stdin, logger)
	k.restore = func() error { return term.Restore(int(fd), state) }
	return k, nil
}

// newKeyPoller reads keys from r until it fails. The reader goroutine stays
// blocked in Read after Close; it ends with the process.
func newKeyPoller(r io.Reader, logger *slog.Logger) *KeyPoller {
	k := &KeyPoller{
		keys:   make(chan string, 64),
		logger: logging.NewComponentLogger(logger, "keys"),
	}
	go k.read(r)
	return k
}

func (k *KeyPoller) read(r io.Reader) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, key := range DecodeKeys(buf[:n]) {
			select {
			case k.keys <- key:
			default:
				k.logger.Debug("key dropped", logging.String("key", key))
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				k.logger.Debug("key reader stopped", logging.Error(err))
			}
			return
		}
	}
}

// PollKey waits up to timeout for a key press.
func (k *KeyPoller) PollKey(timeout time.Duration) (string, bool) {
	select {
	case key := <-k.keys:
		return key, true
	default:
	}
	if timeout <= 0 {
		return "", false
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case key := <-k.keys:
		return key, true
	case <-timer.C:
		return "", false
	}
}

// Close restores the terminal mode.
func (k *KeyPoller) Close() error {
	var err error
	k.once.Do(func() {
		if k.restore != nil {
			err = k.restore()
		}
	})
	return err
}

// DecodeKeys translates one raw terminal read into key names. A lone ESC is
// the escape key; CSI and SS3 sequences such as arrow keys are dropped.
func DecodeKeys(buf []byte) []string {
	var keys []string
	for i := 0; i < len(buf); {
		b := buf[i]
		switch {
		case b == 0x1b:
			if i+1 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
				i = skipSequence(buf, i)
				continue
			}
			keys = append(keys, KeyEscape)
		case b == 0x03:
			keys = append(keys, KeyCtrlC)
		case b == '\r' || b == '\n':
			keys = append(keys, KeyEnter)
		case b == '\t':
			keys = append(keys, KeyTab)
		case b == ' ':
			keys = append(keys, KeySpace)
		case b == 0x7f || b == 0x08:
			keys = append(keys, KeyBackspace)
		case b < 0x20:
		default:
			r, size := utf8.DecodeRune(buf[i:])
			if r != utf8.RuneError {
				keys = append(keys, string(r))
			}
			i += size
			continue
		}
		i++
	}
	return keys
}

// skipSequence returns the index after the escape sequence starting at i.
func skipSequence(buf []byte, i int) int {
	if buf[i+1] == 'O' {
		return min(i+3, len(buf))
	}
	for j := i + 2; j < len(buf); j++ {
		if buf[j] >= 0x40 && buf[j] <= 0x7e {
			return j + 1
		}
	}
	return len(buf)
}
