package ledger

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"skelreview/internal/logging"
)

const (
	videoListSuffix    = "_exception_avi_list.txt"
	skeletonListSuffix = "_exception_skeleton_list.txt"
	lockSuffix         = ".ledger.lock"
)

// Store reads and writes ledgers under a single directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore returns a store rooted at dir.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "ledger"),
	}
}

// Dir returns the directory holding the ledger files.
func (s *Store) Dir() string {
	return s.dir
}

// Paths returns the video and skeleton list files for action.
func (s *Store) Paths(action string) (videoList, skeletonList string) {
	action = strings.TrimSpace(action)
	return filepath.Join(s.dir, action+videoListSuffix), filepath.Join(s.dir, action+skeletonListSuffix)
}

// Load reads the ledger for action. Missing files yield an empty ledger.
func (s *Store) Load(action string) (*Ledger, error) {
	if err := validAction(action); err != nil {
		return nil, err
	}
	videoPath, skeletonPath := s.Paths(action)
	videos, err := readList(videoPath)
	if err != nil {
		return nil, err
	}
	skeletons, err := readList(skeletonPath)
	if err != nil {
		return nil, err
	}
	l := FromLists(videos, skeletons)
	v, k := l.Len()
	s.logger.Debug("loaded exception ledger",
		logging.String("action", action),
		logging.Int("videos", v),
		logging.Int("skeletons", k))
	return l, nil
}

// Save overwrites the persisted ledger for action with l.
func (s *Store) Save(action string, l *Ledger) error {
	return s.withLock(action, func() error {
		return s.write(action, l)
	})
}

// SaveMerged unions l with the persisted ledger for action and writes the
// result. The returned ledger is what was written.
func (s *Store) SaveMerged(action string, l *Ledger) (*Ledger, error) {
	var merged *Ledger
	err := s.withLock(action, func() error {
		existing, err := s.Load(action)
		if err != nil {
			return err
		}
		merged = l.Clone()
		merged.Merge(existing)
		return s.write(action, merged)
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// Update loads the persisted ledger for action, applies fn, and overwrites
// the files with the result while holding the action lock.
func (s *Store) Update(action string, fn func(*Ledger) error) (*Ledger, error) {
	var updated *Ledger
	err := s.withLock(action, func() error {
		current, err := s.Load(action)
		if err != nil {
			return err
		}
		if err := fn(current); err != nil {
			return err
		}
		updated = current
		return s.write(action, current)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) withLock(action string, fn func() error) error {
	if err := validAction(action); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}
	lock := flock.New(filepath.Join(s.dir, action+lockSuffix))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire ledger lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("ledger for %s is locked by another session", action)
	}
	defer func() { _ = lock.Unlock() }()
	return fn()
}

func (s *Store) write(action string, l *Ledger) error {
	videoPath, skeletonPath := s.Paths(action)
	if err := writeList(videoPath, l.Videos()); err != nil {
		return err
	}
	if err := writeList(skeletonPath, l.Skeletons()); err != nil {
		return err
	}
	v, k := l.Len()
	s.logger.Info("saved exception ledger",
		logging.String("action", action),
		logging.Int("videos", v),
		logging.Int("skeletons", k),
		logging.String("dir", s.dir))
	return nil
}

func validAction(action string) error {
	action = strings.TrimSpace(action)
	if action == "" {
		return errors.New("ledger action class is empty")
	}
	if strings.ContainsAny(action, `/\`) {
		return fmt.Errorf("ledger action class %q contains a path separator", action)
	}
	return nil
}

func readList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ledger list: %w", err)
	}
	var out []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan ledger list %s: %w", path, err)
	}
	return out, nil
}

// writeList replaces path atomically via a temp file.
func writeList(path string, lines []string) error {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
