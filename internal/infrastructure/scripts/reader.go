package scripts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gearcheck/backend/internal/domain"
)

// Reader loads gearswap lua sources from disk.
type Reader struct {
	log *zap.Logger
}

// NewReader creates a script reader. A nil logger disables logging.
func NewReader(log *zap.Logger) *Reader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reader{log: log}
}

// ReadFile reads one script file. Invalid byte sequences are replaced with
// U+FFFD rather than failing: lua files in the wild carry stray bytes.
func (r *Reader) ReadFile(path string) (domain.ScriptSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ScriptSource{}, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, path, err)
	}
	return domain.ScriptSource{
		Name: filepath.Base(path),
		Text: Decode(data),
	}, nil
}

// ReadPath reads a single .lua file, or every .lua file in a directory.
// In directory mode unreadable files are skipped, their names returned in
// skipped; only an unreadable directory (or single file) is an error.
func (r *Reader) ReadPath(path string) (sources []domain.ScriptSource, skipped []string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, path, err)
	}

	if !info.IsDir() {
		src, err := r.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		return []domain.ScriptSource{src}, nil, nil
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.lua"))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, path, err)
	}
	sort.Strings(matches)

	for _, match := range matches {
		src, err := r.ReadFile(match)
		if err != nil {
			r.log.Warn("skipping unreadable script", zap.String("path", match), zap.Error(err))
			skipped = append(skipped, filepath.Base(match))
			continue
		}
		sources = append(sources, src)
	}

	return sources, skipped, nil
}

// Decode converts raw script bytes to text, degrading invalid UTF-8 to the
// replacement character.
func Decode(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}
