package passcheck

import (
	"bufio"
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/unicode/norm"
)

//go:embed data/*.txt
var embeddedLists embed.FS

// ListSize identifies one of the common-password lists.
type ListSize string

const (
	List10K  ListSize = "10k"
	List100K ListSize = "100k"
	List1M   ListSize = "1m"
	List10M  ListSize = "10m"
)

// ListSizes returns every known list size, smallest first.
func ListSizes() []ListSize {
	return []ListSize{List10K, List100K, List1M, List10M}
}

// ParseListSize converts s into a ListSize.
func ParseListSize(s string) (ListSize, error) {
	for _, size := range ListSizes() {
		if strings.EqualFold(strings.TrimSpace(s), string(size)) {
			return size, nil
		}
	}
	return "", fmt.Errorf("unknown wordlist size %q", s)
}

// FileName is the conventional file name of the list, e.g. "common-10k.txt".
func (s ListSize) FileName() string {
	return "common-" + string(s) + ".txt"
}

// WordlistSource loads the entries of one list.
type WordlistSource interface {
	Load(ctx context.Context, size ListSize) ([]string, error)
}

// ParseWordlist reads one entry per line, skipping blank lines.
func ParseWordlist(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		word := strings.TrimSpace(sc.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read wordlist: %w", err)
	}
	return words, nil
}

// FSSource loads lists named by ListSize.FileName from a file system.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource returns a source reading from fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// DirSource reads lists from a directory on disk.
func DirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir))
}

// EmbeddedSource serves the lists compiled into the package. Only the 10k
// list is bundled, and it is a short sample of a few hundred of the most
// common passwords rather than a full 10,000 entry list. Use DirSource or
// a remote source for real coverage.
func EmbeddedSource() *FSSource {
	sub, _ := fs.Sub(embeddedLists, "data")
	return NewFSSource(sub)
}

// Load implements WordlistSource.
func (s *FSSource) Load(_ context.Context, size ListSize) ([]string, error) {
	f, err := s.fsys.Open(size.FileName())
	if err != nil {
		return nil, fmt.Errorf("open wordlist %s: %w", size, err)
	}
	defer f.Close()
	return ParseWordlist(f)
}

// Wordlists caches loaded lists per size. Each list is loaded at most once
// at a time; failed loads are retried on the next lookup.
type Wordlists struct {
	source WordlistSource
	log    *zap.Logger

	mu    sync.RWMutex
	sets  map[ListSize]map[string]struct{}
	group singleflight.Group
}

// WordlistOption configures Wordlists.
type WordlistOption func(*Wordlists)

// WithLogger sets the logger used to report load failures.
func WithLogger(l *zap.Logger) WordlistOption {
	return func(w *Wordlists) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWordlists returns an empty cache over source. A nil source selects
// EmbeddedSource.
func NewWordlists(source WordlistSource, opts ...WordlistOption) *Wordlists {
	if source == nil {
		source = EmbeddedSource()
	}
	w := &Wordlists{
		source: source,
		log:    zap.NewNop(),
		sets:   make(map[ListSize]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// IsCommon reports whether password is an exact entry of the list. Any
// load failure yields false.
func (w *Wordlists) IsCommon(ctx context.Context, password string, size ListSize) bool {
	set, err := w.load(ctx, size)
	if err != nil {
		w.log.Warn("wordlist unavailable", zap.String("size", string(size)), zap.Error(err))
		return false
	}
	_, ok := set[norm.NFC.String(password)]
	return ok
}

// MatchVariant checks the lowercased password and its leet-speak
// normalizations against the list and returns the entry that matched.
func (w *Wordlists) MatchVariant(ctx context.Context, password string, size ListSize) (string, bool) {
	set, err := w.load(ctx, size)
	if err != nil {
		w.log.Warn("wordlist unavailable", zap.String("size", string(size)), zap.Error(err))
		return "", false
	}

	lower := strings.ToLower(norm.NFC.String(password))
	if _, ok := set[lower]; ok {
		return lower, true
	}
	for _, v := range leetVariants(lower) {
		if _, ok := set[v]; ok {
			return v, true
		}
	}
	return "", false
}

// Preload loads the given lists and returns the first error.
func (w *Wordlists) Preload(ctx context.Context, sizes ...ListSize) error {
	for _, size := range sizes {
		if _, err := w.load(ctx, size); err != nil {
			return err
		}
	}
	return nil
}

// Loaded reports whether size is cached.
func (w *Wordlists) Loaded(size ListSize) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.sets[size]
	return ok
}

func (w *Wordlists) load(ctx context.Context, size ListSize) (map[string]struct{}, error) {
	w.mu.RLock()
	set, ok := w.sets[size]
	w.mu.RUnlock()
	if ok {
		return set, nil
	}

	v, err, _ := w.group.Do(string(size), func() (interface{}, error) {
		w.mu.RLock()
		cached, ok := w.sets[size]
		w.mu.RUnlock()
		if ok {
			return cached, nil
		}

		// shared by every waiting caller
		words, err := w.source.Load(context.WithoutCancel(ctx), size)
		if err != nil {
			return nil, err
		}
		if len(words) == 0 {
			return nil, fmt.Errorf("wordlist %s is empty", size)
		}

		set := make(map[string]struct{}, len(words))
		for _, word := range words {
			set[norm.NFC.String(word)] = struct{}{}
		}

		w.mu.Lock()
		w.sets[size] = set
		w.mu.Unlock()

		w.log.Debug("wordlist loaded", zap.String("size", string(size)), zap.Int("entries", len(set)))
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]struct{}), nil
}
