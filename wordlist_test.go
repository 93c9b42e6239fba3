package passcheck

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
)

type countingSource struct {
	loads atomic.Int32
	fail  atomic.Bool
	words []string
}

func (s *countingSource) Load(_ context.Context, size ListSize) ([]string, error) {
	s.loads.Add(1)
	if s.fail.Load() {
		return nil, errors.New("backing store offline")
	}
	if size != List10K {
		return nil, errors.New("not found")
	}
	return s.words, nil
}

func TestEmbeddedWordlist(t *testing.T) {
	w := NewWordlists(nil)
	ctx := context.Background()

	for _, pwd := range []string{"password", "123456", "qwerty", "letmein"} {
		if !w.IsCommon(ctx, pwd, List10K) {
			t.Errorf("IsCommon(%q) = false, want true", pwd)
		}
	}
	if w.IsCommon(ctx, "Xk9$mP2!vLq", List10K) {
		t.Error("random password should not be common")
	}
	if w.IsCommon(ctx, "PASSWORD", List10K) {
		t.Error("lookup should be case sensitive")
	}
	if !w.Loaded(List10K) {
		t.Error("10k list should be cached after lookup")
	}
}

func TestEmbeddedWordlist_IsSample(t *testing.T) {
	words, err := EmbeddedSource().Load(context.Background(), List10K)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(words) == 0 || len(words) >= 10000 {
		t.Errorf("embedded list has %d entries, want a short non-empty sample", len(words))
	}
}

type ctxSource struct{}

func (ctxSource) Load(ctx context.Context, _ ListSize) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []string{"password"}, nil
}

func TestWordlists_LoadIgnoresCallerCancellation(t *testing.T) {
	w := NewWordlists(ctxSource{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if !w.IsCommon(ctx, "password", List10K) {
		t.Fatal("a cancelled caller should not fail the shared load")
	}
	if !w.Loaded(List10K) {
		t.Error("list should be cached")
	}
}

func TestWordlists_MissingListIsFalse(t *testing.T) {
	w := NewWordlists(EmbeddedSource())
	if w.IsCommon(context.Background(), "password", List10M) {
		t.Error("missing list should report false")
	}
	if w.Loaded(List10M) {
		t.Error("failed load must not be cached")
	}
}

func TestWordlists_EmptyListIsFalse(t *testing.T) {
	fsys := fstest.MapFS{List10K.FileName(): {Data: []byte("\n\n")}}
	w := NewWordlists(NewFSSource(fsys))
	if w.IsCommon(context.Background(), "", List10K) {
		t.Error("empty list should report false")
	}
}

func TestWordlists_FSSource(t *testing.T) {
	fsys := fstest.MapFS{
		List100K.FileName(): {Data: []byte("hunter2\r\n  correcthorse \nzaq12wsx\n")},
	}
	w := NewWordlists(NewFSSource(fsys))
	ctx := context.Background()

	for _, pwd := range []string{"hunter2", "correcthorse", "zaq12wsx"} {
		if !w.IsCommon(ctx, pwd, List100K) {
			t.Errorf("IsCommon(%q) = false, want true", pwd)
		}
	}
	if w.IsCommon(ctx, "hunter2", List10K) {
		t.Error("lists are independent per size")
	}
}

func TestWordlists_NormalizesUnicode(t *testing.T) {
	// "café" stored decomposed, looked up composed
	fsys := fstest.MapFS{List10K.FileName(): {Data: []byte("cafe\u0301\n")}}
	w := NewWordlists(NewFSSource(fsys))
	if !w.IsCommon(context.Background(), "caf\u00e9", List10K) {
		t.Error("expected NFC-equivalent match")
	}
}

func TestWordlists_LoadOnce(t *testing.T) {
	src := &countingSource{words: []string{"password"}}
	w := NewWordlists(src)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !w.IsCommon(ctx, "password", List10K) {
				t.Error("expected common password")
			}
		}()
	}
	wg.Wait()

	if n := src.loads.Load(); n != 1 {
		t.Errorf("source loaded %d times, want 1", n)
	}
}

func TestWordlists_RetriesAfterFailure(t *testing.T) {
	src := &countingSource{words: []string{"password"}}
	src.fail.Store(true)
	w := NewWordlists(src)
	ctx := context.Background()

	if w.IsCommon(ctx, "password", List10K) {
		t.Fatal("failed load should report false")
	}
	src.fail.Store(false)
	if !w.IsCommon(ctx, "password", List10K) {
		t.Fatal("expected retry to succeed")
	}
	if n := src.loads.Load(); n != 2 {
		t.Errorf("source loaded %d times, want 2", n)
	}
}

func TestWordlists_Preload(t *testing.T) {
	w := NewWordlists(nil)
	if err := w.Preload(context.Background(), List10K); err != nil {
		t.Fatalf("Preload() error: %v", err)
	}
	if err := w.Preload(context.Background(), List10K, List1M); err == nil {
		t.Error("expected error for missing 1m list")
	}
}

func TestWordlists_MatchVariant(t *testing.T) {
	w := NewWordlists(nil)
	ctx := context.Background()

	tests := []struct {
		password string
		want     string
		ok       bool
	}{
		{"PASSWORD", "password", true},
		{"P@ssw0rd", "p@ssw0rd", true},
		{"m0nk3y", "monkey", true},
		{"$h@d0w", "shadow", true},
		{"Xk9$mP2!vLq", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			got, ok := w.MatchVariant(ctx, tt.password, List10K)
			if ok != tt.ok || got != tt.want {
				t.Errorf("MatchVariant(%q) = %q, %v; want %q, %v", tt.password, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseListSize(t *testing.T) {
	for _, s := range []string{"10k", "100K", " 1m ", "10M"} {
		if _, err := ParseListSize(s); err != nil {
			t.Errorf("ParseListSize(%q) error: %v", s, err)
		}
	}
	if _, err := ParseListSize("5k"); err == nil {
		t.Error("expected error for unknown size")
	}
}

func TestParseWordlist_LongLines(t *testing.T) {
	long := strings.Repeat("x", 100*1024)
	words, err := ParseWordlist(strings.NewReader("a\n" + long + "\nb"))
	if err != nil {
		t.Fatalf("ParseWordlist() error: %v", err)
	}
	if len(words) != 3 {
		t.Errorf("got %d words, want 3", len(words))
	}
}

func TestLeetNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"p@ssw0rd", "password"},
		{"h3ll0", "hello"},
		{"$up3r", "super"},
		{"normal", "normal"},
	}

	for _, tt := range tests {
		got := leetNormalize(tt.input)
		if got != tt.expected {
			t.Errorf("leetNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestLeetVariants(t *testing.T) {
	// "p@ss1" has '1' which maps to both 'i' and 'l'
	variants := leetVariants("p@ss1")

	found := make(map[string]bool)
	for _, v := range variants {
		found[v] = true
	}
	if !found["passi"] || !found["passl"] {
		t.Errorf("expected passi and passl, got %v", variants)
	}
	if variants[0] != "passi" {
		t.Errorf("primary reading should come first, got %v", variants)
	}
	if found["p@ss1"] {
		t.Error("input itself should not be returned")
	}
}

func BenchmarkIsCommon(b *testing.B) {
	w := NewWordlists(nil)
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		w.IsCommon(ctx, "MyP@ssw0rd!23", List10K)
	}
}
