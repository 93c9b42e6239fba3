package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/fernandezvara/passcheck"
	"github.com/fernandezvara/passcheck/internal/config"
	"github.com/fernandezvara/passcheck/internal/httpapi"
	"github.com/fernandezvara/passcheck/internal/logger"
	"github.com/fernandezvara/passcheck/internal/wordsource"
)

const actions = "analyze, strength, entropy, crack, patterns, common, generate, import, serve"

var errUsage = errors.New("usage")

type options struct {
	configPath string
	action     string
	password   string
	size       string
	length     int
	noSymbols  bool
	file       string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "passcheck: %v\n", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("passcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to a configuration file")
	fs.StringVar(&opts.action, "action", "", "Action to perform: "+actions)
	fs.StringVar(&opts.password, "password", "", "Password to evaluate; read from stdin when empty")
	fs.StringVar(&opts.size, "size", "", "Wordlist size: 10k, 100k, 1m, 10m")
	fs.IntVar(&opts.length, "length", 0, "Generated password length")
	fs.BoolVar(&opts.noSymbols, "no-symbols", false, "Generate without symbols")
	fs.StringVar(&opts.file, "file", "", "Wordlist file for the import action")

	if err := fs.Parse(args); err != nil {
		return opts, errUsage
	}
	if opts.action == "" {
		fmt.Fprintln(stderr, "Usage: passcheck -action=<action> [options]")
		fmt.Fprintln(stderr, "Actions: "+actions)
		fs.PrintDefaults()
		return opts, errUsage
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var (
		source    passcheck.WordlistSource
		wordlists *passcheck.Wordlists
	)
	if usesWordlists(opts.action) {
		var closeSource func() error
		source, closeSource, err = wordsource.New(ctx, cfg.Wordlists)
		if err != nil {
			return fmt.Errorf("init wordlist source: %w", err)
		}
		defer func() {
			if err := closeSource(); err != nil {
				log.Warn("close wordlist source", zap.Error(err))
			}
		}()
		wordlists = passcheck.NewWordlists(source, passcheck.WithLogger(log))
	}

	size := cfg.DefaultListSize()
	if opts.size != "" {
		if size, err = passcheck.ParseListSize(opts.size); err != nil {
			return err
		}
	}

	switch opts.action {
	case "serve":
		return serve(ctx, cfg, log, wordlists)
	case "generate":
		gen := cfg.Generator
		if opts.length != 0 {
			gen.Length = opts.length
		}
		if opts.noSymbols {
			gen.IncludeSymbols = false
		}
		pw, err := passcheck.Generate(gen)
		if err != nil {
			return err
		}
		return writeJSON(stdout, httpapi.GenerateResponse{Password: pw, Strength: cfg.Policy().Check(pw)})
	case "import":
		return importWordlist(ctx, cfg, source, size, opts.file, log)
	}

	password := opts.password
	if password == "" {
		if password, err = readPassword(stdin); err != nil {
			return err
		}
	}

	switch opts.action {
	case "analyze":
		a := cfg.Policy().Analyze(password)
		resp := httpapi.AnalyzeResponse{
			Strength:  a.Strength,
			Entropy:   a.Entropy,
			CrackTime: httpapi.NewCrackTimeResponse(a.CrackTime),
			Patterns:  a.Patterns,
			Common:    lookup(ctx, wordlists, password, size),
		}
		if cfg.Strength.Reference {
			ref := passcheck.ReferenceStrength(password)
			resp.Reference = &ref
		}
		return writeJSON(stdout, resp)
	case "strength":
		return writeJSON(stdout, cfg.Policy().Check(password))
	case "entropy":
		return writeJSON(stdout, passcheck.CalculateEntropy(password))
	case "crack":
		return writeJSON(stdout, httpapi.NewCrackTimeResponse(passcheck.EstimateCrackTime(password)))
	case "patterns":
		return writeJSON(stdout, passcheck.AnalyzePatterns(password))
	case "common":
		return writeJSON(stdout, lookup(ctx, wordlists, password, size))
	default:
		return fmt.Errorf("unknown action %q (want one of: %s)", opts.action, actions)
	}
}

// usesWordlists reports whether action reads a wordlist source.
func usesWordlists(action string) bool {
	switch action {
	case "analyze", "common", "import", "serve":
		return true
	}
	return false
}

func lookup(ctx context.Context, w *passcheck.Wordlists, password string, size passcheck.ListSize) httpapi.CommonResponse {
	resp := httpapi.CommonResponse{Size: size, Common: w.IsCommon(ctx, password, size)}
	if !resp.Common {
		resp.Variant, _ = w.MatchVariant(ctx, password, size)
	}
	return resp
}

// importWordlist seeds the redis source from a local file.
func importWordlist(ctx context.Context, cfg *config.Config, source passcheck.WordlistSource, size passcheck.ListSize, path string, log *zap.Logger) error {
	rs, ok := source.(*wordsource.RedisSource)
	if !ok {
		return fmt.Errorf("import requires the redis wordlist source, configured source is %q", cfg.Wordlists.Source)
	}
	if path == "" {
		return errors.New("import requires -file")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	words, err := passcheck.ParseWordlist(f)
	if err != nil {
		return err
	}
	if err := rs.Import(ctx, size, words); err != nil {
		return err
	}
	log.Info("wordlist imported", zap.String("size", string(size)), zap.Int("entries", len(words)))
	return nil
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
