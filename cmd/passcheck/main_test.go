package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/fernandezvara/passcheck"
	"github.com/fernandezvara/passcheck/internal/httpapi"
)

func runCLI(t *testing.T, stdin string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	t.Setenv("PASSCHECK_LOG_LEVEL", "error")

	var out bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &out)
	return &out, err
}

func TestRun_Actions(t *testing.T) {
	t.Run("strength", func(t *testing.T) {
		out, err := runCLI(t, "", "-action=strength", "-password=Abcdefgh123!")
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		var res passcheck.StrengthResult
		if err := json.Unmarshal(out.Bytes(), &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if res.ID != 3 || res.Value != "Strong" {
			t.Errorf("got %d/%s, want 3/Strong", res.ID, res.Value)
		}
	})

	t.Run("entropy from stdin", func(t *testing.T) {
		out, err := runCLI(t, "password\n", "-action=entropy")
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		var res passcheck.EntropyResult
		if err := json.Unmarshal(out.Bytes(), &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if res.Entropy != 39.3 || res.Length != 8 {
			t.Errorf("entropy = %+v", res)
		}
	})

	t.Run("common", func(t *testing.T) {
		out, err := runCLI(t, "", "-action=common", "-password=Dr4gon", "-size=10k")
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		var res httpapi.CommonResponse
		if err := json.Unmarshal(out.Bytes(), &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if res.Common || res.Variant != "dragon" {
			t.Errorf("common = %+v", res)
		}
	})

	t.Run("crack", func(t *testing.T) {
		out, err := runCLI(t, "", "-action=crack", "-password=a")
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		var res httpapi.CrackTimeResponse
		if err := json.Unmarshal(out.Bytes(), &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if res.Display.OnlineThrottled != "18 minutes" {
			t.Errorf("display = %+v", res.Display)
		}
	})

	t.Run("patterns", func(t *testing.T) {
		out, err := runCLI(t, "", "-action=patterns", "-password=qwerty123")
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		var res passcheck.PatternResult
		if err := json.Unmarshal(out.Bytes(), &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !res.HasKeyboardPattern || res.RiskScore != 55 {
			t.Errorf("patterns = %+v", res)
		}
	})

	t.Run("analyze", func(t *testing.T) {
		out, err := runCLI(t, "", "-action=analyze", "-password=letmein")
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		var res httpapi.AnalyzeResponse
		if err := json.Unmarshal(out.Bytes(), &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !res.Common.Common || res.Strength.ID != 0 || res.Reference == nil {
			t.Errorf("analysis = %+v", res)
		}
	})

	t.Run("generate", func(t *testing.T) {
		out, err := runCLI(t, "", "-action=generate", "-length=20", "-no-symbols")
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		var res httpapi.GenerateResponse
		if err := json.Unmarshal(out.Bytes(), &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(res.Password) != 20 || res.Strength.Contains.Symbol {
			t.Errorf("generated = %+v", res)
		}
	})
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown action", []string{"-action=explode", "-password=x"}, "unknown action"},
		{"bad size", []string{"-action=common", "-password=x", "-size=5k"}, "unknown wordlist size"},
		{"import without redis", []string{"-action=import", "-file=words.txt"}, "requires the redis"},
		{"negative length", []string{"-action=generate", "-length=-3"}, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestRun_OfflineActionsSkipWordlistSource(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	t.Setenv("PASSCHECK_WORDLISTS_SOURCE", "redis")
	t.Setenv("PASSCHECK_WORDLISTS_REDIS_ADDR", addr)

	for _, action := range []string{"strength", "entropy", "crack", "patterns"} {
		t.Run(action, func(t *testing.T) {
			if _, err := runCLI(t, "", "-action="+action, "-password=Tr0ub4dor&3"); err != nil {
				t.Errorf("run: %v", err)
			}
		})
	}
	t.Run("generate", func(t *testing.T) {
		if _, err := runCLI(t, "", "-action=generate"); err != nil {
			t.Errorf("run: %v", err)
		}
	})

	t.Run("common", func(t *testing.T) {
		_, err := runCLI(t, "", "-action=common", "-password=dragon")
		if err == nil || !strings.Contains(err.Error(), "init wordlist source") {
			t.Errorf("error = %v, want wordlist source failure", err)
		}
	})
}

func TestRun_Usage(t *testing.T) {
	if _, err := runCLI(t, ""); !errors.Is(err, errUsage) {
		t.Errorf("expected errUsage, got %v", err)
	}
}
