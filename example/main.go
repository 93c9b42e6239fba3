package main

import (
	"context"
	"fmt"
	"strings"
	"testing/fstest"

	"github.com/fernandezvara/passcheck"
)

func main() {
	ctx := context.Background()

	fmt.Println("Password Analysis Examples")
	fmt.Println("==========================")
	fmt.Println()

	// Example 1: Basic usage with the default tiers
	fmt.Println("1. Basic Usage (Default Tiers)")
	fmt.Println("------------------------------")
	a := passcheck.Analyze("password")
	fmt.Printf("Password: `password`\n")
	fmt.Printf("Strength: %d (%s), Entropy: %.2f bits, Risk: %d\n",
		a.Strength.ID, a.Strength.Value, a.Entropy.Entropy, a.Patterns.RiskScore)
	fmt.Printf("Offline fast hashing: %s\n", a.CrackTime.Display.OfflineFastHash)
	fmt.Println()

	// Example 2: Custom wordlist
	fmt.Println("2. Custom Wordlist Usage")
	fmt.Println("------------------------")
	customList := `password
123456
qwerty
admin
letmein
welcome
monkey
dragon
master
sunshine
superman
michael`

	lists := passcheck.NewWordlists(passcheck.NewFSSource(fstest.MapFS{
		passcheck.List10K.FileName(): &fstest.MapFile{Data: []byte(customList)},
	}))
	for _, pw := range []string{"superman", "SuperMan", "5up3rm4n", "superman123!"} {
		match, ok := lists.MatchVariant(ctx, pw, passcheck.List10K)
		fmt.Printf("%-14s exact=%-5v variant=%v %s\n",
			"`"+pw+"`", lists.IsCommon(ctx, pw, passcheck.List10K), ok, match)
	}
	fmt.Println()

	// Example 3: Policy with hard requirements
	fmt.Println("3. Policy With Hard Requirements")
	fmt.Println("--------------------------------")
	policy := passcheck.Policy{
		Requirements: &passcheck.HardRequirements{RequireSymbol: true, MinNumberCount: 2},
		Tiers:        passcheck.DefaultTiers(),
	}
	for _, pw := range []string{"Abcdefgh1234", "Abcdefgh1!", "Abcdefgh12!"} {
		res := policy.Check(pw)
		fmt.Printf("%-14s -> %d (%s)\n", "`"+pw+"`", res.ID, res.Value)
	}
	fmt.Println()

	// Example 4: Generation
	fmt.Println("4. Generated Passwords")
	fmt.Println("----------------------")
	opts := passcheck.DefaultGeneratorOptions()
	opts.Length = 20
	opts.ExcludeSimilarCharacters = true
	for i := 0; i < 3; i++ {
		pw, err := passcheck.Generate(opts)
		if err != nil {
			fmt.Printf("generate: %v\n", err)
			return
		}
		fmt.Printf("%s (%s)\n", pw, passcheck.CheckStrength(pw, nil, nil).Value)
	}
	fmt.Println()

	// Example 5: Comprehensive table
	fmt.Println("5. Comprehensive Analysis Table")
	fmt.Println("===============================")
	fmt.Println()

	fmt.Println("| Password                     | Tier     | Entropy | Risk | zxcvbn | Patterns")
	fmt.Println("|------------------------------|----------|---------|------|--------|---------")

	testCases := []string{
		"password",
		"p@ssw0rd",
		"qwerty",
		"aaaaaa",
		"Xk9$mP2!vLq",
		"12345678",
		"abcdefg",
		"P@ssword123",
		"admin2023!",
		"letmein!!",
		"Summer2024$",
		"!@#$%^&*",
		"correcthorsebatterystaple",
		"Tr0ub4dor&3",
		"11111111",
	}

	for _, pw := range testCases {
		a := passcheck.Analyze(pw)
		ref := passcheck.ReferenceStrength(pw)

		patterns := "none"
		if len(a.Patterns.DetectedPatterns) > 0 {
			patterns = strings.Join(a.Patterns.DetectedPatterns, ", ")
		}

		fmt.Printf("| %-28s | %-8s | %7.2f | %4d | %6d | %s\n",
			"`"+pw+"`", a.Strength.Value, a.Entropy.Entropy, a.Patterns.RiskScore, ref.Score, patterns)
	}
}
