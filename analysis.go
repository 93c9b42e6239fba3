package passcheck

// Analysis groups the results of every estimator for one password.
type Analysis struct {
	Strength  StrengthResult  `json:"strength"`
	Entropy   EntropyResult   `json:"entropy"`
	CrackTime CrackTimeResult `json:"crackTime"`
	Patterns  PatternResult   `json:"patterns"`
}

// Analyze runs the strength, entropy, crack-time and pattern estimators
// with default settings.
func Analyze(password string) Analysis {
	return DefaultPolicy().Analyze(password)
}

// DefaultPolicy has no hard requirements and the default tiers.
func DefaultPolicy() Policy {
	return Policy{Tiers: DefaultTiers()}
}

// Analyze runs every estimator, resolving strength under p.
func (p Policy) Analyze(password string) Analysis {
	return Analysis{
		Strength:  p.Check(password),
		Entropy:   CalculateEntropy(password),
		CrackTime: EstimateCrackTime(password),
		Patterns:  AnalyzePatterns(password),
	}
}
