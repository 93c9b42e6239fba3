package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/fernandezvara/passcheck"
	"github.com/fernandezvara/passcheck/internal/logger"
)

// EnvPrefix prefixes every environment override, e.g. PASSCHECK_SERVER_PORT.
const EnvPrefix = "PASSCHECK"

type Config struct {
	Log       logger.Config              `mapstructure:"log"`
	Server    ServerConfig               `mapstructure:"server"`
	Strength  StrengthConfig             `mapstructure:"strength"`
	Generator passcheck.GeneratorOptions `mapstructure:"generator"`
	Wordlists WordlistConfig             `mapstructure:"wordlists"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	Environment     string        `mapstructure:"environment" validate:"oneof=development production test"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	GracefulTimeout time.Duration `mapstructure:"graceful_timeout" validate:"gte=0"`
	MetricsPath     string        `mapstructure:"metrics_path" validate:"startswith=/"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" validate:"gte=0"`
}

type StrengthConfig struct {
	Tiers        []passcheck.Tier           `mapstructure:"tiers"`
	Requirements passcheck.HardRequirements `mapstructure:"requirements"`
	Reference    bool                       `mapstructure:"reference"`
}

type WordlistConfig struct {
	Source      string      `mapstructure:"source" validate:"oneof=embedded dir redis s3"`
	Dir         string      `mapstructure:"dir" validate:"required_if=Source dir"`
	DefaultSize string      `mapstructure:"default_size" validate:"oneof=10k 100k 1m 10m"`
	Preload     []string    `mapstructure:"preload" validate:"dive,oneof=10k 100k 1m 10m"`
	Redis       RedisConfig `mapstructure:"redis"`
	S3          S3Config    `mapstructure:"s3"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db" validate:"gte=0"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

var validate = validator.New()

// Load reads configuration from defaults, an optional file, a .env file in
// the working directory and PASSCHECK_* environment variables, in increasing
// order of precedence.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.compress", true)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.graceful_timeout", 15*time.Second)
	v.SetDefault("server.metrics_path", "/metrics")
	v.SetDefault("server.max_body_bytes", 4096)

	tiers := make([]map[string]interface{}, 0, 4)
	for _, t := range passcheck.DefaultTiers() {
		tiers = append(tiers, map[string]interface{}{
			"id":            t.ID,
			"label":         t.Label,
			"min_length":    t.MinLength,
			"min_diversity": t.MinDiversity,
		})
	}
	v.SetDefault("strength.tiers", tiers)
	v.SetDefault("strength.requirements.require_uppercase", false)
	v.SetDefault("strength.requirements.require_number", false)
	v.SetDefault("strength.requirements.require_symbol", false)
	v.SetDefault("strength.requirements.min_uppercase_count", 0)
	v.SetDefault("strength.requirements.min_number_count", 0)
	v.SetDefault("strength.requirements.min_symbol_count", 0)
	v.SetDefault("strength.reference", true)

	gen := passcheck.DefaultGeneratorOptions()
	v.SetDefault("generator.length", gen.Length)
	v.SetDefault("generator.include_uppercase", gen.IncludeUppercase)
	v.SetDefault("generator.include_lowercase", gen.IncludeLowercase)
	v.SetDefault("generator.include_numbers", gen.IncludeNumbers)
	v.SetDefault("generator.include_symbols", gen.IncludeSymbols)
	v.SetDefault("generator.exclude_similar_characters", gen.ExcludeSimilarCharacters)
	v.SetDefault("generator.exclude_ambiguous_characters", gen.ExcludeAmbiguousCharacters)

	v.SetDefault("wordlists.source", "embedded")
	v.SetDefault("wordlists.dir", "")
	v.SetDefault("wordlists.default_size", string(passcheck.List10K))
	v.SetDefault("wordlists.preload", []string{string(passcheck.List10K)})
	v.SetDefault("wordlists.redis.addr", "localhost:6379")
	v.SetDefault("wordlists.redis.password", "")
	v.SetDefault("wordlists.redis.db", 0)
	v.SetDefault("wordlists.redis.key_prefix", "passcheck:wordlist")
	v.SetDefault("wordlists.s3.bucket", "")
	v.SetDefault("wordlists.s3.prefix", "")
	v.SetDefault("wordlists.s3.region", "us-east-1")
	v.SetDefault("wordlists.s3.endpoint", "")
	v.SetDefault("wordlists.s3.access_key_id", "")
	v.SetDefault("wordlists.s3.secret_access_key", "")
	v.SetDefault("wordlists.s3.use_path_style", false)
}

// Validate checks struct tags and the cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed validation: %s", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("validation errors: %s", strings.Join(msgs, ", "))
	}

	if err := passcheck.ValidateTiers(c.Strength.Tiers); err != nil {
		return err
	}
	if c.Generator.Length < 0 || c.Generator.Length > passcheck.MaxGeneratedLength {
		return fmt.Errorf("generator length must be between 0 and %d", passcheck.MaxGeneratedLength)
	}
	switch c.Wordlists.Source {
	case "redis":
		if c.Wordlists.Redis.Addr == "" {
			return fmt.Errorf("wordlists.redis.addr is required for the redis source")
		}
	case "s3":
		if c.Wordlists.S3.Bucket == "" {
			return fmt.Errorf("wordlists.s3.bucket is required for the s3 source")
		}
	}
	return nil
}

// Policy returns the configured strength policy.
func (c *Config) Policy() passcheck.Policy {
	req := c.Strength.Requirements
	tiers := make([]passcheck.Tier, len(c.Strength.Tiers))
	copy(tiers, c.Strength.Tiers)
	return passcheck.Policy{Requirements: &req, Tiers: tiers}
}

// DefaultListSize returns the list used when a request names none.
func (c *Config) DefaultListSize() passcheck.ListSize {
	size, err := passcheck.ParseListSize(c.Wordlists.DefaultSize)
	if err != nil {
		return passcheck.List10K
	}
	return size
}

// PreloadSizes returns the lists to load at startup.
func (c *Config) PreloadSizes() []passcheck.ListSize {
	sizes := make([]passcheck.ListSize, 0, len(c.Wordlists.Preload))
	for _, s := range c.Wordlists.Preload {
		if size, err := passcheck.ParseListSize(s); err == nil {
			sizes = append(sizes, size)
		}
	}
	return sizes
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
