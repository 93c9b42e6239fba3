// Package wordsource provides the Redis and S3 backed wordlist sources and
// selects a source from configuration.
package wordsource

import (
	"context"
	"fmt"

	red "github.com/redis/go-redis/v9"

	"github.com/fernandezvara/passcheck"
	"github.com/fernandezvara/passcheck/internal/config"
)

// New builds the source named by cfg.Source. The returned close function
// releases any client the source holds and is never nil.
func New(ctx context.Context, cfg config.WordlistConfig) (passcheck.WordlistSource, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Source {
	case "", "embedded":
		return passcheck.EmbeddedSource(), noop, nil
	case "dir":
		return passcheck.DirSource(cfg.Dir), noop, nil
	case "redis":
		client := red.NewClient(&red.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		return NewRedisSource(client, cfg.Redis.KeyPrefix), client.Close, nil
	case "s3":
		client, err := NewS3Client(ctx, S3Options{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.UsePathStyle,
		})
		if err != nil {
			return nil, noop, err
		}
		return NewS3Source(client, cfg.S3.Bucket, cfg.S3.Prefix), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown wordlist source %q", cfg.Source)
	}
}
