package wordsource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	red "github.com/redis/go-redis/v9"

	"github.com/fernandezvara/passcheck"
)

const (
	defaultRedisPrefix = "passcheck:wordlist"
	importBatchSize    = 1000
)

// ErrListNotFound is returned when the backing store has no entries for a size.
var ErrListNotFound = errors.New("wordlist not found")

// RedisSource serves wordlists stored as Redis sets, one key per size.
type RedisSource struct {
	client *red.Client
	prefix string
}

// NewRedisSource wires a Redis client into a wordlist source.
func NewRedisSource(client *red.Client, keyPrefix string) *RedisSource {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisSource{client: client, prefix: prefix}
}

// Load implements passcheck.WordlistSource.
func (s *RedisSource) Load(ctx context.Context, size passcheck.ListSize) ([]string, error) {
	members, err := s.client.SMembers(ctx, s.key(size)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers %s: %w", s.key(size), err)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrListNotFound, s.key(size))
	}
	return members, nil
}

// Import adds words to the set for size in pipelined batches.
func (s *RedisSource) Import(ctx context.Context, size passcheck.ListSize, words []string) error {
	key := s.key(size)
	for start := 0; start < len(words); start += importBatchSize {
		end := start + importBatchSize
		if end > len(words) {
			end = len(words)
		}

		members := make([]interface{}, 0, end-start)
		for _, w := range words[start:end] {
			members = append(members, w)
		}

		pipe := s.client.Pipeline()
		pipe.SAdd(ctx, key, members...)
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("redis sadd %s: %w", key, err)
		}
	}
	return nil
}

func (s *RedisSource) key(size passcheck.ListSize) string {
	return fmt.Sprintf("%s:%s", s.prefix, size)
}
