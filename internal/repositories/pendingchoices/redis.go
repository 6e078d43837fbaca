package pendingchoices

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
)

const (
	// Key patterns
	choiceKeyPattern = "pending:%s:%s"
	guildIndexKey    = "pending:guild:%s"

	// Pending choices that are never answered fall out on their own
	defaultChoiceTTL = 24 * time.Hour
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
	TTL    time.Duration
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis-backed pending choice repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultChoiceTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}
}

func redisChoiceKey(guildID, playerID string) string {
	return fmt.Sprintf(choiceKeyPattern, guildID, playerID)
}

func (r *redisRepository) Put(ctx context.Context, choice *entities.PendingChoice) error {
	if choice == nil {
		return fmt.Errorf("pending choice cannot be nil")
	}
	if choice.GuildID == "" || choice.PlayerID == "" {
		return fmt.Errorf("pending choice needs guild and player ids")
	}

	data, err := json.Marshal(choice)
	if err != nil {
		return fmt.Errorf("failed to serialize pending choice: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, redisChoiceKey(choice.GuildID, choice.PlayerID), data, r.ttl)
	pipe.SAdd(ctx, fmt.Sprintf(guildIndexKey, choice.GuildID), choice.PlayerID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store pending choice: %w", err)
	}
	return nil
}

func (r *redisRepository) Get(ctx context.Context, guildID, playerID string) (*entities.PendingChoice, error) {
	data, err := r.client.Get(ctx, redisChoiceKey(guildID, playerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pending choice: %w", err)
	}

	var choice entities.PendingChoice
	if err := json.Unmarshal(data, &choice); err != nil {
		return nil, fmt.Errorf("failed to deserialize pending choice: %w", err)
	}
	return &choice, nil
}

func (r *redisRepository) Delete(ctx context.Context, guildID, playerID string) error {
	pipe := r.client.TxPipeline()
	delCmd := pipe.Del(ctx, redisChoiceKey(guildID, playerID))
	pipe.SRem(ctx, fmt.Sprintf(guildIndexKey, guildID), playerID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete pending choice: %w", err)
	}
	if delCmd.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *redisRepository) DeleteGuild(ctx context.Context, guildID string) error {
	indexKey := fmt.Sprintf(guildIndexKey, guildID)

	playerIDs, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list pending choices for guild: %w", err)
	}

	keys := make([]string, 0, len(playerIDs)+1)
	for _, playerID := range playerIDs {
		keys = append(keys, redisChoiceKey(guildID, playerID))
	}
	keys = append(keys, indexKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete pending choices for guild: %w", err)
	}
	return nil
}
