package pendingchoices

import (
	"context"
	"fmt"
	"sync"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
)

// inMemoryRepository implements Repository with a simple map, for tests and
// runs without Redis
type inMemoryRepository struct {
	mu      sync.RWMutex
	choices map[string]*entities.PendingChoice
}

// NewInMemoryRepository creates a new in-memory pending choice repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		choices: make(map[string]*entities.PendingChoice),
	}
}

func choiceKey(guildID, playerID string) string {
	return guildID + ":" + playerID
}

func (r *inMemoryRepository) Put(ctx context.Context, choice *entities.PendingChoice) error {
	if choice == nil {
		return fmt.Errorf("pending choice cannot be nil")
	}
	if choice.GuildID == "" || choice.PlayerID == "" {
		return fmt.Errorf("pending choice needs guild and player ids")
	}

	copied := *choice
	copied.Answers = append([]int(nil), choice.Answers...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.choices[choiceKey(choice.GuildID, choice.PlayerID)] = &copied
	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, guildID, playerID string) (*entities.PendingChoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	choice, exists := r.choices[choiceKey(guildID, playerID)]
	if !exists {
		return nil, ErrNotFound
	}

	copied := *choice
	copied.Answers = append([]int(nil), choice.Answers...)
	return &copied, nil
}

func (r *inMemoryRepository) Delete(ctx context.Context, guildID, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := choiceKey(guildID, playerID)
	if _, exists := r.choices[k]; !exists {
		return ErrNotFound
	}
	delete(r.choices, k)
	return nil
}

func (r *inMemoryRepository) DeleteGuild(ctx context.Context, guildID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := guildID + ":"
	for k := range r.choices {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			delete(r.choices, k)
		}
	}
	return nil
}
