// Package memory provides an in-memory storage implementation. Transactions
// work on a deep copy that replaces the live data on commit, which makes the
// store serializable; it backs tests and development runs without a database.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
	"github.com/thornmere/menagerie-bot-discord/internal/storage"
)

// Store implements storage.Store in memory
type Store struct {
	mu   sync.Mutex
	data *dataset
}

type dataset struct {
	Guilds        map[string]*entities.Guild        `json:"guilds"`
	Players       map[string]*entities.Player       `json:"players"`
	Creatures     map[string]*entities.Creature     `json:"creatures"`
	Regions       map[string]*entities.Region       `json:"regions"`
	FreeCreatures map[string]*entities.FreeCreature `json:"free_creatures"`
	Events        map[string][]*events.Event        `json:"events"`
}

func newDataset() *dataset {
	return &dataset{
		Guilds:        make(map[string]*entities.Guild),
		Players:       make(map[string]*entities.Player),
		Creatures:     make(map[string]*entities.Creature),
		Regions:       make(map[string]*entities.Region),
		FreeCreatures: make(map[string]*entities.FreeCreature),
		Events:        make(map[string][]*events.Event),
	}
}

func (d *dataset) clone() (*dataset, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("clone dataset: %w", err)
	}
	cloned := newDataset()
	if err := json.Unmarshal(raw, cloned); err != nil {
		return nil, fmt.Errorf("clone dataset: %w", err)
	}
	return cloned, nil
}

func key(parts ...string) string {
	return strings.Join(parts, "/")
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{data: newDataset()}
}

// Begin opens a transaction. The store lock is held until Commit or Rollback,
// serializing writers the way the SQLite store's single-writer mode does.
func (s *Store) Begin(ctx context.Context) (storage.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	work, err := s.data.clone()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	return &memTx{store: s, data: work}, nil
}

// Close releases the store
func (s *Store) Close() error {
	return nil
}

type memTx struct {
	store *Store
	data  *dataset
	done  bool
}

func (t *memTx) Commit() error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	t.done = true
	t.store.data = t.data
	t.store.mu.Unlock()
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *memTx) CreateGuild(ctx context.Context, guild *entities.Guild) error {
	if _, exists := t.data.Guilds[guild.ID]; exists {
		return storage.ErrAlreadyExists
	}
	copied := *guild
	t.data.Guilds[guild.ID] = &copied
	return nil
}

func (t *memTx) GetGuild(ctx context.Context, guildID string) (*entities.Guild, error) {
	guild, exists := t.data.Guilds[guildID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	copied := *guild
	return &copied, nil
}

func (t *memTx) UpdateGuildConfig(ctx context.Context, guildID string, cfg entities.GuildConfig) error {
	guild, exists := t.data.Guilds[guildID]
	if !exists {
		return storage.ErrNotFound
	}
	guild.Config = cfg
	return nil
}

func (t *memTx) DeleteGuild(ctx context.Context, guildID string) error {
	if _, exists := t.data.Guilds[guildID]; !exists {
		return storage.ErrNotFound
	}
	delete(t.data.Guilds, guildID)
	prefix := guildID + "/"
	for k := range t.data.Players {
		if strings.HasPrefix(k, prefix) {
			delete(t.data.Players, k)
		}
	}
	for k := range t.data.Creatures {
		if strings.HasPrefix(k, prefix) {
			delete(t.data.Creatures, k)
		}
	}
	for k := range t.data.Regions {
		if strings.HasPrefix(k, prefix) {
			delete(t.data.Regions, k)
		}
	}
	for k := range t.data.FreeCreatures {
		if strings.HasPrefix(k, prefix) {
			delete(t.data.FreeCreatures, k)
		}
	}
	delete(t.data.Events, guildID)
	return nil
}

func (t *memTx) ListGuildIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(t.data.Guilds))
	for id := range t.data.Guilds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (t *memTx) CreatePlayer(ctx context.Context, player *entities.Player) error {
	k := key(player.GuildID, player.ID)
	if _, exists := t.data.Players[k]; exists {
		return storage.ErrAlreadyExists
	}
	copied, err := clonePlayer(player)
	if err != nil {
		return err
	}
	t.data.Players[k] = copied
	return nil
}

func (t *memTx) GetPlayer(ctx context.Context, guildID, playerID string) (*entities.Player, error) {
	player, exists := t.data.Players[key(guildID, playerID)]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return clonePlayer(player)
}

func (t *memTx) UpdatePlayer(ctx context.Context, player *entities.Player) error {
	k := key(player.GuildID, player.ID)
	if _, exists := t.data.Players[k]; !exists {
		return storage.ErrNotFound
	}
	copied, err := clonePlayer(player)
	if err != nil {
		return err
	}
	t.data.Players[k] = copied
	return nil
}

func (t *memTx) DeletePlayer(ctx context.Context, guildID, playerID string) error {
	k := key(guildID, playerID)
	if _, exists := t.data.Players[k]; !exists {
		return storage.ErrNotFound
	}
	delete(t.data.Players, k)
	return nil
}

func (t *memTx) CreateCreature(ctx context.Context, creature *entities.Creature) error {
	k := key(creature.GuildID, creature.ID)
	if _, exists := t.data.Creatures[k]; exists {
		return storage.ErrAlreadyExists
	}
	copied := *creature
	t.data.Creatures[k] = &copied
	return nil
}

func (t *memTx) GetCreature(ctx context.Context, guildID, creatureID string) (*entities.Creature, error) {
	creature, exists := t.data.Creatures[key(guildID, creatureID)]
	if !exists {
		return nil, storage.ErrNotFound
	}
	copied := *creature
	return &copied, nil
}

func (t *memTx) UpdateCreature(ctx context.Context, creature *entities.Creature) error {
	k := key(creature.GuildID, creature.ID)
	if _, exists := t.data.Creatures[k]; !exists {
		return storage.ErrNotFound
	}
	copied := *creature
	t.data.Creatures[k] = &copied
	return nil
}

func (t *memTx) DeleteCreaturesByOwner(ctx context.Context, guildID, ownerID string) error {
	for k, c := range t.data.Creatures {
		if c.GuildID == guildID && c.OwnerID == ownerID {
			delete(t.data.Creatures, k)
		}
	}
	return nil
}

func (t *memTx) CreateRegion(ctx context.Context, region *entities.Region) error {
	k := key(region.GuildID, region.ID)
	if _, exists := t.data.Regions[k]; exists {
		return storage.ErrAlreadyExists
	}
	copied := *region
	t.data.Regions[k] = &copied
	return nil
}

func (t *memTx) GetRegion(ctx context.Context, guildID, regionID string) (*entities.Region, error) {
	region, exists := t.data.Regions[key(guildID, regionID)]
	if !exists {
		return nil, storage.ErrNotFound
	}
	copied := *region
	return &copied, nil
}

func (t *memTx) UpdateRegion(ctx context.Context, region *entities.Region) error {
	k := key(region.GuildID, region.ID)
	if _, exists := t.data.Regions[k]; !exists {
		return storage.ErrNotFound
	}
	copied := *region
	t.data.Regions[k] = &copied
	return nil
}

func (t *memTx) ListRegions(ctx context.Context, guildID string) ([]*entities.Region, error) {
	var list []*entities.Region
	for _, r := range t.data.Regions {
		if r.GuildID == guildID {
			copied := *r
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (t *memTx) PutFreeCreature(ctx context.Context, fc *entities.FreeCreature) error {
	copied := *fc
	t.data.FreeCreatures[key(fc.GuildID, fc.ChannelID, fc.MessageID)] = &copied
	return nil
}

func (t *memTx) GetFreeCreature(ctx context.Context, guildID, channelID, messageID string) (*entities.FreeCreature, error) {
	fc, exists := t.data.FreeCreatures[key(guildID, channelID, messageID)]
	if !exists {
		return nil, storage.ErrNotFound
	}
	copied := *fc
	return &copied, nil
}

func (t *memTx) UpdateFreeCreature(ctx context.Context, fc *entities.FreeCreature) error {
	k := key(fc.GuildID, fc.ChannelID, fc.MessageID)
	if _, exists := t.data.FreeCreatures[k]; !exists {
		return storage.ErrNotFound
	}
	copied := *fc
	t.data.FreeCreatures[k] = &copied
	return nil
}

func (t *memTx) DeleteFreeCreature(ctx context.Context, guildID, channelID, messageID string) error {
	k := key(guildID, channelID, messageID)
	if _, exists := t.data.FreeCreatures[k]; !exists {
		return storage.ErrNotFound
	}
	delete(t.data.FreeCreatures, k)
	return nil
}

func (t *memTx) AppendEvents(ctx context.Context, evts []*events.Event) error {
	for _, e := range evts {
		copied := *e
		copied.Payload = append([]byte(nil), e.Payload...)
		t.data.Events[e.GuildID] = append(t.data.Events[e.GuildID], &copied)
	}
	return nil
}

func (t *memTx) MaxEventSeq(ctx context.Context, guildID string) (int64, error) {
	var max int64
	for _, e := range t.data.Events[guildID] {
		if e.Seq > max {
			max = e.Seq
		}
	}
	return max, nil
}

func (t *memTx) UnresolvedEvents(ctx context.Context, guildID string) ([]*events.Event, error) {
	var list []*events.Event
	for _, e := range t.data.Events[guildID] {
		if !e.Resolved {
			copied := *e
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Seq < list[j].Seq })
	return list, nil
}

func (t *memTx) MarkEventResolved(ctx context.Context, guildID string, seq int64) error {
	for _, e := range t.data.Events[guildID] {
		if e.Seq == seq {
			e.Resolved = true
			return nil
		}
	}
	return storage.ErrNotFound
}

func (t *memTx) EventsInWindow(ctx context.Context, guildID string, from, to time.Time, types []events.Type) ([]*events.Event, error) {
	wanted := make(map[events.Type]bool, len(types))
	for _, typ := range types {
		wanted[typ] = true
	}
	var list []*events.Event
	for _, e := range t.data.Events[guildID] {
		if e.At.Before(from) || e.At.After(to) {
			continue
		}
		if len(wanted) > 0 && !wanted[e.Type] {
			continue
		}
		copied := *e
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Seq < list[j].Seq })
	return list, nil
}

func clonePlayer(p *entities.Player) (*entities.Player, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("clone player: %w", err)
	}
	var copied entities.Player
	if err := json.Unmarshal(raw, &copied); err != nil {
		return nil, fmt.Errorf("clone player: %w", err)
	}
	return &copied, nil
}
