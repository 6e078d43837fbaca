// Package sqlite provides the SQLite-backed storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
	"github.com/thornmere/menagerie-bot-discord/internal/storage"
	_ "modernc.org/sqlite"
)

// Store persists game state in SQLite
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	if value == 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

const schema = `
CREATE TABLE IF NOT EXISTS guilds (
	id         TEXT PRIMARY KEY,
	config     TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS players (
	guild_id  TEXT NOT NULL,
	id        TEXT NOT NULL,
	resources TEXT NOT NULL,
	deck      TEXT NOT NULL,
	hand      TEXT NOT NULL,
	discard   TEXT NOT NULL,
	played    TEXT NOT NULL,
	campaign  TEXT NOT NULL,
	PRIMARY KEY (guild_id, id)
);

CREATE TABLE IF NOT EXISTS creatures (
	guild_id TEXT NOT NULL,
	id       TEXT NOT NULL,
	base_id  INTEGER NOT NULL,
	owner_id TEXT NOT NULL,
	location TEXT NOT NULL,
	PRIMARY KEY (guild_id, id)
);

CREATE TABLE IF NOT EXISTS regions (
	guild_id       TEXT NOT NULL,
	id             TEXT NOT NULL,
	base_id        INTEGER NOT NULL,
	occupied_by    TEXT NOT NULL DEFAULT '',
	occupied_until INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (guild_id, id)
);

CREATE TABLE IF NOT EXISTS free_creatures (
	guild_id        TEXT NOT NULL,
	channel_id      TEXT NOT NULL,
	message_id      TEXT NOT NULL,
	base_id         INTEGER NOT NULL,
	roller_id       TEXT NOT NULL,
	protected_until INTEGER NOT NULL,
	expires_at      INTEGER NOT NULL,
	claimed_by      TEXT NOT NULL DEFAULT '',
	rolled_at       INTEGER NOT NULL,
	PRIMARY KEY (guild_id, channel_id, message_id)
);

CREATE TABLE IF NOT EXISTS game_events (
	guild_id   TEXT NOT NULL,
	seq        INTEGER NOT NULL,
	parent_seq INTEGER NOT NULL DEFAULT 0,
	type       TEXT NOT NULL,
	at         INTEGER NOT NULL,
	player_id  TEXT NOT NULL DEFAULT '',
	payload    TEXT NOT NULL DEFAULT '',
	resolved   INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (guild_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_game_events_unresolved
	ON game_events (guild_id, resolved, at);
`

// Open opens a SQLite store and applies the schema
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Begin opens a storage transaction
func (s *Store) Begin(ctx context.Context) (storage.Tx, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	sqlTx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &sqliteTx{tx: sqlTx}, nil
}

type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

func (t *sqliteTx) CreateGuild(ctx context.Context, guild *entities.Guild) error {
	cfg, err := json.Marshal(guild.Config)
	if err != nil {
		return fmt.Errorf("marshal guild config: %w", err)
	}
	var exists int
	err = t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM guilds WHERE id = ?`, guild.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check guild: %w", err)
	}
	if exists > 0 {
		return storage.ErrAlreadyExists
	}
	_, err = t.tx.ExecContext(ctx,
		`INSERT INTO guilds (id, config, created_at) VALUES (?, ?, ?)`,
		guild.ID, string(cfg), toMillis(guild.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create guild: %w", err)
	}
	return nil
}

func (t *sqliteTx) GetGuild(ctx context.Context, guildID string) (*entities.Guild, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT id, config, created_at FROM guilds WHERE id = ?`, guildID)
	var guild entities.Guild
	var cfg string
	var createdAt int64
	if err := row.Scan(&guild.ID, &cfg, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get guild: %w", err)
	}
	if err := json.Unmarshal([]byte(cfg), &guild.Config); err != nil {
		return nil, fmt.Errorf("unmarshal guild config: %w", err)
	}
	guild.CreatedAt = fromMillis(createdAt)
	return &guild, nil
}

func (t *sqliteTx) UpdateGuildConfig(ctx context.Context, guildID string, cfg entities.GuildConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal guild config: %w", err)
	}
	res, err := t.tx.ExecContext(ctx, `UPDATE guilds SET config = ? WHERE id = ?`, string(raw), guildID)
	if err != nil {
		return fmt.Errorf("update guild config: %w", err)
	}
	return requireRow(res, "update guild config")
}

func (t *sqliteTx) DeleteGuild(ctx context.Context, guildID string) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM guilds WHERE id = ?`, guildID)
	if err != nil {
		return fmt.Errorf("delete guild: %w", err)
	}
	if err := requireRow(res, "delete guild"); err != nil {
		return err
	}
	for _, stmt := range []string{
		`DELETE FROM players WHERE guild_id = ?`,
		`DELETE FROM creatures WHERE guild_id = ?`,
		`DELETE FROM regions WHERE guild_id = ?`,
		`DELETE FROM free_creatures WHERE guild_id = ?`,
		`DELETE FROM game_events WHERE guild_id = ?`,
	} {
		if _, err := t.tx.ExecContext(ctx, stmt, guildID); err != nil {
			return fmt.Errorf("cascade delete guild: %w", err)
		}
	}
	return nil
}

func (t *sqliteTx) ListGuildIDs(ctx context.Context) ([]string, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT id FROM guilds ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list guilds: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan guild id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (t *sqliteTx) CreatePlayer(ctx context.Context, player *entities.Player) error {
	cols, err := playerColumns(player)
	if err != nil {
		return err
	}
	var exists int
	err = t.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM players WHERE guild_id = ? AND id = ?`,
		player.GuildID, player.ID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check player: %w", err)
	}
	if exists > 0 {
		return storage.ErrAlreadyExists
	}
	_, err = t.tx.ExecContext(ctx,
		`INSERT INTO players (guild_id, id, resources, deck, hand, discard, played, campaign)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		player.GuildID, player.ID,
		cols.resources, cols.deck, cols.hand, cols.discard, cols.played, cols.campaign,
	)
	if err != nil {
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

func (t *sqliteTx) GetPlayer(ctx context.Context, guildID, playerID string) (*entities.Player, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT resources, deck, hand, discard, played, campaign
		 FROM players WHERE guild_id = ? AND id = ?`,
		guildID, playerID,
	)
	var cols playerCols
	if err := row.Scan(&cols.resources, &cols.deck, &cols.hand, &cols.discard, &cols.played, &cols.campaign); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get player: %w", err)
	}
	return cols.toPlayer(guildID, playerID)
}

func (t *sqliteTx) UpdatePlayer(ctx context.Context, player *entities.Player) error {
	cols, err := playerColumns(player)
	if err != nil {
		return err
	}
	res, err := t.tx.ExecContext(ctx,
		`UPDATE players SET resources = ?, deck = ?, hand = ?, discard = ?, played = ?, campaign = ?
		 WHERE guild_id = ? AND id = ?`,
		cols.resources, cols.deck, cols.hand, cols.discard, cols.played, cols.campaign,
		player.GuildID, player.ID,
	)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return requireRow(res, "update player")
}

func (t *sqliteTx) DeletePlayer(ctx context.Context, guildID, playerID string) error {
	res, err := t.tx.ExecContext(ctx,
		`DELETE FROM players WHERE guild_id = ? AND id = ?`, guildID, playerID)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return requireRow(res, "delete player")
}

func (t *sqliteTx) CreateCreature(ctx context.Context, creature *entities.Creature) error {
	var exists int
	err := t.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM creatures WHERE guild_id = ? AND id = ?`,
		creature.GuildID, creature.ID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check creature: %w", err)
	}
	if exists > 0 {
		return storage.ErrAlreadyExists
	}
	_, err = t.tx.ExecContext(ctx,
		`INSERT INTO creatures (guild_id, id, base_id, owner_id, location) VALUES (?, ?, ?, ?, ?)`,
		creature.GuildID, creature.ID, creature.BaseID, creature.OwnerID, string(creature.Location),
	)
	if err != nil {
		return fmt.Errorf("create creature: %w", err)
	}
	return nil
}

func (t *sqliteTx) GetCreature(ctx context.Context, guildID, creatureID string) (*entities.Creature, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT base_id, owner_id, location FROM creatures WHERE guild_id = ? AND id = ?`,
		guildID, creatureID,
	)
	creature := entities.Creature{GuildID: guildID, ID: creatureID}
	var location string
	if err := row.Scan(&creature.BaseID, &creature.OwnerID, &location); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get creature: %w", err)
	}
	creature.Location = entities.CreatureLocation(location)
	return &creature, nil
}

func (t *sqliteTx) UpdateCreature(ctx context.Context, creature *entities.Creature) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE creatures SET base_id = ?, owner_id = ?, location = ? WHERE guild_id = ? AND id = ?`,
		creature.BaseID, creature.OwnerID, string(creature.Location), creature.GuildID, creature.ID,
	)
	if err != nil {
		return fmt.Errorf("update creature: %w", err)
	}
	return requireRow(res, "update creature")
}

func (t *sqliteTx) DeleteCreaturesByOwner(ctx context.Context, guildID, ownerID string) error {
	_, err := t.tx.ExecContext(ctx,
		`DELETE FROM creatures WHERE guild_id = ? AND owner_id = ?`, guildID, ownerID)
	if err != nil {
		return fmt.Errorf("delete creatures by owner: %w", err)
	}
	return nil
}

func (t *sqliteTx) CreateRegion(ctx context.Context, region *entities.Region) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO regions (guild_id, id, base_id, occupied_by, occupied_until) VALUES (?, ?, ?, ?, ?)`,
		region.GuildID, region.ID, region.BaseID, region.OccupiedBy, toMillis(region.OccupiedUntil),
	)
	if err != nil {
		return fmt.Errorf("create region: %w", err)
	}
	return nil
}

func (t *sqliteTx) GetRegion(ctx context.Context, guildID, regionID string) (*entities.Region, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT base_id, occupied_by, occupied_until FROM regions WHERE guild_id = ? AND id = ?`,
		guildID, regionID,
	)
	region := entities.Region{GuildID: guildID, ID: regionID}
	var occupiedUntil int64
	if err := row.Scan(&region.BaseID, &region.OccupiedBy, &occupiedUntil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get region: %w", err)
	}
	region.OccupiedUntil = fromMillis(occupiedUntil)
	return &region, nil
}

func (t *sqliteTx) UpdateRegion(ctx context.Context, region *entities.Region) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE regions SET occupied_by = ?, occupied_until = ? WHERE guild_id = ? AND id = ?`,
		region.OccupiedBy, toMillis(region.OccupiedUntil), region.GuildID, region.ID,
	)
	if err != nil {
		return fmt.Errorf("update region: %w", err)
	}
	return requireRow(res, "update region")
}

func (t *sqliteTx) ListRegions(ctx context.Context, guildID string) ([]*entities.Region, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT id, base_id, occupied_by, occupied_until FROM regions WHERE guild_id = ? ORDER BY id`,
		guildID,
	)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()
	var list []*entities.Region
	for rows.Next() {
		region := entities.Region{GuildID: guildID}
		var occupiedUntil int64
		if err := rows.Scan(&region.ID, &region.BaseID, &region.OccupiedBy, &occupiedUntil); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		region.OccupiedUntil = fromMillis(occupiedUntil)
		list = append(list, &region)
	}
	return list, rows.Err()
}

func (t *sqliteTx) PutFreeCreature(ctx context.Context, fc *entities.FreeCreature) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO free_creatures
		 (guild_id, channel_id, message_id, base_id, roller_id, protected_until, expires_at, claimed_by, rolled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(guild_id, channel_id, message_id) DO UPDATE SET
		   base_id = excluded.base_id,
		   roller_id = excluded.roller_id,
		   protected_until = excluded.protected_until,
		   expires_at = excluded.expires_at,
		   claimed_by = excluded.claimed_by,
		   rolled_at = excluded.rolled_at`,
		fc.GuildID, fc.ChannelID, fc.MessageID, fc.BaseID, fc.RollerID,
		toMillis(fc.ProtectedUntil), toMillis(fc.ExpiresAt), fc.ClaimedBy, toMillis(fc.RolledAt),
	)
	if err != nil {
		return fmt.Errorf("put free creature: %w", err)
	}
	return nil
}

func (t *sqliteTx) GetFreeCreature(ctx context.Context, guildID, channelID, messageID string) (*entities.FreeCreature, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT base_id, roller_id, protected_until, expires_at, claimed_by, rolled_at
		 FROM free_creatures WHERE guild_id = ? AND channel_id = ? AND message_id = ?`,
		guildID, channelID, messageID,
	)
	fc := entities.FreeCreature{GuildID: guildID, ChannelID: channelID, MessageID: messageID}
	var protectedUntil, expiresAt, rolledAt int64
	if err := row.Scan(&fc.BaseID, &fc.RollerID, &protectedUntil, &expiresAt, &fc.ClaimedBy, &rolledAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get free creature: %w", err)
	}
	fc.ProtectedUntil = fromMillis(protectedUntil)
	fc.ExpiresAt = fromMillis(expiresAt)
	fc.RolledAt = fromMillis(rolledAt)
	return &fc, nil
}

func (t *sqliteTx) UpdateFreeCreature(ctx context.Context, fc *entities.FreeCreature) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE free_creatures SET claimed_by = ?, protected_until = ?, expires_at = ?
		 WHERE guild_id = ? AND channel_id = ? AND message_id = ?`,
		fc.ClaimedBy, toMillis(fc.ProtectedUntil), toMillis(fc.ExpiresAt),
		fc.GuildID, fc.ChannelID, fc.MessageID,
	)
	if err != nil {
		return fmt.Errorf("update free creature: %w", err)
	}
	return requireRow(res, "update free creature")
}

func (t *sqliteTx) DeleteFreeCreature(ctx context.Context, guildID, channelID, messageID string) error {
	res, err := t.tx.ExecContext(ctx,
		`DELETE FROM free_creatures WHERE guild_id = ? AND channel_id = ? AND message_id = ?`,
		guildID, channelID, messageID,
	)
	if err != nil {
		return fmt.Errorf("delete free creature: %w", err)
	}
	return requireRow(res, "delete free creature")
}

func (t *sqliteTx) AppendEvents(ctx context.Context, evts []*events.Event) error {
	for _, e := range evts {
		_, err := t.tx.ExecContext(ctx,
			`INSERT INTO game_events (guild_id, seq, parent_seq, type, at, player_id, payload, resolved)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.GuildID, e.Seq, e.ParentSeq, string(e.Type), toMillis(e.At), e.PlayerID, string(e.Payload), boolToInt(e.Resolved),
		)
		if err != nil {
			return fmt.Errorf("append event %s/%d: %w", e.GuildID, e.Seq, err)
		}
	}
	return nil
}

func (t *sqliteTx) MaxEventSeq(ctx context.Context, guildID string) (int64, error) {
	var max sql.NullInt64
	err := t.tx.QueryRowContext(ctx,
		`SELECT MAX(seq) FROM game_events WHERE guild_id = ?`, guildID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max event seq: %w", err)
	}
	return max.Int64, nil
}

func (t *sqliteTx) UnresolvedEvents(ctx context.Context, guildID string) ([]*events.Event, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT seq, parent_seq, type, at, player_id, payload
		 FROM game_events WHERE guild_id = ? AND resolved = 0 ORDER BY seq`,
		guildID,
	)
	if err != nil {
		return nil, fmt.Errorf("unresolved events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows, guildID, false)
}

func (t *sqliteTx) MarkEventResolved(ctx context.Context, guildID string, seq int64) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE game_events SET resolved = 1 WHERE guild_id = ? AND seq = ?`, guildID, seq)
	if err != nil {
		return fmt.Errorf("mark event resolved: %w", err)
	}
	return requireRow(res, "mark event resolved")
}

func (t *sqliteTx) EventsInWindow(ctx context.Context, guildID string, from, to time.Time, types []events.Type) ([]*events.Event, error) {
	query := `SELECT seq, parent_seq, type, at, player_id, payload, resolved
		 FROM game_events WHERE guild_id = ? AND at >= ? AND at <= ?`
	args := []any{guildID, toMillis(from), toMillis(to)}
	if len(types) > 0 {
		placeholders := make([]string, len(types))
		for i, typ := range types {
			placeholders[i] = "?"
			args = append(args, string(typ))
		}
		query += ` AND type IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY seq`

	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("events in window: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows, guildID, true)
}

type playerCols struct {
	resources, deck, hand, discard, played, campaign string
}

func playerColumns(p *entities.Player) (*playerCols, error) {
	cols := &playerCols{}
	for _, field := range []struct {
		dst   *string
		value any
		name  string
	}{
		{&cols.resources, p.Resources, "resources"},
		{&cols.deck, p.Deck, "deck"},
		{&cols.hand, p.Hand, "hand"},
		{&cols.discard, p.Discard, "discard"},
		{&cols.played, p.Played, "played"},
		{&cols.campaign, p.Campaign, "campaign"},
	} {
		raw, err := json.Marshal(field.value)
		if err != nil {
			return nil, fmt.Errorf("marshal player %s: %w", field.name, err)
		}
		*field.dst = string(raw)
	}
	return cols, nil
}

func (c *playerCols) toPlayer(guildID, playerID string) (*entities.Player, error) {
	player := &entities.Player{GuildID: guildID, ID: playerID}
	for _, field := range []struct {
		src  string
		dst  any
		name string
	}{
		{c.resources, &player.Resources, "resources"},
		{c.deck, &player.Deck, "deck"},
		{c.hand, &player.Hand, "hand"},
		{c.discard, &player.Discard, "discard"},
		{c.played, &player.Played, "played"},
		{c.campaign, &player.Campaign, "campaign"},
	} {
		if err := json.Unmarshal([]byte(field.src), field.dst); err != nil {
			return nil, fmt.Errorf("unmarshal player %s: %w", field.name, err)
		}
	}
	return player, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEvents(rows rowScanner, guildID string, withResolved bool) ([]*events.Event, error) {
	var list []*events.Event
	for rows.Next() {
		e := events.Event{GuildID: guildID}
		var typ, payload string
		var at int64
		var resolved int
		dest := []any{&e.Seq, &e.ParentSeq, &typ, &at, &e.PlayerID, &payload}
		if withResolved {
			dest = append(dest, &resolved)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Type = events.Type(typ)
		e.At = fromMillis(at)
		if payload != "" {
			e.Payload = []byte(payload)
		}
		e.Resolved = resolved == 1
		list = append(list, &e)
	}
	return list, rows.Err()
}

func requireRow(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
