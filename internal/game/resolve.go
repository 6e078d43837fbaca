package game

import (
	"context"
	"errors"
	"time"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
	"github.com/thornmere/menagerie-bot-discord/internal/storage"
)

// ResolveDueEvents resolves every valid due event for one guild in a single
// transaction and returns them. A due event is valid when it is a root event,
// its parent is due in the same pass, its parent was already resolved, or it
// has been overdue longer than the stale grace. Invalid events stay for a
// later pass. Any resolution error rolls the whole guild pass back.
func (s *Service) ResolveDueEvents(ctx context.Context, guildID string, now time.Time) ([]*events.Event, error) {
	var resolved []*events.Event

	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		unresolved, err := sc.Tx().UnresolvedEvents(ctx, guildID)
		if err != nil {
			return apperrors.Wrap(err, "list unresolved events")
		}

		unresolvedSeqs := make(map[int64]bool, len(unresolved))
		for _, e := range unresolved {
			unresolvedSeqs[e.Seq] = true
		}

		var due []*events.Event
		dueSeqs := make(map[int64]bool)
		for _, e := range unresolved {
			if !e.At.After(now) {
				due = append(due, e)
				dueSeqs[e.Seq] = true
			}
		}

		for _, e := range due {
			valid := e.ParentSeq == 0 ||
				dueSeqs[e.ParentSeq] ||
				!unresolvedSeqs[e.ParentSeq] ||
				now.Sub(e.At) > s.staleGrace
			if !valid {
				continue
			}

			if err := s.resolveEvent(ctx, sc, e, now); err != nil {
				return apperrors.Wrapf(err, "resolve event %d (%s)", e.Seq, e.Type)
			}
			if err := sc.Tx().MarkEventResolved(ctx, guildID, e.Seq); err != nil {
				return apperrors.Wrap(err, "mark event resolved")
			}
			resolved = append(resolved, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// resolveEvent applies the state transition an event stands for. Events that
// are pure facts resolve as no-ops. Side effects run in a child scope whose
// causal parent is the event being resolved.
func (s *Service) resolveEvent(ctx context.Context, sc *Scope, e *events.Event, now time.Time) error {
	child := sc.child()
	child.SetCausalParent(e)

	switch e.Type {
	case events.TypeOrderRecharge:
		return s.resolveResourceRecharge(ctx, child, e, entities.ResourceOrder, now)
	case events.TypeMagicRecharge:
		return s.resolveResourceRecharge(ctx, child, e, entities.ResourceMagic, now)
	case events.TypeCardRecharge:
		return s.resolveCardRecharge(ctx, child, e, now)
	case events.TypeCreatureRecharge:
		return s.resolveCreatureRecharge(ctx, child, e)
	case events.TypeRegionRecharge:
		return s.resolveRegionRecharge(ctx, child, e)
	case events.TypeFreeCreatureExpired:
		return s.resolveFreeCreatureExpired(ctx, child, e)
	default:
		// Informational events carry no transition
		return nil
	}
}

// resolveResourceRecharge grants one unit and re-arms the timer. A departed
// player ends the chain.
func (s *Service) resolveResourceRecharge(ctx context.Context, sc *Scope, e *events.Event, res entities.Resource, now time.Time) error {
	guild, err := sc.Tx().GetGuild(ctx, sc.GuildID())
	if err != nil {
		return apperrors.Wrap(err, "get guild")
	}
	if _, err := sc.Tx().GetPlayer(ctx, sc.GuildID(), e.PlayerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return apperrors.Wrap(err, "get player")
	}

	if err := s.gain(ctx, sc, e.PlayerID, []entities.ResourceAmount{{Resource: res, Amount: 1}}); err != nil {
		return err
	}

	interval := guild.Config.OrderRechargeInterval
	if res == entities.ResourceMagic {
		interval = guild.Config.MagicRechargeInterval
	}
	return s.rearmTimer(ctx, sc, e, now.Add(interval))
}

// resolveCardRecharge draws one card and re-arms the timer. An empty deck is
// not an error here; the timer keeps running so the draw resumes once cards
// return to the deck.
func (s *Service) resolveCardRecharge(ctx context.Context, sc *Scope, e *events.Event, now time.Time) error {
	guild, err := sc.Tx().GetGuild(ctx, sc.GuildID())
	if err != nil {
		return apperrors.Wrap(err, "get guild")
	}
	if _, err := sc.Tx().GetPlayer(ctx, sc.GuildID(), e.PlayerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return apperrors.Wrap(err, "get player")
	}

	if _, err := s.drawCards(ctx, sc, e.PlayerID, 1); err != nil && !errors.Is(err, ErrEmptyDeck) {
		return err
	}
	return s.rearmTimer(ctx, sc, e, now.Add(guild.Config.CardRechargeInterval))
}

// rearmTimer schedules the next occurrence of a perpetual timer, explicitly
// parented to the occurrence just resolved.
func (s *Service) rearmTimer(ctx context.Context, sc *Scope, e *events.Event, at time.Time) error {
	next, err := events.New(sc.GuildID(), e.Type, at, e.PlayerID, nil)
	if err != nil {
		return apperrors.Wrap(err, "build next timer event")
	}
	next.ParentSeq = e.Seq
	return sc.AddEvent(ctx, next)
}

// resolveCreatureRecharge returns a played creature to its owner's discard
// pile. Missing player or creature means they left in the meantime; nothing
// to do.
func (s *Service) resolveCreatureRecharge(ctx context.Context, sc *Scope, e *events.Event) error {
	payload, err := events.Decode(e)
	if err != nil {
		return err
	}
	recharge, ok := payload.(*events.CreatureRechargePayload)
	if !ok {
		return apperrors.Internalf("unexpected payload for %s", e.Type)
	}

	player, err := sc.Tx().GetPlayer(ctx, sc.GuildID(), e.PlayerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return apperrors.Wrap(err, "get player")
	}
	if !player.RemoveFromPlayed(recharge.CreatureID) {
		return nil
	}
	player.Discard = append(player.Discard, recharge.CreatureID)
	if err := sc.Tx().UpdatePlayer(ctx, player); err != nil {
		return apperrors.Wrap(err, "update player")
	}

	creature, err := sc.Tx().GetCreature(ctx, sc.GuildID(), recharge.CreatureID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return apperrors.Wrap(err, "get creature")
	}
	creature.Location = entities.LocationDiscard
	if err := sc.Tx().UpdateCreature(ctx, creature); err != nil {
		return apperrors.Wrap(err, "update creature")
	}
	return nil
}

// resolveRegionRecharge frees the region
func (s *Service) resolveRegionRecharge(ctx context.Context, sc *Scope, e *events.Event) error {
	payload, err := events.Decode(e)
	if err != nil {
		return err
	}
	recharge, ok := payload.(*events.RegionRechargePayload)
	if !ok {
		return apperrors.Internalf("unexpected payload for %s", e.Type)
	}

	region, err := sc.Tx().GetRegion(ctx, sc.GuildID(), recharge.RegionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return apperrors.Wrap(err, "get region")
	}
	region.OccupiedBy = ""
	region.OccupiedUntil = time.Time{}
	if err := sc.Tx().UpdateRegion(ctx, region); err != nil {
		return apperrors.Wrap(err, "update region")
	}
	return nil
}

// resolveFreeCreatureExpired removes a reward nobody claimed. Claimed rewards
// are kept for history.
func (s *Service) resolveFreeCreatureExpired(ctx context.Context, sc *Scope, e *events.Event) error {
	payload, err := events.Decode(e)
	if err != nil {
		return err
	}
	expired, ok := payload.(*events.FreeCreaturePayload)
	if !ok {
		return apperrors.Internalf("unexpected payload for %s", e.Type)
	}

	fc, err := sc.Tx().GetFreeCreature(ctx, sc.GuildID(), expired.ChannelID, expired.MessageID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return apperrors.Wrap(err, "get free creature")
	}
	if fc.Claimed() {
		return nil
	}
	if err := sc.Tx().DeleteFreeCreature(ctx, sc.GuildID(), expired.ChannelID, expired.MessageID); err != nil {
		return apperrors.Wrap(err, "delete free creature")
	}
	return nil
}
