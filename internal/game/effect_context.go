package game

import (
	"context"
	"errors"

	"github.com/thornmere/menagerie-bot-discord/internal/catalog"
	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
	"github.com/thornmere/menagerie-bot-discord/internal/storage"
)

// effectContext implements catalog.EffectContext inside an open transaction
// scope. Answers are consumed FIFO from the queue the command was invoked
// with; running out raises NeedsChoiceError, which unwinds the whole
// transaction so a later replay starts from untouched state.
type effectContext struct {
	svc      *Service
	sc       *Scope
	playerID string
	queue    *[]int
}

func (s *Service) newEffectContext(sc *Scope, playerID string, queue *[]int) *effectContext {
	return &effectContext{svc: s, sc: sc, playerID: playerID, queue: queue}
}

func (ec *effectContext) PlayerID() string {
	return ec.playerID
}

func (ec *effectContext) Gain(ctx context.Context, gains []entities.ResourceAmount) error {
	return ec.svc.gain(ctx, ec.sc, ec.playerID, gains)
}

func (ec *effectContext) Pay(ctx context.Context, prices []entities.ResourceAmount) error {
	return ec.svc.payPrice(ctx, ec.sc, ec.playerID, prices)
}

func (ec *effectContext) Draw(ctx context.Context, n int) error {
	_, err := ec.svc.drawCards(ctx, ec.sc, ec.playerID, n)
	return err
}

func (ec *effectContext) HandCards(ctx context.Context) ([]catalog.HandCard, error) {
	player, err := ec.sc.Tx().GetPlayer(ctx, ec.sc.GuildID(), ec.playerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "get player")
	}

	cards := make([]catalog.HandCard, 0, len(player.Hand))
	for _, id := range player.Hand {
		creature, err := ec.sc.Tx().GetCreature(ctx, ec.sc.GuildID(), id)
		if err != nil {
			return nil, apperrors.Wrap(err, "get creature")
		}
		base, ok := catalog.GetCreature(creature.BaseID)
		if !ok {
			return nil, apperrors.Internalf("creature %s has unknown base id %d", id, creature.BaseID)
		}
		cards = append(cards, catalog.HandCard{CreatureID: id, Name: base.Name})
	}
	return cards, nil
}

func (ec *effectContext) DiscardFromHand(ctx context.Context, creatureID string) error {
	child := ec.sc.child()

	player, err := child.Tx().GetPlayer(ctx, child.GuildID(), ec.playerID)
	if err != nil {
		return apperrors.Wrap(err, "get player")
	}
	if !player.RemoveFromHand(creatureID) {
		return ErrCreatureNotInHand
	}
	player.Discard = append(player.Discard, creatureID)
	if err := child.Tx().UpdatePlayer(ctx, player); err != nil {
		return apperrors.Wrap(err, "update player")
	}

	creature, err := child.Tx().GetCreature(ctx, child.GuildID(), creatureID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFoundf("creature %s not found", creatureID)
		}
		return apperrors.Wrap(err, "get creature")
	}
	creature.Location = entities.LocationDiscard
	if err := child.Tx().UpdateCreature(ctx, creature); err != nil {
		return apperrors.Wrap(err, "update creature")
	}
	return nil
}

func (ec *effectContext) NextSelection(choice entities.Choice) (int, error) {
	if len(*ec.queue) == 0 {
		return 0, &NeedsChoiceError{Choice: choice}
	}

	answer := (*ec.queue)[0]
	*ec.queue = (*ec.queue)[1:]

	if answer < 0 || answer >= len(choice.Options) {
		return 0, apperrors.InvalidArgumentf("answer %d out of range for %d options", answer, len(choice.Options))
	}
	return answer, nil
}
