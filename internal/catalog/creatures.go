package catalog

import (
	"context"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
)

func freePrice() []entities.ResourceAmount { return nil }

func price(amounts ...entities.ResourceAmount) PriceFunc {
	return func() []entities.ResourceAmount {
		return append([]entities.ResourceAmount(nil), amounts...)
	}
}

func magic(n int) entities.ResourceAmount {
	return entities.ResourceAmount{Resource: entities.ResourceMagic, Amount: n}
}

func order(n int) entities.ResourceAmount {
	return entities.ResourceAmount{Resource: entities.ResourceOrder, Amount: n}
}

func gainEffect(gains ...entities.ResourceAmount) EffectFunc {
	return func(ctx context.Context, ec EffectContext) error {
		return ec.Gain(ctx, gains)
	}
}

func drawEffect(n int) EffectFunc {
	return func(ctx context.Context, ec EffectContext) error {
		return ec.Draw(ctx, n)
	}
}

func flatStrength(n int) CampaignEffectFunc {
	return func(ctx context.Context, ec EffectContext) (int, error) {
		return n, nil
	}
}

// chooseHandDiscard asks the player to pick a hand card, discards it and runs
// the followup. With an empty hand the choice is skipped and onEmpty runs.
func chooseHandDiscard(prompt string, after EffectFunc, onEmpty EffectFunc) EffectFunc {
	return func(ctx context.Context, ec EffectContext) error {
		hand, err := ec.HandCards(ctx)
		if err != nil {
			return err
		}
		if len(hand) == 0 {
			if onEmpty != nil {
				return onEmpty(ctx, ec)
			}
			return nil
		}

		options := make([]string, len(hand))
		for i, card := range hand {
			options[i] = card.Name
		}
		picked, err := ec.NextSelection(entities.Choice{Prompt: prompt, Options: options})
		if err != nil {
			return err
		}
		if err := ec.DiscardFromHand(ctx, hand[picked].CreatureID); err != nil {
			return err
		}
		if after != nil {
			return after(ctx, ec)
		}
		return nil
	}
}

var creatures = []*Creature{
	{
		ID:             1,
		Name:           "Thornback Boar",
		Text:           "A stubborn forager. Questing turns up an extra order.",
		Category:       CategoryBeast,
		QuestPrice:     freePrice,
		CampaignPrice:  freePrice,
		QuestEffect:    gainEffect(order(1)),
		CampaignEffect: flatStrength(1),
		ClaimPrice:     []entities.ResourceAmount{magic(1)},
		Rollable:       true,
	},
	{
		ID:             2,
		Name:           "Ember Fox",
		Text:           "Quick and curious. Spend magic to send it sniffing out a fresh card.",
		Category:       CategoryBeast,
		QuestPrice:     price(magic(1)),
		CampaignPrice:  price(magic(1)),
		QuestEffect:    drawEffect(1),
		CampaignEffect: flatStrength(2),
		ClaimPrice:     []entities.ResourceAmount{magic(1)},
		Rollable:       true,
	},
	{
		ID:   3,
		Name: "Moss Golem",
		Text: "Too slow for quests, but an anchor for any campaign.",
		// nil QuestPrice: the golem cannot quest at all
		Category:       CategoryConstruct,
		CampaignPrice:  freePrice,
		CampaignEffect: flatStrength(3),
		ClaimPrice:     []entities.ResourceAmount{magic(1)},
	},
	{
		ID:          4,
		Name:        "Raven Trickster",
		Text:        "Trades a card from your hand for a pinch of magic.",
		Category:    CategorySpirit,
		QuestPrice:  freePrice,
		QuestEffect: chooseHandDiscard(
			"Choose a card to feed to the raven",
			gainEffect(magic(2)),
			nil,
		),
		// nil CampaignPrice: the raven refuses long campaigns
		ClaimPrice: []entities.ResourceAmount{magic(1)},
		Rollable:   true,
	},
	{
		ID:             5,
		Name:           "Meadow Sprite",
		Text:           "Gathers stray magic on quests. Offers grow its campaign strength.",
		Category:       CategorySpirit,
		QuestPrice:     freePrice,
		CampaignPrice:  freePrice,
		QuestEffect:    gainEffect(magic(1)),
		CampaignEffect: func(ctx context.Context, ec EffectContext) (int, error) {
			hand, err := ec.HandCards(ctx)
			if err != nil {
				return 0, err
			}
			if len(hand) == 0 {
				return 1, nil
			}
			options := make([]string, len(hand))
			for i, card := range hand {
				options[i] = card.Name
			}
			picked, err := ec.NextSelection(entities.Choice{
				Prompt:  "Choose a card to offer to the sprite",
				Options: options,
			})
			if err != nil {
				return 0, err
			}
			if err := ec.DiscardFromHand(ctx, hand[picked].CreatureID); err != nil {
				return 0, err
			}
			return 3, nil
		},
		ClaimPrice: []entities.ResourceAmount{magic(1)},
		Rollable:   true,
	},
	{
		ID:             6,
		Name:           "Gloom Wisp",
		Text:           "Hard to catch. Lights the way to a pair of orders.",
		Category:       CategorySpirit,
		QuestPrice:     price(magic(1)),
		CampaignPrice:  price(magic(1)),
		QuestEffect:    gainEffect(order(2)),
		CampaignEffect: flatStrength(2),
		ClaimPrice:     []entities.ResourceAmount{magic(2)},
		Rollable:       true,
	},
}

var startingDeck = []int{1, 1, 2, 2, 4, 5, 1, 2}
