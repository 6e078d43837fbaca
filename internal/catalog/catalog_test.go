package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_StartingDeckOnlyReferencesKnownCreatures(t *testing.T) {
	deck := StartingDeck()
	require.NotEmpty(t, deck)
	for _, id := range deck {
		_, ok := GetCreature(id)
		assert.True(t, ok, "starting deck references unknown creature %d", id)
	}

	// The accessor hands out a copy
	deck[0] = -1
	assert.NotEqual(t, -1, StartingDeck()[0])
}

func TestCatalog_RollableCreaturesCarryAClaimPrice(t *testing.T) {
	ids := RollableCreatures()
	require.NotEmpty(t, ids)
	for _, id := range ids {
		c, ok := GetCreature(id)
		require.True(t, ok)
		assert.NotNil(t, c.ClaimPrice, "rollable creature %q needs a claim price", c.Name)
	}
}

func TestCatalog_EveryCreatureHasACategory(t *testing.T) {
	for id := 1; ; id++ {
		c, ok := GetCreature(id)
		if !ok {
			break
		}
		assert.NotEmpty(t, c.Category, "creature %q has no category", c.Name)
		assert.NotEmpty(t, c.Name)
	}
}

func TestRegion_AcceptsCategory(t *testing.T) {
	anyone := &Region{Name: "open"}
	assert.True(t, anyone.AcceptsCategory(CategoryBeast))
	assert.True(t, anyone.AcceptsCategory(CategoryConstruct))

	picky := &Region{Name: "picky", Accepts: []Category{CategorySpirit}}
	assert.True(t, picky.AcceptsCategory(CategorySpirit))
	assert.False(t, picky.AcceptsCategory(CategoryBeast))
}

func TestCatalog_StartingRegionsExist(t *testing.T) {
	ids := StartingRegions()
	require.NotEmpty(t, ids)
	for _, id := range ids {
		_, ok := GetRegion(id)
		assert.True(t, ok)
	}
}
