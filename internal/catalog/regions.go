package catalog

var regions = []*Region{
	{
		ID:          1,
		Name:        "Whispering Glade",
		Text:        "Beasts and spirits leave richer in magic.",
		Accepts:     []Category{CategoryBeast, CategorySpirit},
		QuestPrice:  freePrice,
		QuestEffect: gainEffect(magic(1)),
	},
	{
		ID:          2,
		Name:        "Granite Pass",
		Text:        "A hard climb. Pay an order, find a card on the far side.",
		Accepts:     []Category{CategoryBeast, CategoryConstruct},
		QuestPrice:  price(order(1)),
		QuestEffect: drawEffect(1),
	},
	{
		ID:          3,
		Name:        "Sunlit Market",
		Text:        "Anyone can run errands here for an order.",
		QuestPrice:  freePrice,
		QuestEffect: gainEffect(order(1)),
	},
	{
		ID:         4,
		Name:       "Old Shrine",
		Text:       "A quiet place. Only spirits are welcome.",
		Accepts:    []Category{CategorySpirit},
		QuestPrice: freePrice,
		// no effect: the shrine asks nothing and gives nothing
	},
}
