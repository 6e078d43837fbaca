package entities

// Resource identifies one of the fixed resource kinds a player accumulates
type Resource string

const (
	// ResourceOrder is spent to send creatures on quests
	ResourceOrder Resource = "order"

	// ResourceMagic fuels creature and region abilities
	ResourceMagic Resource = "magic"
)

// IsValid reports whether the resource is one of the known kinds
func (r Resource) IsValid() bool {
	switch r {
	case ResourceOrder, ResourceMagic:
		return true
	}
	return false
}

// ResourceAmount is a single (resource, amount) entry of a price or gain list
type ResourceAmount struct {
	Resource Resource `json:"resource"`
	Amount   int      `json:"amount"`
}

// MergeAmounts collapses a price/gain list: duplicate resources are summed and
// zero-amount entries dropped. Order of first appearance is preserved so event
// payloads stay deterministic.
func MergeAmounts(list []ResourceAmount) []ResourceAmount {
	if len(list) == 0 {
		return nil
	}

	totals := make(map[Resource]int, len(list))
	order := make([]Resource, 0, len(list))
	for _, entry := range list {
		if _, seen := totals[entry.Resource]; !seen {
			order = append(order, entry.Resource)
		}
		totals[entry.Resource] += entry.Amount
	}

	merged := make([]ResourceAmount, 0, len(order))
	for _, res := range order {
		if totals[res] == 0 {
			continue
		}
		merged = append(merged, ResourceAmount{Resource: res, Amount: totals[res]})
	}

	if len(merged) == 0 {
		return nil
	}
	return merged
}
