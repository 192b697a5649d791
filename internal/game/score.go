package game

import "sort"

// BordaRanking aggregates the active players' private rankings into one final
// order. Each ballot awards an item (N-1-rank) points, N being the item count
// and rank its zero-based position on that ballot; players who never submitted
// a ranking fall back to the shared order. The result is sorted by descending
// score with a stable tie-break on the shared order.
func BordaRanking(shared []Item, players []*Player) []Item {
	scores := make(map[string]int, len(shared))
	for _, it := range shared {
		scores[it.ID] = 0
	}

	n := len(shared)
	for _, p := range players {
		ballot := p.BlindItems
		if ballot == nil {
			ballot = shared
		}
		for rank, it := range ballot {
			if _, ok := scores[it.ID]; !ok {
				continue
			}
			scores[it.ID] += n - 1 - rank
		}
	}

	final := CopyItems(shared)
	sort.SliceStable(final, func(i, j int) bool {
		return scores[final[i].ID] > scores[final[j].ID]
	})
	return final
}
