package engine

import "go-splendor/entities"

// HasLegalAction 没有拿/买/预留的合法动作时返回 false，规则里没有跳过回合
func HasLegalAction(state *GameState, seat int) bool {
	for _, a := range candidateActions() {
		if Validate(state, seat, a) == nil {
			return true
		}
	}
	return false
}

func candidateActions() []Action {
	gems := entities.StandardGems
	var out []Action
	for i := 0; i < len(gems); i++ {
		for j := i + 1; j < len(gems); j++ {
			for k := j + 1; k < len(gems); k++ {
				out = append(out, Take(map[entities.GemType]int{gems[i]: 1, gems[j]: 1, gems[k]: 1}))
			}
		}
	}
	for _, g := range gems {
		out = append(out, Take(map[entities.GemType]int{g: 2}))
	}
	for tier := entities.MinTier; tier <= entities.MaxTier; tier++ {
		for i := 0; i < entities.FaceUpPerTier; i++ {
			out = append(out, BuyFromMarket(tier, i), ReserveFromMarket(tier, i))
		}
		out = append(out, ReserveFromTop(tier))
	}
	for i := 0; i < entities.MaxReservedCards; i++ {
		out = append(out, BuyFromReserved(i))
	}
	return out
}
