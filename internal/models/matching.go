package models

// MatchResult is one found-item candidate for a lost item. Similarity holds
// the final blended score, not the raw text similarity.
type MatchResult struct {
	FoundItem  Item    `json:"foundItem"`
	Similarity float64 `json:"similarity"`
}

// MatchGroup pairs a lost item with its ranked candidates (at most three).
// Groups are computed per request and never persisted.
type MatchGroup struct {
	LostItem   Item          `json:"lostItem"`
	TopMatches []MatchResult `json:"topMatches"`
}
