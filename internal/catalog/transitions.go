package catalog

import (
	pkgerrors "github.com/rewear-app/rewear-backend/pkg/errors"
)

// itemTransitions is the moderation/exchange state machine:
//
//	under_review --approve--> available --(swap approved)--> swapped
//	under_review --reject-->  pending
//
// pending and swapped are terminal. available -> available is permitted so
// that repeating an approval stays harmless (the approval timestamp is
// restamped).
var itemTransitions = map[ItemStatus][]ItemStatus{
	ItemStatusUnderReview: {ItemStatusAvailable, ItemStatusPending},
	ItemStatusAvailable:   {ItemStatusAvailable, ItemStatusSwapped},
	ItemStatusPending:     {},
	ItemStatusSwapped:     {},
}

// CanTransition reports whether an item may move from one status to another.
func CanTransition(from, to ItemStatus) bool {
	for _, allowed := range itemTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func invalidTransition(itemID string, from, to ItemStatus) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "invalid item status transition").
		WithDetails(map[string]any{
			"item_id": itemID,
			"from":    string(from),
			"to":      string(to),
		})
}
