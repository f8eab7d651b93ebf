package wizard

import "errors"

// Node failure sentinels. Node errors abort the flow only when user
// interaction itself fails; collaborator failures are absorbed inside
// the nodes.
var (
	ErrCategoryFailed = errors.New("category selection failed")
	ErrEntryFailed    = errors.New("text entry failed")
	ErrReviewFailed   = errors.New("enhancement review failed")
	ErrConfirmFailed  = errors.New("confirmation failed")
)
