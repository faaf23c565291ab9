package domain

var (
	MessageSuccessSaveToCookbook     = "Recipe saved to your cookbook!"
	MessageSuccessRemoveFromCookbook = "Recipe removed from your cookbook."
	MessageSuccessGetCookbook        = "success get cookbook"

	MessageFailedSaveToCookbook = "Failed to save recipe."
	MessageFailedToggleCookbook = "Failed to update cookbook."
	MessageFailedGetCookbook    = "failed to get cookbook"

	ErrAlreadyInCookbook = NewError(ErrConflict, "Recipe already in cookbook.")
)

// CookbookAction is the outcome of a toggle.
type CookbookAction string

const (
	CookbookAdded   CookbookAction = "added"
	CookbookRemoved CookbookAction = "removed"
)
