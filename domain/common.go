package domain

import (
	"errors"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	TagVegetarian = "Vegetarian"
	TagVegan      = "Vegan"
	TagGlutenFree = "Gluten-Free"
	TagDairyFree  = "Dairy-Free"

	// RestrictionNone disables restriction filtering for a viewer.
	RestrictionNone = "None"
)

// AllTags is the closed set of dietary tags, in display order.
var AllTags = []string{TagVegetarian, TagVegan, TagGlutenFree, TagDairyFree}

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageLoginRequired        = "you must be logged in"

	// Error kinds. Every error returned by a service wraps exactly one of them.
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failure")
	ErrBadRequest   = errors.New("bad request")
	ErrStorage      = errors.New("storage failure")

	ErrParseUUID      = NewError(ErrValidation, "failed to parse UUID")
	ErrUserNotAllowed = NewError(ErrForbidden, "user not allowed")
	ErrTokenNotFound  = NewError(ErrUnauthorized, "failed to token not found")
	ErrTokenExpired   = NewError(ErrUnauthorized, "token expired")
	ErrTokenInvalid   = NewError(ErrUnauthorized, "token invalid")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// NewError returns an error with the given message that matches kind under errors.Is.
func NewError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// IsClientError reports whether err is safe to show to the caller as is.
func IsClientError(err error) bool {
	for _, kind := range []error{ErrUnauthorized, ErrForbidden, ErrConflict, ErrNotFound, ErrValidation, ErrBadRequest} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	AccountID uuid.UUID
	Role      string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanModify reports whether the actor may edit or delete something owned by ownerID.
func (a Actor) CanModify(ownerID uuid.UUID) bool {
	return a.IsAdmin() || a.AccountID == ownerID
}

func IsDietaryTag(tag string) bool {
	for _, t := range AllTags {
		if t == tag {
			return true
		}
	}
	return false
}

func IsDietaryRestriction(tag string) bool {
	return tag == RestrictionNone || IsDietaryTag(tag)
}
