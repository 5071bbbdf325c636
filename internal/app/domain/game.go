package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrGameNotFound indicates the requested game id does not exist.
	ErrGameNotFound = errors.New("game not found")
	// ErrInvalidGame indicates rejected game input or a store constraint violation.
	ErrInvalidGame = errors.New("invalid game")
)

// Game is one mobile application listing.
type Game struct {
	ID          int64     `json:"id"`
	PublisherID string    `json:"publisherId"`
	Name        string    `json:"name"`
	Platform    string    `json:"platform"`
	StoreID     string    `json:"storeId"`
	BundleID    string    `json:"bundleId"`
	AppVersion  string    `json:"appVersion"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Key returns the populate dedupe key of the game.
func (g Game) Key() GameKey {
	return GameKey{StoreID: g.StoreID, Platform: g.Platform}
}

// GameKey is the (storeId, platform) pair used to avoid re-inserting a listing.
type GameKey struct {
	StoreID  string
	Platform string
}

func (k GameKey) String() string {
	return k.Platform + "/" + k.StoreID
}

// GameChanges holds a partial update. Nil fields are left untouched.
type GameChanges struct {
	PublisherID *string
	Name        *string
	Platform    *string
	StoreID     *string
	BundleID    *string
	AppVersion  *string
	IsPublished *bool
}

// Empty reports whether no field is set.
func (c GameChanges) Empty() bool {
	return c.PublisherID == nil && c.Name == nil && c.Platform == nil && c.StoreID == nil &&
		c.BundleID == nil && c.AppVersion == nil && c.IsPublished == nil
}

// GameFilter narrows a game listing. Zero value matches every game.
type GameFilter struct {
	// NameContains is a case-insensitive substring match on name.
	NameContains string
	// Platform is an exact match on platform.
	Platform string
}

// Candidate is a normalized feed entry awaiting the rank/dedupe/persist decision.
type Candidate struct {
	Game  Game
	Score float64
}

// PopulateSummary is the outcome of one populate run.
type PopulateSummary struct {
	Message  string   `json:"message"`
	Created  int      `json:"created"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings"`
}

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	field := strings.TrimSpace(e.Field)
	switch {
	case field != "" && e.Message != "":
		return fmt.Sprintf("invalid %s: %s", field, e.Message)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return ErrInvalidGame.Error()
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is matches ErrInvalidGame so callers can branch without errors.As.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidGame
}
