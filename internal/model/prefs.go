package model

import (
	"strings"
	"time"
)

// Digest frequencies. Batching into digests happens upstream; the worker
// only stores the preference.
const (
	DigestImmediate = "immediate"
	DigestDaily     = "daily"
	DigestWeekly    = "weekly"
	DigestOff       = "off"
)

// DefaultMaxPerDay is the per-user daily send cap applied when the user has
// never saved preferences. Zero means fully muted.
const DefaultMaxPerDay = 5

// Prefs holds a user's notification preferences. A row is created lazily on
// first read or write; absence of a row means DefaultPrefs.
type Prefs struct {
	UserID string `json:"user_id"`

	EmailGlobal bool `json:"email_global"`
	PushGlobal  bool `json:"push_global"`
	InAppGlobal bool `json:"inapp_global"`

	// Per-category toggles, keyed by the template key prefix
	// ("buy_request.posted" -> category "buy_request").
	BuyRequest bool `json:"buy_request"`
	Listing    bool `json:"listing"`
	Order      bool `json:"order"`

	DigestFrequency string `json:"digest_frequency"`
	MaxPerDay       int    `json:"max_per_day"`

	// Interest filters consulted by upstream emitters when deciding whether
	// to enqueue at all. The dispatch worker does not read them.
	SpeciesInterest   []string `json:"species_interest,omitempty"`
	ProvincesInterest []string `json:"provinces_interest,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultPrefs returns the preferences applied to a user who has never
// saved any: everything on, immediate delivery, default daily cap.
func DefaultPrefs(userID string) Prefs {
	return Prefs{
		UserID:          userID,
		EmailGlobal:     true,
		PushGlobal:      true,
		InAppGlobal:     true,
		BuyRequest:      true,
		Listing:         true,
		Order:           true,
		DigestFrequency: DigestImmediate,
		MaxPerDay:       DefaultMaxPerDay,
	}
}

// Allows reports whether a notification on the given channel with the given
// template key passes the user's toggles. The daily cap is checked
// separately against the send counter.
func (p Prefs) Allows(channel Channel, templateKey string) bool {
	switch channel {
	case ChannelEmail:
		if !p.EmailGlobal {
			return false
		}
	case ChannelPush:
		if !p.PushGlobal {
			return false
		}
	case ChannelInApp:
		if !p.InAppGlobal {
			return false
		}
	default:
		return false
	}

	switch Category(templateKey) {
	case "buy_request":
		return p.BuyRequest
	case "listing":
		return p.Listing
	case "order":
		return p.Order
	}

	// Unknown categories are not filtered.
	return true
}

// Category extracts the category part of a template key:
// "buy_request.posted" -> "buy_request".
func Category(templateKey string) string {
	if i := strings.IndexByte(templateKey, '.'); i >= 0 {
		return templateKey[:i]
	}
	return templateKey
}
