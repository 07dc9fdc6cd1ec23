package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPrefs(t *testing.T) {
	p := DefaultPrefs("user-1")

	assert.Equal(t, "user-1", p.UserID)
	assert.True(t, p.EmailGlobal)
	assert.True(t, p.PushGlobal)
	assert.True(t, p.InAppGlobal)
	assert.Equal(t, DigestImmediate, p.DigestFrequency)
	assert.Equal(t, DefaultMaxPerDay, p.MaxPerDay)

	// Defaults must be stable between calls.
	assert.Equal(t, p, DefaultPrefs("user-1"))
}

func TestPrefs_Allows(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Prefs)
		channel     Channel
		templateKey string
		want        bool
	}{
		{"all defaults", func(p *Prefs) {}, ChannelEmail, "buy_request.posted", true},
		{"email muted", func(p *Prefs) { p.EmailGlobal = false }, ChannelEmail, "buy_request.posted", false},
		{"email muted does not affect inapp", func(p *Prefs) { p.EmailGlobal = false }, ChannelInApp, "buy_request.posted", true},
		{"category off", func(p *Prefs) { p.Listing = false }, ChannelEmail, "listing.created", false},
		{"other category unaffected", func(p *Prefs) { p.Listing = false }, ChannelEmail, "order.paid", true},
		{"unknown category passes", func(p *Prefs) {}, ChannelPush, "system.maintenance", true},
		{"unknown channel blocked", func(p *Prefs) {}, Channel("sms"), "order.paid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPrefs("u")
			tt.mutate(&p)
			assert.Equal(t, tt.want, p.Allows(tt.channel, tt.templateKey))
		})
	}
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "buy_request", Category("buy_request.posted"))
	assert.Equal(t, "order", Category("order.paid"))
	assert.Equal(t, "plain", Category("plain"))
}
