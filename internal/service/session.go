package service

import (
	"context"

	"github.com/deckbw/bwbridge/internal/credstore"
)

// resolveSession prefers the token sent by the panel and falls back to the
// persisted one. No session at all is fine: bw itself reports the locked
// state and that is what the panel wants to see.
func resolveSession(ctx context.Context, creds *credstore.Store, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if creds == nil {
		return ""
	}
	session, err := creds.LoadSession(ctx)
	if err != nil {
		return ""
	}
	return session
}
