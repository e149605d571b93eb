// Package tokenservice implements TokenService: register, update, and
// invalidate against a token.Store, each mutation followed by a publish on
// a token.Broadcast bus, plus Subscribe, which hands back a filtered
// subscription.Task over that same bus.
package tokenservice
