// Package subscription implements the Subscription Task: the per-stream
// worker that pairs one Broadcast Bus consumer with a predicate and a
// bounded client write queue. It is shared by the token and message
// services, parameterized over the event type each bus carries.
package subscription
