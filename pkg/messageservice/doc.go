// Package messageservice implements MessageService: validates and sends a
// Message, publishing a message.Broadcast and forwarding to a Push Sink,
// plus Subscribe, which hands back a filtered subscription.Task over the
// message bus.
package messageservice
