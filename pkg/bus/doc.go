// Package bus implements the generic broadcast bus every fan-out stream in
// cmfanout is built from: one slow or stalled consumer never blocks, delays,
// or loses events for any other consumer.
//
// Each Subscribe call hands back a private Consumer with its own bounded
// queue. Publish enqueues the event onto every consumer's queue
// independently; a queue that is already full has its oldest entry evicted
// to make room, and the eviction is counted rather than silently discarded,
// so a slow consumer's next Recv reports how many events it missed before
// resuming from the current head. This mirrors the drop-oldest behavior of
// a broadcast channel backed by a subscriber-map-plus-buffered-channel.
package bus
