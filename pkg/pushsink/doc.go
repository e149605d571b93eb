// Package pushsink defines the seam between MessageService.Send and an
// external push-notification provider. The interface is deliberately thin —
// one message, one set of recipient token keys, one error — so a real
// provider backend (FCM, APNs, or any HTTP push gateway) can be dropped in
// without touching the message service.
package pushsink
