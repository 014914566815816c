// Package queue publishes booking lifecycle events to RabbitMQ and
// runs the background consumer that turns them into a booking log.
package queue

import "github.com/mstepanov/cinema-booking/internal/booking"

// bookingQueueName is the durable queue carrying all booking events.
const bookingQueueName = "booking.events"

// Event kinds as they appear on the wire.
const (
	KindBookingCreated   = "booking.created"
	KindBookingCancelled = "booking.cancelled"
)

// BookingEvent is the wire form of a booking lifecycle change.  It
// wraps the workflow's event payload with a kind discriminator so one
// queue can carry both creations and cancellations.
type BookingEvent struct {
	Kind string `json:"kind"`
	booking.Event
}
