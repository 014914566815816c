// Package booking implements the two operations with real invariants in
// this system: the seat-availability view and the booking/cancellation
// workflow.  Everything runs against store interfaces so the temporal
// guards can be exercised in tests with a fixed clock.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/mstepanov/cinema-booking/internal/model"
	"github.com/mstepanov/cinema-booking/internal/repository"
)

// ScreeningStore is the slice of ScreeningRepo the workflow needs.
type ScreeningStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Screening, error)
}

// SeatStore is the slice of SeatRepo the workflow needs.
type SeatStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Seat, error)
	ListByHall(ctx context.Context, hallID uint64) ([]model.Seat, error)
}

// BookingStore is the slice of BookingRepo the workflow needs.  Create
// must be atomic with respect to the (screening, seat) unique key and
// return repository.ErrSeatTaken on a conflicting insert.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	Exists(ctx context.Context, screeningID, seatID uint64) (bool, error)
	BookedSeatIDs(ctx context.Context, screeningID uint64) (map[uint64]struct{}, error)
	GetForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error)
	Delete(ctx context.Context, bookingID uint64) error
}

// EventPublisher receives booking lifecycle events.  Publishing is
// best-effort: failures are logged and never fail the request.
type EventPublisher interface {
	BookingCreated(ctx context.Context, ev Event)
	BookingCancelled(ctx context.Context, ev Event)
}

// Event describes a booking lifecycle change for downstream consumers.
type Event struct {
	BookingID   uint64    `json:"booking_id"`
	UserID      uint64    `json:"user_id"`
	ScreeningID uint64    `json:"screening_id"`
	SeatID      uint64    `json:"seat_id"`
	StartsAt    time.Time `json:"starts_at"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Service wires the stores together with an injectable clock.
type Service struct {
	screenings ScreeningStore
	seats      SeatStore
	bookings   BookingStore
	events     EventPublisher
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the time source.  Tests use it to simulate past
// and future screenings deterministically.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPublisher attaches an event publisher.  Without one, lifecycle
// events are silently dropped.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

// NewService constructs the booking service.  All stores must be
// non-nil.
func NewService(screenings ScreeningStore, seats SeatStore, bookings BookingStore, opts ...Option) *Service {
	if screenings == nil || seats == nil || bookings == nil {
		panic("nil store passed to booking.NewService")
	}
	s := &Service{
		screenings: screenings,
		seats:      seats,
		bookings:   bookings,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeatStatus annotates one physical seat with its availability for a
// specific screening.
type SeatStatus struct {
	Seat   model.Seat
	Booked bool
}

// NewBooking validates that the seat belongs to the screening's hall
// and builds the booking.  The hall membership rule has no schema
// constraint behind it, so every booking must pass through here.
func NewBooking(userID uint64, sc *model.Screening, seat *model.Seat) (*model.Booking, error) {
	if seat.HallID != sc.HallID {
		return nil, ErrInvalidSeat
	}
	return &model.Booking{
		UserID:      userID,
		ScreeningID: sc.ID,
		SeatID:      seat.ID,
	}, nil
}

// SeatMap computes the seat grid for a screening: the hall's seats in
// (row, number) order, partitioned into sub-slices by contiguous row
// value, each seat flagged booked when a booking exists for it on this
// screening.  A hall with zero seats yields an empty grid.  Pure read,
// no side effects.
func (s *Service) SeatMap(ctx context.Context, screeningID uint64) ([][]SeatStatus, error) {
	sc, err := s.screenings.GetByID(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	seats, err := s.seats.ListByHall(ctx, sc.HallID)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	booked, err := s.bookings.BookedSeatIDs(ctx, sc.ID)
	if err != nil {
		return nil, fmt.Errorf("load booked seats: %w", err)
	}

	grid := make([][]SeatStatus, 0)
	var row []SeatStatus
	for i, seat := range seats {
		if i > 0 && seat.Row != seats[i-1].Row {
			grid = append(grid, row)
			row = nil
		}
		_, isBooked := booked[seat.ID]
		row = append(row, SeatStatus{Seat: seat, Booked: isBooked})
	}
	if len(row) > 0 {
		grid = append(grid, row)
	}
	return grid, nil
}

// Book attempts to create a booking for (user, screening, seat).
// Preconditions are checked in order, short-circuiting on the first
// failure: the screening exists; its start time is strictly in the
// future; the seat exists and belongs to the screening's hall; the
// seat is not already taken for this screening.  A concurrent insert
// that loses the race against the unique key comes back as
// repository.ErrSeatTaken just like the pre-flight check.
func (s *Service) Book(ctx context.Context, userID, screeningID, seatID uint64) (*model.Booking, error) {
	sc, err := s.screenings.GetByID(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	if !sc.StartsAt.After(now) {
		return nil, ErrScreeningStarted
	}
	seat, err := s.seats.GetByID(ctx, seatID)
	if err != nil {
		if err == repository.ErrSeatNotFound {
			return nil, ErrInvalidSeat
		}
		return nil, err
	}
	b, err := NewBooking(userID, sc, seat)
	if err != nil {
		return nil, err
	}
	taken, err := s.bookings.Exists(ctx, sc.ID, seat.ID)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if taken {
		return nil, repository.ErrSeatTaken
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.BookingCreated(ctx, s.eventFor(sc, b))
	}
	return b, nil
}

// Cancel deletes one of the user's bookings, provided its screening has
// not started yet.  A booking that is missing or owned by someone else
// surfaces as repository.ErrBookingNotFound either way.  A rejected
// cancellation leaves the booking intact.
func (s *Service) Cancel(ctx context.Context, userID, bookingID uint64) error {
	b, err := s.bookings.GetForUser(ctx, bookingID, userID)
	if err != nil {
		return err
	}
	sc, err := s.screenings.GetByID(ctx, b.ScreeningID)
	if err != nil {
		return err
	}
	if !sc.StartsAt.After(s.now().UTC()) {
		return ErrScreeningStarted
	}
	if err := s.bookings.Delete(ctx, b.ID); err != nil {
		return err
	}
	if s.events != nil {
		s.events.BookingCancelled(ctx, s.eventFor(sc, b))
	}
	return nil
}

func (s *Service) eventFor(sc *model.Screening, b *model.Booking) Event {
	return Event{
		BookingID:   b.ID,
		UserID:      b.UserID,
		ScreeningID: sc.ID,
		SeatID:      b.SeatID,
		StartsAt:    sc.StartsAt,
		OccurredAt:  s.now().UTC(),
	}
}
