package enums

import "fmt"

// BookingStatus tracks the lifecycle of a vendor booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPaid      BookingStatus = "paid"
)

// ParseBookingStatus validates the provided value against the known statuses.
func ParseBookingStatus(value string) (BookingStatus, error) {
	switch BookingStatus(value) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusPaid:
		return BookingStatus(value), nil
	}
	return "", fmt.Errorf("unknown booking status %q", value)
}

// CanTransitionTo reports whether the status may advance to next.
// Bookings only move forward: pending -> confirmed -> paid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusPaid
	case BookingStatusConfirmed:
		return next == BookingStatusPaid
	default:
		return false
	}
}

// RSVPStatus tracks a guest's reply.
type RSVPStatus string

const (
	RSVPStatusPending   RSVPStatus = "pending"
	RSVPStatusConfirmed RSVPStatus = "confirmed"
	RSVPStatusDeclined  RSVPStatus = "declined"
)

func ParseRSVPStatus(value string) (RSVPStatus, error) {
	switch RSVPStatus(value) {
	case RSVPStatusPending, RSVPStatusConfirmed, RSVPStatusDeclined:
		return RSVPStatus(value), nil
	}
	return "", fmt.Errorf("unknown rsvp status %q", value)
}

// GuestSide records which partner a guest belongs to.
type GuestSide string

const (
	GuestSidePartner1 GuestSide = "partner1"
	GuestSidePartner2 GuestSide = "partner2"
	GuestSideShared   GuestSide = "shared"
)

func ParseGuestSide(value string) (GuestSide, error) {
	switch GuestSide(value) {
	case GuestSidePartner1, GuestSidePartner2, GuestSideShared:
		return GuestSide(value), nil
	}
	return "", fmt.Errorf("unknown guest side %q", value)
}

// TimelinePeriod is the months-before-wedding bucket a task belongs to,
// assigned once when the task is created.
type TimelinePeriod string

const (
	TimelinePeriod9To12 TimelinePeriod = "9-12"
	TimelinePeriod6To9  TimelinePeriod = "6-9"
	TimelinePeriod3To6  TimelinePeriod = "3-6"
	TimelinePeriod1To3  TimelinePeriod = "1-3"
)

func ParseTimelinePeriod(value string) (TimelinePeriod, error) {
	switch TimelinePeriod(value) {
	case TimelinePeriod9To12, TimelinePeriod6To9, TimelinePeriod3To6, TimelinePeriod1To3:
		return TimelinePeriod(value), nil
	}
	return "", fmt.Errorf("unknown timeline period %q", value)
}
