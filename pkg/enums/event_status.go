package enums

import "fmt"

// EventStatus tracks a booked engagement (shoot) through the studio workflow.
// Contracted is the business-approved state reached after payment.
type EventStatus string

const (
	EventStatusInquiry    EventStatus = "inquiry"
	EventStatusQuoted     EventStatus = "quoted"
	EventStatusContracted EventStatus = "contracted"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusCanceled   EventStatus = "canceled"
)

var validEventStatuses = []EventStatus{
	EventStatusInquiry,
	EventStatusQuoted,
	EventStatusContracted,
	EventStatusCompleted,
	EventStatusCanceled,
}

// String implements fmt.Stringer.
func (e EventStatus) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EventStatus.
func (e EventStatus) IsValid() bool {
	for _, candidate := range validEventStatuses {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEventStatus converts raw input into an EventStatus.
func ParseEventStatus(value string) (EventStatus, error) {
	for _, candidate := range validEventStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event status %q", value)
}
