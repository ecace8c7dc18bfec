package enums

import "fmt"

// AgendaStatus tracks calendar commitments. Tentative survives from entries
// created before the payment flow existed.
type AgendaStatus string

const (
	AgendaStatusConfirmed AgendaStatus = "confirmed"
	AgendaStatusTentative AgendaStatus = "tentative"
	AgendaStatusCanceled  AgendaStatus = "canceled"
)

var validAgendaStatuses = []AgendaStatus{
	AgendaStatusConfirmed,
	AgendaStatusTentative,
	AgendaStatusCanceled,
}

// String implements fmt.Stringer.
func (a AgendaStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AgendaStatus.
func (a AgendaStatus) IsValid() bool {
	for _, candidate := range validAgendaStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// IsActive reports whether the entry still occupies the calendar.
func (a AgendaStatus) IsActive() bool {
	return a != AgendaStatusCanceled
}

// ParseAgendaStatus converts raw input into an AgendaStatus.
func ParseAgendaStatus(value string) (AgendaStatus, error) {
	for _, candidate := range validAgendaStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid agenda status %q", value)
}
