package projector

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/TicketIndexor/internal/decoder"
)

var (
	// ErrNotFound is returned when an event references an entity that does not exist yet.
	ErrNotFound = errors.New("entity not found")
	// ErrUnknownStatus is returned for status integers outside the fixed tables.
	ErrUnknownStatus = errors.New("unknown status")
	// ErrUnknownRole is returned for role identifiers outside the fixed table.
	ErrUnknownRole = errors.New("unknown role")
	// ErrStatusOutOfOrder is returned when a status change skips a status the event
	// has not reached yet, typically because the earlier change is quarantined.
	ErrStatusOutOfOrder = errors.New("status change out of order")
)

// Event and place statuses.
const (
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusDeclined  = "declined"
	StatusCancelled = "cancelled"
	StatusClosed    = "closed"
)

var eventStatuses = map[uint8]string{
	0: StatusSubmitted,
	1: StatusApproved,
	2: StatusDeclined,
	3: StatusCancelled,
	4: StatusClosed,
}

var placeStatuses = map[uint8]string{
	0: StatusSubmitted,
	1: StatusApproved,
	2: StatusDeclined,
}

// eventTransitions lists the statuses reachable from each event status.
// Declined, cancelled and closed are sinks.
var eventTransitions = map[string][]string{
	StatusSubmitted: {StatusApproved, StatusDeclined},
	StatusApproved:  {StatusCancelled, StatusClosed},
}

// EventStatus maps the on-chain event status to its name.
func EventStatus(v uint8) (string, error) {
	s, ok := eventStatuses[v]
	if !ok {
		return "", fmt.Errorf("%w: event status %d", ErrUnknownStatus, v)
	}
	return s, nil
}

// PlaceStatus maps the on-chain place status to its name.
func PlaceStatus(v uint8) (string, error) {
	s, ok := placeStatuses[v]
	if !ok {
		return "", fmt.Errorf("%w: place status %d", ErrUnknownStatus, v)
	}
	return s, nil
}

// CanTransition reports whether an event may move from one status to another.
func CanTransition(from, to string) bool {
	return slices.Contains(eventTransitions[from], to)
}

// Reachable reports whether to can be reached from from through one or more
// allowed transitions.
func Reachable(from, to string) bool {
	seen := map[string]bool{from: true}
	next := []string{from}
	for len(next) > 0 {
		cur := next[0]
		next = next[1:]
		for _, s := range eventTransitions[cur] {
			if s == to {
				return true
			}
			if !seen[s] {
				seen[s] = true
				next = append(next, s)
			}
		}
	}
	return false
}

// IsTerminal reports whether status ends an event's lifecycle with a payout decision.
func IsTerminal(status string) bool {
	return status == StatusCancelled || status == StatusClosed
}

var roleNames = map[common.Hash]string{
	decoder.AdminRole:     RoleAdmin,
	decoder.ModeratorRole: RoleModerator,
	decoder.ProviderRole:  RoleProvider,
	decoder.VerifiedRole:  RoleVerified,
}

// RoleName maps a role identifier to a user role. The default admin role maps to ""
// with no error, meaning the change is ignored.
func RoleName(role common.Hash) (string, error) {
	if role == decoder.DefaultAdminRole {
		return "", nil
	}
	name, ok := roleNames[role]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRole, role.Hex())
	}
	return name, nil
}
