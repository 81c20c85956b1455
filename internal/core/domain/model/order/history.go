package order

import (
	"errors"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

// ErrHistoryEntryIsNotConstructed is returned when using an improperly
// initialized HistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created via NewHistoryEntry constructor")

// HistoryEntry is one row of the append-only order audit trail. Exactly one
// entry exists per transition, including the initial creation, whose
// fromStatus is nil.
//
// Entries are immutable once created: the trail is never rewritten.
type HistoryEntry struct {
	id         kernel.UUID
	fromStatus *Status
	toStatus   Status
	changedBy  kernel.UUID
	notes      string
	occurredAt time.Time
	guard      guard.ConstructorGuard
}

// NewHistoryEntry creates an audit trail entry. fromStatus is nil for the
// creation entry and must otherwise name a valid status.
func NewHistoryEntry(
	id kernel.UUID,
	fromStatus *Status,
	toStatus Status,
	changedBy kernel.UUID,
	notes string,
	occurredAt time.Time,
) (*HistoryEntry, error) {
	entry := &HistoryEntry{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setFromStatus(fromStatus),
		entry.setToStatus(toStatus),
		entry.setChangedBy(changedBy),
		entry.setOccurredAt(occurredAt),
	); err != nil {
		return nil, err
	}

	entry.notes = notes
	return entry, nil
}

// Validate checks if the HistoryEntry was properly constructed.
func (h *HistoryEntry) Validate() error {
	if h == nil {
		return ErrHistoryEntryIsNotConstructed
	}
	return h.guard.Validate(ErrHistoryEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (h *HistoryEntry) ID() kernel.UUID {
	return h.id
}

// FromStatus returns the status the order left, or nil for the creation entry.
func (h *HistoryEntry) FromStatus() *Status {
	return h.fromStatus
}

// ToStatus returns the status the order entered.
func (h *HistoryEntry) ToStatus() Status {
	return h.toStatus
}

// ChangedBy returns the user who performed the transition.
func (h *HistoryEntry) ChangedBy() kernel.UUID {
	return h.changedBy
}

// Notes returns the free-form note attached to the transition.
func (h *HistoryEntry) Notes() string {
	return h.notes
}

// OccurredAt returns when the transition happened.
func (h *HistoryEntry) OccurredAt() time.Time {
	return h.occurredAt
}

func (h *HistoryEntry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

func (h *HistoryEntry) setFromStatus(fromStatus *Status) error {
	if fromStatus == nil {
		return nil
	}
	if err := fromStatus.Validate(); err != nil {
		return err
	}
	from := *fromStatus
	h.fromStatus = &from
	return nil
}

func (h *HistoryEntry) setToStatus(toStatus Status) error {
	if err := toStatus.Validate(); err != nil {
		return err
	}
	h.toStatus = toStatus
	return nil
}

func (h *HistoryEntry) setChangedBy(changedBy kernel.UUID) error {
	if err := changedBy.Validate(); err != nil {
		return err
	}
	h.changedBy = changedBy
	return nil
}

func (h *HistoryEntry) setOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}
	h.occurredAt = occurredAt
	return nil
}
