package statuslog

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry instance was not created
// through NewEntry or RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Entry is one immutable row of the status ledger. Entries are never updated
// or deleted after being appended.
//
// The status is carried as the display string of the subject's status enum so
// the ledger stays readable without joining back to enum tables. ActorID is
// nil for transitions performed by the system itself (jobs, escalations).
type Entry struct {
	subject     Subject
	subjectID   kernel.UUID
	status      string
	description string
	actorID     *kernel.UUID
	createdAt   time.Time

	isConstructed bool
}

// NewEntry creates a ledger entry for one committed status transition.
func NewEntry(
	subject Subject,
	subjectID kernel.UUID,
	status string,
	description string,
	actorID *kernel.UUID,
	createdAt time.Time,
) (*Entry, error) {
	e := &Entry{
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		subject.Validate(),
		subjectID.Validate(),
		e.setStatus(status),
		e.setActorID(actorID),
		e.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	e.subject = subject
	e.subjectID = subjectID
	return e, nil
}

// RestoreEntry reconstructs an Entry from persistence.
// This function is intended for repository implementations only.
func RestoreEntry(
	subject Subject,
	subjectID kernel.UUID,
	status string,
	description string,
	actorID *kernel.UUID,
	createdAt time.Time,
) (*Entry, error) {
	return NewEntry(subject, subjectID, status, description, actorID, createdAt)
}

// Validate ensures the Entry instance was properly constructed.
// Returns ErrEntryIsNotConstructed otherwise.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}

	return nil
}

// Subject returns which kind of aggregate the entry describes.
func (e *Entry) Subject() Subject {
	return e.subject
}

// SubjectID returns the identifier of the described aggregate.
func (e *Entry) SubjectID() kernel.UUID {
	return e.subjectID
}

// Status returns the display string of the status entered.
func (e *Entry) Status() string {
	return e.status
}

// Description returns the free-text context for the transition, such as a
// failure reason or the receiving party of a transfer. May be empty.
func (e *Entry) Description() string {
	return e.description
}

// ActorID returns who performed the transition, or nil for system actions.
func (e *Entry) ActorID() *kernel.UUID {
	return e.actorID
}

// CreatedAt returns when the transition was committed.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Entry) setStatus(status string) error {
	if status == "" {
		return errs.NewValueIsRequiredError("status")
	}
	e.status = status
	return nil
}

func (e *Entry) setActorID(actorID *kernel.UUID) error {
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return err
		}
	}
	e.actorID = actorID
	return nil
}

func (e *Entry) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	e.createdAt = createdAt
	return nil
}
