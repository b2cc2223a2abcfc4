package repository

// Package repository contains the metadata half of the backing store: CRUD
// over document rows. Implementations live in subpackages (e.g. postgres)
// and carry no business logic, strictly persistence operations.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docanchor/internal/model"
)

// ErrNotFound is returned when no row matches the requested filter.
var ErrNotFound = errors.New("document not found")

// MetadataError wraps a failed row operation with the operation name.
type MetadataError struct {
	Op  string
	Err error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata store: %s: %v", e.Op, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// VerificationUpdate is the only mutation applied to a document after
// creation: the verification workflow's status flip, counter bump and
// timestamps. The counter increment happens in SQL so it never decreases
// or loses updates under concurrent verifications.
type VerificationUpdate struct {
	Status     model.Status
	VerifiedAt time.Time
}

// ActivityEntry is one row of an owner's recent upload history.
type ActivityEntry struct {
	Date   time.Time    `json:"date"`
	Status model.Status `json:"status"`
}

// OwnerStats aggregates an owner's documents by status and size.
type OwnerStats struct {
	TotalDocuments int             `json:"totalDocuments"`
	TotalSize      int64           `json:"totalSize"`
	Authentic      int             `json:"authentic"`
	Modified       int             `json:"modified"`
	Anchored       int             `json:"anchored"`
	RecentActivity []ActivityEntry `json:"recentActivity"`
}

// DocumentRepository defines data access for documents using SQL queries only.
type DocumentRepository interface {
	// Create inserts a new document row and returns the stored record
	// (including values set by the database).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindByLedgerFileID returns the document anchored under the given
	// ledger record, or ErrNotFound.
	FindByLedgerFileID(ctx context.Context, fileID string) (*model.Document, error)

	// FindOwned returns the document only when it belongs to ownerID;
	// a wrong owner is indistinguishable from a missing row (ErrNotFound).
	FindOwned(ctx context.Context, id, ownerID string) (*model.Document, error)

	// ListByOwner returns all of an owner's documents, newest upload first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error)

	// UpdateVerification applies a verification outcome and returns the
	// updated row.
	UpdateVerification(ctx context.Context, id string, upd VerificationUpdate) (*model.Document, error)

	// Delete removes a document row by ID.
	Delete(ctx context.Context, id string) error

	// StatsByOwner aggregates status buckets, byte totals and the five most
	// recent activity entries for an owner.
	StatsByOwner(ctx context.Context, ownerID string) (*OwnerStats, error)
}
