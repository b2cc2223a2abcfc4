package model

import "time"

// Status is the verification lifecycle state of a document.
// A document starts as Anchored and moves to Authentic or Modified on each
// verification. Modified is not terminal: a later verification flips it
// back to Authentic if the hashes agree again.
type Status string

const (
	StatusAnchored  Status = "anchored"
	StatusAuthentic Status = "authentic"
	StatusModified  Status = "modified"
)

// Document represents a file anchored on the ledger.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID                  string     `json:"id"`
	OwnerID             string     `json:"owner_id"`
	Filename            string     `json:"filename"`
	ContentType         string     `json:"content_type"`
	Size                int64      `json:"size"`
	FileHash            string     `json:"file_hash"`
	LedgerFileID        string     `json:"ledger_file_id"`
	LedgerTransactionID string     `json:"ledger_transaction_id"`
	StoragePath         string     `json:"storage_path"`
	Status              Status     `json:"status"`
	VerificationCount   int        `json:"verification_count"`
	UploadedAt          time.Time  `json:"uploaded_at"`
	FirstVerifiedAt     *time.Time `json:"first_verified_at,omitempty"`
	LastVerifiedAt      *time.Time `json:"last_verified_at,omitempty"`
}
