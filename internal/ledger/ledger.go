package ledger

import (
	"context"
	"fmt"
)

// Package ledger wraps the append-only notarization ledger. Only a document's
// fingerprint is ever submitted, never the document itself; a record, once
// written, cannot be revoked through this system.

// Proof identifies a fingerprint anchored on the ledger.
type Proof struct {
	// FileID addresses the immutable ledger record holding the fingerprint.
	FileID string
	// TransactionID identifies the submission and links to the public explorer.
	TransactionID string
}

// Gateway is the single point of contact with the ledger. Submit is the only
// mutation and blocks until the network acknowledges finality; callers must
// expect network round-trip and consensus latency, not sub-millisecond calls.
type Gateway interface {
	// Submit anchors the fingerprint as the full content of a new ledger
	// record, paying at most the configured fee, and returns its proof.
	Submit(ctx context.Context, fingerprint string) (*Proof, error)

	// Fetch retrieves the content previously stored under fileID.
	Fetch(ctx context.Context, fileID string) (string, error)
}

// SubmissionError reports a failed anchor attempt: signing or broadcast
// failed, or the network returned a non-success receipt.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("ledger submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// LookupError reports a failed content retrieval for a ledger record.
type LookupError struct {
	FileID string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("ledger lookup of %s failed: %v", e.FileID, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// TransactionURL returns the public explorer page for a submission.
func TransactionURL(network, transactionID string) string {
	return fmt.Sprintf("https://hashscan.io/%s/transaction/%s", network, transactionID)
}

// FileURL returns the public explorer page for a ledger record.
func FileURL(network, fileID string) string {
	return fmt.Sprintf("https://hashscan.io/%s/file/%s", network, fileID)
}
