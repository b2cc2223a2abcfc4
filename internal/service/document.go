package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"docanchor/internal/fingerprint"
	"docanchor/internal/ledger"
	"docanchor/internal/model"
	"docanchor/internal/repository"
	"docanchor/internal/storage"
	"docanchor/internal/validate"
)

var (
	ErrIDRequired         = errors.New("document id is required")
	ErrOwnerRequired      = errors.New("owner id is required")
	ErrNotFound           = repository.ErrNotFound
	ErrInvalidFilePayload = errors.New("file payload is not valid base64")
)

// Anchoring advances through these steps strictly in order; a failure at any
// step aborts the rest. The step name travels with the error so a client can
// tell "never reached the ledger" from "anchored but not stored".
const (
	StepValidating = "validating"
	StepHashing    = "hashing"
	StepAnchoring  = "anchoring"
	StepUploading  = "uploading"
	StepPersisting = "persisting"
)

// AnchorError wraps an anchoring failure with the step it occurred at.
type AnchorError struct {
	Step string
	Err  error
}

func (e *AnchorError) Error() string {
	return fmt.Sprintf("anchoring failed while %s: %v", e.Step, e.Err)
}

func (e *AnchorError) Unwrap() error { return e.Err }

// downloadExpiry bounds how long a presigned download link stays valid.
const downloadExpiry = 15 * time.Minute

// AnchorRequest is the input to the anchoring workflow. File carries the
// transport-encoded payload: standard base64, with an optional data-URL
// prefix as browsers produce from FileReader.readAsDataURL.
type AnchorRequest struct {
	OwnerID     string
	Filename    string
	File        string
	ContentType string
}

// LedgerProof links a document to its immutable ledger record.
type LedgerProof struct {
	FileID         string `json:"fileId"`
	TransactionID  string `json:"transactionId"`
	TransactionURL string `json:"transactionUrl"`
	FileURL        string `json:"fileUrl"`
}

// StorageRef points at the stored blob.
type StorageRef struct {
	Path        string `json:"path"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// AnchorResult is the outcome of a successful anchoring.
type AnchorResult struct {
	Document *model.Document `json:"document"`
	Proof    LedgerProof     `json:"proof"`
	Storage  StorageRef      `json:"storage"`
}

// VerificationChecks are the three independent hash comparisons plus their
// conjunction. They are reported separately so a caller can distinguish a
// locally altered document (DocumentUnchanged false) from database drift
// against the ledger (DatabaseIntegrity false).
type VerificationChecks struct {
	HashConsistency   bool `json:"hashConsistency"`
	DatabaseIntegrity bool `json:"databaseIntegrity"`
	DocumentUnchanged bool `json:"documentUnchanged"`
	OverallAuthentic  bool `json:"overallAuthentic"`
}

// VerificationHashes are the raw digests that were compared.
type VerificationHashes struct {
	Current string `json:"current"`
	Stored  string `json:"stored"`
	Ledger  string `json:"ledger"`
}

// VerificationResult is the outcome of one verification run.
type VerificationResult struct {
	IsAuthentic bool               `json:"isAuthentic"`
	Status      model.Status       `json:"status"`
	Checks      VerificationChecks `json:"verification"`
	Hashes      VerificationHashes `json:"hashes"`
	Document    *model.Document    `json:"document"`
}

// ListedDocument is a document annotated for display.
type ListedDocument struct {
	model.Document
	DownloadURL string `json:"downloadUrl,omitempty"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
	ShortHash   string `json:"shortHash"`
}

// ListStatistics aggregates an owner's listing by verification status.
// Pending counts documents still in their initial anchored state.
type ListStatistics struct {
	Total            int `json:"total"`
	Authentic        int `json:"authentic"`
	Modified         int `json:"modified"`
	Pending          int `json:"pending"`
	VerificationRate int `json:"verificationRate"`
}

// OwnerListing is the list view for one owner.
type OwnerListing struct {
	Documents  []ListedDocument `json:"documents"`
	Statistics ListStatistics   `json:"statistics"`
}

// LedgerCheck is a best-effort live comparison against the ledger for the
// detail view. When the ledger is unreachable, Error carries the note and
// the detail request still succeeds.
type LedgerCheck struct {
	HashMatch   *bool      `json:"hashMatch,omitempty"`
	LastChecked *time.Time `json:"lastChecked,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// DocumentDetail is the single-document view.
type DocumentDetail struct {
	Document    *model.Document `json:"document"`
	DownloadURL string          `json:"downloadUrl,omitempty"`
	ExplorerURL string          `json:"explorerUrl,omitempty"`
	LedgerCheck LedgerCheck     `json:"ledgerCheck"`
}

// DocumentService defines the use cases for anchored documents.
type DocumentService interface {
	// Anchor validates, hashes, anchors the fingerprint on the ledger,
	// uploads the blob and persists metadata, strictly in that order.
	Anchor(ctx context.Context, req AnchorRequest) (*AnchorResult, error)

	// Verify compares a caller-supplied fingerprint against both the stored
	// and the ledger fingerprint for the given ledger record, and records
	// the outcome.
	Verify(ctx context.Context, ledgerFileID, currentHash string) (*VerificationResult, error)

	// ListByOwner returns an owner's documents, newest first, with display
	// annotations and aggregate statistics.
	ListByOwner(ctx context.Context, ownerID string) (*OwnerListing, error)

	// Get returns a single document plus a best-effort live ledger check.
	Get(ctx context.Context, id string) (*DocumentDetail, error)

	// Delete removes blob and metadata once ownership is confirmed. The
	// ledger record is immutable and survives deletion.
	Delete(ctx context.Context, id, ownerID string) error

	// Stats returns aggregate figures for an owner's documents.
	Stats(ctx context.Context, ownerID string) (*repository.OwnerStats, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	ledger  ledger.Gateway
	store   storage.Storage
	repo    repository.DocumentRepository
	network string
}

// NewDocumentService constructs a new DocumentService. network names the
// ledger network used for public explorer links.
func NewDocumentService(lg ledger.Gateway, store storage.Storage, repo repository.DocumentRepository, network string) DocumentService {
	return &documentService{ledger: lg, store: store, repo: repo, network: network}
}

func (s *documentService) Anchor(ctx context.Context, req AnchorRequest) (*AnchorResult, error) {
	// Guard before any side effect: a malformed request must not reach the
	// ledger or the store.
	if err := validate.Required(map[string]string{
		"userId":   req.OwnerID,
		"fileName": req.Filename,
		"file":     req.File,
	}, "userId", "fileName", "file"); err != nil {
		return nil, &AnchorError{Step: StepValidating, Err: err}
	}

	raw, err := decodePayload(req.File)
	if err != nil {
		return nil, &AnchorError{Step: StepValidating, Err: err}
	}

	hash := fingerprint.Sum(raw)

	proof, err := s.ledger.Submit(ctx, hash)
	if err != nil {
		return nil, &AnchorError{Step: StepAnchoring, Err: err}
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Owner-scoped prefix plus millisecond timestamp keeps keys collision
	// free and lets the owner's blobs be listed by prefix.
	key := fmt.Sprintf("users/%s/documents/%d_%s", req.OwnerID, time.Now().UnixMilli(), req.Filename)

	if _, err := s.store.Put(ctx, key, bytes.NewReader(raw), storage.PutObjectOptions{
		Size:        int64(len(raw)),
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": req.Filename,
		},
	}); err != nil {
		// The ledger record stays: it is immutable and an anchored
		// fingerprint with no stored blob is retriable state, not corruption.
		return nil, &AnchorError{Step: StepUploading, Err: err}
	}

	doc := &model.Document{
		ID:                  uuid.New().String(),
		OwnerID:             req.OwnerID,
		Filename:            req.Filename,
		ContentType:         contentType,
		Size:                int64(len(raw)),
		FileHash:            hash,
		LedgerFileID:        proof.FileID,
		LedgerTransactionID: proof.TransactionID,
		StoragePath:         key,
		Status:              model.StatusAnchored,
		UploadedAt:          time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Compensate the upload; a cleanup failure is logged, not surfaced,
		// so the original insert failure reaches the caller.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Printf("cleanup of %s after failed insert also failed: %v", key, delErr)
		}
		return nil, &AnchorError{Step: StepPersisting, Err: err}
	}

	return &AnchorResult{
		Document: stored,
		Proof: LedgerProof{
			FileID:         proof.FileID,
			TransactionID:  proof.TransactionID,
			TransactionURL: ledger.TransactionURL(s.network, proof.TransactionID),
			FileURL:        ledger.FileURL(s.network, proof.FileID),
		},
		Storage: StorageRef{
			Path:        key,
			DownloadURL: s.presign(ctx, key),
		},
	}, nil
}

func (s *documentService) Verify(ctx context.Context, ledgerFileID, currentHash string) (*VerificationResult, error) {
	if err := validate.Required(map[string]string{
		"fileId":      ledgerFileID,
		"currentHash": currentHash,
	}, "fileId", "currentHash"); err != nil {
		return nil, err
	}

	doc, err := s.repo.FindByLedgerFileID(ctx, ledgerFileID)
	if err != nil {
		return nil, err
	}

	// A ledger failure is surfaced as such, never reported as "modified".
	ledgerHash, err := s.ledger.Fetch(ctx, ledgerFileID)
	if err != nil {
		return nil, err
	}

	checks := VerificationChecks{
		HashConsistency:   fingerprint.Equal(currentHash, ledgerHash),
		DatabaseIntegrity: fingerprint.Equal(doc.FileHash, ledgerHash),
		DocumentUnchanged: fingerprint.Equal(currentHash, doc.FileHash),
	}
	checks.OverallAuthentic = checks.HashConsistency && checks.DatabaseIntegrity

	status := model.StatusModified
	if checks.OverallAuthentic {
		status = model.StatusAuthentic
	}

	updated, err := s.repo.UpdateVerification(ctx, doc.ID, repository.VerificationUpdate{
		Status:     status,
		VerifiedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	return &VerificationResult{
		IsAuthentic: checks.OverallAuthentic,
		Status:      status,
		Checks:      checks,
		Hashes: VerificationHashes{
			Current: currentHash,
			Stored:  doc.FileHash,
			Ledger:  ledgerHash,
		},
		Document: updated,
	}, nil
}

func (s *documentService) ListByOwner(ctx context.Context, ownerID string) (*OwnerListing, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}

	docs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := ListStatistics{Total: len(docs)}
	listed := make([]ListedDocument, 0, len(docs))
	for _, d := range docs {
		switch d.Status {
		case model.StatusAuthentic:
			stats.Authentic++
		case model.StatusModified:
			stats.Modified++
		case model.StatusAnchored:
			stats.Pending++
		}
		listed = append(listed, ListedDocument{
			Document:    d,
			DownloadURL: s.presign(ctx, d.StoragePath),
			ExplorerURL: ledger.TransactionURL(s.network, d.LedgerTransactionID),
			ShortHash:   shortHash(d.FileHash),
		})
	}
	if stats.Total > 0 {
		stats.VerificationRate = int(math.Round(100 * float64(stats.Authentic) / float64(stats.Total)))
	}

	return &OwnerListing{Documents: listed, Statistics: stats}, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*DocumentDetail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Live ledger comparison is best effort: the detail view stays available
	// when the ledger is unreachable, with the failure noted inline.
	var check LedgerCheck
	if ledgerHash, err := s.ledger.Fetch(ctx, doc.LedgerFileID); err != nil {
		check.Error = err.Error()
	} else {
		match := fingerprint.Equal(ledgerHash, doc.FileHash)
		now := time.Now().UTC()
		check.HashMatch = &match
		check.LastChecked = &now
	}

	return &DocumentDetail{
		Document:    doc,
		DownloadURL: s.presign(ctx, doc.StoragePath),
		ExplorerURL: ledger.TransactionURL(s.network, doc.LedgerTransactionID),
		LedgerCheck: check,
	}, nil
}

func (s *documentService) Delete(ctx context.Context, id, ownerID string) error {
	if id == "" {
		return ErrIDRequired
	}
	if ownerID == "" {
		return ErrOwnerRequired
	}

	// Ownership is part of the lookup: a document owned by someone else is
	// reported as not found, leaving row and blob untouched.
	doc, err := s.repo.FindOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}

	// Deletion is the primary operation here, so a removal failure is a hard
	// error and the metadata row survives for a retry.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *documentService) Stats(ctx context.Context, ownerID string) (*repository.OwnerStats, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	return s.repo.StatsByOwner(ctx, ownerID)
}

// presign builds a time-limited download URL. Presigning is local signing
// work; a failure only costs the link, so it is logged and omitted.
func (s *documentService) presign(ctx context.Context, key string) string {
	u, err := s.store.PresignGet(ctx, key, downloadExpiry)
	if err != nil {
		log.Printf("presign %s: %v", key, err)
		return ""
	}
	return u
}

// decodePayload turns the transport-encoded file field into raw bytes,
// tolerating a data-URL prefix ("data:<mime>;base64,").
func decodePayload(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		i := strings.IndexByte(payload, ',')
		if i < 0 {
			return nil, ErrInvalidFilePayload
		}
		payload = payload[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePayload, err)
	}
	return raw, nil
}

func shortHash(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16] + "..."
}
