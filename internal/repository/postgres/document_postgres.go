package postgres

import (
	"context"
	"database/sql"
	"errors"

	"docanchor/internal/model"
	"docanchor/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, owner_id, filename, content_type, size, file_hash,
		ledger_file_id, ledger_transaction_id, storage_path, status,
		verification_count, uploaded_at, first_verified_at, last_verified_at`

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	err := row.Scan(
		&d.ID,
		&d.OwnerID,
		&d.Filename,
		&d.ContentType,
		&d.Size,
		&d.FileHash,
		&d.LedgerFileID,
		&d.LedgerTransactionID,
		&d.StoragePath,
		&d.Status,
		&d.VerificationCount,
		&d.UploadedAt,
		&d.FirstVerifiedAt,
		&d.LastVerifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, owner_id, filename, content_type, size, file_hash,
			ledger_file_id, ledger_transaction_id, storage_path, status,
			verification_count, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.OwnerID,
		doc.Filename,
		doc.ContentType,
		doc.Size,
		doc.FileHash,
		doc.LedgerFileID,
		doc.LedgerTransactionID,
		doc.StoragePath,
		doc.Status,
		doc.VerificationCount,
		doc.UploadedAt,
	)
	out, err := scanDocument(row)
	if err != nil {
		return nil, &repository.MetadataError{Op: "create", Err: err}
	}
	return out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return r.findOne(ctx, "find by id", q, id)
}

// FindByLedgerFileID fetches the document anchored under a ledger record.
func (r *DocumentPostgres) FindByLedgerFileID(ctx context.Context, fileID string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE ledger_file_id = $1`
	return r.findOne(ctx, "find by ledger file id", q, fileID)
}

// FindOwned fetches a document only when the owner matches. A row owned by
// someone else scans as no row at all.
func (r *DocumentPostgres) FindOwned(ctx context.Context, id, ownerID string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND owner_id = $2`
	return r.findOne(ctx, "find owned", q, id, ownerID)
}

func (r *DocumentPostgres) findOne(ctx context.Context, op, query string, args ...any) (*model.Document, error) {
	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, &repository.MetadataError{Op: op, Err: err}
	}
	return doc, nil
}

// ListByOwner returns all documents for an owner, newest upload first.
func (r *DocumentPostgres) ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error) {
	const q = `SELECT ` + documentColumns + `
		FROM documents
		WHERE owner_id = $1
		ORDER BY uploaded_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, &repository.MetadataError{Op: "list by owner", Err: err}
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, &repository.MetadataError{Op: "list by owner", Err: err}
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, &repository.MetadataError{Op: "list by owner", Err: err}
	}
	return items, nil
}

// UpdateVerification records a verification outcome. The counter increments
// in SQL and first_verified_at is set once, so repeated verifications never
// reset either.
func (r *DocumentPostgres) UpdateVerification(ctx context.Context, id string, upd repository.VerificationUpdate) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET status = $2,
			verification_count = verification_count + 1,
			first_verified_at = COALESCE(first_verified_at, $3),
			last_verified_at = $3
		WHERE id = $1
		RETURNING ` + documentColumns
	doc, err := scanDocument(r.db.QueryRowContext(ctx, q, id, upd.Status, upd.VerifiedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, &repository.MetadataError{Op: "update verification", Err: err}
	}
	return doc, nil
}

// Delete removes a document row by ID.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return &repository.MetadataError{Op: "delete", Err: err}
	}
	return nil
}

// StatsByOwner aggregates status buckets and byte totals in one query and
// fetches the five most recent activity entries in a second.
func (r *DocumentPostgres) StatsByOwner(ctx context.Context, ownerID string) (*repository.OwnerStats, error) {
	const qAgg = `
		SELECT COUNT(*),
			COALESCE(SUM(size), 0),
			COUNT(*) FILTER (WHERE status = 'authentic'),
			COUNT(*) FILTER (WHERE status = 'modified'),
			COUNT(*) FILTER (WHERE status = 'anchored')
		FROM documents
		WHERE owner_id = $1`
	var stats repository.OwnerStats
	err := r.db.QueryRowContext(ctx, qAgg, ownerID).Scan(
		&stats.TotalDocuments,
		&stats.TotalSize,
		&stats.Authentic,
		&stats.Modified,
		&stats.Anchored,
	)
	if err != nil {
		return nil, &repository.MetadataError{Op: "stats by owner", Err: err}
	}

	const qRecent = `
		SELECT uploaded_at, status
		FROM documents
		WHERE owner_id = $1
		ORDER BY uploaded_at DESC
		LIMIT 5`
	rows, err := r.db.QueryContext(ctx, qRecent, ownerID)
	if err != nil {
		return nil, &repository.MetadataError{Op: "stats by owner", Err: err}
	}
	defer rows.Close()

	stats.RecentActivity = make([]repository.ActivityEntry, 0, 5)
	for rows.Next() {
		var e repository.ActivityEntry
		if err := rows.Scan(&e.Date, &e.Status); err != nil {
			return nil, &repository.MetadataError{Op: "stats by owner", Err: err}
		}
		stats.RecentActivity = append(stats.RecentActivity, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &repository.MetadataError{Op: "stats by owner", Err: err}
	}
	return &stats, nil
}
