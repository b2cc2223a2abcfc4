package service

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"docanchor/internal/fingerprint"
	"docanchor/internal/ledger"
	ledgerMocks "docanchor/internal/ledger/mocks"
	"docanchor/internal/model"
	"docanchor/internal/repository"
	repoMocks "docanchor/internal/repository/mocks"
	"docanchor/internal/storage"
	storeMocks "docanchor/internal/storage/mocks"
	"docanchor/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const helloHash = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func helloRequest() AnchorRequest {
	return AnchorRequest{
		OwnerID:     "owner-1",
		Filename:    "hello.txt",
		File:        base64.StdEncoding.EncodeToString([]byte("hello")),
		ContentType: "text/plain",
	}
}

func newTestService(lg *ledgerMocks.MockGateway, st *storeMocks.MockStorage, rp *repoMocks.MockDocumentRepository) DocumentService {
	return NewDocumentService(lg, st, rp, "testnet")
}

func TestDocumentService_Anchor(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path anchors, uploads and persists in order", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mLedger, mStore, mRepo)

		mLedger.On("Submit", ctx, helloHash).
			Return(&ledger.Proof{FileID: "0.0.4242", TransactionID: "0.0.1234@1700000000.000000001"}, nil)

		keyMatch := mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "users/owner-1/documents/") && strings.HasSuffix(key, "_hello.txt")
		})
		mStore.On("Put", ctx, keyMatch, mock.Anything, storage.PutObjectOptions{
			Size:        5,
			ContentType: "text/plain",
			Metadata:    map[string]string{"original-filename": "hello.txt"},
		}).Return(storage.ObjectInfo{Size: 5}, nil)

		mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
			return doc.FileHash == helloHash &&
				doc.LedgerFileID == "0.0.4242" &&
				doc.Status == model.StatusAnchored &&
				doc.VerificationCount == 0 &&
				doc.OwnerID == "owner-1"
		})).Return(&model.Document{ID: "gen-id", LedgerFileID: "0.0.4242", Status: model.StatusAnchored}, nil)

		mStore.On("PresignGet", ctx, mock.Anything, downloadExpiry).
			Return("https://minio.example/signed", nil)

		res, err := svc.Anchor(ctx, helloRequest())

		require.NoError(t, err)
		assert.Equal(t, "gen-id", res.Document.ID)
		assert.Equal(t, "0.0.4242", res.Proof.FileID)
		assert.Equal(t, "https://hashscan.io/testnet/transaction/0.0.1234@1700000000.000000001", res.Proof.TransactionURL)
		assert.Equal(t, "https://hashscan.io/testnet/file/0.0.4242", res.Proof.FileURL)
		assert.Equal(t, "https://minio.example/signed", res.Storage.DownloadURL)
		mLedger.AssertExpectations(t)
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("missing fields abort before any side effect", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mLedger, mStore, mRepo)

		_, err := svc.Anchor(ctx, AnchorRequest{Filename: "hello.txt"})

		var aerr *AnchorError
		require.ErrorAs(t, err, &aerr)
		assert.Equal(t, StepValidating, aerr.Step)

		var verr *validate.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"userId", "file"}, verr.Missing)

		mLedger.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
		mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed payload rejected during validating", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		svc := newTestService(mLedger, new(storeMocks.MockStorage), new(repoMocks.MockDocumentRepository))

		req := helloRequest()
		req.File = "%%% not base64 %%%"
		_, err := svc.Anchor(ctx, req)

		var aerr *AnchorError
		require.ErrorAs(t, err, &aerr)
		assert.Equal(t, StepValidating, aerr.Step)
		assert.ErrorIs(t, err, ErrInvalidFilePayload)
		mLedger.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("data url prefix is tolerated", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mLedger, mStore, mRepo)

		mLedger.On("Submit", ctx, helloHash).
			Return(&ledger.Proof{FileID: "0.0.1", TransactionID: "tx"}, nil)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		mRepo.On("Create", ctx, mock.Anything).
			Return(&model.Document{ID: "id"}, nil)
		mStore.On("PresignGet", ctx, mock.Anything, downloadExpiry).Return("", nil)

		req := helloRequest()
		req.File = "data:text/plain;base64," + req.File
		_, err := svc.Anchor(ctx, req)

		assert.NoError(t, err)
		mLedger.AssertExpectations(t)
	})

	t.Run("ledger failure leaves storage and metadata untouched", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mLedger, mStore, mRepo)

		subErr := &ledger.SubmissionError{Err: errors.New("receipt status FAIL")}
		mLedger.On("Submit", ctx, helloHash).Return(nil, subErr)

		_, err := svc.Anchor(ctx, helloRequest())

		var aerr *AnchorError
		require.ErrorAs(t, err, &aerr)
		assert.Equal(t, StepAnchoring, aerr.Step)

		var lerr *ledger.SubmissionError
		assert.ErrorAs(t, err, &lerr)

		mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("upload failure aborts without metadata insert and without ledger rollback", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mLedger, mStore, mRepo)

		mLedger.On("Submit", ctx, helloHash).
			Return(&ledger.Proof{FileID: "0.0.1", TransactionID: "tx"}, nil)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, &storage.UploadError{Key: "k", Err: errors.New("bucket gone")})

		_, err := svc.Anchor(ctx, helloRequest())

		var aerr *AnchorError
		require.ErrorAs(t, err, &aerr)
		assert.Equal(t, StepUploading, aerr.Step)

		var uerr *storage.UploadError
		assert.ErrorAs(t, err, &uerr)

		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("metadata failure compensates by removing the uploaded blob", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mLedger, mStore, mRepo)

		mLedger.On("Submit", ctx, helloHash).
			Return(&ledger.Proof{FileID: "0.0.1", TransactionID: "tx"}, nil)

		var uploadedKey string
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(func(_ context.Context, key string, _ io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
				uploadedKey = key
				return storage.ObjectInfo{Key: key}
			}, nil)
		insertErr := &repository.MetadataError{Op: "create", Err: errors.New("constraint violated")}
		mRepo.On("Create", ctx, mock.Anything).Return(nil, insertErr)
		mStore.On("Delete", ctx, mock.MatchedBy(func(key string) bool {
			return key == uploadedKey
		})).Return(nil)

		_, err := svc.Anchor(ctx, helloRequest())

		var aerr *AnchorError
		require.ErrorAs(t, err, &aerr)
		assert.Equal(t, StepPersisting, aerr.Step)

		var merr *repository.MetadataError
		assert.ErrorAs(t, err, &merr)
		mStore.AssertExpectations(t)
	})

	t.Run("failed compensation still reports the insert failure", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mLedger, mStore, mRepo)

		mLedger.On("Submit", ctx, helloHash).
			Return(&ledger.Proof{FileID: "0.0.1", TransactionID: "tx"}, nil)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		mRepo.On("Create", ctx, mock.Anything).
			Return(nil, &repository.MetadataError{Op: "create", Err: errors.New("db down")})
		mStore.On("Delete", ctx, mock.Anything).
			Return(&storage.RemovalError{Key: "k", Err: errors.New("also down")})

		_, err := svc.Anchor(ctx, helloRequest())

		var merr *repository.MetadataError
		assert.ErrorAs(t, err, &merr)
	})
}

func TestDocumentService_Verify(t *testing.T) {
	ctx := context.Background()

	stored := func() *model.Document {
		return &model.Document{
			ID:           "doc-1",
			OwnerID:      "owner-1",
			FileHash:     helloHash,
			LedgerFileID: "0.0.4242",
			Status:       model.StatusAnchored,
		}
	}

	t.Run("all hashes agree yields authentic", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mLedger, new(storeMocks.MockStorage), mRepo)

		mRepo.On("FindByLedgerFileID", ctx, "0.0.4242").Return(stored(), nil)
		mLedger.On("Fetch", ctx, "0.0.4242").Return(helloHash, nil)
		mRepo.On("UpdateVerification", ctx, "doc-1", mock.MatchedBy(func(upd repository.VerificationUpdate) bool {
			return upd.Status == model.StatusAuthentic && !upd.VerifiedAt.IsZero()
		})).Return(&model.Document{ID: "doc-1", Status: model.StatusAuthentic, VerificationCount: 1}, nil)

		res, err := svc.Verify(ctx, "0.0.4242", helloHash)

		require.NoError(t, err)
		assert.True(t, res.IsAuthentic)
		assert.Equal(t, model.StatusAuthentic, res.Status)
		assert.True(t, res.Checks.HashConsistency)
		assert.True(t, res.Checks.DatabaseIntegrity)
		assert.True(t, res.Checks.DocumentUnchanged)
		assert.Equal(t, 1, res.Document.VerificationCount)
	})

	t.Run("digest comparison is case-insensitive", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mLedger, new(storeMocks.MockStorage), mRepo)

		mRepo.On("FindByLedgerFileID", ctx, "0.0.4242").Return(stored(), nil)
		mLedger.On("Fetch", ctx, "0.0.4242").Return(helloHash, nil)
		mRepo.On("UpdateVerification", ctx, "doc-1", mock.Anything).
			Return(&model.Document{ID: "doc-1", Status: model.StatusAuthentic, VerificationCount: 1}, nil)

		res, err := svc.Verify(ctx, "0.0.4242", "2CF24DBA5FB0A30E26E83B2AC5B9E29E1B161E5C1FA7425E73043362938B9824")

		require.NoError(t, err)
		assert.True(t, res.IsAuthentic)
	})

	t.Run("local tampering is modified yet database integrity holds", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mLedger, new(storeMocks.MockStorage), mRepo)

		tampered := fingerprint.Sum([]byte("hello, tampered"))
		mRepo.On("FindByLedgerFileID", ctx, "0.0.4242").Return(stored(), nil)
		mLedger.On("Fetch", ctx, "0.0.4242").Return(helloHash, nil)
		mRepo.On("UpdateVerification", ctx, "doc-1", mock.MatchedBy(func(upd repository.VerificationUpdate) bool {
			return upd.Status == model.StatusModified
		})).Return(&model.Document{ID: "doc-1", Status: model.StatusModified, VerificationCount: 2}, nil)

		res, err := svc.Verify(ctx, "0.0.4242", tampered)

		require.NoError(t, err)
		assert.False(t, res.IsAuthentic)
		assert.Equal(t, model.StatusModified, res.Status)
		assert.False(t, res.Checks.HashConsistency)
		assert.True(t, res.Checks.DatabaseIntegrity)
		assert.False(t, res.Checks.DocumentUnchanged)
		assert.Equal(t, VerificationHashes{Current: tampered, Stored: helloHash, Ledger: helloHash}, res.Hashes)
	})

	t.Run("database drift is modified with database integrity false", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mLedger, new(storeMocks.MockStorage), mRepo)

		drifted := stored()
		drifted.FileHash = fingerprint.Sum([]byte("row was rewritten"))
		mRepo.On("FindByLedgerFileID", ctx, "0.0.4242").Return(drifted, nil)
		mLedger.On("Fetch", ctx, "0.0.4242").Return(helloHash, nil)
		mRepo.On("UpdateVerification", ctx, "doc-1", mock.Anything).
			Return(&model.Document{ID: "doc-1", Status: model.StatusModified, VerificationCount: 1}, nil)

		res, err := svc.Verify(ctx, "0.0.4242", helloHash)

		require.NoError(t, err)
		assert.False(t, res.IsAuthentic)
		assert.True(t, res.Checks.HashConsistency)
		assert.False(t, res.Checks.DatabaseIntegrity)
	})

	t.Run("unknown ledger record", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(new(ledgerMocks.MockGateway), new(storeMocks.MockStorage), mRepo)

		mRepo.On("FindByLedgerFileID", ctx, "0.0.404").Return(nil, repository.ErrNotFound)

		_, err := svc.Verify(ctx, "0.0.404", helloHash)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ledger lookup failure is surfaced, not treated as modified", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mLedger, new(storeMocks.MockStorage), mRepo)

		mRepo.On("FindByLedgerFileID", ctx, "0.0.4242").Return(stored(), nil)
		lookErr := &ledger.LookupError{FileID: "0.0.4242", Err: errors.New("network unreachable")}
		mLedger.On("Fetch", ctx, "0.0.4242").Return("", lookErr)

		_, err := svc.Verify(ctx, "0.0.4242", helloHash)

		var lerr *ledger.LookupError
		assert.ErrorAs(t, err, &lerr)
		mRepo.AssertNotCalled(t, "UpdateVerification", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing inputs", func(t *testing.T) {
		svc := newTestService(new(ledgerMocks.MockGateway), new(storeMocks.MockStorage), new(repoMocks.MockDocumentRepository))

		_, err := svc.Verify(ctx, "", "")

		var verr *validate.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"fileId", "currentHash"}, verr.Missing)
	})
}

func TestDocumentService_ListByOwner(t *testing.T) {
	ctx := context.Background()

	docAt := func(status model.Status, hash string, uploadedAt time.Time) model.Document {
		return model.Document{
			ID:                  "doc-" + string(status),
			OwnerID:             "owner-1",
			FileHash:            hash,
			LedgerTransactionID: "tx-1",
			StoragePath:         "users/owner-1/documents/1_a.txt",
			Status:              status,
			UploadedAt:          uploadedAt,
		}
	}

	t.Run("statistics and annotations", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(new(ledgerMocks.MockGateway), mStore, mRepo)

		now := time.Now()
		mRepo.On("ListByOwner", ctx, "owner-1").Return([]model.Document{
			docAt(model.StatusAuthentic, helloHash, now),
			docAt(model.StatusAuthentic, helloHash, now.Add(-time.Hour)),
			docAt(model.StatusModified, helloHash, now.Add(-2*time.Hour)),
		}, nil)
		mStore.On("PresignGet", ctx, mock.Anything, downloadExpiry).
			Return("https://minio.example/signed", nil)

		res, err := svc.ListByOwner(ctx, "owner-1")

		require.NoError(t, err)
		assert.Len(t, res.Documents, 3)
		assert.Equal(t, 3, res.Statistics.Total)
		assert.Equal(t, 2, res.Statistics.Authentic)
		assert.Equal(t, 1, res.Statistics.Modified)
		assert.Equal(t, 0, res.Statistics.Pending)
		// round(100 * 2/3) = 67
		assert.Equal(t, 67, res.Statistics.VerificationRate)
		assert.Equal(t, helloHash[:16]+"...", res.Documents[0].ShortHash)
		assert.Equal(t, "https://hashscan.io/testnet/transaction/tx-1", res.Documents[0].ExplorerURL)
	})

	t.Run("empty listing has zero rate", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(new(ledgerMocks.MockGateway), new(storeMocks.MockStorage), mRepo)

		mRepo.On("ListByOwner", ctx, "owner-2").Return([]model.Document{}, nil)

		res, err := svc.ListByOwner(ctx, "owner-2")

		require.NoError(t, err)
		assert.Equal(t, 0, res.Statistics.Total)
		assert.Equal(t, 0, res.Statistics.VerificationRate)
	})

	t.Run("owner id required", func(t *testing.T) {
		svc := newTestService(new(ledgerMocks.MockGateway), new(storeMocks.MockStorage), new(repoMocks.MockDocumentRepository))
		_, err := svc.ListByOwner(ctx, "")
		assert.ErrorIs(t, err, ErrOwnerRequired)
	})
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	doc := &model.Document{
		ID:                  "doc-1",
		FileHash:            helloHash,
		LedgerFileID:        "0.0.4242",
		LedgerTransactionID: "tx-1",
		StoragePath:         "users/owner-1/documents/1_a.txt",
	}

	t.Run("live ledger check matches", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mLedger, mStore, mRepo)

		mRepo.On("FindByID", ctx, "doc-1").Return(doc, nil)
		mLedger.On("Fetch", ctx, "0.0.4242").Return(helloHash, nil)
		mStore.On("PresignGet", ctx, doc.StoragePath, downloadExpiry).Return("url", nil)

		res, err := svc.Get(ctx, "doc-1")

		require.NoError(t, err)
		require.NotNil(t, res.LedgerCheck.HashMatch)
		assert.True(t, *res.LedgerCheck.HashMatch)
		assert.NotNil(t, res.LedgerCheck.LastChecked)
		assert.Empty(t, res.LedgerCheck.Error)
	})

	t.Run("ledger failure degrades to inline note", func(t *testing.T) {
		mLedger := new(ledgerMocks.MockGateway)
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mLedger, mStore, mRepo)

		mRepo.On("FindByID", ctx, "doc-1").Return(doc, nil)
		mLedger.On("Fetch", ctx, "0.0.4242").
			Return("", &ledger.LookupError{FileID: "0.0.4242", Err: errors.New("unreachable")})
		mStore.On("PresignGet", ctx, doc.StoragePath, downloadExpiry).Return("url", nil)

		res, err := svc.Get(ctx, "doc-1")

		require.NoError(t, err)
		assert.Nil(t, res.LedgerCheck.HashMatch)
		assert.Contains(t, res.LedgerCheck.Error, "unreachable")
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(new(ledgerMocks.MockGateway), new(storeMocks.MockStorage), mRepo)

		mRepo.On("FindByID", ctx, "missing").Return(nil, repository.ErrNotFound)

		_, err := svc.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path removes blob then row", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(new(ledgerMocks.MockGateway), mStore, mRepo)

		mRepo.On("FindOwned", ctx, "doc-1", "owner-1").
			Return(&model.Document{ID: "doc-1", StoragePath: "users/owner-1/documents/1_a.txt"}, nil)
		mStore.On("Delete", ctx, "users/owner-1/documents/1_a.txt").Return(nil)
		mRepo.On("Delete", ctx, "doc-1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "doc-1", "owner-1"))
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("wrong owner leaves record and blob untouched", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(new(ledgerMocks.MockGateway), mStore, mRepo)

		mRepo.On("FindOwned", ctx, "doc-1", "owner-2").Return(nil, repository.ErrNotFound)

		err := svc.Delete(ctx, "doc-1", "owner-2")

		assert.ErrorIs(t, err, ErrNotFound)
		mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		mRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("blob removal failure is a hard error and keeps the row", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(new(ledgerMocks.MockGateway), mStore, mRepo)

		mRepo.On("FindOwned", ctx, "doc-1", "owner-1").
			Return(&model.Document{ID: "doc-1", StoragePath: "path"}, nil)
		mStore.On("Delete", ctx, "path").
			Return(&storage.RemovalError{Key: "path", Err: errors.New("transport")})

		err := svc.Delete(ctx, "doc-1", "owner-1")

		var rerr *storage.RemovalError
		assert.ErrorAs(t, err, &rerr)
		mRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing identifiers", func(t *testing.T) {
		svc := newTestService(new(ledgerMocks.MockGateway), new(storeMocks.MockStorage), new(repoMocks.MockDocumentRepository))
		assert.ErrorIs(t, svc.Delete(ctx, "", "owner-1"), ErrIDRequired)
		assert.ErrorIs(t, svc.Delete(ctx, "doc-1", ""), ErrOwnerRequired)
	})
}

func TestDocumentService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("passthrough", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(new(ledgerMocks.MockGateway), new(storeMocks.MockStorage), mRepo)

		want := &repository.OwnerStats{TotalDocuments: 2, TotalSize: 1024, Authentic: 1, Anchored: 1}
		mRepo.On("StatsByOwner", ctx, "owner-1").Return(want, nil)

		got, err := svc.Stats(ctx, "owner-1")

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("owner id required", func(t *testing.T) {
		svc := newTestService(new(ledgerMocks.MockGateway), new(storeMocks.MockStorage), new(repoMocks.MockDocumentRepository))
		_, err := svc.Stats(ctx, "")
		assert.ErrorIs(t, err, ErrOwnerRequired)
	})
}
