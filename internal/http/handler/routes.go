package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docanchor/internal/service"
)

// RegisterRoutes attaches the document API to the provided Fiber app.
// Handlers stay thin: parse, delegate to the service, shape the envelope.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService) {
	// Health endpoint: checks DB connectivity only.
	app.Get("/health", HealthCheck(db))

	// Simple liveness probe.
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	api := app.Group("/api/documents")

	// Static routes must register before the :id wildcard.
	api.Get("/health", ServiceHealth())
	api.Post("/verify/:fileId", VerifyDocument(docSvc))
	api.Get("/owner/:ownerId/stats", OwnerStats(docSvc))
	api.Get("/owner/:ownerId", ListOwnerDocuments(docSvc))
	api.Post("/", UploadDocument(docSvc))
	api.Get("/:id", GetDocument(docSvc))
	api.Delete("/:id", DeleteDocument(docSvc))
}

// HealthCheck reports whether the metadata store is reachable.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// ServiceHealth is the API-level liveness probe; it touches nothing.
func ServiceHealth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":   true,
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "Document Anchoring API",
		})
	}
}

type uploadRequest struct {
	UserID   string `json:"userId"`
	FileName string `json:"fileName"`
	File     string `json:"file"`
	MimeType string `json:"mimeType"`
}

// UploadDocument runs the anchoring workflow: validate, hash, anchor on the
// ledger, upload the blob, persist metadata.
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req uploadRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		}

		res, err := svc.Anchor(c.UserContext(), service.AnchorRequest{
			OwnerID:     req.UserID,
			Filename:    req.FileName,
			File:        req.File,
			ContentType: req.MimeType,
		})
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":  true,
			"message":  "document uploaded and anchored on the ledger",
			"document": res.Document,
			"proof":    res.Proof,
			"storage":  res.Storage,
		})
	}
}

type verifyRequest struct {
	CurrentHash string `json:"currentHash"`
}

// VerifyDocument runs the verification workflow against a ledger record id.
func VerifyDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req verifyRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		}

		res, err := svc.Verify(c.UserContext(), c.Params("fileId"), req.CurrentHash)
		if err != nil {
			return writeServiceError(c, err)
		}

		message := "document authentic, no alteration detected"
		if !res.IsAuthentic {
			message = "document modified, integrity compromised"
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":      true,
			"isAuthentic":  res.IsAuthentic,
			"status":       res.Status,
			"verification": res.Checks,
			"hashes":       res.Hashes,
			"document":     res.Document,
			"message":      message,
		})
	}
}

// ListOwnerDocuments returns an owner's documents with statistics.
func ListOwnerDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID := c.Params("ownerId")

		res, err := svc.ListByOwner(c.UserContext(), ownerID)
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":    true,
			"documents":  res.Documents,
			"statistics": res.Statistics,
			"user":       fiber.Map{"id": ownerID},
		})
	}
}

// GetDocument returns a single document with a best-effort live ledger check.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":     true,
			"document":    res.Document,
			"downloadUrl": res.DownloadURL,
			"explorerUrl": res.ExplorerURL,
			"ledgerCheck": res.LedgerCheck,
		})
	}
}

type deleteRequest struct {
	UserID string `json:"userId"`
}

// DeleteDocument removes blob and metadata after an ownership check. The
// ledger record is immutable and survives, which the response says openly.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req deleteRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		}

		if err := svc.Delete(c.UserContext(), id, req.UserID); err != nil {
			return writeServiceError(c, err)
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"message": "document deleted",
			"note":    "the ledger record is immutable and remains anchored",
		})
	}
}

// OwnerStats returns aggregate figures for an owner.
func OwnerStats(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID := c.Params("ownerId")

		stats, err := svc.Stats(c.UserContext(), ownerID)
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"stats":   stats,
			"user":    fiber.Map{"id": ownerID},
		})
	}
}
