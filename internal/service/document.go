package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"printhub/internal/model"
	"printhub/internal/notify"
	"printhub/internal/repository"
	"printhub/internal/storage"
)

var (
	ErrIDRequired    = errors.New("id is required")
	ErrNotFound      = errors.New("document not found")
	ErrMissingSource = errors.New("either file content or an external URL is required")
	ErrInvalidStatus = errors.New("invalid document status")
)

// UploadInput carries everything needed to submit a document. Exactly one of
// Reader and ExternalURL must be set; Reader wins when both are present.
type UploadInput struct {
	OwnerID     string
	TargetID    string
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
	ExternalURL string
}

// Download is the result of opening a document's content. Body is nil when
// the document only carries an external URL; callers redirect in that case.
type Download struct {
	Doc  *model.Document
	Body io.ReadCloser
	Info storage.ObjectInfo
}

// DocumentService is the document lifecycle manager. It enforces the
// cross-store invariants that no single store can enforce alone: binary
// write before metadata write on upload, and the notify-then-delete cascade
// when a document reaches Printed.
type DocumentService interface {
	// Upload stores the content, creates the metadata record and appends the
	// back-references on both the owner and target sides.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// ListByOwner returns the current set of documents a user has sent.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error)

	// ListByTarget returns the current set of documents a printer has received.
	ListByTarget(ctx context.Context, targetID string) ([]model.Document, error)

	// OpenFile opens the document's bytes for streaming.
	OpenFile(ctx context.Context, id string) (*Download, error)

	// SetStatus writes the requested status and applies transition effects.
	// When the requested status is Printed the document is notified about and
	// then deleted; deleted reports whether that cascade ran.
	SetStatus(ctx context.Context, id string, requested model.Status) (doc *model.Document, deleted bool, err error)

	// Delete removes the document from the binary store, the metadata store
	// and both reference index sides. ErrNotFound means already deleted.
	Delete(ctx context.Context, id string) error
}

// documentService is a concrete implementation of DocumentService.
//
// Writes to the documents table and the two index tables are sequential, not
// atomic: between the metadata write and the index appends a concurrent
// reader can observe a document with no back-reference (and the mirror image
// during deletion). Listings read the documents table directly, so the
// window only affects direct index reads.
type documentService struct {
	store    storage.Storage
	docs     repository.DocumentRepository
	users    repository.UserRepository
	printers repository.PrinterRepository
	notifier notify.Notifier
	log      *zap.Logger
}

// NewDocumentService constructs the lifecycle manager. The storage handle is
// a single long-lived dependency injected at startup.
func NewDocumentService(
	store storage.Storage,
	docs repository.DocumentRepository,
	users repository.UserRepository,
	printers repository.PrinterRepository,
	notifier notify.Notifier,
	log *zap.Logger,
) DocumentService {
	return &documentService{
		store:    store,
		docs:     docs,
		users:    users,
		printers: printers,
		notifier: notifier,
		log:      log,
	}
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	if in.OwnerID == "" || in.TargetID == "" {
		return nil, ErrIDRequired
	}
	if in.Reader == nil && in.ExternalURL == "" {
		return nil, ErrMissingSource
	}

	var (
		blobID string
		size   = in.Size
	)
	if in.Reader != nil {
		// Binary write comes first: if it fails, no record is created.
		ext := filepath.Ext(in.FileName)
		key := filepath.ToSlash(filepath.Join("documents", uuid.New().String()+ext))

		objInfo, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
			Size:        in.Size,
			ContentType: in.ContentType,
			Metadata: map[string]string{
				"original-filename": in.FileName,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("upload to storage: %w", err)
		}
		blobID = objInfo.Key
		size = objInfo.Size
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		OwnerID:     in.OwnerID,
		TargetID:    in.TargetID,
		FileName:    in.FileName,
		ExternalURL: in.ExternalURL,
		BlobID:      blobID,
		ContentType: in.ContentType,
		Size:        size,
		Status:      model.StatusSent,
		UploadedAt:  time.Now().UTC(),
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// The blob is never rolled back; an orphan is recoverable by offline
		// garbage collection, a lost upload is not.
		if blobID != "" {
			s.log.Error("metadata create failed, blob orphaned",
				zap.String("blob_id", blobID), zap.Error(err))
		}
		return nil, fmt.Errorf("save metadata: %w", err)
	}

	if err := s.users.AddSentDocument(ctx, stored.OwnerID, stored.ID); err != nil {
		return nil, fmt.Errorf("index sent document: %w", err)
	}
	if err := s.printers.AddReceivedDocument(ctx, stored.TargetID, stored.ID); err != nil {
		return nil, fmt.Errorf("index received document: %w", err)
	}

	return stored, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error) {
	if ownerID == "" {
		return nil, ErrIDRequired
	}
	return s.docs.FindByOwner(ctx, ownerID)
}

func (s *documentService) ListByTarget(ctx context.Context, targetID string) ([]model.Document, error) {
	if targetID == "" {
		return nil, ErrIDRequired
	}
	return s.docs.FindByTarget(ctx, targetID)
}

func (s *documentService) OpenFile(ctx context.Context, id string) (*Download, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.HasBlob() {
		return &Download{Doc: doc}, nil
	}

	body, info, err := s.store.Get(ctx, doc.BlobID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: file missing from storage", ErrNotFound)
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return &Download{Doc: doc, Body: body, Info: info}, nil
}

// SetStatus is not a pure status update: when the requested status is
// Printed the observable side effect is the disappearance of the record.
func (s *documentService) SetStatus(ctx context.Context, id string, requested model.Status) (*model.Document, bool, error) {
	if id == "" {
		return nil, false, ErrIDRequired
	}
	if !requested.Valid() {
		return nil, false, ErrInvalidStatus
	}

	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}

	next, effects := Transition(doc.Status, requested)
	if err := s.docs.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}
	doc.Status = next

	deleted := false
	for _, effect := range effects {
		switch effect {
		case EffectNotifyOwner:
			s.notifyPrinted(ctx, doc)
		case EffectDeleteDocument:
			if err := s.remove(ctx, doc); err != nil {
				return nil, false, err
			}
			deleted = true
		}
	}
	return doc, deleted, nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, doc)
}

// notifyPrinted mails the owner a print confirmation. Failures are logged
// only: the confirmation is not safety-critical, and losing a document
// record because a mail provider is down would be.
func (s *documentService) notifyPrinted(ctx context.Context, doc *model.Document) {
	owner, err := s.users.FindByID(ctx, doc.OwnerID)
	if err != nil {
		s.log.Warn("owner lookup failed, skipping print notification",
			zap.String("document_id", doc.ID), zap.String("owner_id", doc.OwnerID), zap.Error(err))
		return
	}

	subject := "Your document has been printed"
	body := fmt.Sprintf("Hello %s,\n\nYour document %q has been printed successfully.\n\nRegards,\nYour print team.",
		owner.Username, doc.FileName)
	if err := s.notifier.Send(ctx, owner.Email, subject, body); err != nil {
		s.log.Error("print notification failed",
			zap.String("document_id", doc.ID), zap.String("to", owner.Email), zap.Error(err))
	}
}

// remove deletes the blob (best effort), then the metadata record, then the
// back-references on both sides. A missing blob never blocks removing the
// record.
func (s *documentService) remove(ctx context.Context, doc *model.Document) error {
	if doc.HasBlob() {
		if err := s.store.Delete(ctx, doc.BlobID); err != nil {
			s.log.Error("blob delete failed, continuing with metadata removal",
				zap.String("document_id", doc.ID), zap.String("blob_id", doc.BlobID), zap.Error(err))
		}
	}

	if err := s.docs.Delete(ctx, doc.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Lost the race with a concurrent delete; treat as already done.
			return ErrNotFound
		}
		return err
	}

	if err := s.users.RemoveSentDocument(ctx, doc.OwnerID, doc.ID); err != nil {
		return fmt.Errorf("unindex sent document: %w", err)
	}
	if err := s.printers.RemoveReceivedDocument(ctx, doc.TargetID, doc.ID); err != nil {
		return fmt.Errorf("unindex received document: %w", err)
	}
	return nil
}
