package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"letterforge/internal/model"
)

// ErrDocumentNotFound covers every kind of absence: never created, expired,
// or deleted. Callers are never told which one it was.
var ErrDocumentNotFound = errors.New("document not found or expired")

// DocumentStore is the single authority for document existence, content and
// paid-visibility state during a bounded time window. Get does not filter by
// IsPaid; the calling boundary enforces visibility. There is deliberately no
// listing operation: a record is reachable only by its identifier.
type DocumentStore interface {
	Create(ctx context.Context, id string, record model.DocumentRecord) error
	Get(ctx context.Context, id string) (*model.DocumentRecord, error)
	MarkPaid(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// NewDocumentID returns an opaque identifier of the form
// doc_<unix-ms>_<random>. The random suffix keeps ids unguessable; knowing
// the id is the only access control for unpaid content.
func NewDocumentID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("doc_%d_%s", time.Now().UnixMilli(), suffix)
}
