package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CompletionArchive stores raw model completions keyed by generation id
type CompletionArchive struct {
	store Storage
}

// NewCompletionArchive creates an archive on top of a storage backend
func NewCompletionArchive(store Storage) *CompletionArchive {
	return &CompletionArchive{store: store}
}

// SaveCompletion stores the completion text of a generation
func (a *CompletionArchive) SaveCompletion(ctx context.Context, generationID uuid.UUID, completion string) error {
	return a.store.Put(ctx, completionKey(generationID), []byte(completion), "text/plain; charset=utf-8")
}

// LoadCompletion returns the archived completion or ErrNotFound
func (a *CompletionArchive) LoadCompletion(ctx context.Context, generationID uuid.UUID) (string, error) {
	data, err := a.store.Get(ctx, completionKey(generationID))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// completionKey fans keys out by the first two characters of the id
func completionKey(generationID uuid.UUID) string {
	id := generationID.String()
	return fmt.Sprintf("completions/%s/%s.txt", id[:2], id)
}
