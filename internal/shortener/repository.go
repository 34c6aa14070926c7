package shortener

import "context"

// Repository defines the storage operations for URL records.
type Repository interface {
	// Create inserts a new record. Returns ErrDuplicateCode if the short
	// code is already taken.
	Create(ctx context.Context, params CreateParams) (*URL, error)

	// FindByCode returns the record for a short code, or ErrNotFound.
	FindByCode(ctx context.Context, code string) (*URL, error)

	// FindByIDAndOwner returns the record only if it exists and belongs
	// to the given owner, or ErrNotFound.
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*URL, error)

	// Update applies a partial update to an owned record, or ErrNotFound.
	Update(ctx context.Context, id, ownerID int64, params UpdateParams) (*URL, error)

	// Delete removes an owned record. Returns false if nothing was deleted.
	Delete(ctx context.Context, id, ownerID int64) (bool, error)

	// ListByOwner returns all records owned by the given user.
	ListByOwner(ctx context.Context, ownerID int64) ([]*URL, error)
}
