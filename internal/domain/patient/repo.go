package patient

import "context"

// Repository is the uniform contract over a patient collection, whatever
// the backing store. Implementations map their native failures onto the
// taxonomy in errors.go. Every operation is atomic with respect to a
// single record; there are no cross-record transactions.
type Repository interface {
	// List returns a snapshot of all patients currently known.
	List(ctx context.Context) ([]*Patient, error)

	// Get returns the patient with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Patient, error)

	// Create stores a new record. The store assigns the id and sets
	// createdAt = updatedAt = now; the stored record is returned.
	Create(ctx context.Context, p *Patient) (*Patient, error)

	// Update replaces the record with the given id, preserving id and
	// createdAt and refreshing updatedAt. Fails with ErrNotFound when the
	// id is absent.
	Update(ctx context.Context, id string, p *Patient) (*Patient, error)

	// Delete permanently removes the record and its documents, or fails
	// with ErrNotFound.
	Delete(ctx context.Context, id string) error
}
