package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/careboard/careboard/internal/platform/notify"
)

// Service wraps a Repository with local validation, invariant enforcement,
// and notification routing. Repository failures are never swallowed
// silently: every one is pushed to the notification sink as a
// human-readable error entry before being returned to the caller.
type Service struct {
	repo   Repository
	center *notify.Center
	now    func() time.Time
}

// NewService creates a Service. The notification center may be nil, in
// which case routing is skipped (library use).
func NewService(repo Repository, center *notify.Center) *Service {
	return &Service{repo: repo, center: center, now: time.Now}
}

// ListPatients returns a snapshot of the full collection.
func (s *Service) ListPatients(ctx context.Context) ([]*Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		s.notifyFailure("load patients", err)
		return nil, err
	}
	return patients, nil
}

// QueryPatients fetches the collection and evaluates the query engine
// over it.
func (s *Service) QueryPatients(ctx context.Context, q Query) (Result, error) {
	patients, err := s.ListPatients(ctx)
	if err != nil {
		return Result{}, err
	}
	return Run(patients, q), nil
}

// Stats fetches the collection and derives the analytics aggregates.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	patients, err := s.ListPatients(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(patients, s.now(), DefaultTopConditions), nil
}

// GetPatient returns a single record by id.
func (s *Service) GetPatient(ctx context.Context, id string) (*Patient, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		s.notifyFailure("load patient", err)
		return nil, err
	}
	return p, nil
}

// CreatePatient validates and stores a new record. The photo_id document
// invariant is enforced here, not left to caller discipline.
func (s *Service) CreatePatient(ctx context.Context, p *Patient) (*Patient, error) {
	if err := p.Validate(s.now()); err != nil {
		return nil, err
	}
	p.Documents = NormalizeDocuments(p.Documents)

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.notifyFailure("create patient", err)
		return nil, err
	}
	s.notifySuccess(fmt.Sprintf("Patient %s created", created.FullName()))
	return created, nil
}

// UpdatePatient validates and replaces an existing record, preserving id
// and createdAt.
func (s *Service) UpdatePatient(ctx context.Context, id string, p *Patient) (*Patient, error) {
	if err := p.Validate(s.now()); err != nil {
		return nil, err
	}
	p.Documents = NormalizeDocuments(p.Documents)

	updated, err := s.repo.Update(ctx, id, p)
	if err != nil {
		s.notifyFailure("update patient", err)
		return nil, err
	}
	s.notifySuccess(fmt.Sprintf("Patient %s updated", updated.FullName()))
	return updated, nil
}

// DeletePatient permanently removes a record and its documents.
func (s *Service) DeletePatient(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.notifyFailure("delete patient", err)
		return err
	}
	s.notifySuccess("Patient deleted")
	return nil
}

func (s *Service) notifySuccess(msg string) {
	if s.center != nil {
		s.center.Success(msg)
	}
}

func (s *Service) notifyFailure(op string, err error) {
	if s.center == nil {
		return
	}
	var msg string
	switch {
	case errors.Is(err, ErrNotFound):
		msg = "Patient not found"
	case errors.Is(err, ErrPermission):
		msg = "Permission denied (not authorized)"
	case errors.Is(err, ErrConnection):
		msg = "Network error: could not reach the patient store"
	default:
		msg = fmt.Sprintf("Failed to %s", op)
	}
	s.center.Error(msg)
}
