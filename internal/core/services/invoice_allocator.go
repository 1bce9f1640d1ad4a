package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/repositories"
)

// InvoiceAllocator assigns {PREFIX}{YY}{MM}{SEQ5} numbers from an atomic per-month counter.
type InvoiceAllocator struct {
	repo portsrepo.InvoiceSequenceRepository
	loc  *time.Location
}

// NewInvoiceAllocator creates an allocator whose months follow loc.
func NewInvoiceAllocator(repo portsrepo.InvoiceSequenceRepository, loc *time.Location) *InvoiceAllocator {
	if loc == nil {
		loc = time.Local
	}
	return &InvoiceAllocator{repo: repo, loc: loc}
}

// Allocate reserves the next number for (metal, type, month of at).
func (a *InvoiceAllocator) Allocate(ctx context.Context, metal domain.Metal, t domain.TransactionType, at time.Time) (string, error) {
	profile, err := domain.ProfileFor(metal)
	if err != nil {
		return "", err
	}
	prefix := profile.InvoicePrefix(t)
	local := at.In(a.loc)
	seq, err := a.repo.NextInvoiceSequence(ctx, prefix, domain.InvoicePeriod(local))
	if err != nil {
		return "", fmt.Errorf("failed to allocate invoice sequence for %s: %w", prefix, err)
	}
	return domain.FormatInvoiceNumber(prefix, local, seq), nil
}
