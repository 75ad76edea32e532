// Package consistency detects data-integrity problems between protocols and
// matters. Every check is read-only, idempotent and order-stable; findings
// are informational and never fail a check.
package consistency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

type protocolRepo interface {
	ListAll(ctx context.Context) ([]domain.Protocol, error)
	CountMatters(ctx context.Context, key domain.ProtocolKey) (int, error)
	MattersWithProtocol(ctx context.Context) ([]domain.Matter, error)
}

type txManager interface {
	RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Check names one consistency listing.
type Check string

const (
	CheckDuplicateProtocols  Check = "protocolos-duplicados"
	CheckOverLinkedProtocols Check = "protocolos-com-materias"
	CheckOrphanMatters       Check = "materias-protocolo-inexistente"
)

// AllChecks lists every check in display order.
var AllChecks = []Check{CheckDuplicateProtocols, CheckOverLinkedProtocols, CheckOrphanMatters}

// Report holds the findings of a full run.
type Report struct {
	Duplicates []domain.DuplicateProtocol
	OverLinked []domain.OverLinkedProtocol
	Orphans    []domain.OrphanMatter
}

// Summary returns the size of each listing.
func (r Report) Summary() domain.AuditSummary {
	return domain.AuditSummary{
		DuplicateProtocols:  len(r.Duplicates),
		OverLinkedProtocols: len(r.OverLinked),
		OrphanMatters:       len(r.Orphans),
	}
}

// Service runs the consistency checks against the store.
type Service struct {
	protocols protocolRepo
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new consistency Service.
func NewService(log *slog.Logger, protocols protocolRepo, tx txManager) *Service {
	return &Service{
		protocols: protocols,
		tx:        tx,
		log:       log.With("service", "consistency"),
	}
}

// ---------------------------------------------------------------------------
// Listings
// ---------------------------------------------------------------------------

// DuplicateProtocols returns (number, year) pairs registered more than once.
func (s *Service) DuplicateProtocols(ctx context.Context) ([]domain.DuplicateProtocol, error) {
	var out []domain.DuplicateProtocol
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.duplicates(ctx)
		return err
	})
	return out, err
}

// OverLinkedProtocols returns protocols referenced by more than one matter.
func (s *Service) OverLinkedProtocols(ctx context.Context) ([]domain.OverLinkedProtocol, error) {
	var out []domain.OverLinkedProtocol
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.overLinked(ctx)
		return err
	})
	return out, err
}

// OrphanMatters returns matters whose declared protocol does not exist,
// by year descending.
func (s *Service) OrphanMatters(ctx context.Context) ([]domain.OrphanMatter, error) {
	var out []domain.OrphanMatter
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.orphans(ctx)
		return err
	})
	return out, err
}

// Run executes the given checks (all of them when none are given) against
// one snapshot.
func (s *Service) Run(ctx context.Context, checks ...Check) (Report, error) {
	if len(checks) == 0 {
		checks = AllChecks
	}

	var rep Report
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		for _, c := range checks {
			var err error
			switch c {
			case CheckDuplicateProtocols:
				rep.Duplicates, err = s.duplicates(ctx)
			case CheckOverLinkedProtocols:
				rep.OverLinked, err = s.overLinked(ctx)
			case CheckOrphanMatters:
				rep.Orphans, err = s.orphans(ctx)
			default:
				err = domain.NewValidationError("check", fmt.Sprintf("unknown check %q", c))
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	sum := rep.Summary()
	s.log.InfoContext(ctx, "consistency run finished",
		slog.Int("duplicate_protocols", sum.DuplicateProtocols),
		slog.Int("over_linked_protocols", sum.OverLinkedProtocols),
		slog.Int("orphan_matters", sum.OrphanMatters),
	)
	return rep, nil
}

// Summary returns the size of every listing.
func (s *Service) Summary(ctx context.Context) (domain.AuditSummary, error) {
	rep, err := s.Run(ctx)
	if err != nil {
		return domain.AuditSummary{}, err
	}
	return rep.Summary(), nil
}

// ---------------------------------------------------------------------------
// Checks (run inside a snapshot)
// ---------------------------------------------------------------------------

func (s *Service) duplicates(ctx context.Context) ([]domain.DuplicateProtocol, error) {
	protocols, err := s.protocols.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("duplicate protocols: %w", err)
	}
	return FindDuplicates(protocols), nil
}

func (s *Service) overLinked(ctx context.Context) ([]domain.OverLinkedProtocol, error) {
	protocols, err := s.protocols.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("over-linked protocols: %w", err)
	}

	var out []domain.OverLinkedProtocol
	for _, p := range protocols {
		n, err := s.protocols.CountMatters(ctx, p.Key())
		if err != nil {
			return nil, fmt.Errorf("over-linked protocols: %w", err)
		}
		if n > 1 {
			out = append(out, domain.OverLinkedProtocol{Protocol: p, MatterCount: n})
		}
	}
	return out, nil
}

func (s *Service) orphans(ctx context.Context) ([]domain.OrphanMatter, error) {
	protocols, err := s.protocols.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("orphan matters: %w", err)
	}
	matters, err := s.protocols.MattersWithProtocol(ctx)
	if err != nil {
		return nil, fmt.Errorf("orphan matters: %w", err)
	}
	return FindOrphans(matters, protocolKeys(protocols)), nil
}
