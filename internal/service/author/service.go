// Package author resolves authors to the entities they stand for.
//
// An author row may point at a parliamentarian, a committee or a collective
// (front, bench, bloc, organ) through its content type; otherwise it is an
// external author described by its own name and role. The Registry maps each
// content type to a batch loader and falls back to the author row for
// unknown kinds and dangling references.
package author

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

type authorRepo interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Author, error)
	ListPage(ctx context.Context, limit, offset int) ([]domain.Author, int, error)
	Parliamentarians(ctx context.Context, ids []int64) ([]domain.Parliamentarian, error)
	Committees(ctx context.Context, ids []int64) ([]domain.Committee, error)
	Collectives(ctx context.Context, kind domain.ContentType, ids []int64) ([]domain.Collective, error)
}

// SubjectLoader loads the subjects of one content type by object id.
type SubjectLoader func(ctx context.Context, objectIDs []int64) (map[int64]domain.AuthorSubject, error)

// Registry resolves authors through per-kind subject loaders.
type Registry struct {
	authors authorRepo
	loaders map[domain.ContentType]SubjectLoader
	log     *slog.Logger
}

// NewRegistry creates a Registry with loaders for every built-in kind.
func NewRegistry(log *slog.Logger, authors authorRepo) *Registry {
	r := &Registry{
		authors: authors,
		loaders: make(map[domain.ContentType]SubjectLoader),
		log:     log.With("service", "author"),
	}

	r.Register(domain.ContentParliamentarian, func(ctx context.Context, ids []int64) (map[int64]domain.AuthorSubject, error) {
		rows, err := authors.Parliamentarians(ctx, ids)
		return index(rows, func(p domain.Parliamentarian) int64 { return p.ID }), err
	})
	r.Register(domain.ContentCommittee, func(ctx context.Context, ids []int64) (map[int64]domain.AuthorSubject, error) {
		rows, err := authors.Committees(ctx, ids)
		return index(rows, func(c domain.Committee) int64 { return c.ID }), err
	})
	for _, kind := range []domain.ContentType{
		domain.ContentFront, domain.ContentBench, domain.ContentBloc, domain.ContentOrgan,
	} {
		r.Register(kind, func(ctx context.Context, ids []int64) (map[int64]domain.AuthorSubject, error) {
			rows, err := authors.Collectives(ctx, kind, ids)
			return index(rows, func(c domain.Collective) int64 { return c.ID }), err
		})
	}
	return r
}

// Register installs or replaces the loader of kind.
func (r *Registry) Register(kind domain.ContentType, loader SubjectLoader) {
	r.loaders[kind] = loader
}

func index[T domain.AuthorSubject](rows []T, id func(T) int64) map[int64]domain.AuthorSubject {
	out := make(map[int64]domain.AuthorSubject, len(rows))
	for _, row := range rows {
		out[id(row)] = row
	}
	return out
}

// ---------------------------------------------------------------------------
// Resolution
// ---------------------------------------------------------------------------

// Resolve loads the authors with the given ids and resolves each one.
// Ids without an author row are absent from the result.
func (r *Registry) Resolve(ctx context.Context, ids []int64) (map[int64]domain.ResolvedAuthor, error) {
	authors, err := r.authors.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve authors: %w", err)
	}

	resolved, err := r.ResolveAll(ctx, authors)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]domain.ResolvedAuthor, len(resolved))
	for _, ra := range resolved {
		out[ra.Author.ID] = ra
	}
	return out, nil
}

// ResolveAll resolves authors in order, issuing one query per content type.
func (r *Registry) ResolveAll(ctx context.Context, authors []domain.Author) ([]domain.ResolvedAuthor, error) {
	byKind := make(map[domain.ContentType][]int64)
	for _, a := range authors {
		if a.Linked() {
			byKind[*a.ContentType] = append(byKind[*a.ContentType], *a.ObjectID)
		}
	}

	subjects := make(map[domain.ContentType]map[int64]domain.AuthorSubject, len(byKind))
	for kind, objectIDs := range byKind {
		loader, ok := r.loaders[kind]
		if !ok {
			r.log.WarnContext(ctx, "no subject loader for content type", slog.String("content_type", string(kind)))
			continue
		}
		found, err := loader(ctx, objectIDs)
		if err != nil {
			return nil, fmt.Errorf("load %s subjects: %w", kind, err)
		}
		subjects[kind] = found
	}

	out := make([]domain.ResolvedAuthor, 0, len(authors))
	for _, a := range authors {
		ra := domain.ResolvedAuthor{Author: a, Subject: a}
		if a.Linked() {
			if s, ok := subjects[*a.ContentType][*a.ObjectID]; ok {
				ra.Subject = s
			} else {
				r.log.DebugContext(ctx, "author subject missing, using author row",
					slog.Int64("author_id", a.ID), slog.String("content_type", string(*a.ContentType)))
			}
		}
		out = append(out, ra)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Directory
// ---------------------------------------------------------------------------

// Directory returns one page of resolved authors ordered by name, and the
// total number of authors.
func (r *Registry) Directory(ctx context.Context, limit, offset int) ([]domain.ResolvedAuthor, int, error) {
	authors, total, err := r.authors.ListPage(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("author directory: %w", err)
	}
	resolved, err := r.ResolveAll(ctx, authors)
	if err != nil {
		return nil, 0, err
	}
	return resolved, total, nil
}
