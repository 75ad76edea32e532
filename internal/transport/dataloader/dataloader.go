// Package dataloader provides per-request loaders that batch the label and
// author lookups of one report into a few SQL calls. Loaders are lenient:
// a lookup that fails or misses yields an empty value for that key only.
package dataloader

import (
	"context"
	"log/slog"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// ---------------------------------------------------------------------------
// Repository interfaces (consumer-defined)
// ---------------------------------------------------------------------------

type labelRepo interface {
	Labels(ctx context.Context, kind domain.LabelKind, ids []int64) (map[int64]string, error)
}

type authorResolver interface {
	Resolve(ctx context.Context, ids []int64) (map[int64]domain.ResolvedAuthor, error)
}

// Repos holds the repositories required by the loaders.
type Repos struct {
	Labels  labelRepo
	Authors authorResolver
}

// ---------------------------------------------------------------------------
// Loaders holds all per-request DataLoader instances.
// ---------------------------------------------------------------------------

// Loaders contains one label loader per LabelKind and an author loader.
// Created per request via NewLoaders.
type Loaders struct {
	labels  map[domain.LabelKind]*dataloader.Loader[int64, string]
	authors *dataloader.Loader[int64, domain.ResolvedAuthor]
	log     *slog.Logger
}

var labelKinds = []domain.LabelKind{
	domain.LabelMatterType,
	domain.LabelStatus,
	domain.LabelUnit,
	domain.LabelCommittee,
	domain.LabelHearingType,
	domain.LabelAuthor,
}

// NewLoaders creates a new set of loaders backed by repos.
// Must be called per request: loaders cache results for their lifetime.
func NewLoaders(repos *Repos, logger *slog.Logger) *Loaders {
	l := &Loaders{
		labels:  make(map[domain.LabelKind]*dataloader.Loader[int64, string], len(labelKinds)),
		authors: newLoader(newAuthorsBatchFn(repos.Authors)),
		log:     logger.With("component", "dataloader"),
	}
	for _, kind := range labelKinds {
		l.labels[kind] = newLoader(newLabelsBatchFn(repos.Labels, kind))
	}
	return l
}

// newLoader creates a dataloader.Loader with standard batch parameters.
func newLoader[V any](batchFn dataloader.BatchFunc[int64, V]) *dataloader.Loader[int64, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[int64, V](wait),
		dataloader.WithBatchCapacity[int64, V](maxBatch),
	)
}

// ---------------------------------------------------------------------------
// Lenient lookups
// ---------------------------------------------------------------------------

// Labels returns the label of each id of kind. Ids that cannot be resolved
// map to "".
func (l *Loaders) Labels(ctx context.Context, kind domain.LabelKind, ids []int64) map[int64]string {
	out := make(map[int64]string, len(ids))
	loader, ok := l.labels[kind]
	if !ok {
		l.log.WarnContext(ctx, "unknown label kind", slog.String("kind", string(kind)))
		for _, id := range ids {
			out[id] = ""
		}
		return out
	}

	keys := dedupe(ids)
	values, errs := loader.LoadMany(ctx, keys)()
	for i, id := range keys {
		if errs != nil && errs[i] != nil {
			l.log.DebugContext(ctx, "label unresolved",
				slog.String("kind", string(kind)), slog.Int64("id", id), slog.String("error", errs[i].Error()))
			out[id] = ""
			continue
		}
		out[id] = values[i]
	}
	return out
}

// Authors resolves each author id. Ids that cannot be resolved are absent.
func (l *Loaders) Authors(ctx context.Context, ids []int64) map[int64]domain.ResolvedAuthor {
	keys := dedupe(ids)
	out := make(map[int64]domain.ResolvedAuthor, len(keys))

	values, errs := l.authors.LoadMany(ctx, keys)()
	for i, id := range keys {
		if errs != nil && errs[i] != nil {
			l.log.DebugContext(ctx, "author unresolved",
				slog.Int64("author_id", id), slog.String("error", errs[i].Error()))
			continue
		}
		out[id] = values[i]
	}
	return out
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
func FromContext(ctx context.Context) (*Loaders, bool) {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	return l, ok && l != nil
}

// Source serves lookups from the request's loaders, or from a fresh set when
// the context carries none (CLI runs, tests).
type Source struct {
	repos *Repos
	log   *slog.Logger
}

// NewSource creates a Source over repos.
func NewSource(repos *Repos, logger *slog.Logger) *Source {
	return &Source{repos: repos, log: logger}
}

func (s *Source) loaders(ctx context.Context) *Loaders {
	if l, ok := FromContext(ctx); ok {
		return l
	}
	return NewLoaders(s.repos, s.log)
}

// Labels implements the report labeler.
func (s *Source) Labels(ctx context.Context, kind domain.LabelKind, ids []int64) map[int64]string {
	return s.loaders(ctx).Labels(ctx, kind, ids)
}

// Authors implements the report author lookup.
func (s *Source) Authors(ctx context.Context, ids []int64) map[int64]domain.ResolvedAuthor {
	return s.loaders(ctx).Authors(ctx, ids)
}
