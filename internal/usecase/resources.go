package usecase

import (
	"context"
	"fmt"

	"github.com/clinicdesk/clinicctl/internal/adapter/gateway"
	"github.com/clinicdesk/clinicctl/internal/domain"
	"github.com/clinicdesk/clinicctl/internal/infrastructure/cache"
)

// Resources binds every API operation to the cache: reads declare the
// tags they provide, writes declare the tags they invalidate. All CLI
// data access goes through here so the invalidation contract holds for
// every caller.
type Resources struct {
	gw *gateway.Client
	qc *cache.QueryCache
}

// NewResources creates the resource bindings.
func NewResources(gw *gateway.Client, qc *cache.QueryCache) *Resources {
	return &Resources{gw: gw, qc: qc}
}

// Cache exposes the underlying query cache for subscriptions.
func (r *Resources) Cache() *cache.QueryCache {
	return r.qc
}

// runQuery executes a typed read through the cache.
func runQuery[T any](ctx context.Context, qc *cache.QueryCache, key string, fetch func(context.Context) (T, domain.TagSet, error)) (T, error) {
	v, err := qc.Fetch(ctx, cache.Query{
		Key: key,
		Fetch: func(ctx context.Context) (any, domain.TagSet, error) {
			data, provides, err := fetch(ctx)
			if err != nil {
				return nil, nil, err
			}
			return data, provides, nil
		},
	})
	var zero T
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry %s holds %T", key, v)
	}
	return out, nil
}

// runMutation executes a typed write through the cache so invalidation
// is issued before the caller sees success.
func runMutation[T any](ctx context.Context, qc *cache.QueryCache, name string, invalidates domain.TagSet, run func(context.Context) (T, error)) (T, error) {
	v, err := qc.Mutate(ctx, cache.Mutation{
		Name:        name,
		Invalidates: invalidates,
		Run: func(ctx context.Context) (any, error) {
			return run(ctx)
		},
	})
	var zero T
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("mutation %s returned %T", name, v)
	}
	return out, nil
}

// listProvides builds the provided set for a collection fetch: the list
// tag plus one entity tag per returned row, so a later write to any
// single row stales the listing too.
func listProvides[T any](typ domain.TagType, items []T, id func(T) string) domain.TagSet {
	provides := domain.NewTagSet(domain.ListTag(typ))
	for _, item := range items {
		provides.Add(domain.EntityTag(typ, id(item)))
	}
	return provides
}
