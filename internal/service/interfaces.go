package service

import (
	"context"
)

// ReportCache is the read-through store for report aggregates
type ReportCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context) error
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, string, any) error         { return nil }
func (noopCache) Invalidate(context.Context) error               { return nil }
