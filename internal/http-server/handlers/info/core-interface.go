package info

import "context"

// Core is the info block storage the handlers depend on.
type Core interface {
	GetInfoContent(ctx context.Context) (string, error)
	UpdateInfoContent(ctx context.Context, content string) error
}
