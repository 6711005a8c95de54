package ports

import "context"

// Transactor runs fn in a single all-or-nothing unit of work. Repository calls
// made with the ctx passed to fn take part in the transaction. fn may be
// invoked more than once when the store retries a transient conflict.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SettlementLocker serializes settlement per user. Lock returns
// domain.ErrSettlementInProgress when another settlement holds the lock.
type SettlementLocker interface {
	Lock(ctx context.Context, userID int64) (unlock func(context.Context) error, err error)
}
