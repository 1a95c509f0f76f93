package repositories

import "context"

// TransactionManager runs a unit of work in one database transaction.
// Repository calls made with the ctx passed to fn join that transaction;
// fn returning an error rolls everything back.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
