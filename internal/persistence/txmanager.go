package persistence

import "context"

// TxManager runs a function inside a single atomic unit of work.
// Everything performed with the callback context either commits as a whole
// or is rolled back as a whole.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(txCtx context.Context) (any, error)) (any, error)
}
