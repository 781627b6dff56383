package errors

import "errors"

// ErrOptimisticLock the row changed since it was read; reload and retry.
var ErrOptimisticLock = errors.New("record was modified by another operation")
