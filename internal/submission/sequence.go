package submission

import "context"

// SequenceAllocator hands out the next voucher number for a worker. It is only
// valid inside an open submit transaction: the increment is undone if that
// transaction rolls back, and concurrent callers for the same worker are
// serialized by the store.
type SequenceAllocator interface {
	AllocateNext(ctx context.Context, workerID string) (int64, error)
}
