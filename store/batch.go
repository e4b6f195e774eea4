package store

import "github.com/iov-one/quorum/errors"

// Op is a single queued write, either a set or a delete.
type Op struct {
	key    []byte
	value  []byte
	delete bool
}

// SetOp returns an operation storing value under key.
func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

// DelOp returns an operation removing key.
func DelOp(key []byte) Op {
	return Op{key: key, delete: true}
}

// Apply runs the operation against out.
func (o Op) Apply(out SetDeleter) error {
	if o.delete {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch queues writes and replays them in order on Write. It is
// only safe over stores that cannot fail half way, such as caches and the
// in-memory iavl working tree.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch returns an empty batch writing to out.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

// Set queues a set operation.
func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

// Delete queues a delete operation.
func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write replays all queued operations and empties the batch.
func (b *NonAtomicBatch) Write() error {
	for i, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return errors.Wrapf(err, "operation %d", i)
		}
	}
	b.Reset()
	return nil
}

// Reset drops all queued operations.
func (b *NonAtomicBatch) Reset() {
	b.ops = nil
}

// Len returns the number of queued operations.
func (b *NonAtomicBatch) Len() int {
	return len(b.ops)
}
