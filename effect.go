package flux

import "context"

// Effect describes deferred asynchronous work scheduled by a reducer. The
// zero value is a no-op. Effects are inert descriptions; the store owning
// the dispatching reducer runs them after the new state has been committed.
type Effect[A any] struct {
	ops []effectOp[A]
}

type effectOp[A any] struct {
	// id is the cancellation identity, empty for uncancellable work.
	id string
	// cancelID, when non-empty, cancels in-flight ops sharing that identity.
	cancelID string
	run      func(ctx context.Context, send func(A))
}

// None returns an effect that does nothing. Equivalent to the zero value;
// it exists so reducers can be explicit about matched-but-effectless arms.
func None[A any]() Effect[A] {
	return Effect[A]{}
}

// Run wraps fn in an effect. fn executes on its own goroutine once the
// dispatch that produced it has committed. Follow-up actions go through
// send, which re-enters the store's serialized dispatch. fn must observe
// ctx at its suspension points; ctx is done when the effect is cancelled
// by identity or the store is closed.
func Run[A any](fn func(ctx context.Context, send func(A))) Effect[A] {
	return Effect[A]{ops: []effectOp[A]{{run: fn}}}
}

// Send returns an effect that immediately feeds action back into dispatch.
// Useful when one rule wants to trigger another rule's arm without calling
// it directly.
func Send[A any](action A) Effect[A] {
	return Run(func(ctx context.Context, send func(A)) {
		send(action)
	})
}

// Cancel returns an effect that cancels every in-flight effect started
// with the given identity. Cancelling an identity with nothing in flight
// is a no-op.
func Cancel[A any](id string) Effect[A] {
	return Effect[A]{ops: []effectOp[A]{{cancelID: id}}}
}

// Batch merges effects preserving order. Zero-op effects vanish.
func Batch[A any](effects ...Effect[A]) Effect[A] {
	var merged Effect[A]
	for _, e := range effects {
		merged.ops = append(merged.ops, e.ops...)
	}
	return merged
}

// WithID marks every op in e as cancellable under id. A later Cancel(id)
// signals their contexts. Identities are store-global: two lifted copies of
// the same feature must use distinct identities.
func (e Effect[A]) WithID(id string) Effect[A] {
	ops := make([]effectOp[A], len(e.ops))
	copy(ops, e.ops)
	for i := range ops {
		if ops[i].run != nil {
			ops[i].id = id
		}
	}
	return Effect[A]{ops: ops}
}

// IsNone reports whether the effect carries no work and no cancellations.
func (e Effect[A]) IsNone() bool {
	return len(e.ops) == 0
}

// MapEffect rebases an effect's action type. Lift uses it to wrap a child
// reducer's effects so their follow-up actions re-enter the parent store in
// the parent's action shape. Cancellation identities pass through unchanged.
func MapEffect[A, B any](e Effect[A], f func(A) B) Effect[B] {
	if len(e.ops) == 0 {
		return Effect[B]{}
	}
	ops := make([]effectOp[B], 0, len(e.ops))
	for _, op := range e.ops {
		mapped := effectOp[B]{id: op.id, cancelID: op.cancelID}
		if op.run != nil {
			inner := op.run
			mapped.run = func(ctx context.Context, send func(B)) {
				inner(ctx, func(a A) { send(f(a)) })
			}
		}
		ops = append(ops, mapped)
	}
	return Effect[B]{ops: ops}
}
