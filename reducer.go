package flux

// Reducer is a pure transition function. It returns the next state and an
// effect describing any deferred work. Reducers never fail: an action the
// reducer does not recognise must be returned as-is with a zero effect.
type Reducer[S, A any] func(state S, action A) (S, Effect[A])

// Combine runs every reducer in argument order against the same action,
// threading state through and concatenating effects. Argument order is the
// protocol: a composite that wants its local rule to observe child actions
// after the child slices have settled lists the lifted children first and
// the local rule last.
func Combine[S, A any](reducers ...Reducer[S, A]) Reducer[S, A] {
	return func(state S, action A) (S, Effect[A]) {
		var effects []Effect[A]
		for _, r := range reducers {
			var e Effect[A]
			state, e = r(state, action)
			if !e.IsNone() {
				effects = append(effects, e)
			}
		}
		return state, Batch(effects...)
	}
}

// Lift embeds a child reducer into a parent. state is a pointer lens
// selecting the child's slice of the parent state; extract recognises the
// parent action case carrying a child action; embed wraps a child action
// back into that case so the child's effects re-enter the parent store.
//
// Exactly one child fires per action: a parent action whose case extract
// rejects passes through untouched, so lifted siblings never see each
// other's slices.
func Lift[PS, PA, CS, CA any](
	child Reducer[CS, CA],
	state func(*PS) *CS,
	extract func(PA) (CA, bool),
	embed func(CA) PA,
) Reducer[PS, PA] {
	return func(parent PS, action PA) (PS, Effect[PA]) {
		ca, ok := extract(action)
		if !ok {
			return parent, Effect[PA]{}
		}
		slice := state(&parent)
		next, eff := child(*slice, ca)
		*slice = next
		return parent, MapEffect(eff, embed)
	}
}
