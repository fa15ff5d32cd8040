// Package flux implements tree-shaped reducer composition: small feature
// units (state, action, reducer) are lifted into composite units, run by a
// single serialized Store, and handed to child components through scoped
// stores that project one slice of the composite state.
//
// A reducer is a pure function from (state, action) to (state, effect).
// Effects describe deferred asynchronous work; when an effect finishes it
// feeds a follow-up action back into the same store, re-entering the
// serialized dispatch path. Actions that no composed rule matches are
// no-ops, which lets independent composites share one action bus.
package flux
