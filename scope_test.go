package flux

import "testing"

func scopeTab1(store StoreOf[tabsState, tabsAction]) *ScopedStore[tabsState, tabsAction, counterState, counterAction] {
	return Scope(store,
		func(s tabsState) counterState { return s.Tab1 },
		func(a counterAction) tabsAction { return tab1Action{Action: a} },
	)
}

func TestScopedStoreRoundTrip(t *testing.T) {
	store := New(tabsState{Tab1: counterState{Count: 4}}, tabsReducer())
	defer store.Close()
	scoped := scopeTab1(store)

	before := scoped.State()
	want, _ := counterReducer(before, counterIncrement)
	scoped.Send(counterIncrement)
	if got := scoped.State(); got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestScopedStoreOwnsNoState(t *testing.T) {
	store := New(tabsState{}, tabsReducer())
	defer store.Close()
	scoped := scopeTab1(store)

	// Mutations through the parent are visible through the scope without
	// any refresh step.
	store.Send(tab1Action{counterIncrement})
	store.Send(tab1Action{counterIncrement})
	if got := scoped.State().Count; got != 2 {
		t.Fatalf("scope lagging parent: %d", got)
	}
	if got := store.State().Tab2.Count; got != 0 {
		t.Fatalf("sibling slice touched: %d", got)
	}
}

func TestScopedStoreRelaysEveryParentCommit(t *testing.T) {
	store := New(tabsState{}, tabsReducer())
	defer store.Close()
	scoped := scopeTab1(store)

	var seen []counterState
	unsub := scoped.Subscribe(func(s counterState) { seen = append(seen, s) })
	defer unsub()

	store.Send(tab1Action{counterIncrement})
	store.Send(tab2Action{counterIncrement}) // unrelated slice, still relayed
	if len(seen) != 2 {
		t.Fatalf("expected 2 relayed commits, got %d", len(seen))
	}
	if seen[0].Count != 1 || seen[1].Count != 1 {
		t.Fatalf("relayed projections wrong: %+v", seen)
	}
}

func TestScopesCompose(t *testing.T) {
	type pair struct{ Left, Right tabsState }
	type pairAction struct{ Action tabsAction }

	lifted := Lift(tabsReducer(),
		func(s *pair) *tabsState { return &s.Left },
		func(a pairAction) (tabsAction, bool) { return a.Action, true },
		func(a tabsAction) pairAction { return pairAction{Action: a} },
	)
	store := New(pair{}, lifted)
	defer store.Close()

	left := Scope(StoreOf[pair, pairAction](store),
		func(s pair) tabsState { return s.Left },
		func(a tabsAction) pairAction { return pairAction{Action: a} },
	)
	tab1 := scopeTab1(left)

	tab1.Send(counterIncrement)
	if got := store.State().Left.Tab1.Count; got != 1 {
		t.Fatalf("nested scope did not reach root: %+v", store.State())
	}
	if got := tab1.State().Count; got != 1 {
		t.Fatalf("nested scope projection wrong: %d", got)
	}
}
