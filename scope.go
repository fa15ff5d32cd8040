package flux

// ScopedStore is a read/write view over a parent store. It owns no state:
// State re-projects the parent's latest commit, Send wraps the child action
// through inject and forwards it, and Subscribe relays every parent commit
// (projected) to the child's observer. Because nothing is cached, the
// child's observed state is always exactly the slice the parent last
// computed.
type ScopedStore[PS, PA, CS, CA any] struct {
	parent StoreOf[PS, PA]
	get    func(PS) CS
	inject func(CA) PA
}

// Scope derives a scoped store from parent. get projects the child's slice
// out of the parent state; inject wraps a child action into the parent
// case that routes back to the child's reducer. Scopes compose: the parent
// may itself be a ScopedStore.
func Scope[PS, PA, CS, CA any](
	parent StoreOf[PS, PA],
	get func(PS) CS,
	inject func(CA) PA,
) *ScopedStore[PS, PA, CS, CA] {
	return &ScopedStore[PS, PA, CS, CA]{parent: parent, get: get, inject: inject}
}

func (s *ScopedStore[PS, PA, CS, CA]) State() CS {
	return s.get(s.parent.State())
}

func (s *ScopedStore[PS, PA, CS, CA]) Send(action CA) {
	s.parent.Send(s.inject(action))
}

// Subscribe relays every parent commit, not only commits that changed the
// projected slice. Callers needing change detection compare states
// themselves; the slice is a value and supports equality when its fields do.
func (s *ScopedStore[PS, PA, CS, CA]) Subscribe(fn func(CS)) func() {
	return s.parent.Subscribe(func(state PS) {
		fn(s.get(state))
	})
}
