package request

// Observer is implemented by anything that registers with a Subject:
// scoring terms rebuild their indexing grids and interaction-center lists
// on Update, transforms rebuild their chromosome; everyone clears their
// back-reference on Deleted.
type Observer interface {
	// Update is called synchronously from within the subject's state
	// change; it must not itself mutate the subject.
	Update(subject any)
	// Deleted is called once, during subject teardown.
	Deleted(subject any)
}

// Subject maintains a non-owning observer list and fires notifications
// after every state change, per the design notes on cyclic subject/observer
// references: neither side owns the other.
type Subject struct {
	observers []Observer
}

// Attach registers o. Registration is idempotent: attaching the same
// Observer value twice is a no-op.
func (s *Subject) Attach(o Observer) {
	for _, existing := range s.observers {
		if existing == o {
			return
		}
	}
	s.observers = append(s.observers, o)
}

// Detach unregisters o. It is a no-op if o was never attached.
func (s *Subject) Detach(o Observer) {
	for i, existing := range s.observers {
		if existing == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Observers returns the currently attached observers. Callers must not
// retain the slice past the next Attach/Detach call.
func (s *Subject) Observers() []Observer {
	return s.observers
}

// NotifyUpdate fires Update(self) on every attached observer, in
// registration order.
func (s *Subject) NotifyUpdate(self any) {
	for _, o := range s.observers {
		o.Update(self)
	}
}

// NotifyDeleted fires Deleted(self) on every attached observer and clears
// the observer list, mirroring the subject's own teardown.
func (s *Subject) NotifyDeleted(self any) {
	for _, o := range s.observers {
		o.Deleted(self)
	}
	s.observers = nil
}
