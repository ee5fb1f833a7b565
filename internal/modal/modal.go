// Package modal tracks which dialog a page has open. At most one modal is
// open at a time; opening another replaces it.
package modal

// Kind names a dialog.
type Kind string

const (
	KindDetail        Kind = "detail"
	KindCreate        Kind = "create"
	KindEdit          Kind = "edit"
	KindConfirmDelete Kind = "confirmDelete"
	KindApprove       Kind = "approve"
	KindReject        Kind = "reject"
)

// State is either Closed or Open.
type State interface {
	isState()
}

// Closed means no dialog is shown.
type Closed struct{}

// Open carries the dialog kind and the entity it acts on.
type Open struct {
	Kind    Kind
	Payload any
}

func (Closed) isState() {}
func (Open) isState()   {}

// Action is one of OpenModal, CloseModal or ReplacePayload.
type Action interface {
	isAction()
}

type OpenModal struct {
	Kind    Kind
	Payload any
}

type CloseModal struct{}

// ReplacePayload swaps the payload of the open dialog, for example after the
// entity was refreshed. It is ignored while closed.
type ReplacePayload struct {
	Payload any
}

func (OpenModal) isAction()      {}
func (CloseModal) isAction()     {}
func (ReplacePayload) isAction() {}

// Reduce returns the state after applying a. A nil state counts as Closed and
// unknown actions leave the state unchanged.
func Reduce(s State, a Action) State {
	if s == nil {
		s = Closed{}
	}
	switch act := a.(type) {
	case OpenModal:
		return Open{Kind: act.Kind, Payload: act.Payload}
	case CloseModal:
		return Closed{}
	case ReplacePayload:
		if open, ok := s.(Open); ok {
			open.Payload = act.Payload
			return open
		}
	}
	return s
}

// IsOpen reports whether s is an open dialog of the given kind.
func IsOpen(s State, kind Kind) bool {
	open, ok := s.(Open)
	return ok && open.Kind == kind
}

// PayloadOf returns the open dialog's payload when it has type T.
func PayloadOf[T any](s State) (T, bool) {
	var zero T
	open, ok := s.(Open)
	if !ok {
		return zero, false
	}
	p, ok := open.Payload.(T)
	return p, ok
}
