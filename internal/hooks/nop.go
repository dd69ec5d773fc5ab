// Package hooks provides default hook callbacks.
package hooks

import "github.com/edugzlez/electosim/types"

// NopHooks implements every hook as a no-op.
//
// The System fills missing callbacks from it so dispatch never needs nil checks.
type NopHooks struct{}

var (
	_ func(types.Event)        = (*NopHooks)(nil).OnEvent
	_ func(types.Event, error) = (*NopHooks)(nil).OnError
)

// NewNop returns hooks whose callbacks do nothing.
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnEvent: h.OnEvent,
		OnError: h.OnError,
	}
}

// Fill returns h with every nil callback replaced by a no-op.
//
// Parameters:
//   - h: Caller supplied hooks (nil allowed)
//
// Returns:
//   - types.Hooks: Hooks safe to call without nil checks
func Fill(h *types.Hooks) types.Hooks {
	filled := NewNop()
	if h == nil {
		return filled
	}
	if h.OnEvent != nil {
		filled.OnEvent = h.OnEvent
	}
	if h.OnError != nil {
		filled.OnError = h.OnError
	}

	return filled
}

// OnEvent is a no-op implementation.
func (h *NopHooks) OnEvent(_ /* event */ types.Event) {}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ /* event */ types.Event, _ /* err */ error) {}
