// Package activatable tracks the links and mentions discovered during a render
// pass and owns keyboard focus over them.
//
// The registry is rebuilt on every pass: Reset clears it, the content renderer
// appends elements in render order, and Restore re-applies the previous focus
// clamped to the new length. Focus is a plain index into the current pass,
// never a reference that could outlive it.
package activatable

import (
	"fmt"

	"github.com/CrestNiraj12/orgfeed/domain"
)

// Kind distinguishes generic links from participant mentions.
type Kind int

const (
	KindLink Kind = iota
	KindMention
)

func (k Kind) String() string {
	if k == KindMention {
		return "mention"
	}
	return "link"
}

// Element is one activatable span of the current render pass.
type Element struct {
	Kind     Kind
	Target   string // URL for links, canonical feed URL for mentions; empty when unresolved
	Label    string // text shown on screen
	Row      int    // content row the span starts on
	ColStart int    // inclusive display column
	ColEnd   int    // exclusive display column
	Seq      int    // position in render order, equal to its registry index
}

// Available reports whether the element has a target that can be opened.
func (e Element) Available() bool {
	return e.Target != ""
}

const noFocus = -1

// Registry is the per-pass, render-ordered set of activatable elements.
// The zero value is an empty registry with no focus.
type Registry struct {
	elements []Element
	focus    int // index+1; 0 means no focus so the zero value is usable
}

// Reset clears all elements and the focus. Call it at the start of every pass.
func (r *Registry) Reset() {
	r.elements = nil
	r.focus = 0
}

// Register appends e in render order and returns its index.
func (r *Registry) Register(e Element) int {
	idx := len(r.elements)
	e.Seq = idx
	r.elements = append(r.elements, e)
	return idx
}

// Len returns the number of elements registered in the current pass.
func (r *Registry) Len() int {
	return len(r.elements)
}

// Elements returns the registered elements. The slice is only valid until the next Reset.
func (r *Registry) Elements() []Element {
	return r.elements
}

// FocusIndex returns the focused index, if any.
func (r *Registry) FocusIndex() (int, bool) {
	if r.focus == 0 {
		return noFocus, false
	}
	return r.focus - 1, true
}

// Focused returns the focused element, if any.
func (r *Registry) Focused() (Element, bool) {
	idx, ok := r.FocusIndex()
	if !ok {
		return Element{}, false
	}
	return r.elements[idx], true
}

// FocusNext moves focus forward by one, wrapping to the first element.
// With no focus it lands on the first element. No-op on an empty registry.
func (r *Registry) FocusNext() {
	n := len(r.elements)
	if n == 0 {
		return
	}
	idx, ok := r.FocusIndex()
	if !ok {
		r.focus = 1
		return
	}
	r.focus = (idx+1)%n + 1
}

// FocusPrevious moves focus back by one, wrapping to the last element.
// With no focus it lands on the last element. No-op on an empty registry.
func (r *Registry) FocusPrevious() {
	n := len(r.elements)
	if n == 0 {
		return
	}
	idx, ok := r.FocusIndex()
	if !ok {
		r.focus = n
		return
	}
	r.focus = (idx-1+n)%n + 1
}

// ClearFocus drops the focus without touching the elements.
func (r *Registry) ClearFocus() {
	r.focus = 0
}

// Restore re-applies a focus index from a previous pass, clamped to the
// current length. A negative index or an empty registry leaves no focus.
func (r *Registry) Restore(idx int) {
	n := len(r.elements)
	if idx < 0 || n == 0 {
		r.focus = 0
		return
	}
	if idx >= n {
		idx = n - 1
	}
	r.focus = idx + 1
}

// IsFocused reports whether index is the focused element.
func (r *Registry) IsFocused(index int) bool {
	idx, ok := r.FocusIndex()
	return ok && idx == index
}

// IsMentionFocused reports whether index is a mention and is the focused element.
func (r *Registry) IsMentionFocused(index int) bool {
	if !r.IsFocused(index) {
		return false
	}
	return r.elements[index].Kind == KindMention
}

// Activate returns the target of the element at index.
func (r *Registry) Activate(index int) (string, error) {
	if len(r.elements) == 0 {
		return "", domain.ErrEmptyRegistry
	}
	if index < 0 || index >= len(r.elements) {
		return "", fmt.Errorf("%w: %d of %d", domain.ErrIndexOutOfRange, index, len(r.elements))
	}
	e := r.elements[index]
	if !e.Available() {
		return "", fmt.Errorf("%s %s: %w", e.Kind, e.Label, domain.ErrTargetUnavailable)
	}
	return e.Target, nil
}

// ActivateFocused activates the focused element, or reports ErrEmptyRegistry
// when nothing is focused.
func (r *Registry) ActivateFocused() (string, error) {
	idx, ok := r.FocusIndex()
	if !ok {
		return "", domain.ErrEmptyRegistry
	}
	return r.Activate(idx)
}
