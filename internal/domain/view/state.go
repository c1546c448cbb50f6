// Package view models the per-view load lifecycle shared by every dashboard list.
package view

import (
	"github.com/net4grad/alumni-web/internal/domain/search"
)

// Status is the lifecycle phase of a view.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusPopulated Status = "populated"
	StatusEmpty     Status = "empty"
	StatusErrored   Status = "errored"
)

// Terminal reports whether no load is in flight.
func (s Status) Terminal() bool {
	return s == StatusPopulated || s == StatusEmpty || s == StatusErrored
}

// State holds everything one view renders. Views never share State values.
type State[T any] struct {
	Entity     string
	Status     Status
	All        []T
	Visible    []T
	SearchTerm string
	Message    string
}

// New returns an idle view for the named entity (plural, e.g. "students").
func New[T any](entity string) State[T] {
	return State[T]{Entity: entity, Status: StatusIdle}
}

// Begin enters Loading. It is valid from any phase so a refresh can restart a view.
func (s State[T]) Begin() State[T] {
	s.Status = StatusLoading
	s.Message = ""
	return s
}

// Resolve leaves Loading with the outcome of a fetch. A non-nil err always
// lands in Errored and discards any previously loaded items.
func (s State[T]) Resolve(items []T, err error) State[T] {
	if err != nil {
		s.Status = StatusErrored
		s.All = nil
		s.Visible = nil
		s.Message = "Failed to load " + s.Entity
		return s
	}
	s.All = items
	s.Visible = items
	if len(items) == 0 {
		s.Status = StatusEmpty
		s.Message = s.EmptyMessage()
		return s
	}
	s.Status = StatusPopulated
	s.Message = ""
	return s
}

// Search narrows Visible to the items matching term. The full fetched list
// is kept so each new term is evaluated against everything.
func (s State[T]) Search(term string, fields ...search.Field[T]) State[T] {
	s.SearchTerm = term
	if s.Status == StatusErrored {
		return s
	}
	s.Visible = search.Filter(s.All, term, fields...)
	return s
}

// EmptyMessage is the text shown when there is nothing to list.
func (s State[T]) EmptyMessage() string {
	return "No " + s.Entity + " found"
}

// ShowEmpty reports whether the empty-state message should render.
func (s State[T]) ShowEmpty() bool {
	return s.Status != StatusErrored && s.Status.Terminal() && len(s.Visible) == 0
}

// IsErrored reports whether the last load failed.
func (s State[T]) IsErrored() bool { return s.Status == StatusErrored }

// IsLoading reports whether a load is in flight.
func (s State[T]) IsLoading() bool { return s.Status == StatusLoading }
