// Package model holds the route domain records. Every scalar is a pointer
// so that a missing JSON key, an explicit null and a NULL column all read as
// nil; required fields are enforced by the validate tags, not by the types.
package model

// Ref is the JSON shape of a many-to-one link: {"id": 3}.
type Ref struct {
	ID int64 `json:"id"`
}

// NewRef returns a reference to id.
func NewRef(id int64) *Ref { return &Ref{ID: id} }

// RefID returns the referenced id or nil for an absent reference.
func RefID(r *Ref) *int64 {
	if r == nil {
		return nil
	}
	id := r.ID
	return &id
}

// RefFrom is the inverse of RefID and is used when scanning foreign key columns.
func RefFrom(id *int64) *Ref {
	if id == nil {
		return nil
	}
	return &Ref{ID: *id}
}
