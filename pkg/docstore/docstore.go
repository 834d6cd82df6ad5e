// Package docstore abstracts the backend document database holding account
// documents. The core only ever needs point reads, field-path updates with
// array append, equality queries, and an all-or-nothing multi-document batch;
// the interface is kept that narrow on purpose.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Users is the collection holding one document per account.
const Users = "users"

// Notifications returns the per-account notifications sub-collection name.
func Notifications(userID string) string {
	return Users + "/" + userID + "/notifications"
}

// ErrNotFound is returned by Get when no document exists under the id.
var ErrNotFound = errors.New("document not found")

// Document is one stored document: an id plus a JSON-shaped field map.
type Document struct {
	ID     string
	Fields map[string]any
}

// ArrayUnion marks an update value as an append to an array field instead of
// a replacement.
type ArrayUnion struct {
	Values []any
}

// FieldUpdates maps dotted field paths (e.g. "bankAccount.balanceTL") to new
// values. An ArrayUnion value appends to the addressed array.
type FieldUpdates map[string]any

// WriteOp selects the kind of write inside a batch.
type WriteOp int

const (
	// OpSet replaces the whole document.
	OpSet WriteOp = iota
	// OpUpdate applies field-path updates to an existing document.
	OpUpdate
	// OpDelete removes the document.
	OpDelete
)

// Write is one element of an atomic batch.
type Write struct {
	Collection string
	ID         string
	Op         WriteOp
	Fields     map[string]any // OpSet
	Updates    FieldUpdates   // OpUpdate
}

// Store is the account store contract. CommitBatch must apply every write or
// none; all other guarantees (uniqueness, cross-document consistency) are the
// caller's problem.
type Store interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	Set(ctx context.Context, collection, id string, fields map[string]any) error
	Update(ctx context.Context, collection, id string, updates FieldUpdates) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection, field string, value any) ([]Document, error)
	List(ctx context.Context, collection string) ([]Document, error)
	CommitBatch(ctx context.Context, writes []Write) error
	Ping(ctx context.Context) error
}

// ApplyUpdates applies dotted-path updates to a field map in place.
// Intermediate maps are created as needed. Shared by store implementations so
// field-path semantics stay identical across backends.
func ApplyUpdates(fields map[string]any, updates FieldUpdates) error {
	for path, value := range updates {
		if err := applyPath(fields, path, value); err != nil {
			return fmt.Errorf("apply %q: %w", path, err)
		}
	}
	return nil
}

func applyPath(fields map[string]any, path string, value any) error {
	parts := strings.Split(path, ".")
	node := fields
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part]
		if !ok {
			next := make(map[string]any)
			node[part] = next
			node = next
			continue
		}
		childMap, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("segment %q is not a map", part)
		}
		node = childMap
	}
	leaf := parts[len(parts)-1]
	if union, ok := value.(ArrayUnion); ok {
		existing, _ := node[leaf].([]any)
		node[leaf] = append(existing, union.Values...)
		return nil
	}
	node[leaf] = value
	return nil
}
