package domain

import (
	"fmt"
	"strings"
)

// Item is one draggable unit. Payload and StyleTag are display data carried along moves.
type Item[P any] struct {
	ID       string
	Payload  P
	StyleTag string
}

// NewItem constructs an item with a trimmed, non-empty id.
func NewItem[P any](id string, payload P, styleTag string) (Item[P], error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Item[P]{}, ErrInvalidID
	}
	return Item[P]{
		ID:       id,
		Payload:  payload,
		StyleTag: strings.TrimSpace(styleTag),
	}, nil
}

// Container is a labeled, ordered bucket of items.
type Container[P any] struct {
	ID    string
	Label string
	Items []Item[P]
}

// NewContainer constructs a container and rejects item ids repeated inside it.
func NewContainer[P any](id, label string, items []Item[P]) (Container[P], error) {
	id = strings.TrimSpace(id)
	label = strings.TrimSpace(label)
	if id == "" {
		return Container[P]{}, ErrInvalidID
	}
	if label == "" {
		return Container[P]{}, ErrInvalidLabel
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ID == "" {
			return Container[P]{}, ErrInvalidID
		}
		if _, ok := seen[item.ID]; ok {
			return Container[P]{}, fmt.Errorf("%w: item %q in container %q", ErrDuplicateID, item.ID, id)
		}
		seen[item.ID] = struct{}{}
	}
	return Container[P]{
		ID:    id,
		Label: label,
		Items: append([]Item[P](nil), items...),
	}, nil
}

// IndexOf returns the position of the item with the given id, or -1.
func (c Container[P]) IndexOf(itemID string) int {
	for idx, item := range c.Items {
		if item.ID == itemID {
			return idx
		}
	}
	return -1
}

// Contains reports whether the container currently holds the item.
func (c Container[P]) Contains(itemID string) bool {
	return c.IndexOf(itemID) >= 0
}

// withItems returns a copy of the container holding the given item list.
func (c Container[P]) withItems(items []Item[P]) Container[P] {
	c.Items = items
	return c
}
