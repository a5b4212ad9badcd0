package domain

import (
	"fmt"
	"slices"
)

// Board is the ordered arrangement of containers. Board values are treated as
// immutable: every mutation returns a new Board and containers that did not
// change keep sharing their item storage with the previous value.
type Board[P any] struct {
	Containers []Container[P]
}

// NewBoard validates and assembles a board. Container ids are unique, item ids
// are unique across the whole board, and no item id shadows a container id.
func NewBoard[P any](containers ...Container[P]) (Board[P], error) {
	containerIDs := make(map[string]struct{}, len(containers))
	for _, container := range containers {
		if container.ID == "" {
			return Board[P]{}, ErrInvalidID
		}
		if _, ok := containerIDs[container.ID]; ok {
			return Board[P]{}, fmt.Errorf("%w: container %q", ErrDuplicateID, container.ID)
		}
		containerIDs[container.ID] = struct{}{}
	}
	itemOwner := map[string]string{}
	for _, container := range containers {
		for _, item := range container.Items {
			if item.ID == "" {
				return Board[P]{}, ErrInvalidID
			}
			if _, ok := containerIDs[item.ID]; ok {
				return Board[P]{}, fmt.Errorf("%w: item %q collides with a container id", ErrDuplicateID, item.ID)
			}
			if owner, ok := itemOwner[item.ID]; ok {
				return Board[P]{}, fmt.Errorf("%w: item %q in containers %q and %q", ErrDuplicateID, item.ID, owner, container.ID)
			}
			itemOwner[item.ID] = container.ID
		}
	}
	return Board[P]{Containers: append([]Container[P](nil), containers...)}, nil
}

// FindContainer resolves an id that is either a container id or an item id to
// the container that currently owns it. Direct container matches win.
func (b Board[P]) FindContainer(id string) (Container[P], bool) {
	idx := b.containerIndex(id)
	if idx < 0 {
		return Container[P]{}, false
	}
	return b.Containers[idx], true
}

// FindItem returns the first item with the given id scanning containers in order.
func (b Board[P]) FindItem(id string) (Item[P], bool) {
	if id == "" {
		return Item[P]{}, false
	}
	for _, container := range b.Containers {
		if idx := container.IndexOf(id); idx >= 0 {
			return container.Items[idx], true
		}
	}
	return Item[P]{}, false
}

// ItemIDs lists every item id in board order.
func (b Board[P]) ItemIDs() []string {
	out := make([]string, 0)
	for _, container := range b.Containers {
		for _, item := range container.Items {
			out = append(out, item.ID)
		}
	}
	return out
}

// ItemCount returns the number of items on the board.
func (b Board[P]) ItemCount() int {
	total := 0
	for _, container := range b.Containers {
		total += len(container.Items)
	}
	return total
}

// MoveItem removes the item from one container and appends it to another. It
// reports false and returns the board unchanged when either container is
// unknown, they are the same container, or the source does not hold the item.
func (b Board[P]) MoveItem(itemID, fromContainerID, toContainerID string) (Board[P], bool) {
	fromIdx := b.exactContainerIndex(fromContainerID)
	toIdx := b.exactContainerIndex(toContainerID)
	if fromIdx < 0 || toIdx < 0 || fromIdx == toIdx {
		return b, false
	}
	source := b.Containers[fromIdx]
	itemIdx := source.IndexOf(itemID)
	if itemIdx < 0 {
		return b, false
	}
	moving := source.Items[itemIdx]

	sourceItems := make([]Item[P], 0, len(source.Items)-1)
	sourceItems = append(sourceItems, source.Items[:itemIdx]...)
	sourceItems = append(sourceItems, source.Items[itemIdx+1:]...)

	target := b.Containers[toIdx]
	targetItems := make([]Item[P], 0, len(target.Items)+1)
	targetItems = append(targetItems, target.Items...)
	targetItems = append(targetItems, moving)

	containers := slices.Clone(b.Containers)
	containers[fromIdx] = source.withItems(sourceItems)
	containers[toIdx] = target.withItems(targetItems)
	return Board[P]{Containers: containers}, true
}

// ReorderItem moves an item within one container to the index currently held
// by overID. Items between the two positions shift by one. It reports false
// when the container or either index cannot be resolved, or nothing moves.
func (b Board[P]) ReorderItem(containerID, itemID, overID string) (Board[P], bool) {
	cIdx := b.exactContainerIndex(containerID)
	if cIdx < 0 {
		return b, false
	}
	container := b.Containers[cIdx]
	from := container.IndexOf(itemID)
	to := container.IndexOf(overID)
	if from < 0 || to < 0 || from == to {
		return b, false
	}
	containers := slices.Clone(b.Containers)
	containers[cIdx] = container.withItems(moveWithin(container.Items, from, to))
	return Board[P]{Containers: containers}, true
}

// containerIndex implements the owner lookup behind FindContainer.
func (b Board[P]) containerIndex(id string) int {
	if id == "" {
		return -1
	}
	if idx := b.exactContainerIndex(id); idx >= 0 {
		return idx
	}
	for idx, container := range b.Containers {
		if container.Contains(id) {
			return idx
		}
	}
	return -1
}

// exactContainerIndex matches container ids only.
func (b Board[P]) exactContainerIndex(id string) int {
	if id == "" {
		return -1
	}
	for idx, container := range b.Containers {
		if container.ID == id {
			return idx
		}
	}
	return -1
}

// moveWithin returns a copy of items with items[from] relocated to index to.
func moveWithin[T any](items []T, from, to int) []T {
	moved := items[from]
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	return slices.Insert(out, to, moved)
}
