package feedsync

import (
	"feedpad/internal/api"
)

// Projection is the client-side view of one feed's item list. It is a
// read-through copy, never the authoritative one: every mutation here only
// mirrors a change the server already accepted. The projection is owned by
// the view's update loop; network calls happen elsewhere and their results
// are applied through the Apply methods, each of which checks the result
// against the still-current feed name so stale responses from a closed view
// are dropped.
type Projection struct {
	feedName string
	secret   string
	items    []api.Item
	fetched  bool
}

func New(feedName string) *Projection {
	return &Projection{feedName: feedName}
}

func (p *Projection) FeedName() string { return p.feedName }
func (p *Projection) Secret() string   { return p.secret }

// SetSecret records the session secret and reports whether it changed. A
// change marks the projection stale so the caller re-fetches.
func (p *Projection) SetSecret(secret string) bool {
	if secret == "" || secret == p.secret {
		return false
	}
	p.secret = secret
	p.fetched = false
	return true
}

// NeedsRefresh reports whether a fetch should be issued: the secret is known
// and no fetch has succeeded since it was set.
func (p *Projection) NeedsRefresh() bool {
	return p.secret != "" && !p.fetched
}

// MarkStale forces the next NeedsRefresh to report true.
func (p *Projection) MarkStale() {
	p.fetched = false
}

// ApplyItems replaces the projection with a fetched item list. It reports
// false, leaving the projection untouched, when the result belongs to a
// different feed.
func (p *Projection) ApplyItems(feedName string, items []api.Item) bool {
	if feedName != p.feedName {
		return false
	}
	p.items = append(p.items[:0:0], items...)
	p.fetched = true
	return true
}

// ApplyDelete removes one item after the server confirmed the delete.
func (p *Projection) ApplyDelete(feedName, itemName string) bool {
	if feedName != p.feedName {
		return false
	}
	for i, item := range p.items {
		if item.Name == itemName {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return true
		}
	}
	return false
}

// ApplyRename updates an item's names in place. Kind and creation date are
// immutable and stay as they were.
func (p *Projection) ApplyRename(feedName, oldName, newName string) bool {
	if feedName != p.feedName {
		return false
	}
	for i := range p.items {
		if p.items[i].Name == oldName {
			p.items[i].Name = newName
			p.items[i].DisplayName = newName
			return true
		}
	}
	return false
}

// ApplyPurge clears the projection after a confirmed delete-all.
func (p *Projection) ApplyPurge(feedName string) bool {
	if feedName != p.feedName {
		return false
	}
	p.items = p.items[:0]
	return true
}

// ApplyEvent folds one real-time change notification into the projection.
// Events are idempotent: re-adding a known item replaces it, removing or
// renaming a missing one is a no-op.
func (p *Projection) ApplyEvent(feedName string, event api.Event) bool {
	if feedName != p.feedName {
		return false
	}
	switch event.Action {
	case api.EventAdd:
		if event.Item == nil {
			return false
		}
		for i := range p.items {
			if p.items[i].Name == event.Item.Name {
				p.items[i] = *event.Item
				return true
			}
		}
		p.items = append([]api.Item{*event.Item}, p.items...)
		return true
	case api.EventRemove:
		if event.Item == nil {
			return false
		}
		return p.ApplyDelete(feedName, event.Item.Name)
	case api.EventRename:
		if event.Item == nil || event.OldName == "" {
			return false
		}
		return p.ApplyRename(feedName, event.OldName, event.Item.Name)
	}
	return false
}

// Items returns the current projection in server order.
func (p *Projection) Items() []api.Item {
	return p.items
}

func (p *Projection) Len() int {
	return len(p.items)
}

// Empty is true once the first fetch succeeded and the feed has no items.
func (p *Projection) Empty() bool {
	return p.fetched && len(p.items) == 0
}

// Find looks an item up by name.
func (p *Projection) Find(name string) (api.Item, bool) {
	for _, item := range p.items {
		if item.Name == name {
			return item, true
		}
	}
	return api.Item{}, false
}

// ItemAt returns the item at a cursor position, clamped by the caller.
func (p *Projection) ItemAt(i int) (api.Item, bool) {
	if i < 0 || i >= len(p.items) {
		return api.Item{}, false
	}
	return p.items[i], true
}
