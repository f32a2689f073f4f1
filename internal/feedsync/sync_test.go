package feedsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedpad/internal/api"
)

func item(name string) api.Item {
	return api.Item{
		Name:        name,
		DisplayName: name,
		Date:        time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Kind:        api.TextItem,
	}
}

func TestApplyItemsStaleGuard(t *testing.T) {
	p := New("notes")

	assert.False(t, p.ApplyItems("other-feed", []api.Item{item("a")}))
	assert.Equal(t, 0, p.Len())

	require.True(t, p.ApplyItems("notes", []api.Item{item("a"), item("b")}))
	assert.Equal(t, 2, p.Len())
}

func TestEmptyRequiresAFetch(t *testing.T) {
	p := New("notes")
	assert.False(t, p.Empty(), "unknown before the first fetch")

	require.True(t, p.ApplyItems("notes", nil))
	assert.True(t, p.Empty())

	require.True(t, p.ApplyItems("notes", []api.Item{item("a")}))
	assert.False(t, p.Empty())
}

func TestNeedsRefreshLifecycle(t *testing.T) {
	p := New("notes")
	assert.False(t, p.NeedsRefresh(), "no secret, nothing to fetch")

	require.True(t, p.SetSecret("s1"))
	assert.True(t, p.NeedsRefresh())

	require.True(t, p.ApplyItems("notes", []api.Item{item("a")}))
	assert.False(t, p.NeedsRefresh())

	p.MarkStale()
	assert.True(t, p.NeedsRefresh())

	require.True(t, p.ApplyItems("notes", nil))
	assert.False(t, p.SetSecret("s1"), "unchanged secret is a no-op")
	assert.False(t, p.NeedsRefresh())

	assert.True(t, p.SetSecret("s2"), "new secret invalidates the projection")
	assert.True(t, p.NeedsRefresh())
}

func TestApplyDelete(t *testing.T) {
	p := New("notes")
	require.True(t, p.ApplyItems("notes", []api.Item{item("a"), item("b")}))

	assert.False(t, p.ApplyDelete("other-feed", "a"))
	assert.True(t, p.ApplyDelete("notes", "a"))
	assert.False(t, p.ApplyDelete("notes", "a"), "second delete is a no-op")
	assert.Equal(t, 1, p.Len())
}

func TestApplyRenameKeepsKindAndDate(t *testing.T) {
	p := New("notes")
	original := item("a")
	original.Kind = api.ImageItem
	require.True(t, p.ApplyItems("notes", []api.Item{original}))

	require.True(t, p.ApplyRename("notes", "a", "renamed"))

	got, ok := p.Find("renamed")
	require.True(t, ok)
	assert.Equal(t, "renamed", got.DisplayName)
	assert.Equal(t, api.ImageItem, got.Kind)
	assert.Equal(t, original.Date, got.Date)
}

func TestApplyPurge(t *testing.T) {
	p := New("notes")
	require.True(t, p.ApplyItems("notes", []api.Item{item("a"), item("b")}))

	require.True(t, p.ApplyPurge("notes"))
	assert.Equal(t, 0, p.Len())
	assert.True(t, p.Empty())
}

func TestApplyEventAddIsIdempotent(t *testing.T) {
	p := New("notes")
	require.True(t, p.ApplyItems("notes", []api.Item{item("old")}))

	fresh := item("new")
	event := api.Event{Action: api.EventAdd, Item: &fresh}
	require.True(t, p.ApplyEvent("notes", event))
	require.Equal(t, 2, p.Len())

	first, _ := p.ItemAt(0)
	assert.Equal(t, "new", first.Name, "adds prepend")

	// Replaying the same event replaces in place.
	require.True(t, p.ApplyEvent("notes", event))
	assert.Equal(t, 2, p.Len())
}

func TestApplyEventRemoveAndRename(t *testing.T) {
	p := New("notes")
	require.True(t, p.ApplyItems("notes", []api.Item{item("a"), item("b")}))

	gone := item("a")
	require.True(t, p.ApplyEvent("notes", api.Event{Action: api.EventRemove, Item: &gone}))
	assert.False(t, p.ApplyEvent("notes", api.Event{Action: api.EventRemove, Item: &gone}))

	renamed := item("b2")
	require.True(t, p.ApplyEvent("notes", api.Event{Action: api.EventRename, Item: &renamed, OldName: "b"}))
	_, ok := p.Find("b2")
	assert.True(t, ok)
}

func TestApplyEventStaleOrMalformed(t *testing.T) {
	p := New("notes")
	fresh := item("x")

	assert.False(t, p.ApplyEvent("other-feed", api.Event{Action: api.EventAdd, Item: &fresh}))
	assert.False(t, p.ApplyEvent("notes", api.Event{Action: api.EventAdd}))
	assert.False(t, p.ApplyEvent("notes", api.Event{Action: api.EventRename, Item: &fresh}))
	assert.False(t, p.ApplyEvent("notes", api.Event{Action: "unknown", Item: &fresh}))
	assert.Equal(t, 0, p.Len())
}

func TestItemAtBounds(t *testing.T) {
	p := New("notes")
	require.True(t, p.ApplyItems("notes", []api.Item{item("a")}))

	_, ok := p.ItemAt(-1)
	assert.False(t, ok)
	_, ok = p.ItemAt(1)
	assert.False(t, ok)
	got, ok := p.ItemAt(0)
	require.True(t, ok)
	assert.Equal(t, "a", got.Name)
}

func TestApplyItemsCopiesInput(t *testing.T) {
	p := New("notes")
	input := []api.Item{item("a")}
	require.True(t, p.ApplyItems("notes", input))

	input[0].Name = "mutated"
	got, _ := p.ItemAt(0)
	assert.Equal(t, "a", got.Name)
}
