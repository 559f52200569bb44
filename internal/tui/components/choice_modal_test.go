package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderChoices = []Choice{
	{Value: "relevance", Label: "Relevance"},
	{Value: "rating", Label: "Rating"},
	{Value: "date", Label: "Release Date"},
}

func TestChoiceModalStartsOnActiveValue(t *testing.T) {
	m := NewChoiceModal()
	m.Show("Sort by", orderChoices, "rating")

	handled, sel := m.HandleKey("enter")
	assert.True(t, handled)
	require.NotNil(t, sel)
	assert.Equal(t, "rating", sel.Value)
	assert.False(t, m.IsVisible())
}

func TestChoiceModalNavigation(t *testing.T) {
	m := NewChoiceModal()
	m.Show("Sort by", orderChoices, "relevance")

	m.HandleKey("j")
	m.HandleKey("j")
	m.HandleKey("j")
	_, sel := m.HandleKey("enter")
	require.NotNil(t, sel)
	assert.Equal(t, "date", sel.Value, "cursor stops at the last option")
}

func TestChoiceModalCancel(t *testing.T) {
	m := NewChoiceModal()
	m.Show("Sort by", orderChoices, "relevance")

	handled, sel := m.HandleKey("esc")
	assert.True(t, handled)
	assert.Nil(t, sel)
	assert.False(t, m.IsVisible())

	handled, _ = m.HandleKey("j")
	assert.False(t, handled, "hidden modal does not consume keys")
}

func TestChoiceModalConsumesOtherKeys(t *testing.T) {
	m := NewChoiceModal()
	m.Show("Sort by", orderChoices, "relevance")

	handled, sel := m.HandleKey("x")
	assert.True(t, handled)
	assert.Nil(t, sel)
	assert.True(t, m.IsVisible())
	assert.Contains(t, m.View(), "✓ Relevance")
}
