package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizard_WalksTabsInOrder(t *testing.T) {
	w := NewWizard()
	assert.Equal(t, TabBasic, w.Current())
	assert.False(t, w.CanSubmit())

	_, moved := w.Back()
	assert.False(t, moved)

	visited := []Tab{w.Current()}
	for {
		tab, moved := w.Next()
		if !moved {
			break
		}
		visited = append(visited, tab)
	}
	assert.Equal(t, Tabs(), visited)
	assert.True(t, w.CanSubmit())

	tab, moved := w.Back()
	assert.True(t, moved)
	assert.Equal(t, TabSettings, tab)
	assert.False(t, w.CanSubmit())
}

func TestWizard_GotoAndPeek(t *testing.T) {
	w, err := WizardAt(TabPricing)
	require.NoError(t, err)

	prev, next := w.Peek()
	assert.Equal(t, TabOrganization, prev)
	assert.Equal(t, TabVariants, next)

	require.NoError(t, w.Goto(TabSummary))
	prev, next = w.Peek()
	assert.Equal(t, TabSettings, prev)
	assert.Equal(t, Tab(""), next)

	assert.Error(t, w.Goto("shipping"))
	assert.Equal(t, TabSummary, w.Current())
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("images")
	require.NoError(t, err)
	assert.Equal(t, TabImages, tab)

	_, err = ParseTab("IMAGES")
	assert.Error(t, err)
}
