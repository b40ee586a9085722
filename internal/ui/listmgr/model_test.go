package listmgr

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todo/internal/keys"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/testutil"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	s := testutil.NewTestStore(t)
	testutil.SeedList(t, s, "Work")

	m := New(s, keys.DefaultKeyMap(), 80, 24)
	msg, ok := m.Load()().(ListsLoadedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	m, _ = m.Update(msg)
	return m
}

func TestLoadAndSelect(t *testing.T) {
	m := loadedModel(t)
	require.Len(t, m.Lists(), 2)

	m, _ = m.Update(runes("j"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	sel, ok := cmd().(SelectMsg)
	require.True(t, ok)
	assert.Equal(t, "Work", sel.List.Name)
}

func TestRemoveEmitsRequestAndHideFiltersList(t *testing.T) {
	m := loadedModel(t)
	m, _ = m.Update(runes("j"))

	_, cmd := m.Update(runes("d"))
	require.NotNil(t, cmd)
	rm, ok := cmd().(RemoveMsg)
	require.True(t, ok)
	assert.Equal(t, "Work", rm.List.Name)

	m.Hide(rm.List.ID)
	require.Len(t, m.Lists(), 1)
	assert.Equal(t, model.DefaultListName, m.Lists()[0].Name)
	assert.Equal(t, 0, m.selectedIdx)

	m.Unhide(rm.List.ID)
	assert.Len(t, m.Lists(), 2)
}

func TestLastListCannotBeRemoved(t *testing.T) {
	m := loadedModel(t)
	m.Hide(m.Lists()[1].ID)

	m, cmd := m.Update(runes("d"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "cannot be removed")
}

func TestNewOpensForm(t *testing.T) {
	m := loadedModel(t)

	m, _ = m.Update(runes("n"))
	assert.True(t, m.Editing())
	assert.Equal(t, "", m.fb.name)
	assert.Contains(t, []string{"#3584e4", "#33d17a", "#f6d32d"}, m.fb.color)
}

func TestSaveCreatesList(t *testing.T) {
	m := loadedModel(t)
	m, _ = m.Update(runes("n"))
	m.fb.name = "  Groceries "

	msg, ok := m.saveList()().(listSavedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)

	m, cmd := m.Update(msg)
	assert.False(t, m.Editing())
	require.NotNil(t, cmd)

	lists := m.Load()().(ListsLoadedMsg)
	names := make([]string, len(lists.Lists))
	for i, l := range lists.Lists {
		names[i] = l.Name
	}
	assert.Contains(t, names, "Groceries")
}

func TestBackCloses(t *testing.T) {
	m := loadedModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CloseMsg{}, cmd())
}
