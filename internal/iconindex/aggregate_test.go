package iconindex

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_InsertAndLookup(t *testing.T) {
	a := NewAggregate()
	require.NoError(t, a.Insert("sub/b.dmi", NewEntry(FormSet, []string{"z", "y"})))
	require.NoError(t, a.Insert("a.dmi", NewEntry(FormSet, []string{"x", "y"})))

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []string{"a.dmi", "sub/b.dmi"}, a.Paths())
	assert.True(t, a.Contains("a.dmi", "x"))
	assert.False(t, a.Contains("a.dmi", "z"))
	assert.False(t, a.Contains("missing.dmi", "x"))

	e, ok := a.Get("sub/b.dmi")
	require.True(t, ok)
	assert.Equal(t, []string{"y", "z"}, e.States())
}

func TestAggregate_DuplicateInsertIsFatal(t *testing.T) {
	a := NewAggregate()
	require.NoError(t, a.Insert("a.dmi", NewEntry(FormSet, []string{"x"})))

	err := a.Insert("a.dmi", NewEntry(FormSet, []string{"other"}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicatePath)
	assert.Contains(t, err.Error(), "a.dmi")

	e, _ := a.Get("a.dmi")
	assert.Equal(t, []string{"x"}, e.States(), "existing entry must not be overwritten")
}

func TestAggregate_MarshalJSON(t *testing.T) {
	a := NewAggregate()
	require.NoError(t, a.Insert("sub/b.dmi", NewEntry(FormMap, []string{"z", "y"})))
	require.NoError(t, a.Insert("a.dmi", NewEntry(FormMap, []string{"y", "x"})))

	b, err := a.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"a.dmi":{"x":true,"y":true},"sub/b.dmi":{"y":true,"z":true}}`, string(b))

	b, err = NewAggregate().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}

func TestDocument_MarshalJSON(t *testing.T) {
	a := NewAggregate()
	require.NoError(t, a.Insert("icons/mob.dmi", NewEntry(FormSet, []string{"run", "idle"})))

	b, err := json.Marshal(NewDocument(a, ""))
	require.NoError(t, err)
	assert.Equal(t, `{"revision":null,"icons":{"icons/mob.dmi":["idle","run"]}}`, string(b))

	b, err = json.Marshal(NewDocument(a, "0123abcd"))
	require.NoError(t, err)
	assert.Equal(t, `{"revision":"0123abcd","icons":{"icons/mob.dmi":["idle","run"]}}`, string(b))

	b, err = json.Marshal(Document{})
	require.NoError(t, err)
	assert.Equal(t, `{"revision":null,"icons":{}}`, string(b))
}
