package iconindex

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry_SortsAndDeduplicates(t *testing.T) {
	in := []string{"run", "idle", "run", "Idle", ""}
	e := NewEntry(FormSet, in)

	assert.Equal(t, []string{"", "Idle", "idle", "run"}, e.States())
	assert.Equal(t, 4, e.Len())
	assert.Equal(t, []string{"run", "idle", "run", "Idle", ""}, in, "input must not be reordered")

	assert.True(t, e.Has("idle"))
	assert.True(t, e.Has(""))
	assert.False(t, e.Has("walk"))
}

func TestEntry_MarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		form   Form
		states []string
		want   string
	}{
		{name: "set", form: FormSet, states: []string{"y", "x", "y"}, want: `["x","y"]`},
		{name: "map", form: FormMap, states: []string{"y", "x", "y"}, want: `{"x":true,"y":true}`},
		{name: "empty set", form: FormSet, states: nil, want: `[]`},
		{name: "empty map", form: FormMap, states: nil, want: `{}`},
		{name: "no html escaping", form: FormSet, states: []string{"a<b>&c"}, want: `["a<b>&c"]`},
		{name: "quotes and control bytes escaped", form: FormMap, states: []string{"a\"b\\c\td"}, want: `{"a\"b\\c\td":true}`},
		{name: "latin-1 text stays utf-8", form: FormSet, states: []string{"café"}, want: `["café"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewEntry(tt.form, tt.states).MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
			assert.True(t, json.Valid(b))
		})
	}
}

func TestEntry_UnknownForm(t *testing.T) {
	_, err := NewEntry(Form(7), []string{"a"}).MarshalJSON()
	require.Error(t, err)
}

func TestFormFor(t *testing.T) {
	assert.Equal(t, FormSet, FormFor(false))
	assert.Equal(t, FormMap, FormFor(true))
	assert.Equal(t, "set", FormSet.String())
	assert.Equal(t, "map", FormMap.String())
	assert.Equal(t, "Form(9)", Form(9).String())
}
