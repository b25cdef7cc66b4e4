package storage_test

import (
	"testing"

	"github.com/chideraa89/first-attempt-ecommerce-site/storage"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveLoad(t *testing.T) {
	st, err := storage.Open(t.TempDir())
	require.NoError(t, err)

	in := []doc{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
	require.NoError(t, st.Save("items", in))

	var out []doc
	ok, err := st.Load("items", &out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in, out)
}

func TestLoadMissingKey(t *testing.T) {
	st, err := storage.Open(t.TempDir())
	require.NoError(t, err)

	var out []doc
	ok, err := st.Load("nope", &out)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, out)
}

func TestSaveOverwritesWholeCollection(t *testing.T) {
	st, err := storage.Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Save("items", []doc{{Name: "a"}, {Name: "b"}}))
	require.NoError(t, st.Save("items", []doc{{Name: "c"}}))

	var out []doc
	ok, err := st.Load("items", &out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []doc{{Name: "c"}}, out)
}

func TestDelete(t *testing.T) {
	st, err := storage.Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Save("session", doc{Name: "a"}))
	require.NoError(t, st.Delete("session"))

	var out doc
	ok, err := st.Load("session", &out)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, st.Delete("session"))
}
