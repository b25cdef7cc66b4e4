package user_test

import (
	"encoding/json"
	"testing"

	"github.com/chideraa89/first-attempt-ecommerce-site/core/user"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	saved map[string]json.RawMessage
}

func newMemStorage() *memStorage {
	return &memStorage{saved: make(map[string]json.RawMessage)}
}

func (m *memStorage) Save(key string, val any) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	m.saved[key] = b
	return nil
}

func (m *memStorage) Load(key string, val any) (bool, error) {
	b, ok := m.saved[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, val)
}

func (m *memStorage) Delete(key string) error {
	delete(m.saved, key)
	return nil
}

func newStore(t *testing.T) (*user.Store, *memStorage) {
	t.Helper()
	st := newMemStorage()
	s, err := user.NewStore(st)
	require.NoError(t, err)
	return s, st
}

func TestRegisterLogsIn(t *testing.T) {
	s, _ := newStore(t)

	res, err := s.Register("Ada", "ada@example.com", "secret1")
	require.NoError(t, err)
	require.True(t, res.Success)

	u, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "ada@example.com", u.Email)
	require.NotEqual(t, "secret1", u.PasswordHash)
	require.Empty(t, u.Orders)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s, _ := newStore(t)

	res, err := s.Register("A", "a@x.com", "secret1")
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = s.Register("B", "a@x.com", "other22")
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "Email already registered", res.Message)

	// The rejected registration must not disturb the active session.
	u, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "A", u.Name)
}

func TestLoginFailureIsGeneric(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Register("Ada", "ada@example.com", "secret1")
	require.NoError(t, err)
	_, err = s.Logout()
	require.NoError(t, err)

	wrongPass, err := s.Login("ada@example.com", "nope")
	require.NoError(t, err)
	unknownEmail, err2 := s.Login("ghost@example.com", "secret1")
	require.NoError(t, err2)

	require.False(t, wrongPass.Success)
	require.False(t, unknownEmail.Success)
	require.Equal(t, wrongPass.Message, unknownEmail.Message)

	_, ok := s.Current()
	require.False(t, ok)
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	s, _ := newStore(t)

	res, err := s.Logout()
	require.NoError(t, err)
	require.True(t, res.Success)

	_, err = s.Register("Ada", "ada@example.com", "secret1")
	require.NoError(t, err)

	res, err = s.Logout()
	require.NoError(t, err)
	require.True(t, res.Success)

	_, ok := s.Current()
	require.False(t, ok)
}

func TestUniqueIDs(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Register("A", "a@x.com", "secret1")
	require.NoError(t, err)
	_, err = s.Register("B", "b@x.com", "secret2")
	require.NoError(t, err)

	res, err := s.Login("a@x.com", "secret1")
	require.NoError(t, err)
	require.True(t, res.Success)
	a, _ := s.Current()

	res, err = s.Login("b@x.com", "secret2")
	require.NoError(t, err)
	require.True(t, res.Success)
	b, _ := s.Current()

	require.NotEqual(t, a.ID, b.ID)
}

func TestSessionPersistsAcrossReload(t *testing.T) {
	st := newMemStorage()

	s, err := user.NewStore(st)
	require.NoError(t, err)
	_, err = s.Register("Ada", "ada@example.com", "secret1")
	require.NoError(t, err)

	reloaded, err := user.NewStore(st)
	require.NoError(t, err)

	u, ok := reloaded.Current()
	require.True(t, ok)
	require.Equal(t, "ada@example.com", u.Email)

	res, err := reloaded.Login("ada@example.com", "secret1")
	require.NoError(t, err)
	require.True(t, res.Success)
}
