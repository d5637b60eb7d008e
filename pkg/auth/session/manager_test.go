package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

type fakeKeyer struct{}

func (fakeKeyer) AccessSessionKey(accessID string) string {
	return "pc:session:access:" + accessID
}

func newTestManager(store *fakeStore) *Manager {
	return &Manager{store: store, keyer: fakeKeyer{}, ttl: time.Hour}
}

func TestGenerateStoresToken(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(store)

	token, err := m.Generate(context.Background(), "access-1")
	require.NoError(t, err)
	assert.Equal(t, token, store.values["pc:session:access:access-1"])
}

func TestRotateIssuesNewPairAndDropsOld(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(store)

	token, err := m.Generate(context.Background(), "access-1")
	require.NoError(t, err)

	newID, newToken, err := m.Rotate(context.Background(), "access-1", token)
	require.NoError(t, err)
	assert.NotEmpty(t, newID)
	assert.NotEqual(t, token, newToken)
	assert.NotContains(t, store.values, "pc:session:access:access-1")
	assert.Equal(t, newToken, store.values["pc:session:access:"+newID])
}

func TestRotateRejectsWrongToken(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(store)

	_, err := m.Generate(context.Background(), "access-1")
	require.NoError(t, err)

	_, _, err = m.Rotate(context.Background(), "access-1", "forged")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRotateRejectsUnknownSession(t *testing.T) {
	m := newTestManager(newFakeStore())

	_, _, err := m.Rotate(context.Background(), "missing", "whatever")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRevokeAndHasSession(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(store)

	_, err := m.Generate(context.Background(), "access-1")
	require.NoError(t, err)

	ok, err := m.HasSession(context.Background(), "access-1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, m.Revoke(context.Background(), "access-1"))

	ok, err = m.HasSession(context.Background(), "access-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
