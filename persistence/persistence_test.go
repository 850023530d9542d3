package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVector() []float32 {
	return []float32{0.1, -0.5, 3.25, 0, -1}
}

func runStoreContract(t *testing.T, store VectorStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("miss on unknown key", func(t *testing.T) {
		_, found, err := store.Get(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("roundtrip", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "k1", testVector()))
		got, found, err := store.Get(ctx, "k1")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, testVector(), got)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "k2", []float32{1}))
		require.NoError(t, store.Put(ctx, "k2", []float32{2, 3}))
		got, found, err := store.Get(ctx, "k2")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, []float32{2, 3}, got)
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	runStoreContract(t, store)

	t.Run("returned vectors are copies", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, store.Put(ctx, "c", []float32{1, 2}))
		got, _, err := store.Get(ctx, "c")
		require.NoError(t, err)
		got[0] = 99
		again, _, err := store.Get(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, float32(1), again[0])
	})
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.db")
	store, err := NewBoltStore(path)
	require.NoError(t, err)
	defer store.Close()

	runStoreContract(t, store)
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vectors.db")

	store, err := NewBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "persisted", testVector()))
	require.NoError(t, store.Close())

	reopened, err := NewBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, found, err := reopened.Get(ctx, "persisted")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, testVector(), got)
}

func TestBadgerStore(t *testing.T) {
	store, err := NewBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	runStoreContract(t, store)
}

func TestVectorEncoding(t *testing.T) {
	original := testVector()
	decoded, err := decodeVector(encodeVector(original))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)

	_, err = decodeVector([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestNewVectorStore(t *testing.T) {
	store, err := NewVectorStore(Config{Type: TypeMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	_, err = NewVectorStore(Config{Type: "cassandra"})
	assert.Error(t, err)

	_, err = NewVectorStore(Config{Type: TypeBolt})
	assert.Error(t, err, "bolt without a path must fail validation")
}
