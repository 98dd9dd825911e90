package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return st
}

func TestFileStore_LoadMissing(t *testing.T) {
	st := newTestFileStore(t)
	_, err := st.Load(context.Background(), "nope.json")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_ReplaceThenLoad(t *testing.T) {
	ctx := context.Background()
	st := newTestFileStore(t)

	content := []byte(`{"greeting":"Hallo"}`)
	require.NoError(t, st.Replace(ctx, "doc.json", content))

	loaded, err := st.Load(ctx, "doc.json")
	require.NoError(t, err)
	assert.Equal(t, content, loaded)

	exists, err := st.Exists(ctx, "doc.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFileStore_FirstReplaceHasNoBackup(t *testing.T) {
	ctx := context.Background()
	st := newTestFileStore(t)

	require.NoError(t, st.Replace(ctx, "doc.json", []byte(`1`)))
	_, err := st.LoadBackup(ctx, "doc.json")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_BackupHoldsPriorContent(t *testing.T) {
	ctx := context.Background()
	st := newTestFileStore(t)

	v1 := []byte(`{"version":1}`)
	v2 := []byte(`{"version":2}`)
	v3 := []byte(`{"version":3}`)

	require.NoError(t, st.Replace(ctx, "doc.json", v1))
	require.NoError(t, st.Replace(ctx, "doc.json", v2))

	backup, err := st.LoadBackup(ctx, "doc.json")
	require.NoError(t, err)
	assert.Equal(t, v1, backup)

	// Single generation: the next replace overwrites the backup.
	require.NoError(t, st.Replace(ctx, "doc.json", v3))
	backup, err = st.LoadBackup(ctx, "doc.json")
	require.NoError(t, err)
	assert.Equal(t, v2, backup)
}

func TestFileStore_NameCannotEscapeDir(t *testing.T) {
	ctx := context.Background()
	st := newTestFileStore(t)

	require.NoError(t, st.Replace(ctx, "../escape.json", []byte(`1`)))
	_, err := os.Stat(filepath.Join(st.Dir(), "escape.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(st.Dir()), "escape.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_ConcurrentReplaceSameName(t *testing.T) {
	ctx := context.Background()
	st := newTestFileStore(t)
	require.NoError(t, st.Replace(ctx, "doc.json", []byte(`seed`)))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			data := []byte{'v', byte('a' + n)}
			assert.NoError(t, st.Replace(ctx, "doc.json", data))
		}(i)
	}
	wg.Wait()

	// Last write wins; content must be one of the writers' payloads, and
	// the backup chain must still be readable.
	loaded, err := st.Load(ctx, "doc.json")
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
	_, err = st.LoadBackup(ctx, "doc.json")
	require.NoError(t, err)
}

func TestMemStore_BackupSemanticsMatchFileStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemStore()

	require.NoError(t, st.Replace(ctx, "doc.json", []byte(`1`)))
	_, err := st.Load(ctx, "doc.json"+BackupSuffix)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Replace(ctx, "doc.json", []byte(`2`)))
	backup, err := st.Load(ctx, "doc.json"+BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, []byte(`1`), backup)
}

func TestMemStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	st := NewMemStore()
	st.Seed("doc.json", []byte(`abc`))

	loaded, err := st.Load(ctx, "doc.json")
	require.NoError(t, err)
	loaded[0] = 'x'

	again, err := st.Load(ctx, "doc.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`abc`), again)
}
