package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/nfa/internal/adapters/file"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/ports"
	"github.com/aretw0/nfa/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.ComputationStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	tests.RunComputationStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".nfa", "computations"), file.New("").BasePath)
}

func TestFileStore_InvalidIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "..", "a/b", `a\b`} {
		_, err := store.Load(ctx, id)
		assert.Error(t, err, "id %q", id)
		assert.NotErrorIs(t, err, domain.ErrComputationNotFound)
	}
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewComputation("abc", "q0", time.Now())))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".abc.json123"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, ids)
}

func TestFileStore_ListMissingDirectory(t *testing.T) {
	ids, err := file.New(filepath.Join(t.TempDir(), "missing")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o644))

	_, err := file.New(dir).Load(context.Background(), "bad")
	assert.ErrorContains(t, err, "failed to unmarshal computation")
}
