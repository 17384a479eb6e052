package repositories

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hootroost/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBadgerStoreTempDir(t *testing.T) {
	store, err := NewBadgerStore("")
	require.NoError(t, err)
	path := store.dbPath
	assert.True(t, store.isTestDB)
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, store.Close())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "temporary database should be removed on close")
}

func TestBadgerStoreBackupAndLoad(t *testing.T) {
	ctx := context.Background()
	src, err := NewBadgerStore(filepath.Join(t.TempDir(), "src"))
	require.NoError(t, err)
	defer src.Close()

	hoot := newHoot("backed up", time.Time{})
	require.NoError(t, src.Hoots().Create(ctx, hoot))
	_, err = src.Hoots().AppendComment(ctx, hoot.ID, &models.Comment{Text: "before backup", Author: "bob"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.Backup(&buf))
	require.NotZero(t, buf.Len())

	dst := setupTestStore(t)
	require.NoError(t, dst.Load(&buf))

	got, err := dst.Hoots().GetByID(ctx, hoot.ID)
	require.NoError(t, err)
	assert.Equal(t, "backed up", got.Title)

	got, err = dst.Hoots().AppendComment(ctx, hoot.ID, &models.Comment{Text: "after restore", Author: "bob"})
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "before backup", got.Comments[0].Text)
	assert.Equal(t, "after restore", got.Comments[1].Text)
}

func TestBadgerStoreLoadAfterUse(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	hoot := newHoot("busy", time.Time{})
	require.NoError(t, store.Hoots().Create(ctx, hoot))
	_, err := store.Hoots().AppendComment(ctx, hoot.ID, &models.Comment{Text: "hi", Author: "bob"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.Backup(&buf))
	assert.ErrorIs(t, store.Load(&buf), ErrSequenceInUse)
}

func TestBadgerStoreClear(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	require.NoError(t, store.Hoots().Create(ctx, newHoot("gone", time.Time{})))

	require.NoError(t, store.Clear())

	hoots, err := store.Hoots().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, hoots)
}
