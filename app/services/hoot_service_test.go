package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hootroost/app/models"
	"hootroost/app/repositories"
	"hootroost/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = &models.User{ID: "alice-id", Username: "alice"}
	bob   = &models.User{ID: "bob-id", Username: "bob"}
)

func strptr(s string) *string { return &s }

func validCreate() models.HootCreateRequest {
	return models.HootCreateRequest{Title: "Owls at night", Text: "They hoot.", Category: "News"}
}

func TestHootServiceCreate(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewHootRepository()
	service := NewHootService(repo)

	t.Run("create hoot", func(t *testing.T) {
		hoot, err := service.Create(ctx, alice, validCreate())
		require.NoError(t, err)
		assert.NotEmpty(t, hoot.ID)
		assert.Equal(t, alice.ID, hoot.Author)
		assert.Empty(t, hoot.Comments)
		assert.False(t, hoot.CreatedAt.IsZero())
	})

	t.Run("invalid category persists nothing", func(t *testing.T) {
		before := repo.Count()
		req := validCreate()
		req.Category = "Politics"

		_, err := service.Create(ctx, alice, req)
		assert.ErrorIs(t, err, ErrValidation)
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, models.InvalidCategory, verr.Kind)
		assert.Equal(t, before, repo.Count())
	})

	t.Run("blank title or text", func(t *testing.T) {
		req := validCreate()
		req.Title = "  "
		_, err := service.Create(ctx, alice, req)
		assert.ErrorIs(t, err, ErrValidation)

		req = validCreate()
		req.Text = ""
		_, err = service.Create(ctx, alice, req)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("requires a caller", func(t *testing.T) {
		_, err := service.Create(ctx, nil, validCreate())
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("repository failure is wrapped", func(t *testing.T) {
		failing := mock.NewHootRepository()
		failing.Err = errors.New("disk on fire")
		_, err := NewHootService(failing).Create(ctx, alice, validCreate())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk on fire")
		assert.NotErrorIs(t, err, ErrValidation)
	})
}

func TestHootServiceListAndGet(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewHootRepository()
	service := NewHootService(repo)

	base := time.Now().Add(-time.Hour)
	var ids []string
	for i, title := range []string{"p1", "p2", "p3"} {
		hoot := &models.Hoot{Title: title, Text: "t", Category: models.CategoryMusic, Author: alice.ID, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.Create(ctx, hoot))
		ids = append(ids, hoot.ID)
	}

	t.Run("list newest first", func(t *testing.T) {
		hoots, err := service.List(ctx)
		require.NoError(t, err)
		require.Len(t, hoots, 3)
		assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{hoots[0].ID, hoots[1].ID, hoots[2].ID})
	})

	t.Run("get", func(t *testing.T) {
		hoot, err := service.Get(ctx, ids[1])
		require.NoError(t, err)
		assert.Equal(t, "p2", hoot.Title)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := service.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "hoot", nf.Resource)
		assert.Equal(t, "hoot not found", err.Error())
	})
}

func TestHootServiceUpdate(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewHootRepository()
	service := NewHootService(repo)

	hoot, err := service.Create(ctx, alice, validCreate())
	require.NoError(t, err)

	t.Run("non-author is forbidden and nothing changes", func(t *testing.T) {
		_, err := service.Update(ctx, bob, hoot.ID, models.HootUpdateRequest{Title: strptr("stolen")})
		assert.ErrorIs(t, err, ErrForbidden)

		stored, err := service.Get(ctx, hoot.ID)
		require.NoError(t, err)
		assert.Equal(t, "Owls at night", stored.Title)
	})

	t.Run("missing hoot is not found before ownership", func(t *testing.T) {
		_, err := service.Update(ctx, bob, "missing", models.HootUpdateRequest{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("text only leaves other fields", func(t *testing.T) {
		updated, err := service.Update(ctx, alice, hoot.ID, models.HootUpdateRequest{Text: strptr("new text")})
		require.NoError(t, err)
		assert.Equal(t, "new text", updated.Text)

		stored, err := service.Get(ctx, hoot.ID)
		require.NoError(t, err)
		assert.Equal(t, "new text", stored.Text)
		assert.Equal(t, "Owls at night", stored.Title)
		assert.Equal(t, models.CategoryNews, stored.Category)
		assert.Equal(t, alice.ID, stored.Author)
		assert.Equal(t, hoot.ID, stored.ID)
	})

	t.Run("invalid supplied field is rejected", func(t *testing.T) {
		_, err := service.Update(ctx, alice, hoot.ID, models.HootUpdateRequest{Category: strptr("Cooking")})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = service.Update(ctx, alice, hoot.ID, models.HootUpdateRequest{Title: strptr(" ")})
		assert.ErrorIs(t, err, ErrValidation)

		stored, err := service.Get(ctx, hoot.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CategoryNews, stored.Category)
	})
}

func TestHootServiceDelete(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewHootRepository()
	service := NewHootService(repo)

	hoot, err := service.Create(ctx, alice, validCreate())
	require.NoError(t, err)

	t.Run("missing hoot", func(t *testing.T) {
		_, err := service.Delete(ctx, alice, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-author", func(t *testing.T) {
		_, err := service.Delete(ctx, bob, hoot.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Equal(t, 1, repo.Count())
	})

	t.Run("author deletes", func(t *testing.T) {
		deleted, err := service.Delete(ctx, alice, hoot.ID)
		require.NoError(t, err)
		assert.Equal(t, hoot.ID, deleted.ID)
		assert.Zero(t, repo.Count())
	})
}

// appendOnLoad adds a comment from another caller right after every load,
// so the service works from an aggregate that is already stale.
type appendOnLoad struct {
	repositories.HootRepository
}

func (r appendOnLoad) GetByID(ctx context.Context, id string) (*models.Hoot, error) {
	hoot, err := r.HootRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.HootRepository.AppendComment(ctx, id, &models.Comment{Text: "meanwhile", Author: bob.ID}); err != nil {
		return nil, err
	}
	return hoot, nil
}

func TestHootServiceUpdateKeepsConcurrentComments(t *testing.T) {
	ctx := context.Background()
	store, err := repositories.NewInMemoryBadgerStore()
	require.NoError(t, err)
	defer store.Close()

	hoot, err := NewHootService(store.Hoots()).Create(ctx, alice, validCreate())
	require.NoError(t, err)

	service := NewHootService(appendOnLoad{store.Hoots()})
	updated, err := service.Update(ctx, alice, hoot.ID, models.HootUpdateRequest{Title: strptr("retitled")})
	require.NoError(t, err)
	assert.Equal(t, "retitled", updated.Title)

	stored, err := store.Hoots().GetByID(ctx, hoot.ID)
	require.NoError(t, err)
	assert.Equal(t, "retitled", stored.Title)
	require.Len(t, stored.Comments, 1)
	assert.Equal(t, "meanwhile", stored.Comments[0].Text)
}
