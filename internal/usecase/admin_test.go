package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
	"github.com/yourusername/bazaar-admin/internal/infrastructure/storage"
)

func TestAdminUseCase_LoginLogout(t *testing.T) {
	ctx := context.Background()
	audit := storage.NewMemoryAuditRepository()
	uc := NewAdminUseCase(fakeAuth{}, storage.NewMemoryAdminRepository(time.Hour), audit)

	_, err := uc.Login(ctx, "tg:1", "admin@shop.test", "wrong")
	assert.ErrorIs(t, err, entity.ErrUnauthorized)

	_, err = uc.Login(ctx, "tg:1", " ", "secret")
	assert.ErrorIs(t, err, entity.ErrUnauthorized)

	session, err := uc.Login(ctx, "tg:1", "admin@shop.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-admin@shop.test", session.Token)
	assert.True(t, session.IsAdmin)

	got, err := uc.Session(ctx, "tg:1")
	require.NoError(t, err)
	assert.Equal(t, session.Token, got.Token)

	require.NoError(t, uc.Logout(ctx, "tg:1"))
	_, err = uc.Session(ctx, "tg:1")
	assert.ErrorIs(t, err, entity.ErrUnauthorized)

	actions, err := uc.RecentActions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, ActionLogout, actions[0].Action)
	assert.Equal(t, ActionLogin, actions[1].Action)
}

func TestProductUseCase(t *testing.T) {
	ctx := context.Background()
	audit := storage.NewMemoryAuditRepository()
	catalog := &fakeCatalog{products: []entity.Product{{ID: "p1"}, {ID: "p2"}}}
	uc := NewProductUseCase(catalog, audit)
	session := entity.Session{UserID: "web:1"}

	products, err := uc.List(ctx, session, 50)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	name := "Renamed"
	updated, err := uc.Update(ctx, session, "p1", entity.ProductUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	_, err = uc.Update(ctx, session, "missing", entity.ProductUpdate{})
	assert.ErrorIs(t, err, entity.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, session, "p2"))
	assert.ErrorIs(t, uc.Delete(ctx, session, "missing"), entity.ErrNotFound)

	actions, err := audit.ListActions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, ActionProductDelete, actions[0].Action)
	assert.Equal(t, ActionProductUpdate, actions[1].Action)
}
