package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/infrastructure/memory"
)

func TestReceiptRepo(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewReceiptRepository()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	first := &entity.Receipt{
		SessionID: "s1",
		Lines:     []entity.CartLine{{ProductID: "p1", Name: "Camisa", UnitPrice: decimal.NewFromInt(1500), Qty: 1}},
		Items:     1,
		Total:     decimal.NewFromInt(1500),
		CreatedAt: base,
	}
	require.NoError(t, repo.Create(ctx, first))
	require.NotEmpty(t, first.ID)

	second := &entity.Receipt{SessionID: "s1", Items: 2, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, &entity.Receipt{SessionID: "s2", CreatedAt: base}))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Camisa", got.Lines[0].Name)

	// la copia devuelta no altera lo guardado
	got.Lines[0].Qty = 99
	again, _ := repo.GetByID(ctx, first.ID)
	assert.Equal(t, 1, again.Lines[0].Qty)

	list, err := repo.ListBySession(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	list, _ = repo.ListBySession(ctx, "s1", 1)
	assert.Len(t, list, 1)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, repo.Create(ctx, first), domain.ErrDuplicate)

	require.NoError(t, repo.Delete(ctx, first.ID))
	require.NoError(t, repo.Delete(ctx, first.ID))
	gone, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	list, _ = repo.ListBySession(ctx, "s1", 0)
	assert.Len(t, list, 1)
}
