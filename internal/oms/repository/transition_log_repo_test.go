package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuditDB(t *testing.T) *TransitionLogRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	repo := NewTransitionLogRepository(db)
	require.NoError(t, repo.AutoMigrate(context.Background()))
	return repo
}

func TestTransitionLogCreateAndList(t *testing.T) {
	repo := setupAuditDB(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &entity.TransitionLog{
		EntityType: entity.EntityTypeJobOrder, EntityID: "JO26-001",
		Event: entity.EventConfirm, FromState: entity.StatusPreparing, ToState: entity.StatusDelivering,
		TriggeredBy: "clerk", CreatedAt: base.Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.TransitionLog{
		EntityType: entity.EntityTypeJobOrder, EntityID: "JO26-001",
		Event: entity.EventCreate, ToState: entity.StatusPreparing,
		TriggeredBy: "clerk", CreatedAt: base,
	}))
	require.NoError(t, repo.Create(ctx, &entity.TransitionLog{
		EntityType: entity.EntityTypeJobOrder, EntityID: "JO26-002",
		Event: entity.EventCreate, ToState: entity.StatusPreparing, CreatedAt: base,
	}))

	logs, err := repo.ListByJONumber(ctx, "JO26-001")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, entity.EventCreate, logs[0].Event)
	assert.Equal(t, entity.EventConfirm, logs[1].Event)
	assert.NotEmpty(t, logs[0].ID)

	require.NoError(t, repo.Ping(ctx))
}
