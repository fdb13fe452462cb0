package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gvcargo/internal/models"
)

func TestCreateSyncTask(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	task := &models.SyncTask{
		TaskType: "append",
		OrderID:  1,
		Payload:  `{"order_id":1}`,
		Status:   "pending",
	}
	require.NoError(t, db.CreateSyncTask(ctx, task))
	assert.NotZero(t, task.ID)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestGetPendingSyncTasks(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	pending := &models.SyncTask{TaskType: "append", OrderID: 1, Payload: "{}", Status: "pending"}
	require.NoError(t, db.CreateSyncTask(ctx, pending))

	future := time.Now().Add(time.Hour)
	deferred := &models.SyncTask{TaskType: "append", OrderID: 2, Payload: "{}", Status: "retry", NextRetryAt: &future}
	require.NoError(t, db.CreateSyncTask(ctx, deferred))

	past := time.Now().Add(-time.Minute)
	due := &models.SyncTask{TaskType: "append", OrderID: 3, Payload: "{}", Status: "retry", NextRetryAt: &past}
	require.NoError(t, db.CreateSyncTask(ctx, due))

	done := &models.SyncTask{TaskType: "append", OrderID: 4, Payload: "{}", Status: "completed"}
	require.NoError(t, db.CreateSyncTask(ctx, done))

	tasks, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	ids := []int64{tasks[0].OrderID, tasks[1].OrderID}
	assert.Contains(t, ids, int64(1))
	assert.Contains(t, ids, int64(3))
}

func TestUpdateSyncTaskStatus(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	task := &models.SyncTask{TaskType: "append", OrderID: 1, Payload: "{}", Status: "pending"}
	require.NoError(t, db.CreateSyncTask(ctx, task))

	t.Run("retry increments counter and defers", func(t *testing.T) {
		next := time.Now().Add(time.Hour)
		require.NoError(t, db.UpdateSyncTaskStatus(ctx, task.ID, "retry", "api timeout", &next))

		tasks, err := db.GetPendingSyncTasks(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, tasks, "deferred retry must not be picked up early")
	})

	t.Run("completed records processed_at", func(t *testing.T) {
		require.NoError(t, db.UpdateSyncTaskStatus(ctx, task.ID, "completed", "", nil))

		tasks, err := db.GetPendingSyncTasks(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, tasks)

		failed, err := db.GetFailedSyncTasks(ctx)
		require.NoError(t, err)
		assert.Empty(t, failed)
	})
}

func TestGetFailedSyncTasks(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	task := &models.SyncTask{TaskType: "append", OrderID: 1, Payload: "{}", Status: "pending"}
	require.NoError(t, db.CreateSyncTask(ctx, task))
	require.NoError(t, db.UpdateSyncTaskStatus(ctx, task.ID, "failed", "gave up", nil))

	failed, err := db.GetFailedSyncTasks(ctx)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, task.ID, failed[0].ID)
	require.NotNil(t, failed[0].LastError)
	assert.Equal(t, "gave up", *failed[0].LastError)
	assert.Equal(t, 0, failed[0].RetryCount)
}
