package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-support/aegis/internal/domain/alert"
	vo "github.com/aegis-support/aegis/internal/domain/alert/valueobjects"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
)

func createTestAlert(t *testing.T, issueID uint, alertType vo.AlertType) *alert.Alert {
	t.Helper()
	a, err := alert.NewAlert(issueID, alertType, issuevo.SeverityCritical, "issue exceeded its resolution window")
	require.NoError(t, err)
	return a
}

func TestAlertRepository_CreateIfNoActive(t *testing.T) {
	repo := NewAlertRepository(setupTestDB(t))
	ctx := context.Background()

	first := createTestAlert(t, 10, vo.TypeSLABreach)
	created, err := repo.CreateIfNoActive(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, first.ID())

	// Same issue and type: suppressed while the first is active.
	dup := createTestAlert(t, 10, vo.TypeSLABreach)
	created, err = repo.CreateIfNoActive(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Zero(t, dup.ID())

	// Different type on the same issue is a separate alert.
	other := createTestAlert(t, 10, vo.TypeUnattended)
	created, err = repo.CreateIfNoActive(ctx, other)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestAlertRepository_CreateIfNoActive_AcknowledgedStillBlocks(t *testing.T) {
	repo := NewAlertRepository(setupTestDB(t))
	ctx := context.Background()

	first := createTestAlert(t, 10, vo.TypeSLABreach)
	created, err := repo.CreateIfNoActive(ctx, first)
	require.NoError(t, err)
	require.True(t, created)

	require.True(t, first.Acknowledge(3))
	require.NoError(t, repo.Update(ctx, first))

	dup := createTestAlert(t, 10, vo.TypeSLABreach)
	created, err = repo.CreateIfNoActive(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created, "acknowledged alerts still suppress duplicates")
}

func TestAlertRepository_CreateIfNoActive_ResolvedAllowsNew(t *testing.T) {
	repo := NewAlertRepository(setupTestDB(t))
	ctx := context.Background()

	first := createTestAlert(t, 10, vo.TypeSLABreach)
	created, err := repo.CreateIfNoActive(ctx, first)
	require.NoError(t, err)
	require.True(t, created)

	require.True(t, first.Resolve())
	require.NoError(t, repo.Update(ctx, first))

	second := createTestAlert(t, 10, vo.TypeSLABreach)
	created, err = repo.CreateIfNoActive(ctx, second)
	require.NoError(t, err)
	assert.True(t, created, "a resolved alert does not block a new breach")
}

func TestAlertRepository_UpdateAndGet(t *testing.T) {
	repo := NewAlertRepository(setupTestDB(t))
	ctx := context.Background()

	a := createTestAlert(t, 10, vo.TypeEscalation)
	created, err := repo.CreateIfNoActive(ctx, a)
	require.NoError(t, err)
	require.True(t, created)

	require.True(t, a.Acknowledge(7))
	require.NoError(t, repo.Update(ctx, a))

	found, err := repo.GetByID(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusAcknowledged, found.Status())
	require.NotNil(t, found.AcknowledgedBy())
	assert.Equal(t, uint(7), *found.AcknowledgedBy())
	assert.NotNil(t, found.AcknowledgedAt())
}

func TestAlertRepository_ListActive(t *testing.T) {
	repo := NewAlertRepository(setupTestDB(t))
	ctx := context.Background()

	active := createTestAlert(t, 10, vo.TypeSLABreach)
	_, err := repo.CreateIfNoActive(ctx, active)
	require.NoError(t, err)

	resolved := createTestAlert(t, 11, vo.TypeSLABreach)
	_, err = repo.CreateIfNoActive(ctx, resolved)
	require.NoError(t, err)
	require.True(t, resolved.Resolve())
	require.NoError(t, repo.Update(ctx, resolved))

	alerts, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, uint(10), alerts[0].IssueID())
}

func TestAlertRepository_CountActiveByIssueAndType(t *testing.T) {
	repo := NewAlertRepository(setupTestDB(t))
	ctx := context.Background()

	a := createTestAlert(t, 10, vo.TypeSLABreach)
	_, err := repo.CreateIfNoActive(ctx, a)
	require.NoError(t, err)

	count, err := repo.CountActiveByIssueAndType(ctx, 10, vo.TypeSLABreach)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = repo.CountActiveByIssueAndType(ctx, 10, vo.TypeUnattended)
	require.NoError(t, err)
	assert.Zero(t, count)
}
