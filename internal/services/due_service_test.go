package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/avelar/recallgraph/internal/errors"
	"github.com/avelar/recallgraph/internal/models"
	"github.com/avelar/recallgraph/internal/services"
)

func (e *serviceEnv) dueService() services.DueService {
	return services.NewDueService(e.progress, e.edges)
}

func (e *serviceEnv) seedDue(t *testing.T, key models.ItemKey) {
	t.Helper()
	past := time.Now().Add(-1 * time.Hour)
	p := graspedProgress(key)
	p.NextReview = &past
	e.seedProgress(t, p)
}

func TestListDue_EmptyDomain(t *testing.T) {
	env := newServiceEnv(t)
	svc := env.dueService()

	due, err := svc.ListDue(context.Background(), testUser, 10, models.FilterMixed)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestListDue_InvalidFilter(t *testing.T) {
	env := newServiceEnv(t)
	svc := env.dueService()

	_, err := svc.ListDue(context.Background(), testUser, 10, models.KindFilter("everything"))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestListDue_FoundationalItemsSurfaceFirst(t *testing.T) {
	env := newServiceEnv(t)
	a, b, c := env.chain(t)

	env.seedDue(t, a)
	env.seedDue(t, b)
	env.seedDue(t, c)

	svc := env.dueService()
	due, err := svc.ListDue(context.Background(), testUser, 10, models.FilterMixed)
	require.NoError(t, err)
	require.Len(t, due, 3)

	// impacts tie within epsilon, so the deeper prerequisite chain wins
	assert.Equal(t, c, due[0].Key())
	assert.Equal(t, b, due[1].Key())
	assert.Equal(t, a, due[2].Key())
}

func TestListDue_ImpactDominatesWhenClear(t *testing.T) {
	env := newServiceEnv(t)
	hub := env.addItem(t, 1, models.KindExercise)
	p1 := env.addItem(t, 2, models.KindDefinition)
	p2 := env.addItem(t, 3, models.KindDefinition)
	env.addEdge(t, hub, p1, 1.0)
	env.addEdge(t, hub, p2, 1.0)

	env.seedDue(t, p1)
	env.seedDue(t, p2)
	env.seedDue(t, hub)

	svc := env.dueService()
	due, err := svc.ListDue(context.Background(), testUser, 10, models.FilterMixed)
	require.NoError(t, err)
	require.Len(t, due, 3)

	// hub sends 0.5 to each due prerequisite; the prerequisites send nothing
	assert.Equal(t, hub, due[0].Key())
}

func TestListDue_KindFilter(t *testing.T) {
	env := newServiceEnv(t)
	a, b, c := env.chain(t) // a, b definitions; c exercise

	env.seedDue(t, a)
	env.seedDue(t, b)
	env.seedDue(t, c)

	svc := env.dueService()
	defs, err := svc.ListDue(context.Background(), testUser, 10, models.FilterDefinition)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	for _, d := range defs {
		assert.Equal(t, models.KindDefinition, d.ItemKind)
	}

	exs, err := svc.ListDue(context.Background(), testUser, 10, models.FilterExercise)
	require.NoError(t, err)
	require.Len(t, exs, 1)
	assert.Equal(t, c, exs[0].Key())
}

func TestListDue_RepeatedCallsAgree(t *testing.T) {
	env := newServiceEnv(t)
	a, b, c := env.chain(t)
	env.seedDue(t, a)
	env.seedDue(t, b)
	env.seedDue(t, c)

	svc := env.dueService()
	first, err := svc.ListDue(context.Background(), testUser, 10, models.FilterMixed)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := svc.ListDue(context.Background(), testUser, 10, models.FilterMixed)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
