package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/avelar/recallgraph/internal/models"
	"github.com/avelar/recallgraph/internal/repository"
	"github.com/avelar/recallgraph/internal/repository/sqlite"
	"github.com/avelar/recallgraph/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProgressRepository
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProgressRepository(s.db)
}

func (s *ProgressRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProgressRepositorySuite) insertItem(id int64, kind models.ItemKind, domainID int64, title string) {
	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO items (id, kind, domain_id, title) VALUES (?, ?, ?, ?)
	`, id, kind, domainID, title)
	s.Require().NoError(err)
}

func (s *ProgressRepositorySuite) upsert(p models.Progress) models.Progress {
	var out models.Progress
	err := s.repo.InTx(context.Background(), func(tx repository.ProgressTx) error {
		var err error
		out, err = tx.Upsert(context.Background(), p)
		return err
	})
	s.Require().NoError(err)
	return out
}

func (s *ProgressRepositorySuite) TestGetMissingReturnsNil() {
	p, err := s.repo.Get(context.Background(), 1, models.ItemKey{ID: 99, Kind: models.KindDefinition})
	s.Require().NoError(err)
	s.Assert().Nil(p)
}

func (s *ProgressRepositorySuite) TestUpsertCreatesThenUpdates() {
	ctx := context.Background()
	key := models.ItemKey{ID: 1, Kind: models.KindDefinition}

	p := models.NewProgress(7, key)
	p.Status = models.StatusGrasped
	created := s.upsert(p)
	s.Assert().Greater(created.ID, int64(0))

	next := time.Now().Add(24 * time.Hour)
	created.AccumulatedCredit = 0.42
	created.Repetitions = 2
	created.NextReview = &next
	updated := s.upsert(created)
	s.Assert().Equal(created.ID, updated.ID)

	got, err := s.repo.Get(ctx, 7, key)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(models.StatusGrasped, got.Status)
	s.Assert().InDelta(0.42, got.AccumulatedCredit, 1e-9)
	s.Assert().Equal(2, got.Repetitions)
	s.Require().NotNil(got.NextReview)
	s.Assert().WithinDuration(next, *got.NextReview, time.Second)
}

func (s *ProgressRepositorySuite) TestUpsertReclampsCreditDrift() {
	key := models.ItemKey{ID: 2, Kind: models.KindExercise}

	p := models.NewProgress(7, key)
	p.Status = models.StatusGrasped
	p.AccumulatedCredit = 1.0000000000000004 // past the CHECK bound by float drift

	saved := s.upsert(p)
	s.Assert().Equal(1.0, saved.AccumulatedCredit)

	got, err := s.repo.Get(context.Background(), 7, key)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(1.0, got.AccumulatedCredit)
}

func (s *ProgressRepositorySuite) TestInTxRollsBackOnError() {
	ctx := context.Background()
	key := models.ItemKey{ID: 3, Kind: models.KindDefinition}
	boom := errors.New("boom")

	err := s.repo.InTx(ctx, func(tx repository.ProgressTx) error {
		if _, err := tx.Upsert(ctx, models.NewProgress(7, key)); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	got, err := s.repo.Get(ctx, 7, key)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *ProgressRepositorySuite) TestInsertHistory() {
	ctx := context.Background()

	err := s.repo.InTx(ctx, func(tx repository.ProgressTx) error {
		return tx.InsertHistory(ctx, models.ReviewHistory{
			UserID:         7,
			ItemID:         1,
			ItemKind:       models.KindDefinition,
			Quality:        4,
			Success:        true,
			TimeSeconds:    12.5,
			EaseBefore:     2.5,
			EaseAfter:      2.5,
			IntervalBefore: 1,
			IntervalAfter:  6,
		})
	})
	s.Require().NoError(err)

	var quality int
	var timeSeconds float64
	err = s.db.QueryRowContext(ctx, `SELECT quality, time_seconds FROM review_history WHERE user_id = 7`).Scan(&quality, &timeSeconds)
	s.Require().NoError(err)
	s.Assert().Equal(4, quality)
	s.Assert().Equal(12.5, timeSeconds)
}

func (s *ProgressRepositorySuite) TestListDue() {
	ctx := context.Background()
	now := time.Now()
	past := now.Add(-1 * time.Hour)
	future := now.Add(24 * time.Hour)

	s.insertItem(1, models.KindDefinition, 10, "limits")
	s.insertItem(2, models.KindExercise, 10, "compute a limit")
	s.insertItem(3, models.KindDefinition, 10, "derivatives")
	s.insertItem(4, models.KindDefinition, 20, "other domain")

	mkProgress := func(id int64, kind models.ItemKind, status models.Status, next *time.Time) {
		p := models.NewProgress(7, models.ItemKey{ID: id, Kind: kind})
		p.Status = status
		p.NextReview = next
		s.upsert(p)
	}

	mkProgress(1, models.KindDefinition, models.StatusGrasped, &past)
	mkProgress(2, models.KindExercise, models.StatusGrasped, &past)
	mkProgress(3, models.KindDefinition, models.StatusGrasped, &future) // not due yet
	mkProgress(4, models.KindDefinition, models.StatusGrasped, &past)   // other domain

	// tackling item never shows up even when its next_review is past
	p := models.NewProgress(7, models.ItemKey{ID: 3, Kind: models.KindExercise})
	s.insertItem(3, models.KindExercise, 10, "derivative drill")
	p.Status = models.StatusTackling
	p.NextReview = &past
	s.upsert(p)

	due, err := s.repo.ListDue(ctx, 7, 10, models.FilterMixed, now)
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	s.Assert().Equal("limits", due[0].Title)
	s.Assert().Equal("compute a limit", due[1].Title)

	defs, err := s.repo.ListDue(ctx, 7, 10, models.FilterDefinition, now)
	s.Require().NoError(err)
	s.Require().Len(defs, 1)
	s.Assert().Equal(models.KindDefinition, defs[0].ItemKind)

	exs, err := s.repo.ListDue(ctx, 7, 10, models.FilterExercise, now)
	s.Require().NoError(err)
	s.Require().Len(exs, 1)
	s.Assert().Equal(models.KindExercise, exs[0].ItemKind)
}

func (s *ProgressRepositorySuite) TestListDueSkipsNilNextReview() {
	ctx := context.Background()
	s.insertItem(1, models.KindDefinition, 10, "limits")

	p := models.NewProgress(7, models.ItemKey{ID: 1, Kind: models.KindDefinition})
	p.Status = models.StatusGrasped // grasped but never scheduled
	s.upsert(p)

	due, err := s.repo.ListDue(ctx, 7, 10, models.FilterMixed, time.Now())
	s.Require().NoError(err)
	s.Assert().Empty(due)
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
