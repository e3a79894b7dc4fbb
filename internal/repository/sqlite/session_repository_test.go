package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/avelar/recallgraph/internal/repository"
	"github.com/avelar/recallgraph/internal/repository/sqlite"
	"github.com/avelar/recallgraph/internal/testutil"
)

type SessionRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.SessionRepository
}

func (s *SessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSessionRepository(s.db)
}

func (s *SessionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SessionRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()

	created, err := s.repo.Create(ctx, 7)
	s.Require().NoError(err)
	s.Require().NotNil(created)
	s.Assert().NotEmpty(created.ID)
	s.Assert().Equal(int64(7), created.UserID)
	s.Assert().Nil(created.EndedAt)
	s.Assert().Zero(created.ReviewCount)

	got, err := s.repo.Get(ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(created.ID, got.ID)
}

func (s *SessionRepositorySuite) TestGetMissingReturnsNil() {
	got, err := s.repo.Get(context.Background(), "no-such-session")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *SessionRepositorySuite) TestRecordReviewBumpsCounters() {
	ctx := context.Background()
	sess, err := s.repo.Create(ctx, 7)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.RecordReview(ctx, sess.ID, true))
	s.Require().NoError(s.repo.RecordReview(ctx, sess.ID, false))
	s.Require().NoError(s.repo.RecordReview(ctx, sess.ID, true))

	got, err := s.repo.Get(ctx, sess.ID)
	s.Require().NoError(err)
	s.Assert().Equal(3, got.ReviewCount)
	s.Assert().Equal(2, got.SuccessCount)
}

func (s *SessionRepositorySuite) TestEndFreezesCounters() {
	ctx := context.Background()
	sess, err := s.repo.Create(ctx, 7)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.RecordReview(ctx, sess.ID, true))
	s.Require().NoError(s.repo.End(ctx, sess.ID))

	// counter updates after end are silently dropped
	s.Require().NoError(s.repo.RecordReview(ctx, sess.ID, true))

	got, err := s.repo.Get(ctx, sess.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.EndedAt)
	s.Assert().Equal(1, got.ReviewCount)
}

func (s *SessionRepositorySuite) TestEndTwiceFails() {
	ctx := context.Background()
	sess, err := s.repo.Create(ctx, 7)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.End(ctx, sess.ID))
	s.Assert().ErrorIs(s.repo.End(ctx, sess.ID), sql.ErrNoRows)
}

func TestSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SessionRepositorySuite))
}
