package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/avelar/recallgraph/internal/models"
	"github.com/avelar/recallgraph/internal/repository"
	"github.com/avelar/recallgraph/internal/repository/sqlite"
	"github.com/avelar/recallgraph/internal/testutil"
)

type EdgeRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.EdgeRepository
}

func (s *EdgeRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewEdgeRepository(s.db)
}

func (s *EdgeRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *EdgeRepositorySuite) TestInsertAndList() {
	ctx := context.Background()

	id1, err := s.repo.Insert(ctx, models.PrerequisiteEdge{
		DomainID: 10, ItemID: 2, ItemKind: models.KindExercise,
		PrereqID: 1, PrereqKind: models.KindDefinition, Weight: 0.8, IsManual: true,
	})
	s.Require().NoError(err)
	s.Assert().Greater(id1, int64(0))

	_, err = s.repo.Insert(ctx, models.PrerequisiteEdge{
		DomainID: 10, ItemID: 3, ItemKind: models.KindDefinition,
		PrereqID: 1, PrereqKind: models.KindDefinition, Weight: 0.5,
	})
	s.Require().NoError(err)

	// edge in another domain stays out of the listing
	_, err = s.repo.Insert(ctx, models.PrerequisiteEdge{
		DomainID: 20, ItemID: 9, ItemKind: models.KindDefinition,
		PrereqID: 8, PrereqKind: models.KindDefinition, Weight: 1.0,
	})
	s.Require().NoError(err)

	edges, err := s.repo.ListByDomain(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(edges, 2)
	s.Assert().Equal(int64(2), edges[0].ItemID)
	s.Assert().Equal(0.8, edges[0].Weight)
	s.Assert().True(edges[0].IsManual)
	s.Assert().Equal(int64(3), edges[1].ItemID)
}

func (s *EdgeRepositorySuite) TestInsertUpdatesExistingEdge() {
	ctx := context.Background()
	e := models.PrerequisiteEdge{
		DomainID: 10, ItemID: 2, ItemKind: models.KindExercise,
		PrereqID: 1, PrereqKind: models.KindDefinition, Weight: 0.8,
	}

	id1, err := s.repo.Insert(ctx, e)
	s.Require().NoError(err)

	e.Weight = 0.3
	id2, err := s.repo.Insert(ctx, e)
	s.Require().NoError(err)
	s.Assert().Equal(id1, id2)

	edges, err := s.repo.ListByDomain(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(edges, 1)
	s.Assert().Equal(0.3, edges[0].Weight)
}

func (s *EdgeRepositorySuite) TestSelfEdgeRejected() {
	_, err := s.repo.Insert(context.Background(), models.PrerequisiteEdge{
		DomainID: 10, ItemID: 1, ItemKind: models.KindDefinition,
		PrereqID: 1, PrereqKind: models.KindDefinition, Weight: 0.5,
	})
	s.Assert().Error(err)
}

func (s *EdgeRepositorySuite) TestZeroWeightRejected() {
	_, err := s.repo.Insert(context.Background(), models.PrerequisiteEdge{
		DomainID: 10, ItemID: 2, ItemKind: models.KindDefinition,
		PrereqID: 1, PrereqKind: models.KindDefinition, Weight: 0,
	})
	s.Assert().Error(err)
}

func TestEdgeRepositorySuite(t *testing.T) {
	suite.Run(t, new(EdgeRepositorySuite))
}
