package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/pkg/errors"
	"github.com/infra-status-service/internal/repository/postgres/testhelpers"
)

// AssetRepositoryTestSuite tests nodes and lines persistence
type AssetRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repos  *testhelpers.Repositories
	ctx    context.Context
}

func (s *AssetRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())
	s.repos = testhelpers.NewRepositoriesForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *AssetRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *AssetRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func (s *AssetRepositoryTestSuite) TestCreateNode_CoordinatesVerbatim() {
	node := &domain.Node{
		NetworkType: domain.NetworkWater,
		Subtype:     "valve",
		Point:       domain.Position{36.29128, 33.51306},
		Status:      domain.AssetActive,
		Metadata:    domain.Metadata{"diameter_mm": 150.0},
	}
	s.Require().NoError(s.repos.Assets.CreateNode(s.ctx, node))
	s.NotZero(node.ID)

	raw, err := testhelpers.RawColumn(s.ctx, s.testDB.DB, "network_nodes", "point", node.ID)
	s.Require().NoError(err)
	s.Equal("[36.29128,33.51306]", raw)

	got, err := s.repos.Assets.GetNode(s.ctx, node.ID)
	s.Require().NoError(err)
	s.Equal(node.Point, got.Point)
	s.Equal("valve", got.Subtype)
	s.Equal(150.0, got.Metadata["diameter_mm"])
}

func (s *AssetRepositoryTestSuite) TestUpdateNode_PatchesOnlyGivenFields() {
	node := &domain.Node{
		NetworkType: domain.NetworkElectricity,
		Point:       domain.Position{1, 2},
		Status:      domain.AssetActive,
		Metadata:    domain.Metadata{"owner": "grid"},
	}
	s.Require().NoError(s.repos.Assets.CreateNode(s.ctx, node))

	broken := domain.AssetBroken
	got, err := s.repos.Assets.UpdateNode(s.ctx, node.ID, domain.AssetPatch{Status: &broken})
	s.Require().NoError(err)
	s.Equal(domain.AssetBroken, got.Status)
	s.Equal("grid", got.Metadata["owner"])

	meta := domain.Metadata{"owner": "city"}
	got, err = s.repos.Assets.UpdateNode(s.ctx, node.ID, domain.AssetPatch{Metadata: &meta})
	s.Require().NoError(err)
	s.Equal(domain.AssetBroken, got.Status)
	s.Equal("city", got.Metadata["owner"])

	_, err = s.repos.Assets.UpdateNode(s.ctx, node.ID+1000, domain.AssetPatch{Status: &broken})
	s.ErrorIs(err, errors.ErrNodeNotFound)
}

func (s *AssetRepositoryTestSuite) TestDeleteNode_LeavesOthersUntouched() {
	a := &domain.Node{NetworkType: domain.NetworkPhone, Point: domain.Position{1, 1}, Status: domain.AssetActive}
	b := &domain.Node{NetworkType: domain.NetworkPhone, Point: domain.Position{2, 2}, Status: domain.AssetActive}
	s.Require().NoError(s.repos.Assets.CreateNode(s.ctx, a))
	s.Require().NoError(s.repos.Assets.CreateNode(s.ctx, b))

	s.Require().NoError(s.repos.Assets.DeleteNode(s.ctx, a.ID))
	s.ErrorIs(s.repos.Assets.DeleteNode(s.ctx, a.ID), errors.ErrNodeNotFound)

	nodes, err := s.repos.Assets.ListNodes(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(nodes, 1)
	s.Equal(b.ID, nodes[0].ID)
}

func (s *AssetRepositoryTestSuite) TestLineLifecycle() {
	line := &domain.Line{
		NetworkType: domain.NetworkSewage,
		Coordinates: domain.LineString{{36.1, 33.1}, {36.2, 33.15}, {36.25, 33.2}},
		Status:      domain.AssetActive,
	}
	s.Require().NoError(s.repos.Assets.CreateLine(s.ctx, line))

	raw, err := testhelpers.RawColumn(s.ctx, s.testDB.DB, "network_lines", "coordinates", line.ID)
	s.Require().NoError(err)
	s.Equal("[[36.1,33.1],[36.2,33.15],[36.25,33.2]]", raw)

	maintenance := domain.AssetMaintenance
	updated, err := s.repos.Assets.UpdateLine(s.ctx, line.ID, domain.AssetPatch{Status: &maintenance})
	s.Require().NoError(err)
	s.Equal(domain.AssetMaintenance, updated.Status)
	s.Equal(line.Coordinates, updated.Coordinates)

	s.Require().NoError(s.repos.Assets.DeleteLine(s.ctx, line.ID))
	_, err = s.repos.Assets.GetLine(s.ctx, line.ID)
	s.ErrorIs(err, errors.ErrLineNotFound)
}

func TestAssetRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(AssetRepositoryTestSuite))
}
