//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"carteira/internal/directory"
	"carteira/internal/directory/store"
	"carteira/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateAll(context.Background()))
}

func (s *PostgresStoreSuite) TestSeedAndLookup() {
	ctx := context.Background()
	records, err := directory.DefaultSeed()
	s.Require().NoError(err)
	s.Require().NoError(s.store.Seed(ctx, records))

	s.Run("record with assignment", func() {
		rec, err := s.store.Lookup(ctx, "101050")
		s.Require().NoError(err)
		s.Equal("Maria Silva", rec.FullName)
		s.Equal(directory.CityUberaba, rec.City)
		s.Equal([]string{"Ônibus Municipal"}, rec.TransportProviders)
	})

	s.Run("record without assignment", func() {
		rec, err := s.store.Lookup(ctx, "303051")
		s.Require().NoError(err)
		s.Nil(rec.TransportProviders)
	})

	s.Run("absent record", func() {
		_, err := s.store.Lookup(ctx, "101999")
		s.ErrorIs(err, directory.ErrNotFound)
	})
}

func (s *PostgresStoreSuite) TestReseedReplacesRows() {
	ctx := context.Background()
	rec := directory.StudentRecord{RegistrationNumber: "202099", FullName: "Old", Institution: "UFU", City: directory.CityUberlandia}
	s.Require().NoError(s.store.Seed(ctx, []directory.StudentRecord{rec}))

	rec.FullName = "New"
	rec.TransportProviders = []string{"JN Tour"}
	s.Require().NoError(s.store.Seed(ctx, []directory.StudentRecord{rec}))

	got, err := s.store.Lookup(ctx, "202099")
	s.Require().NoError(err)
	s.Equal("New", got.FullName)
	s.Equal([]string{"JN Tour"}, got.TransportProviders)
}

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestReadThroughAgainstRealRedis() {
	ctx := context.Background()
	backing, err := store.NewInMemory([]directory.StudentRecord{
		{RegistrationNumber: "101050", FullName: "Maria Silva", Institution: "UNIUBE", City: directory.CityUberaba},
	})
	s.Require().NoError(err)
	cache := store.NewRedisCache(backing, s.redis.Client)

	rec, err := cache.Lookup(ctx, "101050")
	s.Require().NoError(err)
	s.Equal("Maria Silva", rec.FullName)

	n, err := s.redis.Client.Exists(ctx, "directory:student:101050").Result()
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	ttl, err := s.redis.Client.TTL(ctx, "directory:student:101050").Result()
	s.Require().NoError(err)
	s.Greater(ttl.Seconds(), 0.0)

	_, err = cache.Lookup(ctx, "101999")
	s.ErrorIs(err, directory.ErrNotFound)
	n, err = s.redis.Client.Exists(ctx, "directory:student:101999").Result()
	s.Require().NoError(err)
	s.Zero(n)
}
