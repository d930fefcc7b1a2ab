//go:build integration

package prefs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"moneyguard/internal/prefs"
	"moneyguard/pkg/platform/sentinel"
	"moneyguard/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *prefs.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = prefs.NewRedis(s.redis.Client, "prefs:user-1")
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestRoundTripAndNotFound() {
	ctx := context.Background()

	_, err := s.store.GetString(ctx, prefs.KeyToken)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.SetString(ctx, prefs.KeyToken, "tok-redis"))
	tok, err := s.store.GetString(ctx, prefs.KeyToken)
	s.Require().NoError(err)
	s.Equal("tok-redis", tok)

	s.Require().NoError(s.store.SetBool(ctx, prefs.KeyLoggedOut, true))
	s.True(prefs.Flag(ctx, s.store, prefs.KeyLoggedOut))

	s.Require().NoError(s.store.SetInt(ctx, prefs.KeyRiskScore, 30))
	s.Equal(30, prefs.IntOr(ctx, s.store, prefs.KeyRiskScore, 0))
}

func (s *RedisStoreSuite) TestKeysAreScopedByPrefix() {
	ctx := context.Background()
	other := prefs.NewRedis(s.redis.Client, "prefs:user-2")

	s.Require().NoError(s.store.SetString(ctx, prefs.KeySessionID, "sess-a"))

	_, err := other.GetString(ctx, prefs.KeySessionID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestDelete() {
	ctx := context.Background()

	s.Require().NoError(s.store.SetBool(ctx, prefs.KeySuspiciousLogin, true))
	s.Require().NoError(s.store.Delete(ctx, prefs.KeySuspiciousLogin))
	s.False(prefs.Flag(ctx, s.store, prefs.KeySuspiciousLogin))
}
