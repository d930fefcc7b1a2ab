package prefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"moneyguard/pkg/platform/sentinel"
)

// PrefsStoreSuite covers the typed get/set semantics the orchestrator relies
// on: absent keys read as ErrNotFound, flags default to false, and values
// round-trip through the string representation shared with the Redis backend.
type PrefsStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func (s *PrefsStoreSuite) SetupTest() {
	s.store = NewMemory()
}

func TestPrefsStoreSuite(t *testing.T) {
	suite.Run(t, new(PrefsStoreSuite))
}

func (s *PrefsStoreSuite) TestAbsentKeys() {
	ctx := context.Background()

	_, err := s.store.GetString(ctx, KeyToken)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.GetBool(ctx, KeyLoggedOut)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.GetInt(ctx, KeyRiskScore)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PrefsStoreSuite) TestRoundTrips() {
	ctx := context.Background()

	s.Require().NoError(s.store.SetString(ctx, KeyFullName, "Jane Doe"))
	name, err := s.store.GetString(ctx, KeyFullName)
	s.Require().NoError(err)
	s.Equal("Jane Doe", name)

	s.Require().NoError(s.store.SetBool(ctx, KeyIdentityCompromised, true))
	flag, err := s.store.GetBool(ctx, KeyIdentityCompromised)
	s.Require().NoError(err)
	s.True(flag)

	s.Require().NoError(s.store.SetInt(ctx, KeyRiskScore, 75))
	score, err := s.store.GetInt(ctx, KeyRiskScore)
	s.Require().NoError(err)
	s.Equal(75, score)
}

func (s *PrefsStoreSuite) TestDelete() {
	ctx := context.Background()

	s.Require().NoError(s.store.SetString(ctx, KeyToken, "tok-1"))
	s.Require().NoError(s.store.Delete(ctx, KeyToken))

	_, err := s.store.GetString(ctx, KeyToken)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PrefsStoreSuite) TestHelpers() {
	ctx := context.Background()

	s.False(Flag(ctx, s.store, KeySuspiciousLogin))
	s.Require().NoError(s.store.SetBool(ctx, KeySuspiciousLogin, true))
	s.True(Flag(ctx, s.store, KeySuspiciousLogin))

	s.Equal(50, IntOr(ctx, s.store, KeyHighRiskThreshold, 50))
	s.Require().NoError(s.store.SetInt(ctx, KeyHighRiskThreshold, 60))
	s.Equal(60, IntOr(ctx, s.store, KeyHighRiskThreshold, 50))

	s.Equal("", StringOr(ctx, s.store, KeySessionID, ""))
}
