//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"acont-edge/internal/audit"
	"acont-edge/internal/audit/store/postgres"
	"acont-edge/pkg/testutil/containers"

	"github.com/stretchr/testify/suite"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *postgres.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())

	store, err := postgres.Open(context.Background(), s.pg.URL)
	s.Require().NoError(err)
	s.store = store
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.store != nil {
		s.Require().NoError(s.store.Close())
	}
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pg.DB.ExecContext(context.Background(), "TRUNCATE edge_security_events")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestAppendAndList() {
	ctx := context.Background()

	event := audit.Event{
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
		Action:    audit.ActionRoleDenied,
		Path:      "/en/admin",
		Locale:    "en",
		Role:      "merchant_admin",
		Subject:   "ana@firma.ro",
		Target:    "/en/dashboard/merchant",
		RequestID: "req-42",
	}
	s.Require().NoError(s.store.Append(ctx, event))

	events, err := s.store.ListByAction(ctx, audit.ActionRoleDenied)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(event.Path, events[0].Path)
	s.Equal(event.Role, events[0].Role)
	s.Equal(event.Subject, events[0].Subject)
	s.Equal(event.Target, events[0].Target)
	s.Equal(event.RequestID, events[0].RequestID)
	s.WithinDuration(event.Timestamp, events[0].Timestamp, time.Millisecond)
}

func (s *PostgresStoreSuite) TestListFiltersByAction() {
	ctx := context.Background()

	s.Require().NoError(s.store.Append(ctx, audit.Event{
		Timestamp: time.Now(), Action: audit.ActionInvalidCredential, Path: "/ro/admin", Locale: "ro",
	}))
	s.Require().NoError(s.store.Append(ctx, audit.Event{
		Timestamp: time.Now(), Action: audit.ActionUnknownRole, Path: "/ro/admin", Locale: "ro",
	}))

	events, err := s.store.ListByAction(ctx, audit.ActionInvalidCredential)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.ActionInvalidCredential, events[0].Action)
}

func (s *PostgresStoreSuite) TestListNewestFirst() {
	ctx := context.Background()

	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	s.Require().NoError(s.store.Append(ctx, audit.Event{
		Timestamp: older, Action: audit.ActionRoleDenied, Path: "/old", Locale: "ro",
	}))
	s.Require().NoError(s.store.Append(ctx, audit.Event{
		Timestamp: newer, Action: audit.ActionRoleDenied, Path: "/new", Locale: "ro",
	}))

	events, err := s.store.ListByAction(ctx, audit.ActionRoleDenied)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal("/new", events[0].Path)
	s.Equal("/old", events[1].Path)
}
