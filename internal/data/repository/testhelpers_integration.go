//go:build integration

package repository

import (
	"context"
	"time"

	"hotel-booking/pkg/database"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t require.TestingT, ctx context.Context) (database.PgxIface, func()) {
	const (
		dbName = "hotel_booking_test"
		user   = "testuser"
		pass   = "testpass"
	)

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       dbName,
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": pass,
		},
		// Postgres restarts once after init, so wait for the second ready line.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(2 * time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	connStr := "user=" + user + " password=" + pass + " dbname=" + dbName +
		" sslmode=disable host=" + host + " port=" + port.Port()

	db, err := database.Open(ctx, connStr, 4)
	require.NoError(t, err)

	version, err := database.Migrate(ctx, connStr)
	require.NoError(t, err)
	require.EqualValues(t, 1, version)

	// A second run is a no-op.
	version, err = database.Migrate(ctx, connStr)
	require.NoError(t, err)
	require.EqualValues(t, 1, version)

	cleanup := func() {
		db.Close()
		_ = container.Terminate(ctx)
	}
	return db, cleanup
}
