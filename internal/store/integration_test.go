//go:build integration

package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func requireDocker(t *testing.T) {
	t.Helper()
	if os.Getenv("FINPLAN_TEST_DOCKER") != "true" {
		t.Skip("Docker tests disabled (set FINPLAN_TEST_DOCKER=true to enable)")
	}
}

// startContainer runs image and returns host:port for the exposed port.
func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start %s", req.Image)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s", host, mapped.Port())
}

func TestRedisCache_Integration(t *testing.T) {
	requireDocker(t)

	addr := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	}, "6379/tcp")

	ctx := context.Background()
	cache := NewRedisCache(addr, time.Minute)
	defer cache.Close()
	require.NoError(t, cache.Ping(ctx))

	_, ok := cache.Get(ctx, "mortgage:abc")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "mortgage:abc", `{"monthly_payment":1216.04}`))
	got, ok := cache.Get(ctx, "mortgage:abc")
	require.True(t, ok)
	assert.Equal(t, `{"monthly_payment":1216.04}`, got)
}

func TestPostgresSnapshots_Integration(t *testing.T) {
	requireDocker(t)

	addr := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "finplan",
			"POSTGRES_PASSWORD": "finplan",
			"POSTGRES_DB":       "finplan",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(90 * time.Second),
	}, "5432/tcp")

	ctx := context.Background()
	url := fmt.Sprintf("postgres://finplan:finplan@%s/finplan?sslmode=disable", addr)
	repo, err := NewPostgresSnapshots(ctx, url)
	require.NoError(t, err)
	defer repo.Close()

	snapshotRepositoryContract(t, repo)

	// Saving again with the same id replaces the row.
	updated := snapshotAt("a", time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), 150)
	updated.Label = "corrected"
	require.NoError(t, repo.Save(ctx, updated))
	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "corrected", got.Label)
	assert.Equal(t, "150", got.NetWorth.String())
}
