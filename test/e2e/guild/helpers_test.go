package guild_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/guildhall/pkg/guildsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for guild service end-to-end tests.
 * This includes container setup, account and server setup, and assertions.
 */

const (
	testImageName = "guildhall-test:latest"

	testPassword = "correct horse battery"
	testSecret   = "e2e-secret-0123456789abcdef-0123456789"
)

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Guild Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Guild Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/guild/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// relaxedRateLimits lifts the production limits; tests make many rapid requests.
var relaxedRateLimits = map[string]string{
	"RATELIMIT_STRICT_REQUESTS":   "1000",
	"RATELIMIT_STRICT_WINDOW_SEC": "60",
	"RATELIMIT_STRICT_BURST":      "1000",
	"RATELIMIT_MODERATE_REQUESTS": "1000",
	"RATELIMIT_MODERATE_BURST":    "1000",
}

// setupGuildContainer starts the guild service with relaxed rate limits and
// returns a client for it.
func setupGuildContainer(t *testing.T) *guildsdk.Client {
	t.Helper()
	return startContainer(t, relaxedRateLimits)
}

// setupGuildContainerWithDefaultRateLimits starts the guild service with the
// production rate limits, for the rate limiting tests only.
func setupGuildContainerWithDefaultRateLimits(t *testing.T) *guildsdk.Client {
	t.Helper()
	return startContainer(t, nil)
}

func startContainer(t *testing.T, extraEnv map[string]string) *guildsdk.Client {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"GUILD_JWT_SECRET": testSecret,
		"GUILD_ISSUER":     "guildhall-e2e",
		"ENV":              "test",
		"LOG_LEVEL":        "info",
		"LOG_FORMAT":       "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return guildsdk.NewClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()))
}

// signupUser creates the account username@example.com.
func signupUser(t *testing.T, client *guildsdk.Client, username string) *guildsdk.Session {
	t.Helper()

	session, err := client.Signup(t.Context(), guildsdk.SignupRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: testPassword,
	})
	require.NoError(t, err, "Signup should succeed")
	require.NotEmpty(t, session.Token(), "Token should not be empty")

	return session
}

// createServer creates a server owned by session.
func createServer(t *testing.T, session *guildsdk.Session, name string) *guildsdk.Server {
	t.Helper()

	server, err := session.CreateServer(t.Context(), guildsdk.CreateServerRequest{Name: name})
	require.NoError(t, err, "Server creation should succeed")
	require.Equal(t, session.User().ID, server.OwnerID)

	return server
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *guildsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertAPIError checks that err is an API error with the given status and code.
func assertAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)

	var apiErr *guildsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected an API error, got: %v", err)
	require.Equal(t, status, apiErr.StatusCode, "unexpected status for %s", apiErr.Code)
	require.Equal(t, code, apiErr.Code)
}

// assertRateLimited checks that err is a 429.
func assertRateLimited(t *testing.T, err error) {
	t.Helper()
	assertAPIError(t, err, http.StatusTooManyRequests, guildsdk.ErrorCodeRateLimited)
}
