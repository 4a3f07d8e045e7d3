//go:build e2e

package interclasse_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/projetointerclasse/interclasse/pkg/interclassesdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared helpers for the end-to-end tests.
 */

const (
	testImageName = "interclasse-test:latest"

	password = "segredo1"
	adultDOB = "2000-05-20"
)

// relaxedLimits lifts every route limit so tests can make rapid requests.
var relaxedLimits = map[string]string{
	"RATELIMIT_LOGIN_REQUESTS":               "1000",
	"RATELIMIT_LOGIN_BURST":                  "1000",
	"RATELIMIT_REGISTRATION_REQUESTS":        "1000",
	"RATELIMIT_REGISTRATION_BURST":           "1000",
	"RATELIMIT_REGISTRATION_FINISH_REQUESTS": "1000",
	"RATELIMIT_REGISTRATION_FINISH_BURST":    "1000",
	"RATELIMIT_TOURNAMENT_REQUESTS":          "1000",
	"RATELIMIT_TOURNAMENT_BURST":             "1000",
}

// TestMain builds the Docker image once before all tests and removes it after.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Interclasse Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Interclasse Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/interclasse/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

type containerOption func(*testcontainers.ContainerRequest)

func withEnv(env map[string]string) containerOption {
	return func(req *testcontainers.ContainerRequest) {
		for k, v := range env {
			req.Env[k] = v
		}
	}
}

func withNetwork(name string) containerOption {
	return func(req *testcontainers.ContainerRequest) {
		req.Networks = append(req.Networks, name)
	}
}

// setupContainer starts the service and returns its base URL.
func setupContainer(t *testing.T, opts ...containerOption) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"DATABASE_FILE":       "/data/interclasse.db",
			"PEPPER_FILE":         "/data/pepper",
			"SESSION_SECRET_FILE": "/data/session.key",
			"LOGIN_DELAY":         "10ms",
			"ENV":                 "test",
			"COOKIE_SECURE":       "false",
			"LOG_LEVEL":           "info",
			"LOG_FORMAT":          "json",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}
	for _, opt := range opts {
		opt(&req)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// registerUser runs the whole wizard in a fresh browser.
func registerUser(t *testing.T, baseURL, email, name, role string) *interclassesdk.RegistrationSummary {
	t.Helper()
	ctx := context.Background()
	c := interclassesdk.NewClient(baseURL)

	_, err := c.SubmitCredentials(ctx, email, password)
	require.NoError(t, err)
	_, err = c.SubmitConfirmation(ctx, password)
	require.NoError(t, err)
	_, err = c.SubmitProfile(ctx, name, adultDOB, role)
	require.NoError(t, err)

	sum, err := c.FinishRegistration(ctx)
	require.NoError(t, err)
	return sum
}

// loggedIn returns a fresh browser logged in as email.
func loggedIn(t *testing.T, baseURL, email string) *interclassesdk.Client {
	t.Helper()

	c := interclassesdk.NewClient(baseURL)
	_, err := c.Login(context.Background(), email, password)
	require.NoError(t, err)
	return c
}

func requireAPIError(t *testing.T, err error, status int, code string) *interclassesdk.APIError {
	t.Helper()

	var apiErr *interclassesdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	require.Equal(t, status, apiErr.StatusCode)
	if code != "" {
		require.Equal(t, code, apiErr.Code)
	}
	return apiErr
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
