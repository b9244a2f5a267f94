package nats

import (
	"context"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testImage = "nats:2.10-alpine"

type Testing interface {
	require.TestingT
	Context() context.Context
	Logf(format string, args ...any)
	Cleanup(func())
}

// NewTestArea starts a JetStream server in a container and opens bucket on
// it. The area and the container are released when the test ends.
func NewTestArea(t Testing, bucket string) *Area {
	area, err := Open(Config{Connect: startServer(t), Bucket: bucket})
	require.NoError(t, err)
	t.Cleanup(func() { _ = area.Close() })
	return area
}

func startServer(t Testing) Connector {
	ctx := t.Context()
	server, err := testcontainers.Run(ctx, testImage,
		testcontainers.WithCmd("--jetstream"),
		testcontainers.WithExposedPorts("4222/tcp"),
		testcontainers.WithWaitStrategy(wait.ForLog("Server is ready")),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(server); err != nil {
			t.Logf("terminate nats container: %v", err)
		}
	})

	url, err := server.PortEndpoint(ctx, "4222/tcp", "nats")
	require.NoError(t, err)
	return ConnectURL(url)
}
