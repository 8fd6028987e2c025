package telemetry

import (
	"context"
	"testing"

	"hotel-booking/pkg/utils"

	"github.com/stretchr/testify/require"
)

func TestNormalizeOTLPEndpoint(t *testing.T) {
	cases := map[string]string{
		"collector:4317":          "collector:4317",
		"http://collector:4317":   "collector:4317",
		"https://otel.local:4317": "otel.local:4317",
	}
	for in, want := range cases {
		got, err := normalizeOTLPEndpoint(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got)
	}

	_, err := normalizeOTLPEndpoint("http://")
	require.Error(t, err)
}

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), utils.TelemetryConfig{ServiceName: "hotel-booking"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
