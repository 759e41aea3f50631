package progrock_test

import (
	"context"
	"testing"

	"github.com/rockdove/forge/internal/adapters/telemetry/progrock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
}

func TestRecorder_Record(t *testing.T) {
	recorder := progrock.New()
	defer func() { _ = recorder.Close() }()

	_, v := recorder.Record(context.Background(), "install dependencies")
	require.NotNil(t, v)

	_, err := v.Stdout().Write([]byte("collecting requests\n"))
	require.NoError(t, err)
	v.Complete(nil)
}

func TestRecorder_CachedVertex(t *testing.T) {
	recorder := progrock.New()
	defer func() { _ = recorder.Close() }()

	_, v := recorder.Record(context.Background(), "stage source tree")
	v.Cached()
	v.Complete(nil)
}
