package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records build progress as a sequence of vertices, one per
// pipeline step.
type Telemetry interface {
	// Record starts recording a new vertex.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded pipeline step.
type Vertex interface {
	// Stdout returns a writer capturing the step's standard output stream.
	Stdout() io.Writer

	// Stderr returns a writer capturing the step's error output stream.
	Stderr() io.Writer

	// Cached marks the vertex as a cache hit.
	Cached()

	// Complete marks the vertex as finished, successfully or with an error.
	Complete(err error)
}
