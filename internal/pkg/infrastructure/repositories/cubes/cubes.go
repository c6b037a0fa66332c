package cubes

import (
	"context"
	"errors"

	"github.com/diwise/api-datacubes/internal/pkg/domain"
)

// ErrNotConfigured is returned by a store created without an opener.
var ErrNotConfigured = errors.New("no cube store configured")

//go:generate moq -rm -out cubes_mock.go . CubeStore

// CubeStore is the boundary towards the chunked array storage engine.
// The catalog resolves resources into open descriptors and hands them
// over; it never reads chunks itself.
type CubeStore interface {
	Open(ctx context.Context, descriptor OpenDescriptor) (Cube, error)
}

// Cube is an opened, addressable multi dimensional dataset.
type Cube interface {
	Identifier() string
	Variables() []string
	Close() error
}

// OpenDescriptor carries everything a storage engine needs to open a
// stored resource. All fields originate from the dataset configuration
// and are passed through unchanged.
type OpenDescriptor struct {
	Identifier     string
	FileSystem     string
	Path           string
	Endpoint       string
	Region         string
	Anonymous      bool
	ChunkCacheSize uint64
}

// NewOpenDescriptor maps a stored dataset resource to its open
// descriptor.
func NewOpenDescriptor(r domain.DatasetResource) OpenDescriptor {
	return OpenDescriptor{
		Identifier:     r.Identifier,
		FileSystem:     r.FileSystem,
		Path:           r.Path,
		Endpoint:       r.Endpoint,
		Region:         r.Region,
		Anonymous:      r.Anonymous,
		ChunkCacheSize: r.ChunkCacheSize,
	}
}

// OpenerFunc is used to inject a storage engine implementation into
// NewCubeStore to improve testability.
type OpenerFunc func(ctx context.Context, descriptor OpenDescriptor) (Cube, error)

// NewCubeStore wraps an opener in a CubeStore. A nil opener yields a
// store that rejects every open with ErrNotConfigured.
func NewCubeStore(open OpenerFunc) CubeStore {
	return &cubeStore{open: open}
}

type cubeStore struct {
	open OpenerFunc
}

func (s *cubeStore) Open(ctx context.Context, descriptor OpenDescriptor) (Cube, error) {
	if s.open == nil {
		return nil, ErrNotConfigured
	}
	return s.open(ctx, descriptor)
}
