package core

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Source supplies the houses for one analysis run.
// Implementations must return houses in a stable input order.
type Source interface {
	// Name identifies the source in logs and reports.
	Name() string

	// Load reads and coerces every house, or fails without partial results.
	Load(ctx context.Context) ([]House, error)
}

// FileSource reads a delimited file from disk.
type FileSource struct {
	Path    string
	Options CSVOptions
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Load(ctx context.Context) ([]House, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	houses, err := LoadCSV(f, s.Options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return houses, nil
}

// ReaderSource reads delimited data from an io.Reader, e.g. an HTTP upload.
// It can be loaded only once.
type ReaderSource struct {
	Label   string
	Reader  io.Reader
	Options CSVOptions
}

func (s ReaderSource) Name() string { return s.Label }

func (s ReaderSource) Load(ctx context.Context) ([]House, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadCSV(s.Reader, s.Options)
}

// RowSource serves pre-built rows, e.g. decoded from JSON.
type RowSource struct {
	Label string
	Rows  []Row
}

func (s RowSource) Name() string { return s.Label }

func (s RowSource) Load(ctx context.Context) ([]House, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadRows(s.Rows)
}
