package store

import (
	"context"

	"pathsync/core/backend"
	"pathsync/core/path"

	"go.uber.org/zap"
)

// Service exposes a backend through wire types.
type Service struct {
	backend backend.Backend[string]
	logger  *zap.Logger
}

// NewService creates a new store service.
func NewService(b backend.Backend[string], logger *zap.Logger) *Service {
	return &Service{backend: b, logger: logger}
}

// Get looks up one entry.
func (s *Service) Get(ctx context.Context, r GetRequest) (*GetResponse, error) {
	p, err := path.FilePathFromSegments(r.Path)
	if err != nil {
		return nil, err
	}
	item, found, err := s.backend.Get(ctx, p)
	if err != nil {
		return nil, err
	}
	return &GetResponse{Found: found, Item: item}, nil
}

// Set writes or deletes one entry.
func (s *Service) Set(ctx context.Context, r SetRequest) (*SetResponse, error) {
	p, err := path.FilePathFromSegments(r.Path)
	if err != nil {
		return nil, err
	}
	prev, found, err := s.backend.Set(ctx, p, r.Item)
	if err != nil {
		return nil, err
	}
	return &SetResponse{Found: found, Previous: prev}, nil
}

// List returns entries in scope, ordered by path.
func (s *Service) List(ctx context.Context, r ListRequest) (*ListResponse, error) {
	depth, err := path.ParseDepth(r.Depth)
	if err != nil {
		return nil, err
	}
	entries, err := s.backend.List(ctx, depth, path.NewFolderPath(r.Folder...))
	if err != nil {
		return nil, err
	}
	backend.SortEntries(entries)

	resp := &ListResponse{Entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, Entry{Path: e.Path.Segments(), Item: e.Item})
	}
	return resp, nil
}
