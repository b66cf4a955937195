// Package service implements the user directory, the expense ledger and the
// balance aggregator on top of a storage.Store.
//
// All three share one Service value so that a single lock covers the combined
// directory and ledger state: mutations hold the write lock for their whole
// validate, compute and store sequence, reads hold the read lock while they
// take their snapshot.
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Service is the process-wide owner of users and expenses.
type Service struct {
	mu       sync.RWMutex
	store    storage.Store
	validate *validator.Validate
	metrics  *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records domain events on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New creates a Service with the given storage backend.
func New(store storage.Store, opts ...Option) (*Service, error) {
	v, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize validator: %w", err)
	}
	s := &Service{store: store, validate: v}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// errorKind classifies err for metrics labels.
func errorKind(err error) string {
	var (
		validation *models.ValidationError
		split      *models.InvalidSplitError
		notFound   *models.NotFoundError
	)
	switch {
	case errors.As(err, &split):
		return "invalid_split"
	case errors.As(err, &validation):
		return "validation"
	case errors.As(err, &notFound):
		return "not_found"
	default:
		return "internal"
	}
}

func (s *Service) reject(operation string, err error) error {
	s.metrics.Rejected(operation, errorKind(err))
	return err
}
