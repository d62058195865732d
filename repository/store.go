package repository

import (
	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"
)

const maxStoreRetries = 3

// Store is the single gateway to the database. Every mutation runs inside one
// transaction that either fully commits or is rolled back; reads translate
// absence into a nil result rather than an error.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// transact runs fn inside a transaction, retrying connection-level failures a
// bounded number of times before surfacing them as fatal.
func (s *Store) transact(fn func(tx *gorm.DB) error) error {
	err := s.withRetry(func() error {
		return s.db.Transaction(fn)
	})
	if err != nil && isTransient(err) {
		return &TransientError{Err: err}
	}
	return err
}

func (s *Store) withRetry(op func() error) error {
	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxStoreRetries)
	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if isTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}, bo)
}
