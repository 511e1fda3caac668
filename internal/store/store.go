package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/identitystore/internal/logging"
	"github.com/dmitrijs2005/identitystore/internal/models"
)

// MemoryStore is a concurrency-safe, process-local identity store.
// Use NewMemoryStore; the zero value is not usable.
type MemoryStore struct {
	// structure serialises renames against readers of both indices.
	structure sync.RWMutex

	users    *index[string, *models.User] // key(normalized name) -> record
	userKeys *index[string, string]       // id -> key(normalized name)

	details           *index[string, *details]
	authenticatorKeys *index[string, string]
	recoveryCodes     *index[string, []string]

	newID          func() string
	retainOnDelete bool
	logger         logging.Logger
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithIDGenerator replaces the uuid-based id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *MemoryStore) { s.newID = fn }
}

// WithLogger sets the logger used for debug events.
func WithLogger(l logging.Logger) Option {
	return func(s *MemoryStore) { s.logger = l.With("module", "identity_store") }
}

// WithSideTableRetention keeps the detail bundle, authenticator key and
// recovery codes of a deleted user instead of dropping them with the record.
func WithSideTableRetention() Option {
	return func(s *MemoryStore) { s.retainOnDelete = true }
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		users:             newIndex[string, *models.User](),
		userKeys:          newIndex[string, string](),
		details:           newIndex[string, *details](),
		authenticatorKeys: newIndex[string, string](),
		recoveryCodes:     newIndex[string, []string](),
		newID:             uuid.NewString,
		logger:            logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
