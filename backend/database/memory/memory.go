package memory

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/PressureTank/authdemo/backend/user"
)

// MemoryDB keeps users in registration order and scans them linearly.
// State lives for the process lifetime only.
type MemoryDB struct {
	mu     sync.Mutex
	users  []user.User
	nextID int
	logger *zap.Logger
}

func NewMemoryDB(logger *zap.Logger) *MemoryDB {
	return &MemoryDB{
		users:  []user.User{},
		nextID: 1,
		logger: logger,
	}
}

func (m *MemoryDB) AddUser(username, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			m.logger.Debug("Rejected duplicate username", zap.String("username", username))
			return 0, errors.Wrapf(user.ErrDuplicateUsername, "failed to add %q", username)
		}
	}

	id := m.nextID
	m.users = append(m.users, user.User{
		ID:       id,
		Username: username,
		Password: password,
	})
	m.nextID++

	m.logger.Debug("Stored user", zap.Int("user_id", id), zap.Int("count", len(m.users)))
	return id, nil
}

func (m *MemoryDB) FindByCredentials(username, password string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username && u.Password == password {
			found := u
			return &found, nil
		}
	}
	return nil, errors.Wrapf(user.ErrInvalidCredentials, "failed to find %q", username)
}

func (m *MemoryDB) ListUsers() ([]user.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	summaries := make([]user.Summary, 0, len(m.users))
	for _, u := range m.users {
		summaries = append(summaries, user.Summary{
			ID:       u.ID,
			Username: u.Username,
		})
	}
	return summaries, nil
}
