package runtime

import (
	"context"
	"github.com/samber/lo"
	"livechat/contract"
	"livechat/domain"
	"sync"
)

// AssignmentService answers "which commercials can take a chat right now".
// It reads the live registry on every call; connect and disconnect events
// move faster than any cache could follow.
type AssignmentService struct {
	mu       sync.RWMutex
	registry contract.IRegistry
	excluded map[string]struct{}
}

func NewAssignmentService(registry contract.IRegistry) *AssignmentService {
	return &AssignmentService{
		registry: registry,
		excluded: make(map[string]struct{}),
	}
}

// GetConnectedCommercials returns connected commercials, oldest session first,
// minus those excluded after a disconnect. Empty when nobody is online.
func (s *AssignmentService) GetConnectedCommercials(_ context.Context) []domain.ConnectionUser {
	users := s.registry.Find(domain.Where(domain.FieldRoles, domain.EQUALS, domain.RoleCommercial))

	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Filter(users, func(u domain.ConnectionUser, _ int) bool {
		_, excluded := s.excluded[u.UserID]
		return u.IsConnected() && !excluded
	})
}

// Exclude keeps userID out of auto-assignment until Include is called.
func (s *AssignmentService) Exclude(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.excluded[userID] = struct{}{}
}

func (s *AssignmentService) Include(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.excluded, userID)
}
