package session

import (
	"strings"
	"sync"
)

// DefaultUserName is the display name used until the user states one.
const DefaultUserName = "User"

// State is the process-wide session data shared by every agent.
type State struct {
	mu       sync.RWMutex
	userName string
}

func NewState() *State {
	return &State{userName: DefaultUserName}
}

func (s *State) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userName
}

func (s *State) SetUserName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userName = name
}

// UpdateFromQuery stores a name stated in the query and returns the user name in
// effect for this query, read under the same lock. changed is true only when the
// extracted name is usable and differs from the stored one.
func (s *State) UpdateFromQuery(query string) (current string, changed bool) {
	name, ok := ExtractName(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok || strings.EqualFold(name, "user") || name == s.userName {
		return s.userName, false
	}
	s.userName = name
	return name, true
}
