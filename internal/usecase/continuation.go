package usecase

import (
	"sync"

	"github.com/google/uuid"
)

// continuationSet remembers, per user, which conversation the next inbound
// message belongs to. Registrations are one-shot and live only in process
// memory: after a restart an awaiting conversation is picked up through the
// fallback path instead of mid-prompt.
type continuationSet struct {
	mu     sync.Mutex
	byUser map[uuid.UUID]uuid.UUID
}

func newContinuationSet() *continuationSet {
	return &continuationSet{
		byUser: make(map[uuid.UUID]uuid.UUID),
	}
}

func (c *continuationSet) register(userID, conversationID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byUser[userID] = conversationID
}

// take removes and returns the user's registration, if any.
func (c *continuationSet) take(userID uuid.UUID) (uuid.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	conversationID, ok := c.byUser[userID]
	if ok {
		delete(c.byUser, userID)
	}
	return conversationID, ok
}

func (c *continuationSet) drop(userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byUser, userID)
}
