package httpkit

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the caller behind a request.
// Handlers read it without depending on how the token was verified.
type Identity interface {
	// UserID returns the authenticated subject, or uuid.Nil.
	UserID() uuid.UUID
	// IsAuthenticated returns true if a valid token was presented.
	IsAuthenticated() bool
}

type identity struct {
	userID        uuid.UUID
	authenticated bool
}

func (i *identity) UserID() uuid.UUID     { return i.userID }
func (i *identity) IsAuthenticated() bool { return i.authenticated }

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity when auth is disabled or no token was given.
func GetIdentity(c *gin.Context) Identity {
	value, ok := c.Get(ContextUserIDKey)
	if !ok {
		return &identity{}
	}
	uid, ok := value.(uuid.UUID)
	if !ok {
		return &identity{}
	}
	return &identity{userID: uid, authenticated: true}
}
