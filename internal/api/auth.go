package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/autoharness/cartool-core/internal/auth"
)

// ticketTTL is how long a WebSocket ticket is valid.
const ticketTTL = 60 * time.Second

// roleFromContext returns the role stored by authMiddleware, or "" when the
// request was not authenticated.
func roleFromContext(ctx context.Context) auth.Role {
	role, _ := ctx.Value(ctxKeyRole).(auth.Role)
	return role
}

// permitted reports whether role grants perm. Everything is permitted when
// authentication is disabled.
func (s *Server) permitted(role auth.Role, perm auth.Permission) bool {
	return !s.authEnabled() || auth.HasPermission(role, perm)
}

// invokePermission is the permission needed to call the named function.
// Unknown names need only read access so they fail as not found.
func (s *Server) invokePermission(name string) auth.Permission {
	if schema, ok := s.functions.Lookup(name); ok && schema.Writes {
		return auth.PermPropertyWrite
	}
	return auth.PermPropertyRead
}

// ticketStore holds pending WebSocket authentication tickets.
// Tickets are single-use, expire after ticketTTL and carry the role of the
// token they were issued to.
type ticketStore struct {
	tickets map[string]pendingTicket
	mu      sync.Mutex
}

type pendingTicket struct {
	role      auth.Role
	expiresAt time.Time
}

func newTicketStore() *ticketStore {
	return &ticketStore{tickets: make(map[string]pendingTicket)}
}

// issue stores and returns a new ticket for role.
func (t *ticketStore) issue(role auth.Role) string {
	ticket := generateTicket()
	t.mu.Lock()
	t.tickets[ticket] = pendingTicket{role: role, expiresAt: time.Now().Add(ticketTTL)}
	t.mu.Unlock()
	return ticket
}

// consume removes a ticket and returns its role if it was still valid.
func (t *ticketStore) consume(ticket string) (auth.Role, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pending, ok := t.tickets[ticket]
	if !ok {
		return "", false
	}
	delete(t.tickets, ticket)
	if !time.Now().Before(pending.expiresAt) {
		return "", false
	}
	return pending.role, true
}

// cleanExpired removes expired tickets.
func (t *ticketStore) cleanExpired() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	for ticket, pending := range t.tickets {
		if now.After(pending.expiresAt) {
			delete(t.tickets, ticket)
		}
	}
}

// handleWSTicket generates a single-use WebSocket authentication ticket.
// The client uses this ticket to authenticate the WebSocket connection
// without exposing the JWT in the URL.
func (s *Server) handleWSTicket(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ticket":     s.tickets.issue(roleFromContext(r.Context())),
		"expires_in": int(ticketTTL.Seconds()),
	})
}

// ticketBytes is the number of random bytes used for WebSocket tickets.
const ticketBytes = 32

// generateTicket creates a cryptographically random ticket string.
func generateTicket() string {
	b := make([]byte, ticketBytes)
	//nolint:errcheck // crypto/rand.Read always returns len(b) on supported platforms
	rand.Read(b)
	return hex.EncodeToString(b)
}

// cleanTicketsLoop removes expired tickets periodically until the context is cancelled.
func (s *Server) cleanTicketsLoop(ctx context.Context) {
	ticker := time.NewTicker(ticketTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tickets.cleanExpired()
		}
	}
}
