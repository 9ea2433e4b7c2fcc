package services

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/auth"
	"github.com/dmitrijs2005/finplanner/internal/server/mail"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/memory"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) now() time.Time { return c.t }

func newClock() *fixedClock {
	return &fixedClock{t: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
}

type fakeSender struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeSender) messages() []mail.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mail.Message(nil), f.sent...)
}

var tokenInLink = regexp.MustCompile(`token=([0-9a-f]+)`)

// tokenFrom pulls the raw reset token out of the plain-text body.
func tokenFrom(t *testing.T, msg mail.Message) string {
	t.Helper()
	m := tokenInLink.FindStringSubmatch(msg.Text)
	require.Len(t, m, 2, "no token in %q", msg.Text)
	return m[1]
}

type env struct {
	store   *memory.Store
	manager repomanager.RepositoryManager
	hasher  *auth.Hasher
	users   *UserService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	m := repomanager.NewMemoryRepositoryManager(store)
	hasher := auth.NewHasher(bcrypt.MinCost)
	tokens := auth.NewIssuer("test-secret", time.Hour)

	return &env{
		store:   store,
		manager: m,
		hasher:  hasher,
		users:   NewUserService(nil, m, tokens, hasher, 6, logging.Nop()),
	}
}

func (e *env) register(t *testing.T, username, email, password string) *Session {
	t.Helper()
	s, err := e.users.Register(context.Background(), username, email, password)
	require.NoError(t, err)
	return s
}
