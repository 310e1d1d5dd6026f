package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rewear-app/rewear-backend/pkg/auth"
	"github.com/rewear-app/rewear-backend/pkg/config"
	pkgerrors "github.com/rewear-app/rewear-backend/pkg/errors"
	"github.com/rewear-app/rewear-backend/pkg/logger"
	"github.com/rewear-app/rewear-backend/pkg/storage"
)

// Service owns the single active session. Credentials are simulated: the
// account is derived from the email alone and the password is accepted as
// given. The session is mirrored as a JSON snapshot into the storage adapter
// and restored from it on startup.
type Service interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Signup(ctx context.Context, name, email, password string) (Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (User, bool)
	UpdatePoints(ctx context.Context, points int) error
	Hydrate(ctx context.Context) error
	Ready() bool
}

// ServiceParams bundles the dependencies required to build an identity service.
type ServiceParams struct {
	Config *config.Config
	Store  storage.Adapter
	Logger *logger.Logger
}

// Option customizes service construction.
type Option func(*service)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithIDFunc overrides id assignment for signed-up accounts.
func WithIDFunc(newID func() string) Option {
	return func(s *service) { s.newID = newID }
}

type service struct {
	cfg   *config.Config
	store storage.Adapter
	logg  *logger.Logger

	mu    sync.Mutex
	user  *User
	ready bool

	now   func() time.Time
	newID func() string
}

// NewService constructs an identity service with the provided dependencies.
func NewService(params ServiceParams, opts ...Option) (Service, error) {
	if params.Config == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "config is required")
	}
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage adapter is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	s := &service{
		cfg:   params.Config,
		store: params.Store,
		logg:  params.Logger,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Session{}, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if err := s.simulateLatency(ctx); err != nil {
		return Session{}, err
	}

	user := User{
		ID:      loginID(email),
		Email:   email,
		Name:    localPart(email),
		Points:  s.cfg.Auth.LoginPoints,
		IsAdmin: s.isAdminEmail(email),
	}
	return s.establish(ctx, user)
}

func (s *service) Signup(ctx context.Context, name, email, password string) (Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return Session{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if email == "" {
		return Session{}, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if err := s.simulateLatency(ctx); err != nil {
		return Session{}, err
	}

	user := User{
		ID:      s.newID(),
		Email:   email,
		Name:    name,
		Points:  s.cfg.Auth.WelcomeBonus,
		IsAdmin: s.isAdminEmail(email),
	}
	return s.establish(ctx, user)
}

// establish stores the user as the active session, mints an access token and
// mirrors the snapshot. Persistence is best effort: a failing adapter costs
// the restore-on-restart, not the login.
func (s *service) establish(ctx context.Context, user User) (Session, error) {
	token, err := auth.MintAccessToken(s.cfg.JWT, s.now(), auth.AccessTokenPayload{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	s.mu.Lock()
	u := user
	s.user = &u
	s.mu.Unlock()

	s.persist(ctx, user)
	return Session{User: user, AccessToken: token}, nil
}

func (s *service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Remove(ctx, s.cfg.Auth.SnapshotKey); err != nil {
		s.logg.Warn(ctx, "removing session snapshot: "+err.Error())
	}
	return nil
}

func (s *service) Current(_ context.Context) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// UpdatePoints replaces the session balance. Without an active session it is
// a silent no-op.
func (s *service) UpdatePoints(ctx context.Context, points int) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil
	}
	s.user.Points = points
	user := *s.user
	s.mu.Unlock()

	s.persist(ctx, user)
	return nil
}

// Hydrate restores the session from the stored snapshot. Missing, unreadable
// or corrupt snapshots all resolve to "no session"; the readiness flag flips
// exactly once either way.
func (s *service) Hydrate(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.ready = true
		s.mu.Unlock()
	}()

	raw, found, err := s.store.Read(ctx, s.cfg.Auth.SnapshotKey)
	if err != nil {
		s.logg.Warn(ctx, "reading session snapshot: "+err.Error())
		return nil
	}
	if !found {
		return nil
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		s.logg.Warn(ctx, "discarding corrupt session snapshot")
		if err := s.store.Remove(ctx, s.cfg.Auth.SnapshotKey); err != nil {
			s.logg.Warn(ctx, "removing corrupt session snapshot: "+err.Error())
		}
		return nil
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}

func (s *service) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *service) persist(ctx context.Context, user User) {
	raw, err := json.Marshal(user)
	if err != nil {
		s.logg.Warn(ctx, "encoding session snapshot: "+err.Error())
		return
	}
	if err := s.store.Write(ctx, s.cfg.Auth.SnapshotKey, string(raw)); err != nil {
		s.logg.Warn(ctx, "writing session snapshot: "+err.Error())
	}
}

// simulateLatency imitates a credential round trip. It respects cancellation
// so an abandoned request does not hold the handler.
func (s *service) simulateLatency(ctx context.Context) error {
	if s.cfg.Auth.LoginDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.cfg.Auth.LoginDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *service) isAdminEmail(email string) bool {
	return strings.EqualFold(email, s.cfg.Auth.AdminEmail)
}

// loginID derives a stable account id from the email, so repeated logins with
// the same address land on the same account.
func loginID(email string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(email)))
	return fmt.Sprintf("u-%08x", h.Sum32())
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
