package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"PengaduanKPU/internal/logger"
	"PengaduanKPU/internal/serviceiface"
)

type UserSession struct {
	SessionID     string `json:"session_id"`
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	LastLoginTime string `json:"last_login_time"`
	ClientIP      string `json:"client_ip"`
	IsLoggedIn    bool   `json:"is_logged_in"`
}

type AuthService struct {
	db             *sql.DB
	maxUsers       int
	sessionTimeout time.Duration
	sessions       map[string]*UserSession
	lastSeen       map[string]time.Time
	mu             sync.Mutex
	stopCh         chan struct{}
}

var (
	defaultService *AuthService
	defaultOnce    sync.Once
)

// ValidateSession checks a session id against the running service and
// refreshes its activity window, so a session in active use does not
// idle-expire.
func ValidateSession(sessionID string) bool {
	if defaultService == nil {
		return false
	}
	return defaultService.ValidSession(sessionID)
}

func NewAuthService(db *sql.DB, maxUsers, sessionTimeoutMin int) serviceiface.Service {
	if maxUsers <= 0 {
		maxUsers = 50
	}
	if sessionTimeoutMin <= 0 {
		sessionTimeoutMin = 480
	}
	svc := &AuthService{
		db:             db,
		maxUsers:       maxUsers,
		sessionTimeout: time.Duration(sessionTimeoutMin) * time.Minute,
		sessions:       make(map[string]*UserSession),
		lastSeen:       make(map[string]time.Time),
		stopCh:         make(chan struct{}),
	}
	defaultOnce.Do(func() { defaultService = svc })
	return svc
}

func (a *AuthService) Name() string { return "auth" }

func (a *AuthService) Start() error {
	go a.sessionCleaner()
	return nil
}

func (a *AuthService) Stop() error {
	close(a.stopCh)
	return nil
}

// Login verifies credentials against the users table and opens (or renews)
// an in-memory session.
func (a *AuthService) Login(username, password, clientIP string) (*UserSession, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, s := range a.sessions {
		if s.Username == username && s.IsLoggedIn {
			s.LastLoginTime = time.Now().Format(time.RFC3339)
			s.ClientIP = clientIP
			a.lastSeen[s.SessionID] = time.Now()
			logger.Audit(fmt.Sprintf("User %s re-logged in, returning existing session", username))
			return s, nil
		}
	}

	if len(a.sessions) >= a.maxUsers {
		return nil, errors.New("maximum concurrent users reached")
	}

	var (
		userID, name, hash string
		role, status       sql.NullString
	)
	err := a.db.QueryRow(`
		SELECT id, employee_name, password_hash, role, status
		FROM users WHERE username = $1`, username,
	).Scan(&userID, &name, &hash, &role, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.New("invalid username or password")
	}
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if status.Valid && status.String != "active" {
		return nil, errors.New("account is not active")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, errors.New("invalid username or password")
	}

	session := &UserSession{
		SessionID:     uuid.New().String(),
		UserID:        userID,
		Name:          name,
		Username:      username,
		Role:          role.String,
		LastLoginTime: time.Now().Format(time.RFC3339),
		ClientIP:      clientIP,
		IsLoggedIn:    true,
	}
	a.sessions[session.SessionID] = session
	a.lastSeen[session.SessionID] = time.Now()
	logger.Audit(fmt.Sprintf("User %s logged in from %s", username, clientIP))
	return session, nil
}

func (a *AuthService) Logout(sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sessions[sessionID]
	if !ok {
		return errors.New("session not found")
	}
	delete(a.sessions, sessionID)
	delete(a.lastSeen, sessionID)
	logger.Audit(fmt.Sprintf("User %s logged out", s.Username))
	return nil
}

// ValidSession reports whether the session id belongs to a live session and
// refreshes its activity timestamp.
func (a *AuthService) ValidSession(sessionID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.sessions[sessionID]; !ok {
		return false
	}
	a.lastSeen[sessionID] = time.Now()
	return true
}

func (a *AuthService) ActiveSessions() []*UserSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*UserSession, 0, len(a.sessions))
	for _, s := range a.sessions {
		out = append(out, s)
	}
	return out
}

func (a *AuthService) sessionCleaner() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			a.mu.Lock()
			for id, seen := range a.lastSeen {
				if time.Since(seen) > a.sessionTimeout {
					if s, ok := a.sessions[id]; ok {
						logger.Audit(fmt.Sprintf("Session for %s expired", s.Username))
					}
					delete(a.sessions, id)
					delete(a.lastSeen, id)
				}
			}
			a.mu.Unlock()
		}
	}
}
