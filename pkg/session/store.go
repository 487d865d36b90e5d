package session

import (
	"errors"
	"log"
	"time"

	"RubyAI/models"
	"RubyAI/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("session not found")

// Store persists login sessions in the database. The cookie only names a
// session id; every request is validated against a row here, so a forged or
// revoked cookie is useless on its own. A small cache fronts the hot lookups.
type Store struct {
	db    *gorm.DB
	cache *cache.Cache
	ttl   time.Duration
}

// NewStore creates a session store with the given absolute session lifetime
// and starts a periodic purge of expired rows.
func NewStore(db *gorm.DB, ttl time.Duration, cacheMaxItems int) *Store {
	s := &Store{db: db, cache: cache.New(cacheMaxItems), ttl: ttl}
	go s.purgeLoop(time.Hour)
	return s
}

// TTL returns the absolute session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create inserts a new session row for userID.
func (s *Store) Create(userID uint) (*models.Session, error) {
	sess := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.Create(sess).Error; err != nil {
		return nil, err
	}
	s.cacheSet(sess)
	return sess, nil
}

// Get returns the session for id, or ErrNotFound when it is missing or past
// its absolute expiry. Expired rows are deleted on sight.
func (s *Store) Get(id string) (*models.Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	if v, ok := s.cache.Get(id); ok {
		if sess, ok := v.(*models.Session); ok {
			if time.Now().Before(sess.ExpiresAt) {
				return sess, nil
			}
			s.cache.Delete(id)
		}
	}
	var sess models.Session
	if err := s.db.First(&sess, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !time.Now().Before(sess.ExpiresAt) {
		_ = s.db.Delete(&models.Session{}, "id = ?", id).Error
		return nil, ErrNotFound
	}
	s.cacheSet(&sess)
	return &sess, nil
}

// Delete removes a session (logout).
func (s *Store) Delete(id string) error {
	s.cache.Delete(id)
	return s.db.Delete(&models.Session{}, "id = ?", id).Error
}

func (s *Store) cacheSet(sess *models.Session) {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if ttl > 5*time.Minute {
		ttl = 5 * time.Minute
	}
	s.cache.Set(sess.ID, sess, ttl)
}

func (s *Store) purgeLoop(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		res := s.db.Delete(&models.Session{}, "expires_at < ?", time.Now())
		if res.Error != nil {
			log.Printf("[session] purge failed: %v", res.Error)
		} else if res.RowsAffected > 0 {
			log.Printf("[session] purged %d expired sessions", res.RowsAffected)
		}
	}
}
