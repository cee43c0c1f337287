package session

import (
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/moonveil/tarot-backend/internal/models"
)

// GormStore persists sessions in postgres. Take relies on
// DELETE ... RETURNING so consume-once holds across replicas sharing the
// database, not just within one process.
type GormStore struct {
	db       *gorm.DB
	ttl      time.Duration
	done     chan struct{}
	closeOne sync.Once
}

// NewGormStore wraps an open gorm handle. The caller migrates the schema
// (models.Migrate) before use.
func NewGormStore(db *gorm.DB, ttl time.Duration) *GormStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	st := &GormStore{db: db, ttl: ttl, done: make(chan struct{})}
	go st.sweep()
	return st
}

func (st *GormStore) cutoff() int64 {
	return time.Now().Add(-st.ttl).UnixMilli()
}

func toSession(rec models.SessionRecord) models.Session {
	return models.Session{
		ID:         rec.ID,
		Seed:       rec.Seed,
		CommitHash: rec.CommitHash,
		CreatedAt:  rec.CreatedAt,
		Spread:     models.Spread(rec.Spread),
	}
}

// Put persists a new session row.
func (st *GormStore) Put(s models.Session) error {
	rec := models.SessionRecord{
		ID:         s.ID,
		Seed:       s.Seed,
		CommitHash: s.CommitHash,
		CreatedAt:  s.CreatedAt,
		Spread:     string(s.Spread),
	}
	return st.db.Create(&rec).Error
}

// Get returns the session if present and not expired.
func (st *GormStore) Get(id string) (models.Session, bool) {
	var rec models.SessionRecord
	err := st.db.Where("id = ? AND created_at > ?", id, st.cutoff()).First(&rec).Error
	if err != nil {
		return models.Session{}, false
	}
	return toSession(rec), true
}

// Take deletes and returns the session in one statement; only one caller
// can win the row.
func (st *GormStore) Take(id string) (models.Session, bool) {
	var recs []models.SessionRecord
	res := st.db.Clauses(clause.Returning{}).
		Where("id = ? AND created_at > ?", id, st.cutoff()).
		Delete(&recs)
	if res.Error != nil || len(recs) != 1 {
		return models.Session{}, false
	}
	return toSession(recs[0]), true
}

// Delete removes the session unconditionally.
func (st *GormStore) Delete(id string) {
	st.db.Where("id = ?", id).Delete(&models.SessionRecord{})
}

// Len reports the number of live (unexpired) sessions.
func (st *GormStore) Len() int {
	var n int64
	st.db.Model(&models.SessionRecord{}).Where("created_at > ?", st.cutoff()).Count(&n)
	return int(n)
}

// Close stops the background sweeper.
func (st *GormStore) Close() {
	st.closeOne.Do(func() { close(st.done) })
}

func (st *GormStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-st.done:
			return
		case <-ticker.C:
			st.db.Where("created_at <= ?", st.cutoff()).Delete(&models.SessionRecord{})
		}
	}
}
