// Package session holds per-user conversational state between calls:
// the extracted goal, questionnaire answers awaiting clarification and
// the final risk result. It replaces ad hoc module-level maps with an
// explicit session-keyed store so the services themselves stay
// stateless between calls.
package session

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/aristath/invest-planner/internal/domain"
)

// PendingProfile is the answer set saved between the contradiction
// detection call and the clarification call.
type PendingProfile struct {
	Answers map[int]string      `json:"answers"` // question id -> answer letter
	Factors *domain.GoalFactors `json:"factors,omitempty"`
}

// Store is a TTL-scoped per-user session store.
type Store struct {
	cache *gocache.Cache
}

// New creates a session store. Entries expire after ttl; expired
// entries are purged twice per ttl.
func New(ttl time.Duration) *Store {
	return &Store{
		cache: gocache.New(ttl, ttl/2),
	}
}

func key(userID, kind string) string {
	return fmt.Sprintf("user:%s:%s", userID, kind)
}

// SetGoal stores the user's goal record.
func (s *Store) SetGoal(userID string, g domain.Goal) {
	s.cache.SetDefault(key(userID, "goal"), g)
}

// Goal returns the stored goal, if any.
func (s *Store) Goal(userID string) (domain.Goal, bool) {
	v, ok := s.cache.Get(key(userID, "goal"))
	if !ok {
		return domain.Goal{}, false
	}
	g, ok := v.(domain.Goal)
	return g, ok
}

// SetPending saves the answer set awaiting clarification.
func (s *Store) SetPending(userID string, p PendingProfile) {
	s.cache.SetDefault(key(userID, "pending"), p)
}

// Pending returns the saved answer set, if any.
func (s *Store) Pending(userID string) (PendingProfile, bool) {
	v, ok := s.cache.Get(key(userID, "pending"))
	if !ok {
		return PendingProfile{}, false
	}
	p, ok := v.(PendingProfile)
	return p, ok
}

// ClearPending drops the pending answer set once clarification is done.
func (s *Store) ClearPending(userID string) {
	s.cache.Delete(key(userID, "pending"))
}

// SetRiskResult stores the final risk profiling result.
func (s *Store) SetRiskResult(userID string, r domain.RiskProfileResult) {
	s.cache.SetDefault(key(userID, "risk_result"), r)
}

// RiskResult returns the stored risk result, if any.
func (s *Store) RiskResult(userID string) (domain.RiskProfileResult, bool) {
	v, ok := s.cache.Get(key(userID, "risk_result"))
	if !ok {
		return domain.RiskProfileResult{}, false
	}
	r, ok := v.(domain.RiskProfileResult)
	return r, ok
}

// SetRecommendation caches the latest computed portfolio recommendation.
// Stored as an opaque value so the session layer does not depend on the
// portfolio module's types.
func (s *Store) SetRecommendation(userID string, rec any) {
	s.cache.SetDefault(key(userID, "recommendation"), rec)
}

// Recommendation returns the cached recommendation, if any.
func (s *Store) Recommendation(userID string) (any, bool) {
	return s.cache.Get(key(userID, "recommendation"))
}
