// Package memory is an in-process store that enforces the same rules as the
// Postgres schema: unique user ids and phone numbers, one vote per user and
// no votes referencing unknown users or parties.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
)

type Store struct {
	mu sync.RWMutex

	parties map[int64]domain.Party
	users   map[string]domain.User
	phones  map[string]string
	votes   map[string]domain.Vote
}

func NewStore(parties []domain.Party) *Store {
	s := &Store{
		parties: make(map[int64]domain.Party, len(parties)),
		users:   make(map[string]domain.User),
		phones:  make(map[string]string),
		votes:   make(map[string]domain.Vote),
	}
	for _, p := range parties {
		s.parties[p.ID] = p
	}
	return s
}

func (s *Store) List(ctx context.Context) ([]domain.Party, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedParties(), nil
}

func (s *Store) FindConflict(ctx context.Context, userID, phone string) (domain.Conflict, error) {
	if err := ctx.Err(); err != nil {
		return domain.NoConflict, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conflict(userID, phone), nil
}

func (s *Store) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.conflict(user.ID, user.Phone); c != domain.NoConflict {
		return c.Err()
	}
	s.users[user.ID] = *user
	s.phones[user.Phone] = user.ID
	return nil
}

func (s *Store) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *Store) UpsertVote(ctx context.Context, vote *domain.Vote) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[vote.UserID]; !ok {
		return domain.ErrUnknownUser
	}
	if _, ok := s.parties[vote.PartyID]; !ok {
		return domain.ErrUnknownParty
	}
	s.votes[vote.UserID] = *vote
	return nil
}

func (s *Store) GetByUser(ctx context.Context, userID string) (*domain.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	vote, ok := s.votes[userID]
	if !ok {
		return nil, nil
	}
	return &vote, nil
}

func (s *Store) CountVotes(ctx context.Context) (domain.Tally, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int64]int64, len(s.parties))
	for _, v := range s.votes {
		counts[v.PartyID]++
	}

	parties := s.sortedParties()
	tally := make(domain.Tally, 0, len(parties))
	for _, p := range parties {
		tally = append(tally, domain.PartyCount{PartyID: p.ID, Name: p.Name, Count: counts[p.ID]})
	}
	return tally, nil
}

// DeleteUser removes a user and, like the foreign key cascade in Postgres,
// the user's vote.
func (s *Store) DeleteUser(_ context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[userID]; ok {
		delete(s.phones, user.Phone)
		delete(s.users, userID)
		delete(s.votes, userID)
	}
}

func (s *Store) conflict(userID, phone string) domain.Conflict {
	if _, ok := s.users[userID]; ok {
		return domain.ConflictUserID
	}
	if _, ok := s.phones[phone]; ok {
		return domain.ConflictContact
	}
	return domain.NoConflict
}

func (s *Store) sortedParties() []domain.Party {
	parties := make([]domain.Party, 0, len(s.parties))
	for _, p := range s.parties {
		parties = append(parties, p)
	}
	sort.Slice(parties, func(i, j int) bool {
		if parties[i].RulingParty != parties[j].RulingParty {
			return parties[i].RulingParty
		}
		return parties[i].ID < parties[j].ID
	})
	return parties
}

var _ ports.PartyRepository = (*Store)(nil)
var _ ports.UserRepository = (*Store)(nil)
var _ ports.VoteRepository = (*Store)(nil)
var _ ports.TallyRepository = (*Store)(nil)
