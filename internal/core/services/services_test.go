package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vncsmyrnk/dailyvote/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/dailyvote/internal/adapters/security"
	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
	"github.com/vncsmyrnk/dailyvote/internal/core/services"
)

var errBackend = errors.New("connection refused")

type testApp struct {
	store    *memory.Store
	parties  ports.PartyService
	accounts ports.AccountService
	votes    ports.VoteService
	tally    ports.TallyService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store := memory.NewStore(memory.DefaultParties())
	return &testApp{
		store:    store,
		parties:  services.NewPartyService(store, nil),
		accounts: services.NewAccountService(store, security.NewBcryptHasher(bcrypt.MinCost), nil),
		votes:    services.NewVoteService(store, nil),
		tally:    services.NewTallyService(store, nil),
	}
}

func (app *testApp) register(t *testing.T, userID, password, phone string) {
	t.Helper()
	err := app.accounts.Register(context.Background(), ports.RegisterInput{
		UserID:   userID,
		Password: password,
		Phone:    phone,
	})
	require.NoError(t, err)
}

func (app *testApp) vote(t *testing.T, userID string, partyID int64) {
	t.Helper()
	err := app.votes.CastVote(context.Background(), ports.VoteInput{UserID: userID, PartyID: partyID})
	require.NoError(t, err)
}

// failingStore wraps the memory store and lets a test replace single
// operations with failures.
type failingStore struct {
	*memory.Store

	listErr     error
	conflictErr error
	createErr   error
	getErr      error
	upsertErr   error
	countErr    error
	skipCheck   bool
}

func (s *failingStore) List(ctx context.Context) ([]domain.Party, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.Store.List(ctx)
}

func (s *failingStore) FindConflict(ctx context.Context, userID, phone string) (domain.Conflict, error) {
	if s.conflictErr != nil {
		return domain.NoConflict, s.conflictErr
	}
	if s.skipCheck {
		return domain.NoConflict, nil
	}
	return s.Store.FindConflict(ctx, userID, phone)
}

func (s *failingStore) Create(ctx context.Context, user *domain.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	return s.Store.Create(ctx, user)
}

func (s *failingStore) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.Store.GetByID(ctx, userID)
}

func (s *failingStore) UpsertVote(ctx context.Context, vote *domain.Vote) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	return s.Store.UpsertVote(ctx, vote)
}

func (s *failingStore) CountVotes(ctx context.Context) (domain.Tally, error) {
	if s.countErr != nil {
		return nil, s.countErr
	}
	return s.Store.CountVotes(ctx)
}
