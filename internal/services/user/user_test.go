package user

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/enftlab/enft-backend/internal/chain"
	"github.com/enftlab/enft-backend/internal/models"
	"github.com/enftlab/enft-backend/internal/storage/repository"
)

// MockRepository реализует интерфейс Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) RegisterUser(ctx context.Context, user models.User, wallet *models.Wallet) (string, error) {
	args := m.Called(ctx, user, wallet)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetUserByNickname(ctx context.Context, nickname string) (*models.User, error) {
	args := m.Called(ctx, nickname)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetWalletByEmail(ctx context.Context, email string) (*models.Wallet, error) {
	args := m.Called(ctx, email)
	if res := args.Get(0); res != nil {
		return res.(*models.Wallet), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) CreateApproval(ctx context.Context, approval models.Approval) (string, error) {
	args := m.Called(ctx, approval)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) ListApprovals(ctx context.Context, filter models.ApprovalFilter) ([]*models.Approval, error) {
	args := m.Called(ctx, filter)
	if res := args.Get(0); res != nil {
		return res.([]*models.Approval), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) DeleteApproval(ctx context.Context, email, requestLocation string) (int, error) {
	args := m.Called(ctx, email, requestLocation)
	return args.Int(0), args.Error(1)
}

// noopCache — кэш-заглушка, всегда промахивается
type noopCache struct{}

func (noopCache) Get(_ string, _ any) (bool, error)               { return false, nil }
func (noopCache) Set(_ string, _ any, _ time.Duration) error      { return nil }
func (noopCache) Invalidate(_ string) error                      { return nil }

func stubKeyring() (chain.Keyring, error) {
	return chain.Keyring{
		Address:    "0x000000000000000000000000000000000000dEaD",
		PrivateKey: "0x0101010101010101010101010101010101010101010101010101010101010101",
	}, nil
}

func newTestService(repo *MockRepository, legacyCheck bool) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(repo, noopCache{}, stubKeyring, logger, legacyCheck)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").
		Return(&models.User{Email: "alice@example.com"}, nil)

	svc := newTestService(repo, false)
	_, err := svc.Register(context.Background(), models.DummyUser{
		Email:    "alice@example.com",
		Nickname: "completely-different-nickname",
		Password: "secret123",
		Location: "seoul-hall",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
	repo.AssertNotCalled(t, "RegisterUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_DuplicateNickname(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetUserByEmail", mock.Anything, "bob@example.com").
		Return(nil, repository.ErrNotFound)
	repo.On("GetUserByNickname", mock.Anything, "alice").
		Return(&models.User{Nickname: "alice"}, nil)

	svc := newTestService(repo, false)
	_, err := svc.Register(context.Background(), models.DummyUser{
		Email:    "bob@example.com",
		Nickname: "alice",
		Password: "secret123",
		Location: "seoul-hall",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNicknameTaken)
}

func TestRegister_AdminGetsWallet(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetUserByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	repo.On("GetUserByNickname", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	repo.On("RegisterUser", mock.Anything,
		mock.MatchedBy(func(u models.User) bool { return u.IsAdmin && u.SigningKey != "" }),
		mock.MatchedBy(func(w *models.Wallet) bool {
			return w != nil && w.Email == "admin@example.com" && w.Address != ""
		})).Return("uid-1", nil)

	svc := newTestService(repo, false)
	uid, err := svc.Register(context.Background(), models.DummyUser{
		Email:    "admin@example.com",
		Nickname: "site_admin",
		Password: "secret123",
		Location: "seoul-hall",
		IsAdmin:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
	repo.AssertExpectations(t)
}

func TestRegister_RegularUserHasNoWallet(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetUserByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	repo.On("GetUserByNickname", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	repo.On("RegisterUser", mock.Anything,
		mock.MatchedBy(func(u models.User) bool { return !u.IsAdmin }),
		mock.MatchedBy(func(w *models.Wallet) bool { return w == nil })).
		Return("uid-2", nil)

	svc := newTestService(repo, false)
	_, err := svc.Register(context.Background(), models.DummyUser{
		Email:    "alice@example.com",
		Nickname: "alice",
		Password: "secret123",
		Location: "seoul-hall",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRegister_PasswordIsHashed(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetUserByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	repo.On("GetUserByNickname", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	repo.On("RegisterUser", mock.Anything,
		mock.MatchedBy(func(u models.User) bool {
			return u.PasswordHash != "" && u.PasswordHash != "secret123"
		}),
		mock.Anything).Return("uid-3", nil)

	svc := newTestService(repo, false)
	_, err := svc.Register(context.Background(), models.DummyUser{
		Email:    "alice@example.com",
		Nickname: "alice",
		Password: "secret123",
		Location: "seoul-hall",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCheckEmail(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		setupMock  func(*MockRepository)
		wantUsable bool
	}{
		{
			name:  "занятый email",
			email: "alice@example.com",
			setupMock: func(m *MockRepository) {
				m.On("GetUserByEmail", mock.Anything, "alice@example.com").
					Return(&models.User{Email: "alice@example.com"}, nil)
			},
			wantUsable: false,
		},
		{
			name:  "свободный email",
			email: "free@example.com",
			setupMock: func(m *MockRepository) {
				m.On("GetUserByEmail", mock.Anything, "free@example.com").
					Return(nil, repository.ErrNotFound)
			},
			wantUsable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			svc := newTestService(repo, false)
			got, err := svc.CheckEmail(context.Background(), tt.email)

			require.NoError(t, err)
			assert.Equal(t, tt.wantUsable, got.Usable)
			assert.NotEmpty(t, got.Message)
			repo.AssertExpectations(t)
		})
	}
}

func TestRequestApproval_DuplicateSameLocation(t *testing.T) {
	email := "alice@example.com"
	repo := new(MockRepository)
	repo.On("ListApprovals", mock.Anything, mock.Anything).
		Return([]*models.Approval{{
			Email:           email,
			RequestLocation: "seoul-hall",
			Status:          models.ApprovalStatusRequested,
		}}, nil)

	svc := newTestService(repo, false)
	_, err := svc.RequestApproval(context.Background(), email, models.DummyApproval{
		RequestLocation: "seoul-hall",
		RequestDay:      3,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrApprovalExists)
	repo.AssertNotCalled(t, "CreateApproval", mock.Anything, mock.Anything)
}

func TestRequestApproval_DifferentLocationSucceeds(t *testing.T) {
	email := "alice@example.com"
	repo := new(MockRepository)
	repo.On("ListApprovals", mock.Anything, mock.Anything).
		Return([]*models.Approval{{
			Email:           email,
			RequestLocation: "seoul-hall",
			Status:          models.ApprovalStatusRequested,
		}}, nil)
	repo.On("CreateApproval", mock.Anything,
		mock.MatchedBy(func(a models.Approval) bool {
			return a.Email == email && a.RequestLocation == "busan-expo" && a.RequestDay == 3
		})).Return("approval-uid", nil)

	svc := newTestService(repo, false)
	uid, err := svc.RequestApproval(context.Background(), email, models.DummyApproval{
		RequestLocation: "busan-expo",
		RequestDay:      3,
	})

	require.NoError(t, err)
	assert.Equal(t, "approval-uid", uid)
	repo.AssertExpectations(t)
}

func TestRequestApproval_LegacyModeRejectsAnySecondRequest(t *testing.T) {
	email := "alice@example.com"
	repo := new(MockRepository)
	repo.On("ListApprovals", mock.Anything, mock.Anything).
		Return([]*models.Approval{{
			Email:           email,
			RequestLocation: "seoul-hall",
			Status:          models.ApprovalStatusRequested,
		}}, nil)

	svc := newTestService(repo, true)
	_, err := svc.RequestApproval(context.Background(), email, models.DummyApproval{
		RequestLocation: "busan-expo",
		RequestDay:      3,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrApprovalExists)
}

func TestRequestApproval_MintedApprovalIsIgnored(t *testing.T) {
	email := "alice@example.com"
	repo := new(MockRepository)
	repo.On("ListApprovals", mock.Anything, mock.Anything).
		Return([]*models.Approval{{
			Email:           email,
			RequestLocation: "seoul-hall",
			Status:          models.ApprovalStatusMinted,
		}}, nil)
	repo.On("CreateApproval", mock.Anything, mock.Anything).Return("approval-uid", nil)

	svc := newTestService(repo, false)
	_, err := svc.RequestApproval(context.Background(), email, models.DummyApproval{
		RequestLocation: "seoul-hall",
		RequestDay:      3,
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCompleteApproval(t *testing.T) {
	repo := new(MockRepository)
	repo.On("DeleteApproval", mock.Anything, "alice@example.com", "seoul-hall").
		Return(1, nil)

	svc := newTestService(repo, false)
	removed, err := svc.CompleteApproval(context.Background(), "alice@example.com", "seoul-hall")

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	repo.AssertExpectations(t)
}
