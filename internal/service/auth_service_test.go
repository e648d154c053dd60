package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"siteworks/internal/auth"
	"siteworks/internal/errors"
	"siteworks/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uint, update model.ProfileUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateNotificationPrefs(ctx context.Context, id uint, update model.NotificationUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

// MockResetTokenStore is a mock implementation of ResetTokenStoreInterface.
type MockResetTokenStore struct {
	mock.Mock
}

func (m *MockResetTokenStore) IssueFor(ctx context.Context, userID uint) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockResetTokenStore) Redeem(ctx context.Context, token string) (uint, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uint), args.Error(1)
}

// recordingMailer captures reset links instead of sending anything.
type recordingMailer struct {
	to    []string
	links []string
}

func (m *recordingMailer) SendPasswordReset(to, resetLink string) error {
	m.to = append(m.to, to)
	m.links = append(m.links, resetLink)
	return nil
}

func newTestAuthService(userRepo *MockUserRepository, resetStore *MockResetTokenStore, m *recordingMailer) AuthService {
	if m == nil {
		m = &recordingMailer{}
	}
	return NewAuthService(
		userRepo,
		auth.NewPasswordHasher(),
		auth.NewJWTService("test-secret"),
		resetStore,
		m,
		nil, // cache client is nil-safe
		"http://localhost:3000/reset-password",
	)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful registration",
			input: RegisterInput{
				Email:     "alice@test.ro",
				Password:  "secret1",
				FirstName: "Alice",
				LastName:  "Pop",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@test.ro").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "email already taken",
			input: RegisterInput{
				Email:     "alice@test.ro",
				Password:  "secret1",
				FirstName: "Alice",
				LastName:  "Pop",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@test.ro").Return(&model.User{Email: "alice@test.ro"}, nil)
			},
			expectedError: errors.ErrEmailTaken,
		},
		{
			// A concurrent registration slips past the existence check and
			// the unique index reports the duplicate on insert.
			name: "duplicate insert maps to email taken",
			input: RegisterInput{
				Email:     "alice@test.ro",
				Password:  "secret1",
				FirstName: "Alice",
				LastName:  "Pop",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@test.ro").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: errors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newTestAuthService(mockRepo, new(MockResetTokenStore), nil)
			user, token, err := svc.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.Equal(t, model.RoleClient, user.Role)
				// Plaintext never stored; hash verifies against it.
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
				assert.True(t, auth.NewPasswordHasher().Verify(tt.input.Password, user.PasswordHash))
				// Default notification flags.
				assert.True(t, user.NotifyProjectUpdates)
				assert.True(t, user.NotifyTicketReplies)
				assert.True(t, user.NotifyInvoices)
				assert.False(t, user.NotifyMarketing)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hasher := auth.NewPasswordHasher()
	storedHash, err := hasher.Hash("correct-password")
	assert.NoError(t, err)

	existing := &model.User{
		ID:           7,
		Email:        "alice@test.ro",
		PasswordHash: storedHash,
		Role:         model.RoleClient,
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "alice@test.ro",
			password: "correct-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@test.ro").Return(existing, nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "nonexistent@test.ro",
			password: "anything",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nonexistent@test.ro").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "alice@test.ro",
			password: "wrongpassword",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@test.ro").Return(existing, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newTestAuthService(mockRepo, new(MockResetTokenStore), nil)
			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
				// Issued token verifies and carries the user identity.
				claims, err := auth.NewJWTService("test-secret").Verify(token)
				assert.NoError(t, err)
				assert.Equal(t, existing.ID, claims.UserID)
				assert.Equal(t, existing.Email, claims.Email)
				assert.Equal(t, existing.Role, claims.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// Unknown email and wrong password must be indistinguishable to a client.
func TestAuthService_LoginErrorSymmetry(t *testing.T) {
	hasher := auth.NewPasswordHasher()
	storedHash, _ := hasher.Hash("correct-password")

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "real@test.ro").Return(&model.User{
		ID:           1,
		Email:        "real@test.ro",
		PasswordHash: storedHash,
	}, nil)
	mockRepo.On("FindByEmail", mock.Anything, "nonexistent@test.ro").Return(nil, gorm.ErrRecordNotFound)

	svc := newTestAuthService(mockRepo, new(MockResetTokenStore), nil)

	_, _, errUnknown := svc.Login(context.Background(), "nonexistent@test.ro", "anything")
	_, _, errWrongPass := svc.Login(context.Background(), "real@test.ro", "wrongpassword")

	assert.Equal(t, errUnknown, errWrongPass)
	assert.Equal(t, errors.MapErrorToHTTP(errUnknown).StatusCode, errors.MapErrorToHTTP(errWrongPass).StatusCode)
	assert.Equal(t, errors.MapErrorToHTTP(errUnknown).Message, errors.MapErrorToHTTP(errWrongPass).Message)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	first := "Ana"

	tests := []struct {
		name          string
		update        model.ProfileUpdate
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:          "no fields supplied",
			update:        model.ProfileUpdate{},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrNoChanges,
		},
		{
			name:   "user vanished",
			update: model.ProfileUpdate{FirstName: &first},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
		{
			name:   "successful partial update",
			update: model.ProfileUpdate{FirstName: &first},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(&model.User{ID: 5, FirstName: "Ana"}, nil)
				m.On("UpdateProfile", mock.Anything, uint(5), mock.AnythingOfType("model.ProfileUpdate")).Return(nil)
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newTestAuthService(mockRepo, new(MockResetTokenStore), nil)
			user, err := svc.UpdateProfile(context.Background(), 5, tt.update)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				// A no-op update must not touch the repository at all.
				if tt.expectedError == errors.ErrNoChanges {
					mockRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
				}
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	hasher := auth.NewPasswordHasher()
	storedHash, _ := hasher.Hash("old-password")
	existing := &model.User{ID: 3, Email: "alice@test.ro", PasswordHash: storedHash}

	tests := []struct {
		name          string
		current       string
		newPass       string
		confirm       string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:          "confirmation mismatch",
			current:       "old-password",
			newPass:       "newpass1",
			confirm:       "newpass2",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrPasswordMismatch,
		},
		{
			name:    "wrong current password",
			current: "not-the-password",
			newPass: "newpass1",
			confirm: "newpass1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(existing, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:    "successful change",
			current: "old-password",
			newPass: "newpass1",
			confirm: "newpass1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(existing, nil)
				m.On("UpdatePasswordHash", mock.Anything, uint(3), mock.AnythingOfType("string")).Return(nil)
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newTestAuthService(mockRepo, new(MockResetTokenStore), nil)
			err := svc.ChangePassword(context.Background(), 3, tt.current, tt.newPass, tt.confirm)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
				// The stored hash is never the plaintext.
				call := mockRepo.Calls[len(mockRepo.Calls)-1]
				newHash := call.Arguments.String(2)
				assert.NotEqual(t, tt.newPass, newHash)
				assert.True(t, hasher.Verify(tt.newPass, newHash))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_UpdateNotificationPreferences(t *testing.T) {
	off := false

	mockRepo := new(MockUserRepository)
	svc := newTestAuthService(mockRepo, new(MockResetTokenStore), nil)

	// Empty update never reaches the repository.
	_, err := svc.UpdateNotificationPreferences(context.Background(), 9, model.NotificationUpdate{})
	assert.Equal(t, errors.ErrNoChanges, err)
	mockRepo.AssertNotCalled(t, "UpdateNotificationPrefs", mock.Anything, mock.Anything, mock.Anything)

	mockRepo.On("FindByID", mock.Anything, uint(9)).Return(&model.User{
		ID:                   9,
		NotifyProjectUpdates: true,
		NotifyTicketReplies:  true,
		NotifyInvoices:       true,
	}, nil)
	mockRepo.On("UpdateNotificationPrefs", mock.Anything, uint(9), mock.AnythingOfType("model.NotificationUpdate")).Return(nil)

	prefs, err := svc.UpdateNotificationPreferences(context.Background(), 9, model.NotificationUpdate{Marketing: &off})
	assert.NoError(t, err)
	assert.True(t, prefs.ProjectUpdates)
	assert.False(t, prefs.Marketing)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	t.Run("unknown email issues nothing and still succeeds", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "nonexistent@test.ro").Return(nil, gorm.ErrRecordNotFound)
		mockStore := new(MockResetTokenStore)
		m := &recordingMailer{}

		svc := newTestAuthService(mockRepo, mockStore, m)
		err := svc.ForgotPassword(context.Background(), "nonexistent@test.ro")

		assert.NoError(t, err)
		assert.Empty(t, m.links)
		mockStore.AssertNotCalled(t, "IssueFor", mock.Anything, mock.Anything)
	})

	t.Run("known email issues a token and mails the link", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "alice@test.ro").Return(&model.User{ID: 4, Email: "alice@test.ro"}, nil)
		mockStore := new(MockResetTokenStore)
		mockStore.On("IssueFor", mock.Anything, uint(4)).
			Return("deadbeef", time.Now().Add(auth.ResetTokenTTL), nil)
		m := &recordingMailer{}

		svc := newTestAuthService(mockRepo, mockStore, m)
		err := svc.ForgotPassword(context.Background(), "alice@test.ro")

		assert.NoError(t, err)
		assert.Equal(t, []string{"alice@test.ro"}, m.to)
		assert.Equal(t, []string{"http://localhost:3000/reset-password?token=deadbeef"}, m.links)
		mockStore.AssertExpectations(t)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		newPass       string
		confirm       string
		setupMock     func(*MockUserRepository, *MockResetTokenStore)
		expectedError error
	}{
		{
			name:          "confirmation mismatch",
			token:         "tok",
			newPass:       "newpass1",
			confirm:       "other",
			setupMock:     func(r *MockUserRepository, s *MockResetTokenStore) {},
			expectedError: errors.ErrPasswordMismatch,
		},
		{
			name:    "unknown token",
			token:   "tok",
			newPass: "newpass1",
			confirm: "newpass1",
			setupMock: func(r *MockUserRepository, s *MockResetTokenStore) {
				s.On("Redeem", mock.Anything, "tok").Return(uint(0), auth.ErrResetTokenNotFound)
			},
			expectedError: errors.ErrInvalidResetToken,
		},
		{
			name:    "expired token",
			token:   "tok",
			newPass: "newpass1",
			confirm: "newpass1",
			setupMock: func(r *MockUserRepository, s *MockResetTokenStore) {
				s.On("Redeem", mock.Anything, "tok").Return(uint(0), auth.ErrResetTokenExpired)
			},
			expectedError: errors.ErrInvalidResetToken,
		},
		{
			name:    "already used token",
			token:   "tok",
			newPass: "newpass1",
			confirm: "newpass1",
			setupMock: func(r *MockUserRepository, s *MockResetTokenStore) {
				s.On("Redeem", mock.Anything, "tok").Return(uint(0), auth.ErrResetTokenUsed)
			},
			expectedError: errors.ErrResetLinkUsed,
		},
		{
			name:    "successful reset",
			token:   "tok",
			newPass: "newpass1",
			confirm: "newpass1",
			setupMock: func(r *MockUserRepository, s *MockResetTokenStore) {
				s.On("Redeem", mock.Anything, "tok").Return(uint(6), nil)
				r.On("UpdatePasswordHash", mock.Anything, uint(6), mock.AnythingOfType("string")).Return(nil)
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockStore := new(MockResetTokenStore)
			tt.setupMock(mockRepo, mockStore)

			svc := newTestAuthService(mockRepo, mockStore, nil)
			err := svc.ResetPassword(context.Background(), tt.token, tt.newPass, tt.confirm)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_GetProfile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Email: "alice@test.ro"}, nil)

		svc := newTestAuthService(mockRepo, new(MockResetTokenStore), nil)
		user, err := svc.GetProfile(context.Background(), 2)

		assert.NoError(t, err)
		assert.Equal(t, "alice@test.ro", user.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("row vanished after token issuance", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(nil, gorm.ErrRecordNotFound)

		svc := newTestAuthService(mockRepo, new(MockResetTokenStore), nil)
		_, err := svc.GetProfile(context.Background(), 2)

		assert.Equal(t, errors.ErrUserNotFound, err)
	})
}
