package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

type stubUserRepo struct {
	byEmail map[string]*entity.User
	created []*entity.User
}

func (s *stubUserRepo) Create(_ context.Context, user *entity.User) error {
	s.created = append(s.created, user)
	return nil
}

func (s *stubUserRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user, nil
}

func (s *stubUserRepo) FindWithEmailNotifications(_ context.Context) ([]*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := s.byEmail[email]
	return ok, nil
}

type stubPasswordService struct{}

func (stubPasswordService) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (stubPasswordService) Verify(password, hash string) bool { return "hashed:"+password == hash }

type stubTokenService struct{}

func (stubTokenService) GenerateTokenPair(_ context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	return &adapter.TokenPair{AccessToken: "access-" + email, RefreshToken: "refresh", ExpiresIn: 900}, nil
}

func (stubTokenService) ValidateAccessToken(_ context.Context, _ string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

type stubEmailSender struct {
	sent []adapter.EmailMessage
	fail bool
}

func (s *stubEmailSender) Send(_ context.Context, msg adapter.EmailMessage) error {
	if s.fail {
		return errors.New("smtp down")
	}
	s.sent = append(s.sent, msg)
	return nil
}

func TestRegisterUserUseCase_Execute(t *testing.T) {
	newUseCase := func(repo *stubUserRepo, sender *stubEmailSender) *RegisterUserUseCase {
		return NewRegisterUserUseCase(repo, stubPasswordService{}, stubTokenService{}, sender)
	}

	t.Run("should register a user and send the welcome email", func(t *testing.T) {
		repo := &stubUserRepo{byEmail: map[string]*entity.User{}}
		sender := &stubEmailSender{}
		uc := newUseCase(repo, sender)

		output, err := uc.Execute(context.Background(), RegisterUserInput{
			Email:    "ana@example.com",
			Name:     "Ana",
			Password: "s3cret-pass",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.AccessToken == "" || output.User.PasswordHash != "hashed:s3cret-pass" {
			t.Errorf("unexpected output %+v", output)
		}
		if len(sender.sent) != 1 || sender.sent[0].To != "ana@example.com" {
			t.Errorf("expected one welcome email, got %+v", sender.sent)
		}
	})

	t.Run("should register even when the welcome email fails", func(t *testing.T) {
		repo := &stubUserRepo{byEmail: map[string]*entity.User{}}
		uc := newUseCase(repo, &stubEmailSender{fail: true})

		_, err := uc.Execute(context.Background(), RegisterUserInput{
			Email:    "bo@example.com",
			Name:     "Bo",
			Password: "s3cret-pass",
		})
		if err != nil {
			t.Fatalf("email failure must not fail registration, got %v", err)
		}
		if len(repo.created) != 1 {
			t.Errorf("expected user persisted, got %d", len(repo.created))
		}
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		tests := []struct {
			name    string
			input   RegisterUserInput
			wantErr error
		}{
			{
				name:    "missing name",
				input:   RegisterUserInput{Email: "a@example.com", Password: "s3cret-pass"},
				wantErr: nil, // coded error with no sentinel
			},
			{
				name:    "bad email",
				input:   RegisterUserInput{Email: "not-an-email", Name: "Ana", Password: "s3cret-pass"},
				wantErr: domainerror.ErrInvalidEmail,
			},
			{
				name:    "short password",
				input:   RegisterUserInput{Email: "a@example.com", Name: "Ana", Password: "short"},
				wantErr: domainerror.ErrWeakPassword,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := newUseCase(&stubUserRepo{byEmail: map[string]*entity.User{}}, &stubEmailSender{})
				_, err := uc.Execute(context.Background(), tt.input)
				if err == nil {
					t.Fatal("expected an error")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			})
		}
	})

	t.Run("should reject a duplicate email", func(t *testing.T) {
		existing := entity.NewUser("ana@example.com", "Ana", "hash", "")
		repo := &stubUserRepo{byEmail: map[string]*entity.User{existing.Email: existing}}
		uc := newUseCase(repo, &stubEmailSender{})

		_, err := uc.Execute(context.Background(), RegisterUserInput{
			Email:    "ana@example.com",
			Name:     "Ana",
			Password: "s3cret-pass",
		})
		if !errors.Is(err, domainerror.ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})
}

func TestLoginUserUseCase_Execute(t *testing.T) {
	user := entity.NewUser("ana@example.com", "Ana", "hashed:s3cret-pass", "")
	repo := &stubUserRepo{byEmail: map[string]*entity.User{user.Email: user}}
	uc := NewLoginUserUseCase(repo, stubPasswordService{}, stubTokenService{})

	t.Run("should login with valid credentials", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), LoginUserInput{
			Email:    "ana@example.com",
			Password: "s3cret-pass",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.AccessToken == "" || output.User.ID != user.ID {
			t.Errorf("unexpected output %+v", output)
		}
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), LoginUserInput{
			Email:    "ana@example.com",
			Password: "wrong",
		})
		if !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("should not leak whether the email exists", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), LoginUserInput{
			Email:    "ghost@example.com",
			Password: "s3cret-pass",
		})
		if !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
		}
	})
}
