package service

import (
	"context"
	"log"
	"strings"

	"github.com/Takoua852/Kanmind-backend/internal/errs"
	"github.com/Takoua852/Kanmind-backend/internal/models"
	"github.com/Takoua852/Kanmind-backend/internal/security"
)

type UserService struct {
	users  UserStore
	tokens *security.Tokens
	logger *log.Logger
}

func NewUserService(users UserStore, tokens *security.Tokens, logger *log.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, logger: logger}
}

// Register creates an account and returns a ready-to-use access token.
// Field violations are aggregated rather than failing one at a time.
func (s *UserService) Register(ctx context.Context, req RegistrationRequest) (*AuthResponse, error) {
	verr := errs.Validation("invalid registration")
	if strings.TrimSpace(req.Fullname) == "" {
		verr.AddField("fullname", "fullname is required")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		verr.AddField("email", "email is required")
	} else if !strings.Contains(email, "@") {
		verr.AddField("email", "email is not a valid address")
	} else {
		exists, err := s.users.EmailExists(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			verr.AddField("email", "a user with this email already exists")
		}
	}
	if req.Password == "" {
		verr.AddField("password", "password is required")
	}
	if req.Password != req.RepeatedPassword {
		verr.AddField("repeated_password", "passwords do not match")
	}
	if verr.HasFields() {
		return nil, verr
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.NewUser(req.Fullname, email, hash)
	if err := s.users.Insert(ctx, &user); err != nil {
		return nil, err
	}
	s.logger.Printf("Registered user %s", user.ID.Hex())

	return s.authResponse(&user)
}

// Login verifies the credential and issues a token. Either a missing account
// or a wrong password reads as Unauthenticated; the two are not
// distinguished to the caller.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.Unauthenticated("invalid email or password")
		}
		return nil, err
	}
	if !security.CheckPassword(user.Password, req.Password) {
		return nil, errs.Unauthenticated("invalid email or password")
	}
	return s.authResponse(user)
}

// CheckEmail performs the exact-match lookup behind /email-check/.
func (s *UserService) CheckEmail(ctx context.Context, email string) (*UserInfo, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errs.Validation("email parameter is required").AddField("email", "email is required")
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return userInfo(user), nil
}

// CurrentUser resolves the authenticated user id from the token middleware
// into a full user record.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errs.Unauthenticated("request is not authenticated")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.Unauthenticated("token references an unknown user")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) authResponse(user *models.User) (*AuthResponse, error) {
	token, err := s.tokens.NewAccessToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:    token,
		UserID:   user.ID.Hex(),
		Email:    user.Email,
		Fullname: user.Fullname,
	}, nil
}
