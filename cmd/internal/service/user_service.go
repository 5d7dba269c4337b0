package service

import (
	"calpal/cmd/internal/domain/entity"
	"calpal/cmd/internal/utils"
	"calpal/cmd/internal/utils/apierror"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindByID(id int) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	ExistsByEmailOrUsername(email, username string) (bool, error)
	Save(user *entity.User) error
	Delete(user *entity.User) error
}

type SessionRepository interface {
	FindByUsername(username string) (*entity.UserSession, error)
	FindLoggedIn() (*entity.UserSession, error)
	ClearAll() error
	Save(session *entity.UserSession) error
}

type SignUpRequest struct {
	FirstName string `json:"first_name" validate:"required,max=80"`
	LastName  string `json:"last_name" validate:"required,max=80"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=2,max=80,nospaces"`
	Password  string `json:"password" validate:"required,min=8,max=64,hasupper,haslower,hasdigit,hasspecial"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type PreferencesRequest struct {
	DarkMode bool `json:"dark_mode"`
}

type UserResponse struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	DarkMode  bool   `json:"dark_mode"`
	CreatedAt string `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type PreferencesResponse struct {
	DarkMode bool `json:"dark_mode"`
}

type DefaultUserService struct {
	UserRepo    UserRepository
	SessionRepo SessionRepository
	Validate    *validator.Validate
	Tokens      *utils.Tokens
}

func NewUserService(userRepo UserRepository, sessionRepo SessionRepository, validate *validator.Validate, tokens *utils.Tokens) *DefaultUserService {
	return &DefaultUserService{UserRepo: userRepo, SessionRepo: sessionRepo, Validate: validate, Tokens: tokens}
}

func (u *DefaultUserService) GetUser(rawId string, callerId int) (*UserResponse, apierror.ErrorResponse) {
	var userId int
	if rawId == "@me" {
		userId = callerId
	} else {
		parsed, err := strconv.Atoi(rawId)
		if err != nil {
			return nil, apierror.NewInvalidParamTypeError("id", "int32")
		}
		userId = parsed
	}

	user, err := u.UserRepo.FindByID(userId)
	if err != nil {
		log.Errorf("failed to find user %d: %v", userId, err)
		return nil, apierror.InternalServerError
	}

	if user == nil || user.ID != callerId {
		return nil, apierror.NotFoundError
	}
	return toUserResponse(user), nil
}

func (u *DefaultUserService) SignUp(req *SignUpRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	found, err := u.UserRepo.ExistsByEmailOrUsername(req.Email, req.Username)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return apierror.InternalServerError
	}

	if found {
		return apierror.UserAlreadyExistsError
	}

	user := &entity.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: HashPassword(req.Password),
		DarkMode:     false,
		CreatedAt:    utils.NowUTC(),
	}

	if err := u.UserRepo.Save(user); err != nil {
		log.Errorf("failed to create user: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

// Login verifies credentials, makes the caller the single active session and
// issues a bearer token.
func (u *DefaultUserService) Login(req *LoginRequest) (*LoginResponse, apierror.ErrorResponse) {
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByUsername(req.Username)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}

	if user == nil || !hashMatches(user.PasswordHash, req.Password) {
		return nil, apierror.CredentialsMismatchError
	}

	// Single active session: clear every flag, then set exactly one.
	if err := u.SessionRepo.ClearAll(); err != nil {
		log.Errorf("failed to clear login flags: %v", err)
		return nil, apierror.InternalServerError
	}

	session, err := u.SessionRepo.FindByUsername(user.Username)
	if err != nil {
		log.Errorf("failed to fetch session for %s: %v", user.Username, err)
		return nil, apierror.InternalServerError
	}

	if session == nil {
		session = &entity.UserSession{
			Username:     user.Username,
			PasswordHash: user.PasswordHash,
			UserID:       user.ID,
		}
	}
	session.LoggedIn = true

	if err := u.SessionRepo.Save(session); err != nil {
		log.Errorf("failed to save session for %s: %v", user.Username, err)
		return nil, apierror.InternalServerError
	}

	token, err := u.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		log.Errorf("failed to issue token for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	return &LoginResponse{AccessToken: token}, nil
}

func (u *DefaultUserService) Logout(userId int) apierror.ErrorResponse {
	session, err := u.SessionRepo.FindLoggedIn()
	if err != nil {
		log.Errorf("failed to fetch active session: %v", err)
		return apierror.InternalServerError
	}

	if session == nil || session.UserID != userId {
		return apierror.NotLoggedInError
	}

	if err := u.SessionRepo.ClearAll(); err != nil {
		log.Errorf("failed to clear login flags: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

// DeleteAccount removes the caller's user row and everything it owns.
func (u *DefaultUserService) DeleteAccount(userId int) apierror.ErrorResponse {
	user, err := u.UserRepo.FindByID(userId)
	if err != nil {
		log.Errorf("failed to find user %d: %v", userId, err)
		return apierror.InternalServerError
	}

	if user == nil {
		return apierror.NotFoundError
	}

	if err := u.UserRepo.Delete(user); err != nil {
		log.Errorf("failed to delete user %d: %v", userId, err)
		return apierror.InternalServerError
	}
	return nil
}

func (u *DefaultUserService) GetPreferences(userId int) (*PreferencesResponse, apierror.ErrorResponse) {
	user, err := u.UserRepo.FindByID(userId)
	if err != nil {
		log.Errorf("failed to find user %d: %v", userId, err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.NotFoundError
	}
	return &PreferencesResponse{DarkMode: user.DarkMode}, nil
}

func (u *DefaultUserService) SetPreferences(req *PreferencesRequest, userId int) (*PreferencesResponse, apierror.ErrorResponse) {
	user, err := u.UserRepo.FindByID(userId)
	if err != nil {
		log.Errorf("failed to find user %d: %v", userId, err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.NotFoundError
	}

	user.DarkMode = req.DarkMode
	if err := u.UserRepo.Save(user); err != nil {
		log.Errorf("failed to update preferences for user %d: %v", userId, err)
		return nil, apierror.InternalServerError
	}
	return &PreferencesResponse{DarkMode: user.DarkMode}, nil
}

// HashPassword mirrors the credential store convention: a hex-encoded
// SHA-256 digest of the raw password.
func HashPassword(password string) string {
	digest := sha256.Sum256([]byte(password))
	return hex.EncodeToString(digest[:])
}

func hashMatches(stored, password string) bool {
	hashed := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(stored), []byte(hashed)) == 1
}

func toUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Username:  user.Username,
		DarkMode:  user.DarkMode,
		CreatedAt: utils.FormatEpoch(user.CreatedAt),
	}
}
