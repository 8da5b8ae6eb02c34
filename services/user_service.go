package services

import (
	"errors"
	"vocab-center/models"
	"vocab-center/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// The UserService interface is the credential and session side of the system:
// it turns a username/password pair into a trusted identity and maps the user
// id carried by a session token back to a full User on every request.
type UserService interface {
	Register(input *RegisterInput) (*models.User, error)
	Authenticate(username string, password string) (*models.User, error)
	ResolveSession(userID uint) (*models.User, error)
}

// --- Structs for Input/Output ---
type RegisterInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// The userService structure is the implementation of the UserService interface
type userService struct {
	repo repositories.UserRepository
}

var _ UserService = (*userService)(nil)

// NewUserService creates a new UserService instance
func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register creates a new user with a bcrypt hash of the password. Username
// uniqueness is decided by the database constraint, not by a prior read, so
// two concurrent registrations for the same name cannot both win.
func (s *userService) Register(input *RegisterInput) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:  input.Username,
		Password:  string(hashedPassword),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}

	if err := s.repo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, storeError(err)
	}

	return &user, nil
}

// Authenticate looks the user up by exact username and verifies the password
// against the stored bcrypt hash. A missing user and a wrong password are
// distinct failures; the boundary may collapse them into one response.
func (s *userService) Authenticate(username string, password string) (*models.User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ResolveSession re-fetches the full User for the id carried by a session
// token. The token stores only the id, so profile fields are never stale. If
// the id no longer resolves (deleted account) the session is reported invalid
// but not destroyed; the request proceeds as anonymous.
func (s *userService) ResolveSession(userID uint) (*models.User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, storeError(err)
	}
	return user, nil
}
