package auth

import (
	"errors"
	"fmt"

	"moodtunes/internal/database"
	"moodtunes/pkg/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Business failure kinds. Handlers map all of these onto the standard
// {success:false, message} envelope.
var (
	ErrDuplicateUser      = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid password")
)

// Service implements registration and login on top of the user table. No
// sessions or tokens are issued; clients keep userId/username themselves.
type Service struct {
	db            *database.Database
	hashPasswords bool
	logger        *logrus.Logger
}

// NewService creates an auth service. When hashPasswords is true new
// registrations store bcrypt hashes instead of the raw password.
func NewService(db *database.Database, hashPasswords bool, logger *logrus.Logger) *Service {
	return &Service{
		db:            db,
		hashPasswords: hashPasswords,
		logger:        logger,
	}
}

// Register creates a new user. Returns ErrDuplicateUser when the username is
// already taken.
func (s *Service) Register(username, password string) (models.User, error) {
	existing, err := s.db.GetUserByUsername(username)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return models.User{}, ErrDuplicateUser
	}

	stored := password
	if s.hashPasswords {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		stored = string(hash)
	}

	user, err := s.db.CreateUser(username, stored)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithField("username", username).Info("User registered")
	return user, nil
}

// Login returns the matching user. Returns ErrUserNotFound for an unknown
// username and ErrInvalidCredentials on a password mismatch.
func (s *Service) Login(username, password string) (models.User, error) {
	user, err := s.db.GetUserByUsername(username)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return models.User{}, ErrUserNotFound
	}

	if !passwordMatches(user.Password, password) {
		s.logger.WithField("username", username).Warn("Failed login attempt")
		return models.User{}, ErrInvalidCredentials
	}

	return *user, nil
}

// passwordMatches compares a stored password with the supplied one. Stored
// bcrypt hashes are compared with bcrypt; anything else is compared verbatim,
// so databases created before hashing was enabled keep working.
func passwordMatches(stored, supplied string) bool {
	if isHashedPassword(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return stored == supplied
}

// isHashedPassword checks if a password string is a bcrypt hash
func isHashedPassword(password string) bool {
	// bcrypt hashes have a specific format: $2a$, $2b$, $2x$, or $2y$ followed by cost and salt
	return len(password) >= 4 &&
		password[0] == '$' &&
		password[1] == '2' &&
		(password[2] == 'a' || password[2] == 'b' || password[2] == 'x' || password[2] == 'y') &&
		password[3] == '$'
}
