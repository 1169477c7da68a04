package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mgavilanes/campline-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// NewUserInput carries the fields needed to create a user account.
// At least one of AvatarGlyph or AvatarURL must be set.
type NewUserInput struct {
	Name        string
	Email       string
	Password    string
	AvatarGlyph string
	AvatarURL   string
}

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetAllUsers() ([]models.User, error)
	GetUserByID(id string) (models.User, error)
	CreateUser(input NewUserInput) (models.User, error)
	UpdateUser(id, name, email string) (models.User, error)
	UpdatePassword(id, currentPassword, newPassword string) error
	SetAvatarURL(id, url string) (models.User, error)
	DeleteUser(id string) error
	AuthenticateUser(email, password string) (models.User, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

const userColumns = "id, name, email, avatar_glyph, avatar_url, created_at"

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.AvatarGlyph, &user.AvatarURL, &user.CreatedAt)
	return user, err
}

// GetAllUsers retrieves every user account, without password hashes.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT " + userColumns + " FROM users ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user with ID %s not found", id)
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail retrieves a single user by their email, including the password hash.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, name, email, password_hash, avatar_glyph, avatar_url, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.AvatarGlyph, &user.AvatarURL, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user with email %s not found", email)
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateUser creates a new user, hashing their password. Name and
// email must be unused; the avatar must have at least one
// representation.
func (s *UserService) CreateUser(input NewUserInput) (models.User, error) {
	if input.Name == "" {
		return models.User{}, Validationf("name must not be empty")
	}
	if input.AvatarGlyph == "" && input.AvatarURL == "" {
		return models.User{}, Validationf("an avatar glyph or image is required")
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE name = ? OR email = ?", input.Name, input.Email).Scan(&count); err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, Validationf("a user with that name or email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Email:       input.Email,
		AvatarGlyph: input.AvatarGlyph,
		AvatarURL:   input.AvatarURL,
	}

	_, err = s.db.Exec("INSERT INTO users(id, name, email, password_hash, avatar_glyph, avatar_url) VALUES(?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, string(hashedPassword), user.AvatarGlyph, user.AvatarURL)
	if err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(user.ID)
}

// UpdateUser updates a user's non-sensitive information.
func (s *UserService) UpdateUser(id, name, email string) (models.User, error) {
	if name == "" {
		return models.User{}, Validationf("name must not be empty")
	}
	_, err := s.db.Exec("UPDATE users SET name = ?, email = ? WHERE id = ?", name, email, id)
	if err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(id)
}

// UpdatePassword verifies the current password, then hashes and sets a new password for a user.
func (s *UserService) UpdatePassword(id, currentPassword, newPassword string) error {
	var hash string
	if err := s.db.QueryRow("SELECT password_hash FROM users WHERE id = ?", id).Scan(&hash); err != nil {
		return fmt.Errorf("could not find user to update password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(currentPassword)); err != nil {
		return Validationf("current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	_, err = s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", string(hashedPassword), id)
	return err
}

// SetAvatarURL stores the URL of an uploaded avatar image.
func (s *UserService) SetAvatarURL(id, url string) (models.User, error) {
	if url == "" {
		return models.User{}, Validationf("avatar URL must not be empty")
	}
	if _, err := s.db.Exec("UPDATE users SET avatar_url = ? WHERE id = ?", url, id); err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(id)
}

// DeleteUser removes a user from the database. Events assigned to the
// user keep existing with their assignee reference cleared.
func (s *UserService) DeleteUser(id string) error {
	_, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}

// AuthenticateUser verifies a user's credentials.
func (s *UserService) AuthenticateUser(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("authentication failed: user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("authentication failed: invalid password")
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
