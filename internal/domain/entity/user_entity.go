package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the aggregate root for the member domain
// Passwords are stored as bcrypt hashes in Password field
//
// Bio and Image are optional profile fields and may be blank.
type User struct {
	ID        string
	Email     string
	Username  string
	Password  string
	Bio       string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser builds a user with a fresh identity. CreatedAt and UpdatedAt
// start out equal; UpdatedAt moves on every profile update.
func NewUser(email, username, passwordHash, bio, image string) (*User, error) {
	if err := notBlank("email", email); err != nil {
		return nil, err
	}
	if err := notBlank("username", username); err != nil {
		return nil, err
	}
	if err := notBlank("password", passwordHash); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.NewString(),
		Email:     strings.TrimSpace(email),
		Username:  strings.TrimSpace(username),
		Password:  passwordHash,
		Bio:       bio,
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateProfile applies a partial update. Nil fields keep their current
// value; bio and image may be set to blank on purpose. Validation runs
// before any field is touched, so a failed update leaves the user as it
// was.
func (u *User) UpdateProfile(email, username, passwordHash, bio, image *string) error {
	if email != nil {
		if err := notBlank("email", *email); err != nil {
			return err
		}
	}
	if username != nil {
		if err := notBlank("username", *username); err != nil {
			return err
		}
	}
	if passwordHash != nil {
		if err := notBlank("password", *passwordHash); err != nil {
			return err
		}
	}
	if email != nil {
		u.Email = strings.TrimSpace(*email)
	}
	if username != nil {
		u.Username = strings.TrimSpace(*username)
	}
	if passwordHash != nil {
		u.Password = *passwordHash
	}
	if bio != nil {
		u.Bio = *bio
	}
	if image != nil {
		u.Image = *image
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}
