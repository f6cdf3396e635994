package services

import (
	"errors"
	"strings"

	"vidyarth/internal/auth"
	"vidyarth/internal/domain"
	"vidyarth/internal/repos"
	"vidyarth/internal/validate"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds    = errors.New("invalid email or password")
	ErrEmailTaken  = errors.New("email already registered")
	ErrUserBlocked = errors.New("account is deactivated")
)

type AuthService struct {
	Users *repos.UserRepo
	JWT   *auth.JWTService
}

func NewAuthService(users *repos.UserRepo, jwt *auth.JWTService) *AuthService {
	return &AuthService{Users: users, JWT: jwt}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`

	FullName        string   `json:"full_name"`
	DisplayName     string   `json:"display_name"`
	Gender          string   `json:"gender"`
	Phone           string   `json:"phone"`
	SchoolCollegeID string   `json:"school_college_id"`
	ClassYear       string   `json:"class_year"`
	Course          string   `json:"course"`
	Department      string   `json:"department"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	Pincode         string   `json:"pincode"`
	Country         string   `json:"country"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	AvatarURL       string   `json:"avatar_url"`
	Bio             string   `json:"bio"`
}

// Register creates the user and its profile as one transaction.
func (s *AuthService) Register(in RegisterInput) (*domain.User, error) {
	email, ok := validate.Email(in.Email)
	if !ok {
		return nil, domain.Invalid("email", "")
	}
	if !validate.Password(in.Password) {
		return nil, domain.Invalid("password", "must be 6 to 72 characters")
	}
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, domain.Invalid("full_name", "required")
	}
	if in.Phone != "" {
		if _, ok := validate.Phone(in.Phone); !ok {
			return nil, domain.Invalid("phone", "")
		}
	}
	if in.Pincode != "" {
		if _, ok := validate.Pincode(in.Pincode); !ok {
			return nil, domain.Invalid("pincode", "")
		}
	}

	if _, err := s.Users.ByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, err
	}

	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = "India"
	}
	u := &domain.User{
		ID:       uuid.NewString(),
		Email:    email,
		Username: strings.TrimSpace(in.Username),
		Hash:     string(hash),
		Role:     "USER",
		IsActive: true,
	}
	p := &domain.Profile{
		ID:              uuid.NewString(),
		UserID:          u.ID,
		FullName:        fullName,
		DisplayName:     strings.TrimSpace(in.DisplayName),
		Gender:          in.Gender,
		Phone:           in.Phone,
		SchoolCollegeID: in.SchoolCollegeID,
		ClassYear:       in.ClassYear,
		Course:          in.Course,
		Department:      in.Department,
		Address:         in.Address,
		City:            in.City,
		State:           in.State,
		Pincode:         in.Pincode,
		Country:         country,
		Latitude:        in.Latitude,
		Longitude:       in.Longitude,
		AvatarURL:       in.AvatarURL,
		Bio:             in.Bio,
	}
	if err := s.Users.CreateWithProfile(u, p); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials, binds the session and mints a bearer token.
func (s *AuthService) Login(sid, email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	if !u.IsActive {
		return nil, "", ErrUserBlocked
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, "", err
	}
	token, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// UserFromToken resolves a bearer token to its active user.
func (s *AuthService) UserFromToken(token string) (*domain.User, error) {
	userID, err := s.JWT.UserID(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	u, err := s.Users.ByID(userID)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if !u.IsActive {
		return nil, domain.ErrUnauthenticated
	}
	return u, nil
}

func (s *AuthService) Profile(userID string) (*domain.Profile, error) {
	p, err := s.Users.ProfileByUser(userID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *AuthService) SchoolColleges() ([]domain.SchoolCollege, error) {
	return s.Users.SchoolColleges()
}

// DeleteUser removes an account with its profile and sessions in one
// transaction. Admin operation.
func (s *AuthService) DeleteUser(userID string) error {
	exists, err := s.Users.Exists(userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return s.Users.DeleteUserCascade(userID)
}
