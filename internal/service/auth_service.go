package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/escartian/FitByte/internal/domain"
	"github.com/escartian/FitByte/internal/repository"
	"github.com/escartian/FitByte/internal/sanitize"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	minNameLength     = 2
	maxNameLength     = 25
	minPasswordLength = 8
	maxAge            = 130
	passwordSymbols   = `!@#$%^&*()_+{}[]:;<>,.?~\-`
)

var emailPattern = regexp.MustCompile(`^[\w-]+(\.[\w-]+)*@([\w-]+\.)+[a-zA-Z]{2,7}$`)

// RegisterInput is the raw registration form. Age is a pointer so that a missing value can be told apart from 0.
type RegisterInput struct {
	FirstName    string
	LastName     string
	EmailAddress string
	Password     string
	DateOfBirth  string
	Age          *int
	Gender       string
}

// RegistrationPolicy holds the product knobs of registration validation.
type RegistrationPolicy struct {
	Genders    []domain.Gender
	MinAge     int // 0 disables the minimum
	BcryptCost int
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (domain.UserInfo, error)
	Login(ctx context.Context, email, password string) (token string, user domain.UserInfo, err error)
	RemoveUser(ctx context.Context, userID string) (domain.UserInfo, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (domain.UserInfo, error)
}

// authService implements the AuthService interface.
type authService struct {
	userRepo  repository.UserRepository
	sanitizer sanitize.Sanitizer
	sessions  *SessionCodec
	policy    RegistrationPolicy
	now       func() time.Time

	// compared against when the email is unknown, so both login failures cost one bcrypt comparison
	dummyHash []byte
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, sanitizer sanitize.Sanitizer, sessions *SessionCodec, policy RegistrationPolicy) AuthService {
	if len(policy.Genders) == 0 {
		policy.Genders = domain.AllGenders
	}
	if policy.BcryptCost == 0 {
		policy.BcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), policy.BcryptCost)
	if err != nil {
		panic("bcrypt cost out of range: " + err.Error())
	}
	return &authService{
		userRepo:  userRepo,
		sanitizer: sanitizer,
		sessions:  sessions,
		policy:    policy,
		now:       time.Now,
		dummyHash: dummy,
	}
}

// NormalizeEmail is applied before every storage write or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates the input (first violation wins), rejects duplicate emails and stores the new user.
func (s *authService) Register(ctx context.Context, in RegisterInput) (domain.UserInfo, error) {
	firstName := s.sanitizer.Sanitize(in.FirstName)
	lastName := s.sanitizer.Sanitize(in.LastName)
	email := NormalizeEmail(in.EmailAddress)
	gender := domain.Gender(strings.ToLower(strings.TrimSpace(in.Gender)))

	if err := validateName("firstName", firstName); err != nil {
		return domain.UserInfo{}, err
	}
	if err := validateName("lastName", lastName); err != nil {
		return domain.UserInfo{}, err
	}
	if err := validateEmail(email); err != nil {
		return domain.UserInfo{}, err
	}
	if err := validatePassword(in.Password); err != nil {
		return domain.UserInfo{}, err
	}
	if err := s.validateAge(in.Age, in.DateOfBirth); err != nil {
		return domain.UserInfo{}, err
	}
	if err := s.validateGender(gender); err != nil {
		return domain.UserInfo{}, err
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return domain.UserInfo{}, ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.UserInfo{}, storageErr(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.policy.BcryptCost)
	if err != nil {
		return domain.UserInfo{}, err
	}

	user := &domain.User{
		FirstName:      firstName,
		LastName:       lastName,
		EmailAddress:   email,
		PasswordHash:   string(hashedPassword),
		DateOfBirth:    strings.TrimSpace(in.DateOfBirth),
		Age:            *in.Age,
		Gender:         gender,
		RegisterDate:   s.now().UTC(),
		CustomWorkouts: []domain.CompletedWorkout{},
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The pre-check races with concurrent registrations; the unique index has the final word.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return domain.UserInfo{}, ErrDuplicateEmail
		}
		return domain.UserInfo{}, storageErr(err)
	}
	user.ID = userID

	return user.Info(), nil
}

// Login authenticates the user and issues a session token.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (string, domain.UserInfo, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", domain.UserInfo{}, invalid("emailAddress", "email address is required")
	}
	if password == "" {
		return "", domain.UserInfo{}, invalid("password", "password is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return "", domain.UserInfo{}, ErrInvalidCredentials
		}
		return "", domain.UserInfo{}, storageErr(err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.UserInfo{}, ErrInvalidCredentials
	}

	info := user.Info()
	token, err := s.sessions.Issue(info)
	if err != nil {
		return "", domain.UserInfo{}, err
	}
	return token, info, nil
}

// RemoveUser deletes the account identified by the hex id and returns what was deleted.
func (s *authService) RemoveUser(ctx context.Context, userID string) (domain.UserInfo, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.UserInfo{}, invalid("id", "user id is required")
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.UserInfo{}, invalid("id", "user id is not a valid identifier")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.UserInfo{}, ErrUserNotFound
		}
		return domain.UserInfo{}, storageErr(err)
	}

	if err = s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.UserInfo{}, ErrUserNotFound
		}
		return domain.UserInfo{}, storageErr(err)
	}
	return user.Info(), nil
}

func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (domain.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.UserInfo{}, ErrUserNotFound
		}
		return domain.UserInfo{}, storageErr(err)
	}
	return user.Info(), nil
}

// --- validation helpers ---

func validateName(field, name string) error {
	if name == "" {
		return invalid(field, "%s is required", field)
	}
	if n := len([]rune(name)); n < minNameLength || n > maxNameLength {
		return invalid(field, "%s must be between %d and %d characters", field, minNameLength, maxNameLength)
	}
	if strings.IndexFunc(name, unicode.IsDigit) >= 0 {
		return invalid(field, "%s cannot contain numbers", field)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return invalid("emailAddress", "email address is required")
	}
	if !emailPattern.MatchString(email) {
		return invalid("emailAddress", "email address is not valid")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return invalid("password", "password is required")
	}
	if len(password) < minPasswordLength {
		return invalid("password", "password must be at least %d characters", minPasswordLength)
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return invalid("password", "password cannot contain spaces")
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return invalid("password", "password needs an uppercase letter, a lowercase letter, a number and a special character")
	}
	return nil
}

// validateAge checks presence of both age and date of birth. They are not cross-checked against each other.
func (s *authService) validateAge(age *int, dob string) error {
	if age == nil {
		return invalid("age", "age is required")
	}
	if *age < 0 || *age > maxAge {
		return invalid("age", "age must be between 0 and %d", maxAge)
	}
	if s.policy.MinAge > 0 && *age < s.policy.MinAge {
		return invalid("age", "you must be at least %d years old to register", s.policy.MinAge)
	}
	if strings.TrimSpace(dob) == "" {
		return invalid("dateOfBirth", "date of birth is required")
	}
	return nil
}

func (s *authService) validateGender(gender domain.Gender) error {
	if gender == "" {
		return invalid("gender", "gender is required")
	}
	for _, g := range s.policy.Genders {
		if g == gender {
			return nil
		}
	}
	return invalid("gender", "gender must be one of %v", s.policy.Genders)
}
