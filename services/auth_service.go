package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"
	"github.com/yeremiapane/chemsecure/models"
	"github.com/yeremiapane/chemsecure/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLength = 6
	allowedNameChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-._@+"
)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type AuthService struct {
	db       *gorm.DB
	jwt      utils.JWTSettings
	validate *validator.Validate
}

func NewAuthService(db *gorm.DB, settings utils.JWTSettings) *AuthService {
	return &AuthService{
		db:       db,
		jwt:      settings,
		validate: validator.New(),
	}
}

// Register creates an account holding the User role.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	return s.registerWithRole(ctx, in, models.RoleUser)
}

// RegisterAdmin creates an account holding the Admin role. When the role cannot be
// attached the account is kept and the error is returned.
func (s *AuthService) RegisterAdmin(ctx context.Context, in RegisterInput) (models.User, error) {
	return s.registerWithRole(ctx, in, models.RoleAdmin)
}

func (s *AuthService) RegisterManager(ctx context.Context, in RegisterInput) (models.User, error) {
	return s.registerWithRole(ctx, in, models.RoleManager)
}

func (s *AuthService) registerWithRole(ctx context.Context, in RegisterInput, role string) (models.User, error) {
	user, err := s.createUser(ctx, in)
	if err != nil {
		return models.User{}, err
	}
	if err := s.AddToRole(ctx, &user, role); err != nil {
		utils.WithError(err, "auth").WithField("user_id", user.ID).Error("role assignment failed, user kept without role")
		return user, err
	}
	utils.WithFields("auth", map[string]interface{}{"user_id": user.ID, "role": role}).Info("User registered")
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, in RegisterInput) (models.User, error) {
	verr, err := s.validateRegistration(ctx, in)
	if err != nil {
		return models.User{}, err
	}
	if verr != nil {
		return models.User{}, verr
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return models.User{}, fmt.Errorf("generate user id: %w", err)
	}

	user := models.User{
		ID:              id.String(),
		UserName:        in.Name,
		Email:           strings.TrimSpace(in.Email),
		NormalizedEmail: models.NormalizeEmail(in.Email),
		Password:        string(hashed),
		PhoneNumber:     in.Phone,
		Address:         in.Address,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, &StoreError{Err: err}
	}
	return user, nil
}

// validateRegistration collects every broken rule. The error is set only when the store lookups fail.
func (s *AuthService) validateRegistration(ctx context.Context, in RegisterInput) (*ValidationError, error) {
	verr := &ValidationError{}

	if err := s.validate.Var(in.Email, "required,email"); err != nil {
		verr.add("InvalidEmail", fmt.Sprintf("Email '%s' is invalid.", in.Email))
	}
	if !validUserName(in.Name) {
		verr.add("InvalidUserName", fmt.Sprintf("Username '%s' is invalid, can only contain letters or digits.", in.Name))
	}
	validatePassword(in.Password, verr)

	if in.Name != "" {
		taken, err := s.userExists(ctx, "user_name = ?", in.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			verr.add("DuplicateUserName", fmt.Sprintf("Username '%s' is already taken.", in.Name))
		}
	}
	if in.Email != "" {
		taken, err := s.userExists(ctx, "normalized_email = ?", models.NormalizeEmail(in.Email))
		if err != nil {
			return nil, err
		}
		if taken {
			verr.add("DuplicateEmail", fmt.Sprintf("Email '%s' is already taken.", in.Email))
		}
	}

	if len(verr.Errors) == 0 {
		return nil, nil
	}
	return verr, nil
}

func (s *AuthService) userExists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check existing user: %w", err)
	}
	return count > 0, nil
}

func validUserName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !strings.ContainsRune(allowedNameChars, r) {
			return false
		}
	}
	return true
}

func validatePassword(password string, verr *ValidationError) {
	var hasDigit, hasLower, hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSymbol = true
		}
	}

	if len(password) < minPasswordLength {
		verr.add("PasswordTooShort", fmt.Sprintf("Passwords must be at least %d characters.", minPasswordLength))
	}
	if !hasSymbol {
		verr.add("PasswordRequiresNonAlphanumeric", "Passwords must have at least one non alphanumeric character.")
	}
	if !hasDigit {
		verr.add("PasswordRequiresDigit", "Passwords must have at least one digit ('0'-'9').")
	}
	if !hasLower {
		verr.add("PasswordRequiresLower", "Passwords must have at least one lowercase ('a'-'z').")
	}
	if !hasUpper {
		verr.add("PasswordRequiresUpper", "Passwords must have at least one uppercase ('A'-'Z').")
	}
}

// AddToRole attaches an existing role to the user.
func (s *AuthService) AddToRole(ctx context.Context, user *models.User, roleName string) error {
	var role models.Role
	err := s.db.WithContext(ctx).Where("name = ?", roleName).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		verr := &ValidationError{}
		verr.add("InvalidRoleName", fmt.Sprintf("Role %s does not exist.", roleName))
		return verr
	}
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(user).Association("Roles").Append(&role); err != nil {
		return &StoreError{Err: err}
	}
	return nil
}

// Roles returns the role names currently held by the user.
func (s *AuthService) Roles(ctx context.Context, userID string) ([]string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Roles").First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newNotFound("User was not found.")
	}
	if err != nil {
		return nil, err
	}
	return user.RoleNames(), nil
}

// Login checks the credentials and returns a signed token with the user's role claims.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Roles").Where("normalized_email = ?", models.NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	token, err := utils.GenerateToken(s.jwt, user.ID, user.UserName, user.RoleNames())
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	utils.WithFields("auth", map[string]interface{}{"user_id": user.ID}).Info("Login successful")
	return token, nil
}
