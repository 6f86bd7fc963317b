package steps

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/quanta/backend/internal/integration/persistence/model"
)

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, "DefaultPass123!", "Test User")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "Test User")
}

func (t *testContext) createUser(email, password, name string) error {
	var existing model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&existing).Error; err == nil {
		t.currentUserID = existing.ID
		return nil
	}

	userID := uuid.New()
	t.currentUserID = userID

	now := t.timeMock.Now().UTC()
	user := &model.UserModel{
		ID:                 userID,
		Email:              email,
		Name:               name,
		PasswordHash:       hashPassword(password),
		Currency:           "USD",
		Locale:             "en-US",
		EmailNotifications: true,
		GoalAlerts:         true,
		RecurringReminders: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	return t.db.DbConn.Create(user).Error
}

func hashPassword(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashed)
}

// iAmLoggedInAs ensures the user exists and issues a token pair signed
// with the test secret, matching the claims the token service emits.
func (t *testContext) iAmLoggedInAs(email string) error {
	if err := t.createUser(email, "DefaultPass123!", "Test User "+email); err != nil {
		return err
	}

	var userModel model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&userModel).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}
	t.currentUserID = userModel.ID

	now := time.Now().UTC()

	accessToken, err := t.signToken(email, "access", now, 15*time.Minute)
	if err != nil {
		return err
	}
	t.accessToken = accessToken

	refreshToken, err := t.signToken(email, "refresh", now, 7*24*time.Hour)
	if err != nil {
		return err
	}
	t.refreshToken = refreshToken

	refreshModel := &model.RefreshTokenModel{
		ID:          uuid.New(),
		Token:       t.refreshToken,
		UserID:      t.currentUserID,
		Invalidated: false,
		ExpiresAt:   now.Add(7 * 24 * time.Hour),
		CreatedAt:   now,
	}
	return t.db.DbConn.Create(refreshModel).Error
}

func (t *testContext) signToken(email, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    t.currentUserID.String(),
		"email":      email,
		"token_type": tokenType,
		"exp":        jwt.NewNumericDate(now.Add(ttl)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "quanta",
		"sub":        t.currentUserID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (t *testContext) aCategoryExistsWithNameAndType(name, categoryType string) error {
	categoryID := uuid.New()
	t.currentCategoryID = categoryID

	userID := t.currentUserID
	now := t.timeMock.Now().UTC()
	categoryModel := &model.CategoryModel{
		ID:        categoryID,
		UserID:    &userID,
		Name:      name,
		Color:     "#6366F1",
		Icon:      "tag",
		Type:      categoryType,
		IsSystem:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return t.db.DbConn.Create(categoryModel).Error
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := t.countRows(table, nil)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in %q, got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	count, err := t.countRows(table, criteria)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in %q matching %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) countRows(table string, criteria map[string]any) (int, error) {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("table %q not registered", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	slicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(slicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return 0, result.Error
	}

	return slicePtr.Elem().Len(), nil
}
