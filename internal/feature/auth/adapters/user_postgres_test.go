package adapters

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fynix_backend/internal/feature/auth/domain/entity"
	"fynix_backend/internal/feature/auth/usecase"
)

// newTestDB opens an in-memory sqlite database with the user schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Exec("DELETE FROM users").Error
	})
	return db
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entity.User{Email: "alice@example.com", Password: "hashed"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected assigned ID after create")
	}

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("expected ID %d, got %d", user.ID, byEmail.ID)
	}

	byID, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %q", byID.Email)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &entity.User{Email: "bob@example.com", Password: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := repo.Create(ctx, &entity.User{Email: "bob@example.com", Password: "y"})
	if !errors.Is(err, usecase.ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, usecase.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByID(ctx, 12345); !errors.Is(err, usecase.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
