package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"idle-redeemer/internal/config"
	"idle-redeemer/internal/database"
	"idle-redeemer/internal/domain"

	"github.com/rs/zerolog"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "ledger.db")}
	db, err := database.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedPlatform(t *testing.T, db *sql.DB, id, key string) *domain.Platform {
	t.Helper()

	now := time.Now().UTC()
	_, err := db.Exec(`
		INSERT INTO platforms (id, key, hash, user_id, instance_id, created_at, updated_at)
		VALUES (?, ?, 'hash', 'user', NULL, ?, ?)`, id, key, now, now)
	if err != nil {
		t.Fatalf("seed platform %s: %v", key, err)
	}
	return &domain.Platform{ID: id, Key: key, Hash: "hash", UserID: "user"}
}

func TestPlatformRepository_GetByKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlatformRepository(db, zerolog.Nop())
	seedPlatform(t, db, "p1", "steam")

	platform, err := repo.GetByKey(context.Background(), "steam")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if platform.ID != "p1" || platform.UserID != "user" || platform.InstanceID != "" {
		t.Fatalf("unexpected platform %+v", platform)
	}

	if _, err := repo.GetByKey(context.Background(), "missing"); !errors.Is(err, ErrPlatformNotFound) {
		t.Fatalf("expected ErrPlatformNotFound, got %v", err)
	}
}

func TestPlatformRepository_UpdateInstanceID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlatformRepository(db, zerolog.Nop())
	seedPlatform(t, db, "p1", "steam")

	if err := repo.UpdateInstanceID(context.Background(), "p1", "inst-9"); err != nil {
		t.Fatalf("UpdateInstanceID: %v", err)
	}

	platform, err := repo.GetByKey(context.Background(), "steam")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if platform.InstanceID != "inst-9" {
		t.Fatalf("instance id = %q, want inst-9", platform.InstanceID)
	}

	if err := repo.UpdateInstanceID(context.Background(), "ghost", "x"); !errors.Is(err, ErrPlatformNotFound) {
		t.Fatalf("expected ErrPlatformNotFound for unknown id, got %v", err)
	}
}

func TestPromotionRepository_GetOrCreate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPromotionRepository(db, zerolog.Nop())
	ctx := context.Background()

	first, created, err := repo.GetOrCreate(ctx, "SPELLS")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !created {
		t.Fatal("first GetOrCreate should create")
	}
	if first.Code != "SPELLS" || first.ExpiresAt != nil {
		t.Fatalf("unexpected promotion %+v", first)
	}

	second, created, err := repo.GetOrCreate(ctx, "SPELLS")
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if created {
		t.Fatal("second GetOrCreate should not create")
	}
	if second.ID != first.ID {
		t.Fatalf("codes resolved to different rows: %q vs %q", first.ID, second.ID)
	}

	promos, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(promos) != 1 {
		t.Fatalf("expected one promotion row, got %d", len(promos))
	}
}

func TestRedemptionRepository_ExistsAndCreate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	platforms := seedPlatform(t, db, "p1", "steam")
	promoRepo := NewPromotionRepository(db, zerolog.Nop())
	promo, _, err := promoRepo.GetOrCreate(ctx, "SPELLS")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	repo := NewRedemptionRepository(db, zerolog.Nop())

	exists, err := repo.Exists(ctx, promo.ID, platforms.ID)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("pair should not exist yet")
	}

	if _, err := repo.Create(ctx, promo.ID, platforms.ID, "Electrum Chest x3"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	exists, err = repo.Exists(ctx, promo.ID, platforms.ID)
	if err != nil {
		t.Fatalf("Exists after create: %v", err)
	}
	if !exists {
		t.Fatal("pair should exist after create")
	}

	// the (promotion, platform) pair is unique; a second insert must fail
	if _, err := repo.Create(ctx, promo.ID, platforms.ID, "again"); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestRedemptionRepository_Listing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p1 := seedPlatform(t, db, "p1", "steam")
	p2 := seedPlatform(t, db, "p2", "mobile")

	promoRepo := NewPromotionRepository(db, zerolog.Nop())
	promo, _, err := promoRepo.GetOrCreate(ctx, "SPELLS")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	repo := NewRedemptionRepository(db, zerolog.Nop())
	if _, err := repo.Create(ctx, promo.ID, p1.ID, "a"); err != nil {
		t.Fatalf("Create p1: %v", err)
	}
	if _, err := repo.Create(ctx, promo.ID, p2.ID, "b"); err != nil {
		t.Fatalf("Create p2: %v", err)
	}

	byPlatform, err := repo.ListByPlatform(ctx, p1.ID)
	if err != nil {
		t.Fatalf("ListByPlatform: %v", err)
	}
	if len(byPlatform) != 1 || byPlatform[0].Message != "a" {
		t.Fatalf("unexpected platform listing %+v", byPlatform)
	}

	byCode, err := repo.ListByCode(ctx, "SPELLS")
	if err != nil {
		t.Fatalf("ListByCode: %v", err)
	}
	if len(byCode) != 2 {
		t.Fatalf("expected both redemptions by code, got %d", len(byCode))
	}
}
