package gateway_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/alovak/nts-userdata/gateway"
	"github.com/alovak/nts-userdata/gateway/models"
)

// TestReferenceRoundTripInDB verifies that the user data tags of a reference
// survive the jsonb column. Skips unless DB_DSN is provided and REPO_BACKEND=pg.
func TestReferenceRoundTripInDB(t *testing.T) {
	if os.Getenv("REPO_BACKEND") != "pg" {
		t.Skip("REPO_BACKEND != pg; skipping DB integration test")
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Skip("DB_DSN not set; skipping DB integration test")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	ctx := context.Background()
	repo := gateway.NewPGRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc := gateway.NewService(repo, nil, nil, gateway.DefaultConfig())

	ref, err := svc.CreateReference(ctx, models.CreateReference{
		OriginalMessageCode: "02",
		UserDataTags:        map[string]string{"03": "000123", "18": "VISA-TXN-ID"},
	})
	if err != nil {
		t.Fatalf("create reference: %v", err)
	}

	got, err := svc.GetReference(ctx, ref.ID)
	if err != nil {
		t.Fatalf("get reference: %v", err)
	}
	if got.OriginalMessageCode != "02" || got.UserDataTags["18"] != "VISA-TXN-ID" {
		t.Fatalf("reference mismatch: got %+v want %+v", got, ref)
	}

	if err := repo.CreateReference(ctx, ref); err != gateway.ErrConflict {
		t.Fatalf("duplicate insert err = %v want ErrConflict", err)
	}

	if _, err := svc.GetReference(ctx, "not-a-uuid"); err == nil {
		t.Fatalf("expected not found for malformed id")
	}
}
