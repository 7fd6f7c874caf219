package services

import (
	"encoding/json"
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	t.Run("records_entry_with_changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.KindExpense)

		svc.Log(user.ID, "DELETE_CATEGORY", "category", cat.ID, "127.0.0.1", map[string]interface{}{"title": cat.Title})

		var entries []models.AuditLog
		if err := db.Where("user_id = ?", user.ID).Find(&entries).Error; err != nil {
			t.Fatalf("failed to load audit logs: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 audit entry, got %d", len(entries))
		}
		entry := entries[0]
		if entry.Action != "DELETE_CATEGORY" || entry.ResourceID != cat.ID || entry.IPAddress != "127.0.0.1" {
			t.Errorf("unexpected audit entry: %+v", entry)
		}

		var changes map[string]string
		if err := json.Unmarshal([]byte(entry.Changes), &changes); err != nil {
			t.Fatalf("changes is not valid JSON: %v", err)
		}
		if changes["title"] != cat.Title {
			t.Errorf("expected title %q in changes, got %q", cat.Title, changes["title"])
		}
	})

	t.Run("nil_changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)
		user := testutil.CreateTestUser(t, db)

		svc.Log(user.ID, "LOGIN", "user", user.ID, "", nil)

		var entry models.AuditLog
		if err := db.Where("user_id = ?", user.ID).First(&entry).Error; err != nil {
			t.Fatalf("expected audit entry: %v", err)
		}
		if entry.Changes != "" {
			t.Errorf("expected empty changes, got %q", entry.Changes)
		}
	})

	t.Run("closed_db_does_not_panic", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAuditService(db)
		testutil.TeardownTestDB(t, db)

		svc.Log("user", "LOGIN", "user", "", "", nil)
	})
}
