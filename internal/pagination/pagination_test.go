package pagination

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type pagedRow struct {
	ID   uint `gorm:"primaryKey"`
	Rank int
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&pagedRow{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestPageRequestDefaults(t *testing.T) {
	t.Run("zero values get defaults", func(t *testing.T) {
		req := PageRequest{}
		req.Defaults()
		if req.Page != 1 || req.PageSize != 20 {
			t.Errorf("expected page 1 size 20, got %d/%d", req.Page, req.PageSize)
		}
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		req := PageRequest{Page: 3, PageSize: 5}
		req.Defaults()
		if req.Page != 3 || req.PageSize != 5 {
			t.Errorf("expected page 3 size 5, got %d/%d", req.Page, req.PageSize)
		}
		if req.Offset() != 10 {
			t.Errorf("expected offset 10, got %d", req.Offset())
		}
	})
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse([]int{1, 2}, 1, 2, 5)
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages for 5 items of size 2, got %d", resp.TotalPages)
	}

	empty := NewPageResponse[int](nil, 1, 20, 0)
	if empty.Data == nil {
		t.Error("expected empty slice, not nil, for an empty page")
	}
	if empty.TotalPages != 0 {
		t.Errorf("expected 0 pages, got %d", empty.TotalPages)
	}
}

func TestOrdered(t *testing.T) {
	db := setupTestDB(t)
	for _, rank := range []int{3, 1, 5, 2, 4} {
		if err := db.Create(&pagedRow{Rank: rank}).Error; err != nil {
			t.Fatalf("failed to seed row: %v", err)
		}
	}

	t.Run("applies the given expression", func(t *testing.T) {
		var rows []pagedRow
		req := PageRequest{Page: 1, PageSize: 2}
		err := db.Scopes(Ordered("rank DESC"), Paginate(req)).Find(&rows).Error
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if len(rows) != 2 || rows[0].Rank != 5 || rows[1].Rank != 4 {
			t.Errorf("expected ranks [5 4], got %v", rows)
		}
	})

	t.Run("empty expression falls back to newest first", func(t *testing.T) {
		var rows []pagedRow
		req := PageRequest{Page: 1, PageSize: 1}
		err := db.Scopes(Ordered(""), Paginate(req)).Find(&rows).Error
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		// Rank 4 was inserted last, so it has the highest id.
		if len(rows) != 1 || rows[0].Rank != 4 {
			t.Errorf("expected the last inserted row, got %v", rows)
		}
	})

	t.Run("second page continues the ordering", func(t *testing.T) {
		var rows []pagedRow
		req := PageRequest{Page: 2, PageSize: 2}
		err := db.Scopes(Ordered("rank DESC"), Paginate(req)).Find(&rows).Error
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if len(rows) != 2 || rows[0].Rank != 3 || rows[1].Rank != 2 {
			t.Errorf("expected ranks [3 2], got %v", rows)
		}
	})
}
