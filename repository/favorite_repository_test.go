package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAddFavoriteRepeated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewMySQLFavoriteRepository(db)

	mock.ExpectExec("INSERT IGNORE INTO favorites").
		WithArgs(int64(3), int64(12)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT IGNORE INTO favorites").
		WithArgs(int64(3), int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.AddFavorite(3, 12); err != nil {
		t.Fatalf("first AddFavorite: %v", err)
	}
	if err := repo.AddFavorite(3, 12); err != nil {
		t.Fatalf("repeated AddFavorite should be a no-op, got: %v", err)
	}
}

func TestIsFavorite(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewMySQLFavoriteRepository(db)

	mock.ExpectQuery("SELECT 1 FROM favorites").
		WithArgs(int64(3), int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM favorites").
		WithArgs(int64(3), int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	favorited, err := repo.IsFavorite(3, 12)
	if err != nil {
		t.Fatalf("IsFavorite: %v", err)
	}
	if !favorited {
		t.Error("expected favorited=true")
	}

	favorited, err = repo.IsFavorite(3, 99)
	if err != nil {
		t.Fatalf("IsFavorite on absent row: %v", err)
	}
	if favorited {
		t.Error("expected favorited=false for absent row")
	}
}

func TestRemoveFavoriteAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewMySQLFavoriteRepository(db)

	mock.ExpectExec("DELETE FROM favorites").
		WithArgs(int64(3), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.RemoveFavorite(3, 99); err != nil {
		t.Fatalf("removing an absent favorite should succeed, got: %v", err)
	}
}
