package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

// The play log is append-only: playing a song twice inserts two rows.
func TestCreatePlayNoDedup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewMySQLPlayRepository(db)

	mock.ExpectPrepare("INSERT INTO plays").
		ExpectExec().
		WithArgs(int64(3), int64(12)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectPrepare("INSERT INTO plays").
		ExpectExec().
		WithArgs(int64(3), int64(12)).
		WillReturnResult(sqlmock.NewResult(2, 1))

	first, err := repo.CreatePlay(3, 12)
	if err != nil {
		t.Fatalf("first CreatePlay: %v", err)
	}
	second, err := repo.CreatePlay(3, 12)
	if err != nil {
		t.Fatalf("second CreatePlay: %v", err)
	}
	if first == second {
		t.Errorf("expected distinct play rows, got id %d twice", first)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMostPlayed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewMySQLPlayRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "album_id", "artist_id",
		"file_url", "image_url", "bg_colour", "duration", "created_at", "updated_at", "play_count"}).
		AddRow(int64(12), "Hit Song", "", nil, nil, "/media/audio/12.mp3", "", "#000", "3:30", now, now, int64(42)).
		AddRow(int64(7), "Runner Up", "", nil, nil, "/media/audio/7.mp3", "", "#111", "2:58", now, now, int64(17))

	mock.ExpectQuery("SELECT (.+) FROM plays p").
		WithArgs(10).
		WillReturnRows(rows)

	results, err := repo.MostPlayed(10)
	if err != nil {
		t.Fatalf("MostPlayed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(results))
	}
	if results[0].Song.ID != 12 || results[0].Count != 42 {
		t.Errorf("unexpected top entry: %+v", results[0])
	}
	if results[1].Count != 17 {
		t.Errorf("unexpected second entry: %+v", results[1])
	}
}
