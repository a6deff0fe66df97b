package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreatePlaylist(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewMySQLPlaylistRepository(db)
	now := time.Now()

	mock.ExpectPrepare("INSERT INTO playlists").
		ExpectExec().
		WithArgs("Road Trip", int64(3)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT id, name, user_id, created_at, updated_at FROM playlists WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id", "created_at", "updated_at"}).
			AddRow(int64(7), "Road Trip", int64(3), now, now))
	mock.ExpectQuery("SELECT (.+) FROM songs s").
		WithArgs(int64(7)).
		WillReturnRows(songRows())

	playlist, err := repo.CreatePlaylist("Road Trip", 3)
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	if playlist.ID != 7 || playlist.Name != "Road Trip" || playlist.UserID != 3 {
		t.Errorf("unexpected playlist: %+v", playlist)
	}
	if playlist.Songs == nil || len(playlist.Songs) != 0 {
		t.Errorf("new playlist should have an empty, non-nil song list, got %#v", playlist.Songs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetPlaylistByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewMySQLPlaylistRepository(db)

	mock.ExpectQuery("SELECT id, name, user_id, created_at, updated_at FROM playlists WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id", "created_at", "updated_at"}))

	playlist, err := repo.GetPlaylistByID(99)
	if err != nil {
		t.Fatalf("GetPlaylistByID: %v", err)
	}
	if playlist != nil {
		t.Errorf("expected nil playlist for missing id, got %+v", playlist)
	}
}

// Adding the same song twice hits the unique (playlist_id, song_id) key;
// the second insert affects zero rows and both calls succeed.
func TestAddSongIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewMySQLPlaylistRepository(db)

	mock.ExpectExec("INSERT IGNORE INTO playlist_songs").
		WithArgs(int64(5), int64(12)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT IGNORE INTO playlist_songs").
		WithArgs(int64(5), int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.AddSong(5, 12); err != nil {
		t.Fatalf("first AddSong: %v", err)
	}
	if err := repo.AddSong(5, 12); err != nil {
		t.Fatalf("repeated AddSong should be a no-op, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRemoveSongAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewMySQLPlaylistRepository(db)

	mock.ExpectExec("DELETE FROM playlist_songs WHERE playlist_id").
		WithArgs(int64(5), int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.RemoveSong(5, 404); err != nil {
		t.Fatalf("removing an absent song should succeed, got: %v", err)
	}
}

func TestDeletePlaylistNonexistent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewMySQLPlaylistRepository(db)

	mock.ExpectExec("DELETE FROM playlist_songs WHERE playlist_id").
		WithArgs(int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM playlists WHERE id").
		WithArgs(int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeletePlaylist(123); err != nil {
		t.Fatalf("deleting a nonexistent playlist should succeed, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetPlaylistsByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewMySQLPlaylistRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT id, name, user_id, created_at, updated_at FROM playlists WHERE user_id").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id", "created_at", "updated_at"}).
			AddRow(int64(2), "Evening", int64(3), now, now).
			AddRow(int64(1), "Morning", int64(3), now, now))
	mock.ExpectQuery("SELECT (.+) FROM songs s").
		WithArgs(int64(2)).
		WillReturnRows(songRows().
			AddRow(int64(10), "Track A", "", nil, nil, "/media/audio/a.mp3", "", "#222", "3:10", now, now))
	mock.ExpectQuery("SELECT (.+) FROM songs s").
		WithArgs(int64(1)).
		WillReturnRows(songRows())

	playlists, err := repo.GetPlaylistsByUserID(3)
	if err != nil {
		t.Fatalf("GetPlaylistsByUserID: %v", err)
	}
	if len(playlists) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(playlists))
	}
	if len(playlists[0].Songs) != 1 || playlists[0].Songs[0].Name != "Track A" {
		t.Errorf("unexpected songs in first playlist: %+v", playlists[0].Songs)
	}
	if len(playlists[1].Songs) != 0 {
		t.Errorf("expected empty song list in second playlist, got %+v", playlists[1].Songs)
	}
}

func songRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "album_id", "artist_id",
		"file_url", "image_url", "bg_colour", "duration", "created_at", "updated_at"})
}
