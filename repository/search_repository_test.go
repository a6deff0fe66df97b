package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestLikePattern(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"love", "%love%"},
		{"LoVe", "%love%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`back\slash`, `%back\\slash%`},
		{"", "%%"},
	}

	for _, tc := range tests {
		if got := likePattern(tc.query); got != tc.want {
			t.Errorf("likePattern(%q) = %q, want %q", tc.query, got, tc.want)
		}
	}
}

func TestSearchAllCollections(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewMySQLSearchRepository(db)
	now := time.Now()
	pattern := "%love%"

	mock.ExpectQuery(`SELECT (.+) FROM songs WHERE LOWER\(name\) LIKE`).
		WithArgs(pattern, pattern).
		WillReturnRows(songRows().
			AddRow(int64(1), "Love Song", "a ballad", nil, nil, "/media/audio/1.mp3", "", "#fff", "4:01", now, now))
	mock.ExpectQuery(`SELECT (.+) FROM albums WHERE LOWER\(name\) LIKE`).
		WithArgs(pattern, pattern).
		WillReturnRows(albumRows())
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE LOWER\(username\) LIKE`).
		WithArgs(pattern).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "is_admin", "created_at", "updated_at"}).
			AddRow(int64(8), "lovelace", "ada@example.com", false, now, now))
	mock.ExpectQuery(`SELECT (.+) FROM artists WHERE LOWER\(name\) LIKE`).
		WithArgs(pattern, pattern).
		WillReturnRows(artistRows())

	result, err := repo.Search("Love")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(result.Songs) != 1 || result.Songs[0].Name != "Love Song" {
		t.Errorf("unexpected songs: %+v", result.Songs)
	}
	if len(result.Users) != 1 || result.Users[0].Username != "lovelace" {
		t.Errorf("unexpected users: %+v", result.Users)
	}
	// Empty collections are present as empty slices, never nil, so the
	// JSON response always carries all four arrays.
	if result.Albums == nil || result.Artists == nil {
		t.Errorf("empty collections must be non-nil: albums=%v artists=%v", result.Albums, result.Artists)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSearchNoMatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewMySQLSearchRepository(db)
	pattern := "%zzz%"

	mock.ExpectQuery("SELECT (.+) FROM songs").WithArgs(pattern, pattern).WillReturnRows(songRows())
	mock.ExpectQuery("SELECT (.+) FROM albums").WithArgs(pattern, pattern).WillReturnRows(albumRows())
	mock.ExpectQuery("SELECT (.+) FROM users").WithArgs(pattern).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "is_admin", "created_at", "updated_at"}))
	mock.ExpectQuery("SELECT (.+) FROM artists").WithArgs(pattern, pattern).WillReturnRows(artistRows())

	result, err := repo.Search("zzz")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Songs)+len(result.Albums)+len(result.Users)+len(result.Artists) != 0 {
		t.Errorf("expected no matches, got %+v", result)
	}
	if result.Songs == nil || result.Albums == nil || result.Users == nil || result.Artists == nil {
		t.Error("all four collections must be non-nil even with no matches")
	}
}

func albumRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "image_url", "bg_colour",
		"artist_id", "created_at", "updated_at"})
}

func artistRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "bio", "image_url", "created_at", "updated_at"})
}
