package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"soundlink/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLoader counts calls and returns canned data or errors per source.
type stubLoader struct {
	songs       []*model.Song
	movieAlbums []*model.MovieAlbum
	artists     []*model.Artist

	songsErr       error
	movieAlbumsErr error
	artistsErr     error

	songsCalls       int
	movieAlbumsCalls int
	artistsCalls     int
}

func (s *stubLoader) LoadSongs(ctx context.Context) ([]*model.Song, error) {
	s.songsCalls++
	return s.songs, s.songsErr
}

func (s *stubLoader) LoadMovieAlbums(ctx context.Context) ([]*model.MovieAlbum, error) {
	s.movieAlbumsCalls++
	return s.movieAlbums, s.movieAlbumsErr
}

func (s *stubLoader) LoadArtists(ctx context.Context) ([]*model.Artist, error) {
	s.artistsCalls++
	return s.artists, s.artistsErr
}

func makeSongs(n int) []*model.Song {
	songs := make([]*model.Song, n)
	for i := range songs {
		songs[i] = &model.Song{ID: int64(i + 1), Name: fmt.Sprintf("song-%d", i+1)}
	}
	return songs
}

func TestHomeCacheFirstGetLoadsAllSources(t *testing.T) {
	loader := &stubLoader{
		songs:       makeSongs(3),
		movieAlbums: []*model.MovieAlbum{{ID: 1, Title: "Soundtrack"}},
		artists:     []*model.Artist{{ID: 1, Name: "Artist"}},
	}
	c := NewHomeCache(loader, 5*time.Minute)

	snap, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Songs, 3)
	assert.Len(t, snap.MovieAlbums, 1)
	assert.Len(t, snap.Artists, 1)
	assert.Equal(t, 1, loader.songsCalls)
	assert.Equal(t, 1, loader.movieAlbumsCalls)
	assert.Equal(t, 1, loader.artistsCalls)
}

func TestHomeCacheServesWithinWindow(t *testing.T) {
	loader := &stubLoader{songs: makeSongs(2)}
	c := NewHomeCache(loader, 5*time.Minute)

	current := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	// A second request inside the window must not touch the loader.
	current = current.Add(4 * time.Minute)
	snap, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Songs, 2)
	assert.Equal(t, 1, loader.songsCalls)

	// Past the window it refreshes.
	current = current.Add(2 * time.Minute)
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loader.songsCalls)
}

func TestHomeCacheTrendingCapped(t *testing.T) {
	loader := &stubLoader{songs: makeSongs(25)}
	c := NewHomeCache(loader, 5*time.Minute)

	snap, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Trending, trendingSize)
	assert.Len(t, snap.Songs, 25, "trending slice must not shrink the full catalog")

	// Every trending entry comes from the catalog.
	byID := make(map[int64]bool)
	for _, song := range snap.Songs {
		byID[song.ID] = true
	}
	seen := make(map[int64]bool)
	for _, song := range snap.Trending {
		assert.True(t, byID[song.ID], "trending song %d not in catalog", song.ID)
		assert.False(t, seen[song.ID], "trending song %d repeated", song.ID)
		seen[song.ID] = true
	}
}

func TestHomeCacheTrendingSmallCatalog(t *testing.T) {
	loader := &stubLoader{songs: makeSongs(4)}
	c := NewHomeCache(loader, 5*time.Minute)

	snap, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Trending, 4)
}

func TestHomeCachePartialFailureKeepsPreviousData(t *testing.T) {
	loader := &stubLoader{
		songs:       makeSongs(3),
		movieAlbums: []*model.MovieAlbum{{ID: 1, Title: "Soundtrack"}},
		artists:     []*model.Artist{{ID: 1, Name: "Artist"}},
	}
	c := NewHomeCache(loader, 5*time.Minute)

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	// Songs start failing; the stale song slots survive the refresh while
	// the other two sources pick up new data.
	loader.songsErr = errors.New("db down")
	loader.artists = append(loader.artists, &model.Artist{ID: 2, Name: "New Artist"})
	c.Invalidate()

	snap, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Songs, 3, "failed source keeps previous data")
	assert.Len(t, snap.Artists, 2, "healthy sources still refresh")
}

func TestHomeCacheAllSourcesFailFirstLoad(t *testing.T) {
	loader := &stubLoader{
		songsErr:       errors.New("db down"),
		movieAlbumsErr: errors.New("db down"),
		artistsErr:     errors.New("db down"),
	}
	c := NewHomeCache(loader, 5*time.Minute)

	_, err := c.Get(context.Background())
	assert.Error(t, err, "no previous snapshot to fall back on")
}

func TestHomeCacheAllSourcesFailAfterSuccess(t *testing.T) {
	loader := &stubLoader{songs: makeSongs(2)}
	c := NewHomeCache(loader, 5*time.Minute)

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	loader.songsErr = errors.New("db down")
	loader.movieAlbumsErr = errors.New("db down")
	loader.artistsErr = errors.New("db down")
	c.Invalidate()

	snap, err := c.Get(context.Background())
	require.NoError(t, err, "stale snapshot beats an error")
	assert.Len(t, snap.Songs, 2)

	// The failed refresh must not advance the window: the next Get tries
	// the loader again instead of serving the stale data as fresh.
	before := loader.songsCalls
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before+1, loader.songsCalls)
}

func TestHomeCacheInvalidate(t *testing.T) {
	loader := &stubLoader{songs: makeSongs(1)}
	c := NewHomeCache(loader, 5*time.Minute)

	_, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, loader.songsCalls)

	c.Invalidate()

	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loader.songsCalls, "Invalidate forces the next Get to refresh")
}
