package cache

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"soundlink/logger"
	"soundlink/model"
)

// trendingSize is how many songs the trending subset holds.
const trendingSize = 10

// HomeLoader supplies the three home-page datasets from the backing store.
type HomeLoader interface {
	LoadSongs(ctx context.Context) ([]*model.Song, error)
	LoadMovieAlbums(ctx context.Context) ([]*model.MovieAlbum, error)
	LoadArtists(ctx context.Context) ([]*model.Artist, error)
}

// HomeSnapshot is one consistent view of the cached home data.
type HomeSnapshot struct {
	Songs       []*model.Song       `json:"songs"`
	MovieAlbums []*model.MovieAlbum `json:"movieAlbums"`
	Artists     []*model.Artist     `json:"artists"`
	Trending    []*model.Song       `json:"trending"`
	FetchedAt   time.Time           `json:"fetchedAt"`
}

// HomeCache keeps the home-page aggregate warm for a fixed freshness
// window so repeated requests don't hit the database. It is an explicit
// struct owned by the server, not a package global, so tests can build
// one around a stub loader and control its clock.
//
// Refreshes catch failures per source: one failing loader logs and keeps
// that slot's previous value while the other two still refresh.
type HomeCache struct {
	loader HomeLoader
	ttl    time.Duration
	now    func() time.Time
	rng    *rand.Rand

	mu          sync.Mutex
	songs       []*model.Song
	movieAlbums []*model.MovieAlbum
	artists     []*model.Artist
	trending    []*model.Song
	lastFetch   time.Time
}

// NewHomeCache creates a cache around the given loader. A zero ttl
// defaults to five minutes.
func NewHomeCache(loader HomeLoader, ttl time.Duration) *HomeCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &HomeCache{
		loader: loader,
		ttl:    ttl,
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Get returns the cached snapshot when it is inside the freshness window,
// otherwise refreshes from the loader first. The three sources load in
// parallel; lastFetch only advances once all three settle and at least
// one succeeded, so a fully failed refresh retries on the next call.
func (c *HomeCache) Get(ctx context.Context) (*HomeSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastFetch.IsZero() && c.now().Sub(c.lastFetch) < c.ttl {
		return c.snapshotLocked(), nil
	}

	type loadOutcome struct {
		songs       []*model.Song
		movieAlbums []*model.MovieAlbum
		artists     []*model.Artist
		err         error
	}

	var wg sync.WaitGroup
	outcomes := make([]loadOutcome, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		songs, err := c.loader.LoadSongs(ctx)
		outcomes[0] = loadOutcome{songs: songs, err: err}
	}()
	go func() {
		defer wg.Done()
		movieAlbums, err := c.loader.LoadMovieAlbums(ctx)
		outcomes[1] = loadOutcome{movieAlbums: movieAlbums, err: err}
	}()
	go func() {
		defer wg.Done()
		artists, err := c.loader.LoadArtists(ctx)
		outcomes[2] = loadOutcome{artists: artists, err: err}
	}()
	wg.Wait()

	succeeded := 0
	if outcomes[0].err != nil {
		logger.Warn("home cache: songs refresh failed, keeping previous data", logger.ErrorField(outcomes[0].err))
	} else {
		c.songs = outcomes[0].songs
		c.trending = c.deriveTrending(outcomes[0].songs)
		succeeded++
	}
	if outcomes[1].err != nil {
		logger.Warn("home cache: movie albums refresh failed, keeping previous data", logger.ErrorField(outcomes[1].err))
	} else {
		c.movieAlbums = outcomes[1].movieAlbums
		succeeded++
	}
	if outcomes[2].err != nil {
		logger.Warn("home cache: artists refresh failed, keeping previous data", logger.ErrorField(outcomes[2].err))
	} else {
		c.artists = outcomes[2].artists
		succeeded++
	}

	if succeeded == 0 {
		// Nothing refreshed. Serve whatever we had before if there was a
		// successful fetch once; otherwise surface the failure.
		if c.lastFetch.IsZero() {
			return nil, outcomes[0].err
		}
		return c.snapshotLocked(), nil
	}

	c.lastFetch = c.now()
	return c.snapshotLocked(), nil
}

// Invalidate drops the freshness marker so the next Get refreshes.
// Cached data stays in place as the fallback for a failed refresh.
func (c *HomeCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastFetch = time.Time{}
}

// Set primes the cache directly. Intended for tests and for admin
// mutations that already hold the fresh data.
func (c *HomeCache) Set(songs []*model.Song, movieAlbums []*model.MovieAlbum, artists []*model.Artist) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.songs = songs
	c.movieAlbums = movieAlbums
	c.artists = artists
	c.trending = c.deriveTrending(songs)
	c.lastFetch = c.now()
}

func (c *HomeCache) snapshotLocked() *HomeSnapshot {
	return &HomeSnapshot{
		Songs:       c.songs,
		MovieAlbums: c.movieAlbums,
		Artists:     c.artists,
		Trending:    c.trending,
		FetchedAt:   c.lastFetch,
	}
}

// deriveTrending picks a pseudo-random subset of songs. Not a real
// trending algorithm: a shuffle-and-slice placeholder with no play-count
// weighting.
func (c *HomeCache) deriveTrending(songs []*model.Song) []*model.Song {
	shuffled := make([]*model.Song, len(songs))
	copy(shuffled, songs)
	c.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > trendingSize {
		shuffled = shuffled[:trendingSize]
	}
	return shuffled
}
