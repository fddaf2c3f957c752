package catalog

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/teranos/jazzgraph/errors"
)

// SaveSQLite replaces the snapshot held in db with c, in one transaction.
// db must already carry the catalog tables (db.Migrate).
func SaveSQLite(ctx context.Context, db *sql.DB, c *Catalog) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin snapshot transaction")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"albums", "artists", "eras"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errors.Wrapf(err, "clear %s", table)
		}
	}

	for i, e := range c.Eras {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO eras (id, position, name, period, start_year, end_year, description, characteristics, key_artists, color)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, i, e.Name, e.Period, e.Years[0], e.Years[1], e.Description,
			jsonList(e.Characteristics), jsonList(e.KeyArtists), e.Color)
		if err != nil {
			return errors.Wrapf(err, "insert era %s", e.ID)
		}
	}

	for i, a := range c.Artists {
		var death sql.NullInt64
		if a.DeathYear != nil {
			death = sql.NullInt64{Int64: int64(*a.DeathYear), Valid: true}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO artists (id, position, name, birth_year, death_year, bio, instruments, eras, influences, influenced_by, key_albums, image_url, wikipedia)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, i, a.Name, a.BirthYear, death, a.Bio,
			jsonList(a.Instruments), jsonList(a.Eras), jsonList(a.Influences),
			jsonList(a.InfluencedBy), jsonList(a.KeyAlbums), a.ImageURL, a.Wikipedia)
		if err != nil {
			return errors.Wrapf(err, "insert artist %s", a.ID)
		}
	}

	for i, al := range c.Albums {
		reviews, mErr := json.Marshal(nonNilReviews(al.Reviews))
		if mErr != nil {
			err = errors.Wrapf(mErr, "encode reviews for %s", al.ID)
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO albums (id, position, title, artist, artist_id, year, label, era, genres, description, significance, key_tracks,
			                     cover_url, discogs, all_music, spotify_url, youtube_url, reviews)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			al.ID, i, al.Title, al.Artist, al.ArtistID, al.Year, al.Label, al.Era,
			jsonList(al.Genres), al.Description, al.Significance, jsonList(al.KeyTracks),
			al.CoverURL, al.Discogs, al.AllMusic, al.SpotifyURL, al.YoutubeURL, string(reviews))
		if err != nil {
			return errors.Wrapf(err, "insert album %s", al.ID)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit snapshot")
	}
	return nil
}

// LoadSQLite reads the snapshot held in db.
// An empty snapshot is reported as ErrNotFound so callers can fall back to another source.
func LoadSQLite(ctx context.Context, db *sql.DB) (*Catalog, error) {
	eras, err := loadEras(ctx, db)
	if err != nil {
		return nil, err
	}
	artists, err := loadArtists(ctx, db)
	if err != nil {
		return nil, err
	}
	albums, err := loadAlbums(ctx, db)
	if err != nil {
		return nil, err
	}
	if len(eras) == 0 && len(artists) == 0 && len(albums) == 0 {
		return nil, errors.NewNotFoundError("database holds no catalog snapshot")
	}
	return New(artists, albums, eras)
}

func loadEras(ctx context.Context, db *sql.DB) ([]Era, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, period, start_year, end_year, description, characteristics, key_artists, color
		 FROM eras ORDER BY position`)
	if err != nil {
		return nil, errors.Wrap(err, "query eras")
	}
	defer rows.Close()

	var out []Era
	for rows.Next() {
		var e Era
		var chars, keys string
		if err := rows.Scan(&e.ID, &e.Name, &e.Period, &e.Years[0], &e.Years[1], &e.Description, &chars, &keys, &e.Color); err != nil {
			return nil, errors.Wrap(err, "scan era")
		}
		if e.Characteristics, err = parseList(chars); err != nil {
			return nil, errors.Wrapf(err, "era %s characteristics", e.ID)
		}
		if e.KeyArtists, err = parseList(keys); err != nil {
			return nil, errors.Wrapf(err, "era %s key artists", e.ID)
		}
		out = append(out, e)
	}
	return out, errors.Wrap(rows.Err(), "iterate eras")
}

func loadArtists(ctx context.Context, db *sql.DB) ([]Artist, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, birth_year, death_year, bio, instruments, eras, influences, influenced_by, key_albums, image_url, wikipedia
		 FROM artists ORDER BY position`)
	if err != nil {
		return nil, errors.Wrap(err, "query artists")
	}
	defer rows.Close()

	var out []Artist
	for rows.Next() {
		var a Artist
		var death sql.NullInt64
		var inst, eras, infl, inflBy, albums string
		if err := rows.Scan(&a.ID, &a.Name, &a.BirthYear, &death, &a.Bio, &inst, &eras, &infl, &inflBy, &albums, &a.ImageURL, &a.Wikipedia); err != nil {
			return nil, errors.Wrap(err, "scan artist")
		}
		if death.Valid {
			d := int(death.Int64)
			a.DeathYear = &d
		}
		for _, f := range []struct {
			raw string
			dst *[]string
		}{
			{inst, &a.Instruments},
			{eras, &a.Eras},
			{infl, &a.Influences},
			{inflBy, &a.InfluencedBy},
			{albums, &a.KeyAlbums},
		} {
			if *f.dst, err = parseList(f.raw); err != nil {
				return nil, errors.Wrapf(err, "artist %s", a.ID)
			}
		}
		out = append(out, a)
	}
	return out, errors.Wrap(rows.Err(), "iterate artists")
}

func loadAlbums(ctx context.Context, db *sql.DB) ([]Album, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, artist, artist_id, year, label, era, genres, description, significance, key_tracks,
		        cover_url, discogs, all_music, spotify_url, youtube_url, reviews
		 FROM albums ORDER BY position`)
	if err != nil {
		return nil, errors.Wrap(err, "query albums")
	}
	defer rows.Close()

	var out []Album
	for rows.Next() {
		var al Album
		var genres, tracks, reviews string
		if err := rows.Scan(&al.ID, &al.Title, &al.Artist, &al.ArtistID, &al.Year, &al.Label, &al.Era,
			&genres, &al.Description, &al.Significance, &tracks,
			&al.CoverURL, &al.Discogs, &al.AllMusic, &al.SpotifyURL, &al.YoutubeURL, &reviews); err != nil {
			return nil, errors.Wrap(err, "scan album")
		}
		if al.Genres, err = parseList(genres); err != nil {
			return nil, errors.Wrapf(err, "album %s genres", al.ID)
		}
		if al.KeyTracks, err = parseList(tracks); err != nil {
			return nil, errors.Wrapf(err, "album %s tracks", al.ID)
		}
		if err := json.Unmarshal([]byte(reviews), &al.Reviews); err != nil {
			return nil, errors.Wrapf(err, "album %s reviews", al.ID)
		}
		if len(al.Reviews) == 0 {
			al.Reviews = nil
		}
		out = append(out, al)
	}
	return out, errors.Wrap(rows.Err(), "iterate albums")
}

func jsonList(values []string) string {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return string(b)
}

func parseList(raw string) ([]string, error) {
	out := []string{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func nonNilReviews(r []CriticReview) []CriticReview {
	if r == nil {
		return []CriticReview{}
	}
	return r
}
