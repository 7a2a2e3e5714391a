package spotify

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"strconv"
	"strings"
)

// Albums walks an artist's discography, newest page first as Spotify returns
// it, optionally filtered by release type. The sequence is lazy and
// restartable: pages are fetched as the caller advances, and ranging over it
// again starts from the first page. A fetch or validation failure is yielded
// once as a non-nil error and ends the walk.
func (c *Client) Albums(ctx context.Context, artistID string, types ...ReleaseType) iter.Seq2[Album, error] {
	return func(yield func(Album, error) bool) {
		offset := 0
		for {
			params := url.Values{}
			params.Set("limit", strconv.Itoa(maxPageSize))
			params.Set("offset", strconv.Itoa(offset))
			if len(types) > 0 {
				groups := make([]string, len(types))
				for i, t := range types {
					groups[i] = string(t)
				}
				params.Set("include_groups", strings.Join(groups, ","))
			}

			var page wirePage[wireAlbum]
			err := c.getJSON(ctx, "/artists/"+url.PathEscape(artistID)+"/albums", params, &page)
			if err != nil {
				yield(Album{}, fmt.Errorf("listing albums for %q: %w", artistID, err))
				return
			}

			for _, w := range page.Items {
				album, err := albumFromWire(w)
				if err != nil {
					yield(Album{}, err)
					return
				}
				if !yield(album, nil) {
					return
				}
			}

			if page.Next == "" || len(page.Items) == 0 {
				return
			}
			offset += len(page.Items)
		}
	}
}

// AlbumTracks walks the tracks of one album in disc and track order. Album
// context (id, name, release date) is attached to each yielded track.
func (c *Client) AlbumTracks(ctx context.Context, album Album) iter.Seq2[Track, error] {
	return func(yield func(Track, error) bool) {
		offset := 0
		for {
			params := url.Values{}
			params.Set("limit", strconv.Itoa(maxPageSize))
			params.Set("offset", strconv.Itoa(offset))

			var page wirePage[wireTrack]
			err := c.getJSON(ctx, "/albums/"+url.PathEscape(album.ID)+"/tracks", params, &page)
			if err != nil {
				yield(Track{}, fmt.Errorf("listing tracks for album %q: %w", album.ID, err))
				return
			}

			for _, w := range page.Items {
				track, err := trackFromWire(w, &album)
				if err != nil {
					yield(Track{}, err)
					return
				}
				if !yield(track, nil) {
					return
				}
			}

			if page.Next == "" || len(page.Items) == 0 {
				return
			}
			offset += len(page.Items)
		}
	}
}

// Tracks walks every track an artist released, album by album, optionally
// filtered by release type. Pagination of both the album list and each
// album's track list stays inside the client.
func (c *Client) Tracks(ctx context.Context, artistID string, types ...ReleaseType) iter.Seq2[Track, error] {
	return func(yield func(Track, error) bool) {
		for album, err := range c.Albums(ctx, artistID, types...) {
			if err != nil {
				yield(Track{}, err)
				return
			}
			for track, err := range c.AlbumTracks(ctx, album) {
				if !yield(track, err) {
					return
				}
				if err != nil {
					return
				}
			}
		}
	}
}
