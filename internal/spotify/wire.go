package spotify

// Raw decode targets for Spotify Web API responses. These never leave the
// package; records.go maps them to validated records.

type wireImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type wireArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireArtist struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Genres     []string    `json:"genres"`
	Popularity int         `json:"popularity"`
	Followers  struct {
		Total int64 `json:"total"`
	} `json:"followers"`
	Images []wireImage `json:"images"`
}

type wireAlbum struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	AlbumType            string          `json:"album_type"`
	AlbumGroup           string          `json:"album_group"`
	ReleaseDate          string          `json:"release_date"`
	ReleaseDatePrecision string          `json:"release_date_precision"`
	TotalTracks          int             `json:"total_tracks"`
	Artists              []wireArtistRef `json:"artists"`
	Images               []wireImage     `json:"images"`
}

type wireTrack struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	DurationMS  int             `json:"duration_ms"`
	Explicit    bool            `json:"explicit"`
	Popularity  int             `json:"popularity"`
	DiscNumber  int             `json:"disc_number"`
	TrackNumber int             `json:"track_number"`
	Artists     []wireArtistRef `json:"artists"`
	Album       *wireAlbum      `json:"album"`
}

// wirePage is Spotify's cursor-less pagination envelope. A null "next" field
// decodes to the empty string, which terminates the walk.
type wirePage[T any] struct {
	Items  []T    `json:"items"`
	Next   string `json:"next"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type wireSearch struct {
	Artists wirePage[wireArtist] `json:"artists"`
}

type wireTopTracks struct {
	Tracks []wireTrack `json:"tracks"`
}
