package musicbrainz

import "github.com/bplemons/flow-metrics/internal/errs"

// Artist is a validated MusicBrainz artist record. ActiveYears carries the
// life-span dates as MusicBrainz reports them ("1973", "1993-04-20", or
// empty).
type Artist struct {
	ID          string
	Name        string
	SortName    string
	Type        string
	Country     string
	ActiveYears ActiveYears
	Score       int
}

// ActiveYears is an artist's career range. Ended distinguishes "no end date
// recorded" from "still active".
type ActiveYears struct {
	Begin string
	End   string
	Ended bool
}

// ReleaseGroup is one logical release (the unit MusicBrainz groups editions
// under).
type ReleaseGroup struct {
	ID               string
	Title            string
	PrimaryType      string
	SecondaryTypes   []string
	FirstReleaseDate string
}

type wireLifeSpan struct {
	Begin string `json:"begin"`
	End   string `json:"end"`
	Ended bool   `json:"ended"`
}

type wireArtist struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	SortName string       `json:"sort-name"`
	Type     string       `json:"type"`
	Country  string       `json:"country"`
	LifeSpan wireLifeSpan `json:"life-span"`
	Score    int          `json:"score"`
}

type wireArtistSearch struct {
	Artists []wireArtist `json:"artists"`
	Count   int          `json:"count"`
	Offset  int          `json:"offset"`
}

type wireReleaseGroup struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	PrimaryType      string   `json:"primary-type"`
	SecondaryTypes   []string `json:"secondary-types"`
	FirstReleaseDate string   `json:"first-release-date"`
}

type wireReleaseGroupPage struct {
	ReleaseGroups []wireReleaseGroup `json:"release-groups"`
	Count         int                `json:"release-group-count"`
	Offset        int                `json:"release-group-offset"`
}

func artistFromWire(w wireArtist) (Artist, error) {
	var missing []string
	if w.ID == "" {
		missing = append(missing, "id")
	}
	if w.Name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return Artist{}, &errs.ValidationError{Record: "musicbrainz artist", Fields: missing}
	}

	return Artist{
		ID:       w.ID,
		Name:     w.Name,
		SortName: w.SortName,
		Type:     w.Type,
		Country:  w.Country,
		ActiveYears: ActiveYears{
			Begin: w.LifeSpan.Begin,
			End:   w.LifeSpan.End,
			Ended: w.LifeSpan.Ended,
		},
		Score: w.Score,
	}, nil
}

func releaseGroupFromWire(w wireReleaseGroup) (ReleaseGroup, error) {
	var missing []string
	if w.ID == "" {
		missing = append(missing, "id")
	}
	if w.Title == "" {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return ReleaseGroup{}, &errs.ValidationError{Record: "musicbrainz release group", Fields: missing}
	}

	return ReleaseGroup{
		ID:               w.ID,
		Title:            w.Title,
		PrimaryType:      w.PrimaryType,
		SecondaryTypes:   w.SecondaryTypes,
		FirstReleaseDate: w.FirstReleaseDate,
	}, nil
}
