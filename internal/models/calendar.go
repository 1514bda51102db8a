// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package models

// ServiceType identifies the category of media service an instance runs.
type ServiceType string

// Supported service types. Each service manages exactly one media type.
const (
	ServiceSonarr  ServiceType = "sonarr"
	ServiceRadarr  ServiceType = "radarr"
	ServiceLidarr  ServiceType = "lidarr"
	ServiceReadarr ServiceType = "readarr"
)

// Valid reports whether s is a known service type.
func (s ServiceType) Valid() bool {
	switch s {
	case ServiceSonarr, ServiceRadarr, ServiceLidarr, ServiceReadarr:
		return true
	default:
		return false
	}
}

// MediaType returns the media type produced by this service's calendar feed.
func (s ServiceType) MediaType() MediaType {
	switch s {
	case ServiceSonarr:
		return MediaEpisode
	case ServiceRadarr:
		return MediaMovie
	case ServiceLidarr:
		return MediaAlbum
	case ServiceReadarr:
		return MediaBook
	default:
		return MediaUnknown
	}
}

// MediaType identifies the kind of content a calendar item represents.
type MediaType string

// Media types reported by upstream calendar feeds.
const (
	MediaEpisode MediaType = "episode"
	MediaMovie   MediaType = "movie"
	MediaAlbum   MediaType = "album"
	MediaBook    MediaType = "book"
	MediaUnknown MediaType = ""
)

// RawCalendarItem is one upcoming-release record as reported by a single
// service instance. IDs are instance-local: the same content item reported by
// two instances arrives as two RawCalendarItems with unrelated IDs. Field
// presence varies by media type; consumers must treat every field except the
// (ID, InstanceID, Service) identity as optional.
type RawCalendarItem struct {
	ID           int64       `json:"id"`
	InstanceID   string      `json:"instanceId"`
	InstanceName string      `json:"instanceName"`
	Service      ServiceType `json:"service"`
	Type         MediaType   `json:"type"`

	// Title fields. Title is the generic display title; the typed fields are
	// populated per media type by the upstream client mapping.
	Title        string `json:"title,omitempty"`
	SeriesTitle  string `json:"seriesTitle,omitempty"`
	EpisodeTitle string `json:"episodeTitle,omitempty"`
	MovieTitle   string `json:"movieTitle,omitempty"`
	ArtistName   string `json:"artistName,omitempty"`
	AlbumTitle   string `json:"albumTitle,omitempty"`
	AuthorName   string `json:"authorName,omitempty"`
	BookTitle    string `json:"bookTitle,omitempty"`
	Overview     string `json:"overview,omitempty"`

	// External identifiers. The media type determines which are meaningful.
	TMDBID        int64  `json:"tmdbId,omitempty"`
	IMDBID        string `json:"imdbId,omitempty"`
	MusicBrainzID string `json:"musicBrainzId,omitempty"`
	GoodreadsID   int64  `json:"goodreadsId,omitempty"`

	// Temporal fields, ISO-8601 strings as delivered upstream. Episodes carry
	// AirDate/AirDateUTC, movies and albums ReleaseDate, books AirDateUTC.
	AirDate     string `json:"airDate,omitempty"`
	AirDateUTC  string `json:"airDateUtc,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty"`

	Monitored bool `json:"monitored"`

	// Type-specific metadata.
	SeasonNumber  int      `json:"seasonNumber,omitempty"`
	EpisodeNumber int      `json:"episodeNumber,omitempty"`
	Runtime       int      `json:"runtime,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	Status        string   `json:"status,omitempty"`
}

// InstanceRef identifies one instance contributing a calendar item.
type InstanceRef struct {
	InstanceID   string `json:"instanceId"`
	InstanceName string `json:"instanceName"`
}

// DeduplicatedCalendarItem is one real-world content item as it appears
// across 1..N instances. The embedded RawCalendarItem carries the field
// values of the first contributing instance encountered during merge;
// AllInstances lists every contribution in input order and always has at
// least one entry.
type DeduplicatedCalendarItem struct {
	RawCalendarItem
	AllInstances []InstanceRef `json:"allInstances"`
}

// CalendarResponse is the API payload for calendar queries. EventsByDate maps
// UTC date keys (YYYY-MM-DD) to the items falling on that date, sorted
// earliest-first within each day.
type CalendarResponse struct {
	EventsByDate map[string][]DeduplicatedCalendarItem `json:"eventsByDate"`
	Days         []string                              `json:"days,omitempty"`
	SelectedDate string                                `json:"selectedDate,omitempty"`
	TotalItems   int                                   `json:"totalItems"`
	RawItems     int                                   `json:"rawItems"`
	Start        string                                `json:"start"`
	End          string                                `json:"end"`
}

// FetchResult is what the upstream fetch layer delivers for one query window:
// every enabled instance's own items plus the flattened aggregate in
// instance-configuration order.
type FetchResult struct {
	Aggregated []RawCalendarItem `json:"aggregated"`
	Instances  []InstanceResult  `json:"instances"`
}

// InstanceResult is one instance's slice of a fetch window. Err is set when
// the instance could not be reached; its Data is then empty and the aggregate
// simply lacks that instance's items.
type InstanceResult struct {
	InstanceID   string            `json:"instanceId"`
	InstanceName string            `json:"instanceName"`
	Service      ServiceType       `json:"service"`
	Data         []RawCalendarItem `json:"data"`
	Err          string            `json:"error,omitempty"`
}
