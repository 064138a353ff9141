// Package starwars defines the records and the data collaborator shared by
// the search, combined-fetch and loading pipelines.
package starwars

import "starsearch/pkg/stream"

//go:generate mockgen -source=starwars.go -destination=mocks/dataservice_mock.go -package=mocks

// Record is a named entity returned by a data source.
type Record struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Names returns the record names in order.
func Names(records []Record) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}

// DataService is the data collaborator behind the component.
//
// The fetch methods return cold one-shot streams: each run performs one
// request. The loader methods return hot boolean signals that are true while
// the matching fetch is in flight.
type DataService interface {
	// SearchCharacters looks up characters whose name matches term.
	SearchCharacters(term string) stream.Stream[[]Record]
	// Characters fetches the character list.
	Characters() stream.Stream[[]Record]
	// Planets fetches the planet list.
	Planets() stream.Stream[[]Record]
	// CharactersLoader reports whether a characters fetch is in flight.
	CharactersLoader() stream.Stream[bool]
	// PlanetLoader reports whether a planets fetch is in flight.
	PlanetLoader() stream.Stream[bool]
}
