package ent

import (
	"strconv"
	"time"
)

// Localisation systems used by the Diversity Collection schema.
const (
	LocSysAltitude = 4
	LocSysWGS84    = 8
)

// EventSeries groups collection events gathered on one excursion.
type EventSeries struct {
	SeriesID    int        `db:"SeriesID"    json:"seriesId"`
	SeriesCode  string     `db:"SeriesCode"  json:"seriesCode"`
	Description string     `db:"Description" json:"description"`
	SeriesStart *time.Time `db:"DateStart"   json:"seriesStart,omitempty"`
	SeriesEnd   *time.Time `db:"DateEnd"     json:"seriesEnd,omitempty"`
}

// Event is one collection event. Coordinates are kept as plain columns
// in addition to the geometry column written on upload.
type Event struct {
	CollectionEventID   int        `db:"CollectionEventID"   json:"collectionEventId"`
	CollectionSeriesID  *int       `db:"SeriesID"            json:"collectionSeriesId,omitempty"`
	CollectionDate      *time.Time `db:"CollectionDate"      json:"collectionDate,omitempty"`
	LocalityDescription string     `db:"LocalityDescription" json:"localityDescription"`
	HabitatDescription  string     `db:"HabitatDescription"  json:"habitatDescription"`
	Latitude            *float64   `db:"-"                   json:"latitude,omitempty"`
	Longitude           *float64   `db:"-"                   json:"longitude,omitempty"`
	Altitude            *float64   `db:"-"                   json:"altitude,omitempty"`
}

// EventLocalisation is one localisation row of a collection event.
type EventLocalisation struct {
	CollectionEventID    int    `db:"CollectionEventID"    json:"collectionEventId"`
	LocalisationSystemID int    `db:"LocalisationSystemID" json:"localisationSystemId"`
	Location1            string `db:"Location1"            json:"location1"`
	Location2            string `db:"Location2"            json:"location2"`
	ResponsibleName      string `db:"ResponsibleName"      json:"responsibleName"`
}

// EventProperty is one property row of a collection event.
type EventProperty struct {
	CollectionEventID int    `db:"CollectionEventID" json:"collectionEventId"`
	PropertyID        int    `db:"PropertyID"        json:"propertyId"`
	DisplayText       string `db:"DisplayText"       json:"displayText"`
	PropertyURI       string `db:"PropertyURI"       json:"propertyUri"`
}

// Localisations derives the localisation rows for an event from its
// plain coordinate fields: a WGS84 row when latitude and longitude are
// set, an altitude row when the altitude is set.
func (ev Event) Localisations(responsible string) []EventLocalisation {
	var rows []EventLocalisation
	if ev.Latitude != nil && ev.Longitude != nil {
		rows = append(rows, EventLocalisation{
			CollectionEventID:    ev.CollectionEventID,
			LocalisationSystemID: LocSysWGS84,
			Location1:            formatCoord(*ev.Longitude),
			Location2:            formatCoord(*ev.Latitude),
			ResponsibleName:      responsible,
		})
	}
	if ev.Altitude != nil {
		rows = append(rows, EventLocalisation{
			CollectionEventID:    ev.CollectionEventID,
			LocalisationSystemID: LocSysAltitude,
			Location1:            formatCoord(*ev.Altitude),
			ResponsibleName:      responsible,
		})
	}
	return rows
}

// formatCoord renders a coordinate with the shortest decimal
// representation that parses back to the same float64. The result always
// uses '.' as the decimal separator.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Localization is a single geographic point, with an optional altitude.
type Localization struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"`
}
