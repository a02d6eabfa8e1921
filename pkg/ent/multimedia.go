package ent

import "time"

// MultimediaOwner names the entity a multimedia object is attached to.
type MultimediaOwner string

const (
	OwnerEventSeries        MultimediaOwner = "EventSeries"
	OwnerEvent              MultimediaOwner = "Event"
	OwnerSpecimen           MultimediaOwner = "Specimen"
	OwnerIdentificationUnit MultimediaOwner = "IdentificationUnit"
)

// MultimediaObject is an uploaded image or recording attached to an
// owning entity. OwnerID is the id of that entity; for unit images it is
// the unit id, and the specimen id is resolved server-side.
type MultimediaObject struct {
	OwnerType   MultimediaOwner `json:"ownerType"`
	OwnerID     int             `json:"ownerId"`
	URI         string          `json:"uri"`
	Description string          `json:"description"`
	MediaType   string          `json:"mediaType"`
	TimeStamp   *time.Time      `json:"timeStamp,omitempty"`
}

// SeriesImage is the image row for an event series.
type SeriesImage struct {
	SeriesID    int    `db:"SeriesID"    json:"seriesId"`
	URI         string `db:"URI"         json:"uri"`
	Description string `db:"Description" json:"description"`
}

// EventImage is the image row for a collection event.
type EventImage struct {
	CollectionEventID int    `db:"CollectionEventID" json:"collectionEventId"`
	URI               string `db:"URI"               json:"uri"`
	Description       string `db:"Description"       json:"description"`
}

// SpecimenImage is the image row for a specimen or one of its units.
type SpecimenImage struct {
	CollectionSpecimenID int    `db:"CollectionSpecimenID" json:"collectionSpecimenId"`
	UnitID               *int   `db:"IdentificationUnitID" json:"unitId,omitempty"`
	URI                  string `db:"URI"                  json:"uri"`
	Description          string `db:"Description"          json:"description"`
}

// SeriesImage converts the object into a series image row.
func (m MultimediaObject) SeriesImage() SeriesImage {
	return SeriesImage{SeriesID: m.OwnerID, URI: m.URI, Description: m.Description}
}

// EventImage converts the object into an event image row.
func (m MultimediaObject) EventImage() EventImage {
	return EventImage{CollectionEventID: m.OwnerID, URI: m.URI, Description: m.Description}
}
