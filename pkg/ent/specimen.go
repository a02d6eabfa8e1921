package ent

import "time"

// Specimen is a collection specimen belonging to an event.
type Specimen struct {
	CollectionSpecimenID int        `db:"CollectionSpecimenID"      json:"collectionSpecimenId"`
	CollectionEventID    *int       `db:"CollectionEventID"         json:"collectionEventId,omitempty"`
	AccessionNumber      string     `db:"DepositorsAccessionNumber" json:"accessionNumber"`
	AccessionDate        *time.Time `db:"AccessionDate"             json:"accessionDate,omitempty"`
}

// SpecimenProject links a specimen to the project it was collected for.
type SpecimenProject struct {
	CollectionSpecimenID int `db:"CollectionSpecimenID" json:"collectionSpecimenId"`
	ProjectID            int `db:"ProjectID"            json:"projectId"`
}

// SpecimenAgent records the collector of a specimen.
type SpecimenAgent struct {
	CollectionSpecimenID int    `db:"CollectionSpecimenID" json:"collectionSpecimenId"`
	CollectorsName       string `db:"CollectorsName"       json:"collectorsName"`
	CollectorsAgentURI   string `db:"CollectorsAgentURI"   json:"collectorsAgentUri"`
}

// Project returns the project link row for the specimen.
func (s Specimen) Project(projectID int) SpecimenProject {
	return SpecimenProject{
		CollectionSpecimenID: s.CollectionSpecimenID,
		ProjectID:            projectID,
	}
}

// Agent returns the collector row for the specimen, taken from the
// caller's profile.
func (s Specimen) Agent(creds UserCredentials) SpecimenAgent {
	name := creds.AgentName
	if name == "" {
		name = creds.LoginName
	}
	return SpecimenAgent{
		CollectionSpecimenID: s.CollectionSpecimenID,
		CollectorsName:       name,
		CollectorsAgentURI:   creds.AgentURI,
	}
}
