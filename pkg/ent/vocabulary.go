package ent

// TermSource tells which vocabulary a term belongs to.
type TermSource int

const (
	TermSourceTaxonomicGroups TermSource = iota
	TermSourceRelationshipTypes
)

// Term is one entry of the standard vocabulary (taxonomic groups and
// identification-unit relation types).
type Term struct {
	Source      TermSource `db:"-"           json:"source"`
	Code        string     `db:"Code"        json:"code"`
	DisplayText string     `db:"DisplayText" json:"displayText"`
}

// Project is a collection project the user participates in.
type Project struct {
	ProjectID   int    `db:"ProjectID"   json:"projectId"`
	DisplayText string `db:"DisplayText" json:"displayText"`
}

// UserProfile carries the agent identity stored for a login.
type UserProfile struct {
	LoginName string `db:"LoginName" json:"loginName"`
	AgentName string `db:"AgentName" json:"agentName"`
	AgentURI  string `db:"AgentURI"  json:"agentUri"`
	ProjectID int    `db:"ProjectID" json:"projectId"`
}

// Qualification is an identification qualifier (cf., aff., ...).
type Qualification struct {
	Code        string `db:"Code"        json:"code"`
	DisplayText string `db:"DisplayText" json:"displayText"`
}

// PropertyList names a term list of the scientific-terms catalog a user
// may download.
type PropertyList struct {
	PropertyID  int    `db:"PropertyID"  json:"propertyId"`
	DisplayText string `db:"DisplayText" json:"displayText"`
}

// PropertyValue is one term of a property list.
type PropertyValue struct {
	PropertyID  int    `db:"PropertyID"  json:"propertyId"`
	PropertyURI string `db:"PropertyURI" json:"propertyUri"`
	DisplayText string `db:"DisplayText" json:"displayText"`
}
