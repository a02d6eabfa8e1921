package ent

// Analysis describes one analysis type available in a project.
// AnalysisParentID is nil for root analyses.
type Analysis struct {
	AnalysisID       int     `db:"AnalysisID"       json:"analysisId"`
	AnalysisParentID *int    `db:"AnalysisParentID" json:"analysisParentId,omitempty"`
	DisplayText      string  `db:"DisplayText"      json:"displayText"`
	Description      string  `db:"Description"      json:"description"`
	MeasurementUnit  *string `db:"MeasurementUnit"  json:"measurementUnit,omitempty"`
}

// AnalysisResult is one of the predefined result values of an analysis.
type AnalysisResult struct {
	AnalysisID  int    `db:"AnalysisID"  json:"analysisId"`
	Result      string `db:"AnalysisResult" json:"result"`
	DisplayText string `db:"DisplayText" json:"displayText"`
	Description string `db:"Description" json:"description"`
}

// AnalysisTaxonomicGroup assigns an analysis to a taxonomic group.
// Child analyses carry no group of their own; they inherit the group of
// their ancestry during flattening. Identity is the AnalysisID alone.
type AnalysisTaxonomicGroup struct {
	AnalysisID     int    `db:"AnalysisID"     json:"analysisId"`
	TaxonomicGroup string `db:"TaxonomicGroup" json:"taxonomicGroup"`
}
