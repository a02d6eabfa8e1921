// Package ent provides the domain records exchanged between the service,
// the Diversity catalogs and the mobile clients.
//
// The structs are plain data carriers. Field tags map them onto the
// columns and set-returning functions of the Diversity Workbench schema.
package ent

// UserCredentials identify a caller for the duration of one request.
// Every service operation receives them explicitly; there is no ambient
// session state.
type UserCredentials struct {
	LoginName  string `json:"login"`
	Password   string `json:"-"`
	Repository string `json:"repository"`
	ProjectID  int    `json:"projectId"`
	AgentName  string `json:"agentName"`
	AgentURI   string `json:"agentUri"`
}

// Repository describes one configured Diversity installation as shown to
// clients. The connection coordinates stay in the configuration.
type Repository struct {
	DisplayText string `json:"displayText"`
	Database    string `json:"database"`
}
