package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Configuration errors
	ConfigLoadError
	ConfigUnknownRepositoryError
	ConfigMissingPublicTaxaError
	ConfigMissingScientificTermsError

	// Database errors
	DBConnectionError
	DBQueryError
	DBTransactionError
	DBInsertError

	// Discovery errors
	DiscoveryCatalogEnumError

	// Cache errors
	CacheBackendError
	CacheEncodeError

	// API errors
	APIServerError
)
