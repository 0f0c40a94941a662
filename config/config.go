package config

import (
	"github.com/gatortrader/gatortrader-api/log"
)

type Config interface {
	// SupportedOperations returns the write operations exposed by the API
	SupportedOperations() Operations
	// DefaultPageSize is the number of rows per page of a search
	DefaultPageSize() int
	Naming() NamingConvention
	Logger() log.Logger
}
