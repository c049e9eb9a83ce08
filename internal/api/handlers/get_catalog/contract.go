package get_catalog

import "github.com/m04kA/SMC-StudioBooking/internal/catalog"

type CatalogRegistry interface {
	ForFlow(name string) (*catalog.Catalog, error)
	Flows() []string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
