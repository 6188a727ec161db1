package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// FilterLister lists registered extended attribute filters.
type FilterLister interface {
	IDs() []string
}
