// Package app contains application services and port definitions for the calc context.
package app

import "github.com/p2ppro/p2p-calc/business/calc/domain"

// ShareSurface is where a shared calculation summary lands (e.g. the system
// clipboard).
type ShareSurface interface {
	Copy(text string) error
}

// ResultListener is notified whenever a recalculation produces a new result.
type ResultListener func(domain.Result)
