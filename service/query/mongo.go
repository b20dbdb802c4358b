package query

import (
	"errors"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
)

// ErrNotFound is returned when no document matches
var ErrNotFound = errors.New("document not found")

// Mongo is the slice of the mongo driver the record mirrors use. Documents
// are replaced as a whole, a mirror never patches fields.
type Mongo interface {
	// FindOne decodes the first document matching query into result
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Upsert replaces the document matching selector, or inserts update
	Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Search decodes a page of matching documents into results. sort is a
	// comma separated field list, "-" prefixed fields sort descending and an
	// empty sort leaves the order to the server.
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error
}
