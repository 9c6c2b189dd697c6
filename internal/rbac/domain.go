// Package rbac resolves module capabilities for the gateway's upstream
// credential and gates HTTP endpoints on them.
package rbac

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AdminRole grants every capability on every module.
const AdminRole = "ADMIN"

// Module keys used by the gateway's own endpoints.
const (
	ModuleReports   = "REPORTS"
	ModuleInventory = "INVENTORY"
	ModuleSales     = "SALES"
)

// Action is one of the four capability kinds attached to a module.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// NormalizeModule is the single normalization point for module keys. Stored
// module values are uppercase by convention, but server responses are not
// trusted to honor that.
func NormalizeModule(module string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(module))
}
