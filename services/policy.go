package services

import "salonqueue-backend/models"

// Action names an operation gated by role.
type Action string

const (
	ActionManageCatalog   Action = "catalog.manage"
	ActionManageInventory Action = "inventory.manage"
	ActionViewReports     Action = "reports.view"
	ActionViewQueue       Action = "queue.view"
	ActionStartService    Action = "queue.start"
	ActionCompleteService Action = "queue.complete"
	ActionMarkNoShow      Action = "queue.no_show"
	ActionUpdateEntry     Action = "queue.update"
)

// rolePolicy is the single role -> allowed-action table. Handlers consult
// it once per operation instead of re-deriving role checks ad hoc.
var rolePolicy = map[string]map[Action]bool{
	models.RoleAdmin: {
		ActionManageCatalog:   true,
		ActionManageInventory: true,
		ActionViewReports:     true,
		ActionViewQueue:       true,
		ActionStartService:    true,
		ActionCompleteService: true,
		ActionMarkNoShow:      true,
		ActionUpdateEntry:     true,
	},
	models.RoleStaff: {
		ActionManageCatalog:   true,
		ActionManageInventory: true,
		ActionViewReports:     true,
		ActionViewQueue:       true,
		ActionStartService:    true,
		ActionCompleteService: true,
		ActionMarkNoShow:      true,
		ActionUpdateEntry:     true,
	},
	models.RoleCustomer: {},
}

// Can reports whether the role may perform the action. Unknown roles may
// do nothing.
func Can(role string, action Action) bool {
	allowed, ok := rolePolicy[role]
	if !ok {
		return false
	}
	return allowed[action]
}
