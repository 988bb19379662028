// Package access decides which roles may touch which API resources.
package access

import (
	"net/http"

	"github.com/segyhp/edu-backoffice/internal/domain"
)

type Resource string

const (
	ResourceInvoices   Resource = "invoices"
	ResourcePayments   Resource = "payments"
	ResourceSchedule   Resource = "schedule"
	ResourcePayroll    Resource = "payroll"
	ResourceClassrooms Resource = "classrooms"
	ResourceUsers      Resource = "users"
	ResourceCatalog    Resource = "catalog"
	ResourceLeads      Resource = "leads"
	ResourceReports    Resource = "reports"
)

type level int

const (
	none level = iota
	read
	full
)

var policy = map[domain.Role]map[Resource]level{
	domain.RoleManager: {
		ResourceInvoices:   full,
		ResourcePayments:   full,
		ResourcePayroll:    full,
		ResourceLeads:      full,
		ResourceReports:    full,
		ResourceSchedule:   read,
		ResourceClassrooms: read,
		ResourceCatalog:    read,
		ResourceUsers:      read,
	},
	domain.RoleTeacher: {
		ResourceSchedule:   read,
		ResourceClassrooms: read,
		ResourceCatalog:    read,
	},
	domain.RoleStudent: {
		ResourceSchedule: read,
	},
}

// Allowed reports whether role may perform method on resource. Unknown roles get nothing.
func Allowed(role domain.Role, method string, resource Resource) bool {
	if role == domain.RoleAdministrator {
		return true
	}

	switch policy[role][resource] {
	case full:
		return true
	case read:
		return isSafe(method)
	default:
		return false
	}
}

func isSafe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
