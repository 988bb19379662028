package access

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/segyhp/edu-backoffice/internal/domain"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		role     domain.Role
		method   string
		resource Resource
		want     bool
	}{
		{domain.RoleAdministrator, http.MethodDelete, ResourceClassrooms, true},
		{domain.RoleAdministrator, http.MethodPost, ResourceUsers, true},

		{domain.RoleManager, http.MethodPost, ResourceInvoices, true},
		{domain.RoleManager, http.MethodPost, ResourcePayments, true},
		{domain.RoleManager, http.MethodPut, ResourcePayroll, true},
		{domain.RoleManager, http.MethodPatch, ResourceLeads, true},
		{domain.RoleManager, http.MethodGet, ResourceReports, true},
		{domain.RoleManager, http.MethodGet, ResourceSchedule, true},
		{domain.RoleManager, http.MethodPost, ResourceSchedule, false},
		{domain.RoleManager, http.MethodDelete, ResourceClassrooms, false},
		{domain.RoleManager, http.MethodGet, ResourceUsers, true},
		{domain.RoleManager, http.MethodPost, ResourceUsers, false},
		{domain.RoleManager, http.MethodPost, ResourceCatalog, false},

		{domain.RoleTeacher, http.MethodGet, ResourceSchedule, true},
		{domain.RoleTeacher, http.MethodGet, ResourceClassrooms, true},
		{domain.RoleTeacher, http.MethodGet, ResourceCatalog, true},
		{domain.RoleTeacher, http.MethodPut, ResourceSchedule, false},
		{domain.RoleTeacher, http.MethodGet, ResourceInvoices, false},
		{domain.RoleTeacher, http.MethodGet, ResourcePayroll, false},

		{domain.RoleStudent, http.MethodGet, ResourceSchedule, true},
		{domain.RoleStudent, http.MethodGet, ResourceClassrooms, false},
		{domain.RoleStudent, http.MethodGet, ResourcePayments, false},
		{domain.RoleStudent, http.MethodPost, ResourceSchedule, false},

		{"Janitor", http.MethodGet, ResourceSchedule, false},
		{"", http.MethodGet, ResourceSchedule, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.method+" "+string(tt.resource), func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.method, tt.resource))
		})
	}
}
