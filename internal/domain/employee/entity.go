package employee

import "time"

type Role string

const (
	RoleEmployee Role = "employee" // Regular employee
	RoleManager  Role = "manager"  // Can view team attendance and reports
)

// Employee is the directory view the attendance core consumes. The directory
// is owned elsewhere; this core only reads identity and department.
type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Email        string
	Department   string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
