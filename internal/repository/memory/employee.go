package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/stafftrack/attendance-backend-go/internal/domain/employee"
)

type EmployeeDirectory struct {
	mu     sync.RWMutex
	byID   map[string]employee.Employee
	byCode map[string]string
}

func NewEmployeeDirectory(employees ...employee.Employee) *EmployeeDirectory {
	d := &EmployeeDirectory{
		byID:   make(map[string]employee.Employee),
		byCode: make(map[string]string),
	}
	for _, emp := range employees {
		d.Put(emp)
	}
	return d
}

// Put adds or replaces a directory entry.
func (d *EmployeeDirectory) Put(emp employee.Employee) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byID[emp.ID] = emp
	d.byCode[emp.EmployeeCode] = emp.ID
}

// GetByID implements employee.Directory.
func (d *EmployeeDirectory) GetByID(_ context.Context, id string) (employee.Employee, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	emp, ok := d.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// GetByCode implements employee.Directory.
func (d *EmployeeDirectory) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id, ok := d.byCode[code]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return d.byID[id], nil
}

// ListByRole implements employee.Directory.
func (d *EmployeeDirectory) ListByRole(_ context.Context, role employee.Role) ([]employee.Employee, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var employees []employee.Employee
	for _, emp := range d.byID {
		if emp.Role == role {
			employees = append(employees, emp)
		}
	}
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].FullName < employees[j].FullName
	})
	return employees, nil
}

// CountByRole implements employee.Directory.
func (d *EmployeeDirectory) CountByRole(ctx context.Context, role employee.Role) (int, error) {
	employees, err := d.ListByRole(ctx, role)
	if err != nil {
		return 0, err
	}
	return len(employees), nil
}
