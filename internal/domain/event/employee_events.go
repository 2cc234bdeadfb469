package event

// Compile-time interface checks
var (
	_ Event = EmployeeHired{}
	_ Event = EmployeePromoted{}
	_ Event = EmployeeTerminated{}
)

// EmployeeHired is raised when a new employee joins the company.
type EmployeeHired struct {
	Base
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Salary     int64  `json:"salary"`
}

// NewEmployeeHired creates a new EmployeeHired event.
func NewEmployeeHired(employeeID, name, position string, salary int64) EmployeeHired {
	return EmployeeHired{
		Base:       NewBase(employeeID),
		EmployeeID: employeeID,
		Name:       name,
		Position:   position,
		Salary:     salary,
	}
}

// EventName returns the event name.
func (e EmployeeHired) EventName() string {
	return "employee.hired"
}

// EmployeePromoted is raised when an employee moves to a new position.
type EmployeePromoted struct {
	Base
	EmployeeID  string `json:"employee_id"`
	OldPosition string `json:"old_position"`
	NewPosition string `json:"new_position"`
	Salary      int64  `json:"salary"`
}

// NewEmployeePromoted creates a new EmployeePromoted event.
func NewEmployeePromoted(employeeID, oldPosition, newPosition string, salary int64) EmployeePromoted {
	return EmployeePromoted{
		Base:        NewBase(employeeID),
		EmployeeID:  employeeID,
		OldPosition: oldPosition,
		NewPosition: newPosition,
		Salary:      salary,
	}
}

// EventName returns the event name.
func (e EmployeePromoted) EventName() string {
	return "employee.promoted"
}

// EmployeeTerminated is raised when an employee leaves the company.
type EmployeeTerminated struct {
	Base
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// NewEmployeeTerminated creates a new EmployeeTerminated event.
func NewEmployeeTerminated(employeeID, reason string) EmployeeTerminated {
	return EmployeeTerminated{
		Base:       NewBase(employeeID),
		EmployeeID: employeeID,
		Reason:     reason,
	}
}

// EventName returns the event name.
func (e EmployeeTerminated) EventName() string {
	return "employee.terminated"
}
