package department

// DepartmentResponse is the public projection of a department row.
type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type DepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}
