package employee

// ========================================
// EMPLOYEE DTOs
// ========================================

type EmployeeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func ToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:    emp.ID,
		Name:  emp.Name,
		Email: emp.Email,
		Role:  string(emp.Role),
	}
}
