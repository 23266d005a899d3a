package employee

type Employee struct {
	ID        string  `json:"id"`
	Code      string  `json:"code"`
	FullName  string  `json:"fullName"`
	Unit      string  `json:"unit"`
	JobTitle  string  `json:"jobTitle"`
	ManagerID *string `json:"managerId"`
	UserID    string  `json:"userId"`
}
