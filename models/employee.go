package models

// Employee is a row of the company roster used to resolve team and gender
// at registration time. The roster is loaded out of band.
type Employee struct {
	UserID    string  `json:"user_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Team      *string `json:"team"`
	Gender    *string `json:"gender"`
}
