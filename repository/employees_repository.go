package repository

import (
	"database/sql"

	"github.com/gokuljawahar87/move-more/models"
)

type EmployeesRepository struct {
	db *sql.DB
}

func NewEmployeesRepository(db *sql.DB) *EmployeesRepository {
	return &EmployeesRepository{db: db}
}

func (r *EmployeesRepository) GetEmployee(userID string) (*models.Employee, error) {
	var e models.Employee
	err := r.db.QueryRow(`
		SELECT user_id, first_name, last_name, team, gender
		FROM employee_master
		WHERE user_id = $1`, userID).Scan(
		&e.UserID, &e.FirstName, &e.LastName, &e.Team, &e.Gender)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeesRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM employee_master`).Scan(&n)
	return n, err
}

func (r *EmployeesRepository) Insert(e models.Employee) error {
	_, err := r.db.Exec(`
		INSERT INTO employee_master (user_id, first_name, last_name, team, gender)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			team = EXCLUDED.team,
			gender = EXCLUDED.gender`,
		e.UserID, e.FirstName, e.LastName, e.Team, e.Gender)
	return err
}
