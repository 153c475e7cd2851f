package sqlite

import (
	"context"
	"fmt"

	"github.com/hetulpatel/personjob/internal/models"
	"github.com/hetulpatel/personjob/internal/sqlerr"
)

const insertPersonSQL = `
INSERT INTO person (person_name, lives_in_town, nickname)
VALUES (:person_name, :lives_in_town, :nickname)
`

const (
	insertManagedDepartmentSQL = `
INSERT INTO department (dept_number, dept_name, dept_manager)
VALUES (:dept_number, :dept_name, :dept_manager)
`
	insertJobLinkedDepartmentSQL = `
INSERT INTO department (dept_number, dept_name, dept_manager, job)
VALUES (:dept_number, :dept_name, :dept_manager, :job)
`
)

const (
	insertManagedJobSQL = `
INSERT INTO job (job_name, start_date, end_date, salary, person_employed, dept_name_for_job)
VALUES (:job_name, :start_date, :end_date, :salary, :person_employed, :dept_name_for_job)
`
	insertJobLinkedJobSQL = `
INSERT INTO job (job_name, start_date, end_date, salary, person_employed)
VALUES (:job_name, :start_date, :end_date, :salary, :person_employed)
`
)

// insert runs one named statement in its own transaction. Failures come back
// classified by sqlerr.
func (s *Store) insert(ctx context.Context, table, query string, arg interface{}) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialized")
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s insert: %w", table, err)
	}
	if _, err := tx.NamedExecContext(ctx, query, arg); err != nil {
		tx.Rollback()
		return sqlerr.Convert(err, table)
	}
	if err := tx.Commit(); err != nil {
		return sqlerr.Convert(err, table)
	}
	return nil
}

// InsertPerson stores p after validating it.
func (s *Store) InsertPerson(ctx context.Context, p models.Person) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.insert(ctx, models.TablePerson, insertPersonSQL, p)
}

// InsertDepartment stores d using the column set of the current layout.
func (s *Store) InsertDepartment(ctx context.Context, d models.Department) error {
	if err := d.Validate(); err != nil {
		return err
	}
	v, err := s.Variant(ctx)
	if err != nil {
		return err
	}
	query := insertManagedDepartmentSQL
	if v == models.VariantJobLinked {
		query = insertJobLinkedDepartmentSQL
	}
	return s.insert(ctx, models.TableDepartment, query, d)
}

// InsertJob stores j with its salary rounded to the column precision.
func (s *Store) InsertJob(ctx context.Context, j models.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}
	v, err := s.Variant(ctx)
	if err != nil {
		return err
	}
	j.Salary = j.Salary.Round(models.SalaryPlaces)
	query := insertManagedJobSQL
	if v == models.VariantJobLinked {
		query = insertJobLinkedJobSQL
	}
	return s.insert(ctx, models.TableJob, query, j)
}

// GetPerson loads a single person by name.
func (s *Store) GetPerson(ctx context.Context, name string) (*models.Person, error) {
	var p models.Person
	err := s.db.GetContext(ctx, &p,
		`SELECT person_name, lives_in_town, nickname FROM person WHERE person_name = ?`, name)
	if err != nil {
		return nil, sqlerr.Convert(err, models.TablePerson)
	}
	return &p, nil
}

// ListPeople returns every person in insertion order.
func (s *Store) ListPeople(ctx context.Context) ([]models.Person, error) {
	var people []models.Person
	err := s.db.SelectContext(ctx, &people,
		`SELECT person_name, lives_in_town, nickname FROM person ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("select people: %w", err)
	}
	return people, nil
}

// ListDepartments returns every department in insertion order.
func (s *Store) ListDepartments(ctx context.Context) ([]models.Department, error) {
	v, err := s.Variant(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT dept_number, dept_name, dept_manager FROM department ORDER BY rowid`
	if v == models.VariantJobLinked {
		query = `SELECT dept_number, dept_name, dept_manager, job FROM department ORDER BY rowid`
	}
	var depts []models.Department
	if err := s.db.SelectContext(ctx, &depts, query); err != nil {
		return nil, fmt.Errorf("select departments: %w", err)
	}
	return depts, nil
}

// ListDepartmentJobs returns every department with the dates of the job it
// references, so the time the job was held can be worked out per row. Only
// the job-linked layout has that reference.
func (s *Store) ListDepartmentJobs(ctx context.Context) ([]models.DepartmentJob, error) {
	v, err := s.Variant(ctx)
	if err != nil {
		return nil, err
	}
	if v != models.VariantJobLinked {
		return nil, fmt.Errorf("departments reference jobs only in the %s layout", models.VariantJobLinked)
	}
	const query = `
SELECT d.dept_number, d.dept_name, d.dept_manager, d.job,
	j.start_date AS job_start_date, j.end_date AS job_end_date
FROM department d
LEFT JOIN job j ON j.job_name = d.job
ORDER BY d.rowid
`
	var rows []models.DepartmentJob
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select department jobs: %w", err)
	}
	return rows, nil
}

// ListJobs returns every job in insertion order.
func (s *Store) ListJobs(ctx context.Context) ([]models.Job, error) {
	v, err := s.Variant(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT job_name, start_date, end_date, salary, person_employed FROM job ORDER BY rowid`
	if v == models.VariantManaged {
		query = `SELECT job_name, start_date, end_date, salary, person_employed, dept_name_for_job FROM job ORDER BY rowid`
	}
	var jobs []models.Job
	if err := s.db.SelectContext(ctx, &jobs, query); err != nil {
		return nil, fmt.Errorf("select jobs: %w", err)
	}
	return jobs, nil
}
