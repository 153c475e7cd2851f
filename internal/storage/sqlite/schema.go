package sqlite

import (
	"fmt"

	"github.com/hetulpatel/personjob/internal/models"
)

const personSchemaSQL = `
CREATE TABLE IF NOT EXISTS person (
	person_name VARCHAR(30) NOT NULL PRIMARY KEY,
	lives_in_town VARCHAR(40) NOT NULL,
	nickname VARCHAR(20)
);
`

// Departments keyed by name, managed by a person; jobs belong to a department.
const managedSchemaSQL = personSchemaSQL + `
CREATE TABLE IF NOT EXISTS department (
	dept_number VARCHAR(30) NOT NULL,
	dept_name VARCHAR(30) NOT NULL PRIMARY KEY,
	dept_manager VARCHAR(30) NOT NULL REFERENCES person(person_name)
);
CREATE INDEX IF NOT EXISTS department_dept_manager ON department(dept_manager);
CREATE TABLE IF NOT EXISTS job (
	job_name VARCHAR(30) NOT NULL PRIMARY KEY,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	salary DECIMAL(7, 2) NOT NULL,
	person_employed VARCHAR(30) NOT NULL REFERENCES person(person_name),
	dept_name_for_job VARCHAR(30) NOT NULL REFERENCES department(dept_name)
);
CREATE INDEX IF NOT EXISTS job_person_employed ON job(person_employed);
CREATE INDEX IF NOT EXISTS job_dept_name_for_job ON job(dept_name_for_job);
`

// Departments keyed by number and pointing at a job.
const jobLinkedSchemaSQL = personSchemaSQL + `
CREATE TABLE IF NOT EXISTS job (
	job_name VARCHAR(30) NOT NULL PRIMARY KEY,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	salary DECIMAL(7, 2) NOT NULL,
	person_employed VARCHAR(30) NOT NULL REFERENCES person(person_name)
);
CREATE INDEX IF NOT EXISTS job_person_employed ON job(person_employed);
CREATE TABLE IF NOT EXISTS department (
	dept_number VARCHAR(30) NOT NULL PRIMARY KEY,
	dept_name VARCHAR(30) NOT NULL,
	dept_manager VARCHAR(30) NOT NULL,
	job VARCHAR(30) NOT NULL REFERENCES job(job_name)
);
CREATE INDEX IF NOT EXISTS department_job ON department(job);
`

func schemaFor(v models.Variant) (string, error) {
	switch v {
	case models.VariantManaged:
		return managedSchemaSQL, nil
	case models.VariantJobLinked:
		return jobLinkedSchemaSQL, nil
	}
	return "", fmt.Errorf("unknown schema variant %q", v)
}
