package seed

import "github.com/hetulpatel/personjob/internal/models"

// Fixtures are the literal rows a run inserts.
type Fixtures struct {
	People      []models.Person
	Departments []models.Department
	Jobs        []models.Job
}

// people repeats Peter on purpose: the second insert must be rejected.
func people() []models.Person {
	return []models.Person{
		{Name: "Andrew", Town: "Sumner", Nickname: models.Ptr("Andy")},
		{Name: "Peter", Town: "Seattle"},
		{Name: "Susan", Town: "Boston", Nickname: models.Ptr("Beannie")},
		{Name: "Steven", Town: "Colchester"},
		{Name: "Peter", Town: "Seattle"},
	}
}

func job(name, employee string, dept *string) models.Job {
	return models.Job{
		Name:           name,
		StartDate:      models.MustDate("2017-02-01"),
		EndDate:        models.MustDate("2019-07-31"),
		Salary:         models.Salary(34.999),
		PersonEmployed: employee,
		DeptName:       dept,
	}
}

// FixturesFor returns the stock rows for v. Fred does not exist, so his job
// is always rejected.
func FixturesFor(v models.Variant) Fixtures {
	if v == models.VariantJobLinked {
		return Fixtures{
			People: people(),
			Jobs: []models.Job{
				job("Analyst", "Andrew", nil),
				job("Developer", "Fred", nil),
			},
			Departments: []models.Department{
				{Number: "A101", Name: "Flight Controls", Manager: "Steve Louthain", Job: models.Ptr("Analyst")},
				{Number: "B245", Name: "Stability and Control", Manager: "Brian Jaspers", Job: models.Ptr("Developer")},
				{Number: "Q456", Name: "Advanced Research", Manager: "Manager McManagerface", Job: models.Ptr("Dog Catcher")},
				{Number: "1234", Name: "Dept of bad naming conventions", Manager: "Micro-manager", Job: models.Ptr("Analyst")},
				{Number: "C12345", Name: "Dept of too long numbers", Manager: "Macro-manager", Job: models.Ptr("Developer")},
			},
		}
	}
	return Fixtures{
		People: people(),
		Departments: []models.Department{
			{Number: "A101", Name: "Flight Controls", Manager: "Andrew"},
			{Number: "B245", Name: "Stability and Control", Manager: "Peter"},
			{Number: "Q456", Name: "Advanced Research", Manager: "Susan"},
			{Number: "1234", Name: "Dept of bad naming conventions", Manager: "Steven"},
			{Number: "C12345", Name: "Dept of too long numbers", Manager: "Peter"},
		},
		Jobs: []models.Job{
			job("Analyst", "Andrew", models.Ptr("Flight Controls")),
			job("Developer", "Fred", models.Ptr("Advanced Research")),
		},
	}
}
