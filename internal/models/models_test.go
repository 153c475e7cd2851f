package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateScan(t *testing.T) {
	testCases := map[string]struct {
		src  interface{}
		want string
	}{
		"text":     {src: "2017-02-01", want: "2017-02-01"},
		"bytes":    {src: []byte("2019-07-31"), want: "2019-07-31"},
		"datetime": {src: "2019-07-31 00:00:00", want: "2019-07-31"},
		"time":     {src: time.Date(2018, 5, 6, 13, 4, 0, 0, time.FixedZone("x", 3600)), want: "2018-05-06"},
		"null":     {src: nil, want: "-"},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tc.src))
			assert.Equal(t, tc.want, d.String())
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
	assert.Error(t, d.Scan("31/07/2019"))
}

func TestDateValueAndJSON(t *testing.T) {
	d := MustDate("2017-02-01")
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2017-02-01", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2017-02-01"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d.Time))
}

func TestJobHeldDaysPerRow(t *testing.T) {
	start, end := MustDate("2017-02-01"), MustDate("2019-07-31")
	analyst := DepartmentJob{
		Department: Department{Number: "A101", Name: "Flight Controls", Manager: "Steve Louthain", Job: Ptr("Analyst")},
		JobStart:   &start,
		JobEnd:     &end,
	}
	days, ok := analyst.JobHeldDays()
	require.True(t, ok)
	assert.Equal(t, 910, days)
	assert.Equal(t, "A101 Flight Controls Steve Louthain Analyst 910 days", analyst.Show())

	shortEnd := MustDate("2017-02-11")
	other := analyst
	other.JobEnd = &shortEnd
	days, _ = other.JobHeldDays()
	assert.Equal(t, 10, days)

	unknown := DepartmentJob{Department: analyst.Department}
	_, ok = unknown.JobHeldDays()
	assert.False(t, ok)
	assert.True(t, strings.HasSuffix(unknown.Show(), " -"))
}

func TestShow(t *testing.T) {
	assert.Equal(t, "Andrew Sumner Andy", Person{Name: "Andrew", Town: "Sumner", Nickname: Ptr("Andy")}.Show())
	assert.Equal(t, "Peter Seattle -", Person{Name: "Peter", Town: "Seattle"}.Show())
	assert.Equal(t, "A101 Flight Controls Andrew", Department{Number: "A101", Name: "Flight Controls", Manager: "Andrew"}.Show())

	job := Job{
		Name:           "Analyst",
		StartDate:      MustDate("2017-02-01"),
		EndDate:        MustDate("2019-07-31"),
		Salary:         Salary(34.999),
		PersonEmployed: "Andrew",
		DeptName:       Ptr("Flight Controls"),
	}
	assert.Equal(t, "Analyst 2017-02-01 2019-07-31 35.00 Andrew Flight Controls", job.Show())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Person{Name: "Susan", Town: "Boston", Nickname: Ptr("Beannie")}.Validate())

	err := Person{Name: "Susan", Town: "Boston", Nickname: Ptr(strings.Repeat("n", 21))}.Validate()
	require.Error(t, err)
	assert.True(t, IsInvalid(err))

	err = Department{Number: "A101", Name: strings.Repeat("d", 31), Manager: "Andrew"}.Validate()
	assert.True(t, IsInvalid(err))

	job := Job{Name: "Analyst", PersonEmployed: "Andrew", Salary: Salary(10)}
	err = job.Validate()
	assert.ErrorIs(t, err, ErrMissingDate)
	assert.True(t, IsInvalid(err))

	job.StartDate, job.EndDate = MustDate("2017-02-01"), MustDate("2019-07-31")
	assert.NoError(t, job.Validate())

	job.Salary = decimal.RequireFromString("99999.995")
	assert.ErrorIs(t, job.Validate(), ErrSalaryRange)
	job.Salary = decimal.RequireFromString("99999.99")
	assert.NoError(t, job.Validate())
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("")
	require.NoError(t, err)
	assert.Equal(t, VariantManaged, v)

	v, err = ParseVariant("job-linked")
	require.NoError(t, err)
	assert.Equal(t, []string{TablePerson, TableJob, TableDepartment}, v.Tables())
	assert.Equal(t, []string{TablePerson, TableDepartment, TableJob}, VariantManaged.Tables())

	_, err = ParseVariant("flat")
	assert.Error(t, err)
}

func TestSalaryScale(t *testing.T) {
	testCases := map[float64]string{
		34.999:    "35.00",
		1234.5:    "1234.50",
		43.1:      "43.10",
		99999.994: "99999.99",
	}
	for amount, want := range testCases {
		assert.Equal(t, want, Salary(amount).StringFixed(SalaryPlaces))
	}
}
