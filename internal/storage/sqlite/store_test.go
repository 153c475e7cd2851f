package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hetulpatel/personjob/internal/models"
	"github.com/hetulpatel/personjob/internal/sqlerr"
)

func openTestStore(t *testing.T, v models.Variant) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "personjob.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.CreateTables(context.Background(), v))
	return store
}

func analyst(dept *string) models.Job {
	return models.Job{
		Name:           "Analyst",
		StartDate:      models.MustDate("2017-02-01"),
		EndDate:        models.MustDate("2019-07-31"),
		Salary:         models.Salary(34.999),
		PersonEmployed: "Andrew",
		DeptName:       dept,
	}
}

func TestOpenEnablesForeignKeys(t *testing.T) {
	store := openTestStore(t, models.VariantManaged)
	on, err := store.ForeignKeysEnabled(context.Background())
	require.NoError(t, err)
	assert.True(t, on)
}

func TestResetRemovesFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "personjob.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.CreateTables(context.Background(), models.VariantManaged))
	require.NoError(t, store.Close())

	require.NoError(t, Reset(path))
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err), "%s still exists", p)
	}
	// A second reset of a missing file is fine.
	assert.NoError(t, Reset(path))
}

func TestPersonRoundTripAndDuplicate(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, models.VariantManaged)

	andrew := models.Person{Name: "Andrew", Town: "Sumner", Nickname: models.Ptr("Andy")}
	peter := models.Person{Name: "Peter", Town: "Seattle"}
	require.NoError(t, store.InsertPerson(ctx, andrew))
	require.NoError(t, store.InsertPerson(ctx, peter))

	err := store.InsertPerson(ctx, peter)
	require.Error(t, err)
	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(err))
	assert.Equal(t, "PERSON_ALREADY_EXISTS", sqlerr.AppCode(err))

	people, err := store.ListPeople(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Person{andrew, peter}, people)

	got, err := store.GetPerson(ctx, "Peter")
	require.NoError(t, err)
	assert.Nil(t, got.Nickname)

	_, err = store.GetPerson(ctx, "Fred")
	assert.Equal(t, sqlerr.NotFound, sqlerr.ErrCode(err))
}

func TestManagedForeignKeys(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, models.VariantManaged)
	require.NoError(t, store.InsertPerson(ctx, models.Person{Name: "Andrew", Town: "Sumner"}))

	// Department whose manager is not a person.
	err := store.InsertDepartment(ctx, models.Department{Number: "B245", Name: "Stability and Control", Manager: "Peter"})
	require.Error(t, err)
	assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))

	flight := models.Department{Number: "A101", Name: "Flight Controls", Manager: "Andrew"}
	require.NoError(t, store.InsertDepartment(ctx, flight))

	// Duplicate department name (the primary key in this layout).
	err = store.InsertDepartment(ctx, models.Department{Number: "Z999", Name: "Flight Controls", Manager: "Andrew"})
	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(err))

	// Job whose employee is missing.
	dev := analyst(models.Ptr("Flight Controls"))
	dev.Name, dev.PersonEmployed = "Developer", "Fred"
	err = store.InsertJob(ctx, dev)
	assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))

	// Job whose department is missing.
	orphan := analyst(models.Ptr("Advanced Research"))
	err = store.InsertJob(ctx, orphan)
	assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))

	// Job without a department at all.
	err = store.InsertJob(ctx, analyst(nil))
	assert.Equal(t, sqlerr.NotNullViolation, sqlerr.ErrCode(err))

	job := analyst(models.Ptr("Flight Controls"))
	require.NoError(t, store.InsertJob(ctx, job))

	depts, err := store.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Department{flight}, depts)

	jobs, err := store.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	got := jobs[0]
	assert.Equal(t, job.Name, got.Name)
	assert.Equal(t, "2017-02-01", got.StartDate.String())
	assert.Equal(t, "2019-07-31", got.EndDate.String())
	assert.True(t, job.Salary.Equal(got.Salary), "salary %s != %s", job.Salary, got.Salary)
	assert.Equal(t, "Andrew", got.PersonEmployed)
	require.NotNil(t, got.DeptName)
	assert.Equal(t, "Flight Controls", *got.DeptName)
	assert.Equal(t, "Analyst 2017-02-01 2019-07-31 35.00 Andrew Flight Controls", got.Show())
}

func TestJobLinkedDepartmentsAndDurations(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, models.VariantJobLinked)
	require.NoError(t, store.InsertPerson(ctx, models.Person{Name: "Andrew", Town: "Sumner"}))

	job := analyst(nil)
	job.EndDate = models.MustDate("2017-03-01")
	require.NoError(t, store.InsertJob(ctx, job))

	err := store.InsertDepartment(ctx, models.Department{
		Number: "Q456", Name: "Advanced Research", Manager: "Manager McManagerface", Job: models.Ptr("Dog Catcher"),
	})
	assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))

	a101 := models.Department{Number: "A101", Name: "Flight Controls", Manager: "Steve Louthain", Job: models.Ptr("Analyst")}
	require.NoError(t, store.InsertDepartment(ctx, a101))

	err = store.InsertDepartment(ctx, a101)
	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(err))

	rows, err := store.ListDepartmentJobs(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a101, rows[0].Department)
	days, ok := rows[0].JobHeldDays()
	require.True(t, ok)
	assert.Equal(t, 28, days)

	depts, err := store.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Department{a101}, depts)
}

func TestVariantDetectionAndMaintenance(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "personjob.db")

	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.Variant(ctx)
	assert.ErrorIs(t, err, ErrNoSchema)
	require.NoError(t, store.CreateTables(ctx, models.VariantJobLinked))
	require.NoError(t, store.InsertPerson(ctx, models.Person{Name: "Andrew", Town: "Sumner"}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	v, err := store.Variant(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.VariantJobLinked, v)

	require.NoError(t, store.ClearTables(ctx))
	n, err := store.Count(ctx, models.TablePerson)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, store.Migrate(ctx, models.VariantManaged))
	v, err = store.Variant(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.VariantManaged, v)
	_, err = store.ListDepartmentJobs(ctx)
	assert.Error(t, err)

	require.NoError(t, store.DropTables(ctx))
	_, err = store.Count(ctx, models.TableJob)
	assert.Error(t, err)
	_, err = store.Count(ctx, "users")
	assert.Error(t, err)
}

func TestInvalidRecordsNeverReachTheDatabase(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, models.VariantManaged)

	err := store.InsertPerson(ctx, models.Person{Name: "Andrew"})
	require.Error(t, err)
	assert.True(t, models.IsInvalid(err))

	n, err := store.Count(ctx, models.TablePerson)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConstraintErrorsNameTheColumn(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, models.VariantManaged)

	peter := models.Person{Name: "Peter", Town: "Seattle"}
	require.NoError(t, store.InsertPerson(ctx, peter))

	var dup *sqlerr.Error
	require.ErrorAs(t, store.InsertPerson(ctx, peter), &dup)
	assert.Equal(t, "person", dup.TableName)
	assert.Equal(t, "person_name", dup.ColumnName)
	assert.Equal(t, "a person with this person_name already exists", sqlerr.FriendlyMessage(dup))

	require.NoError(t, store.InsertPerson(ctx, models.Person{Name: "Andrew", Town: "Sumner"}))
	var missing *sqlerr.Error
	require.ErrorAs(t, store.InsertJob(ctx, analyst(nil)), &missing)
	assert.Equal(t, sqlerr.NotNullViolation, missing.Code)
	assert.Equal(t, "job", missing.TableName)
	assert.Equal(t, "dept_name_for_job", missing.ColumnName)
	assert.Equal(t, "job.dept_name_for_job is required", sqlerr.FriendlyMessage(missing))
	assert.Equal(t, "JOB_REQUIRED", sqlerr.AppCode(missing))
}

func TestDropTablesRestoresForeignKeysOnFailure(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "personjob.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	// A view named like a table makes DROP TABLE fail.
	_, err = store.db.ExecContext(ctx, `CREATE VIEW job AS SELECT 1 AS job_name;`)
	require.NoError(t, err)

	require.Error(t, store.DropTables(ctx))
	on, err := store.ForeignKeysEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, on)
}
