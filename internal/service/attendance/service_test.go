package attendance

import (
	"bytes"
	"context"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const (
	companyID  = "0190a5b4-0000-7000-8000-000000000001"
	managerID  = "0190a5b4-0000-7000-8000-0000000000aa"
	budiID     = "0190a5b4-0000-7000-8000-0000000000b1"
	sariID     = "0190a5b4-0000-7000-8000-0000000000b2"
	unknownEmp = "0190a5b4-0000-7000-8000-0000000000ff"
)

type fakeRepo struct {
	records map[string]attendance.Record
	names   map[string]string
	seq     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		records: map[string]attendance.Record{},
		names:   map[string]string{budiID: "Budi", sariID: "Sari"},
	}
}

func (f *fakeRepo) Upsert(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	name, ok := f.names[r.EmployeeID]
	if !ok {
		return attendance.Record{}, attendance.ErrEmployeeNotFound
	}
	for id, existing := range f.records {
		if existing.EmployeeID == r.EmployeeID && existing.Date.Equal(r.Date) {
			r.ID = id
		}
	}
	if r.ID == "" {
		f.seq++
		r.ID = "att-" + string(rune('0'+f.seq))
	}
	r.EmployeeName = &name
	f.records[r.ID] = r
	return r, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string, company string) (attendance.Record, error) {
	r, ok := f.records[id]
	if !ok || r.CompanyID != company {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return r, nil
}

func (f *fakeRepo) Update(ctx context.Context, r attendance.Record) error {
	if _, ok := f.records[r.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[r.ID] = r
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string, company string) error {
	if _, ok := f.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeRepo) ListRange(ctx context.Context, company string, employeeID *string, from, to *time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if r.CompanyID != company {
			continue
		}
		if employeeID != nil && r.EmployeeID != *employeeID {
			continue
		}
		if from != nil && r.Date.Before(*from) {
			continue
		}
		if to != nil && r.Date.After(*to) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func strPtr(s string) *string { return &s }

func asManager(t *testing.T) context.Context {
	t.Helper()
	ctx, err := jwt.NewContext(context.Background(), auth.Claims{
		UserID: "user-m", EmployeeID: managerID, CompanyID: companyID, Role: auth.RoleManager,
	})
	require.NoError(t, err)
	return ctx
}

func asEmployee(t *testing.T, employeeID string) context.Context {
	t.Helper()
	ctx, err := jwt.NewContext(context.Background(), auth.Claims{
		UserID: "user-e", EmployeeID: employeeID, CompanyID: companyID, Role: auth.RoleEmployee,
	})
	require.NoError(t, err)
	return ctx
}

// seed records a small month for Budi and Sari
func seed(t *testing.T, svc attendance.AttendanceService) {
	t.Helper()
	ctx := asManager(t)
	days := []attendance.RecordRequest{
		{EmployeeID: budiID, Date: "2024-05-01", TimeIn: strPtr("09:00"), TimeOut: strPtr("14:00")},
		{EmployeeID: budiID, Date: "2024-05-02", TimeIn: strPtr("18:30"), TimeOut: strPtr("23:00")},
		{EmployeeID: budiID, Date: "2024-05-03", LeaveType: strPtr("Sick leave")},
		{EmployeeID: sariID, Date: "2024-05-01", TimeIn: strPtr("09:00"), TimeOut: strPtr("15:30")},
		{EmployeeID: sariID, Date: "2024-05-02"},
	}
	for _, d := range days {
		_, err := svc.Record(ctx, d)
		require.NoError(t, err)
	}
}

func TestRecord_DerivesStatus(t *testing.T) {
	svc := NewAttendanceService(newFakeRepo())

	resp, err := svc.Record(asManager(t), attendance.RecordRequest{
		EmployeeID: budiID, Date: "2024-05-01", TimeIn: strPtr("09:00"), TimeOut: strPtr("15:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Half Day", resp.Status)
	assert.Equal(t, "half_day", resp.StatusRule)
	require.NotNil(t, resp.DurationMinutes)
	assert.Equal(t, 390, *resp.DurationMinutes)
	assert.Equal(t, "Budi", resp.EmployeeName)
}

func TestRecord_FullShiftIsFlagged(t *testing.T) {
	svc := NewAttendanceService(newFakeRepo())

	resp, err := svc.Record(asManager(t), attendance.RecordRequest{
		EmployeeID: budiID, Date: "2024-05-01", TimeIn: strPtr("09:00"), TimeOut: strPtr("17:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Absent", resp.Status)
	assert.Equal(t, "fallthrough", resp.StatusRule)
}

func TestRecord_Validation(t *testing.T) {
	svc := NewAttendanceService(newFakeRepo())

	_, err := svc.Record(asManager(t), attendance.RecordRequest{
		EmployeeID: budiID, Date: "2024-13-01", TimeIn: strPtr("9am"), LeaveType: strPtr("casual leave"),
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "time_in")
	assert.Contains(t, fields, "leave_type")
}

func TestRecord_RequiresManager(t *testing.T) {
	svc := NewAttendanceService(newFakeRepo())

	_, err := svc.Record(asEmployee(t, budiID), attendance.RecordRequest{EmployeeID: budiID, Date: "2024-05-01"})
	assert.ErrorIs(t, err, auth.ErrManagerAccessRequired)
}

func TestRecord_UnknownEmployee(t *testing.T) {
	svc := NewAttendanceService(newFakeRepo())

	_, err := svc.Record(asManager(t), attendance.RecordRequest{EmployeeID: unknownEmp, Date: "2024-05-01"})
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotFound)
}

func TestUpdateAttendance_ClearsAndSets(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAttendanceService(repo)
	ctx := asManager(t)

	created, err := svc.Record(ctx, attendance.RecordRequest{
		EmployeeID: budiID, Date: "2024-05-01", LeaveType: strPtr("Casual leave"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Casual leave", created.Status)

	updated, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{
		ID: created.ID, LeaveType: strPtr(""), TimeIn: strPtr("18:20"), TimeOut: strPtr("20:00"),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.LeaveType)
	assert.Equal(t, "Late In and Early Out", updated.Status)
}

func TestGetAttendance_OwnershipForEmployees(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAttendanceService(repo)

	created, err := svc.Record(asManager(t), attendance.RecordRequest{EmployeeID: budiID, Date: "2024-05-01"})
	require.NoError(t, err)

	_, err = svc.GetAttendance(asEmployee(t, budiID), created.ID)
	assert.NoError(t, err)

	_, err = svc.GetAttendance(asEmployee(t, sariID), created.ID)
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	_, err = svc.GetAttendance(asManager(t), "missing")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestDeleteAttendance(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAttendanceService(repo)
	ctx := asManager(t)

	created, err := svc.Record(ctx, attendance.RecordRequest{EmployeeID: budiID, Date: "2024-05-01"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAttendance(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteAttendance(ctx, created.ID), attendance.ErrAttendanceNotFound)
}

func TestListAttendance_FilterByDerivedStatus(t *testing.T) {
	svc := NewAttendanceService(newFakeRepo())
	seed(t, svc)

	resp, err := svc.ListAttendance(asManager(t), attendance.AttendanceFilter{Status: strPtr("Absent")})
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalCount)
	assert.Equal(t, "Sari", resp.Attendances[0].EmployeeName)
	assert.Equal(t, "missing_time", resp.Attendances[0].StatusRule)
}

func TestListAttendance_NameSortAndPaging(t *testing.T) {
	svc := NewAttendanceService(newFakeRepo())
	seed(t, svc)

	resp, err := svc.ListAttendance(asManager(t), attendance.AttendanceFilter{
		EmployeeName: strPtr("bud"), SortBy: "date", SortOrder: "asc", Limit: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	assert.True(t, resp.HasNext)
	require.Len(t, resp.Attendances, 2)
	assert.Equal(t, "2024-05-01", resp.Attendances[0].Date)
	assert.Equal(t, "2024-05-02", resp.Attendances[1].Date)

	resp, err = svc.ListAttendance(asManager(t), attendance.AttendanceFilter{Page: 5})
	require.NoError(t, err)
	assert.Empty(t, resp.Attendances)
	assert.NotNil(t, resp.Attendances)
}

func TestListAttendance_RejectsEmployees(t *testing.T) {
	svc := NewAttendanceService(newFakeRepo())

	_, err := svc.ListAttendance(asEmployee(t, budiID), attendance.AttendanceFilter{})
	assert.ErrorIs(t, err, auth.ErrManagerAccessRequired)
}

func TestGetMyAttendance_ScopedToCaller(t *testing.T) {
	svc := NewAttendanceService(newFakeRepo())
	seed(t, svc)

	// A caller-supplied employee id is ignored
	resp, err := svc.GetMyAttendance(asEmployee(t, sariID), attendance.AttendanceFilter{EmployeeID: strPtr(budiID)})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalCount)
	for _, a := range resp.Attendances {
		assert.Equal(t, sariID, a.EmployeeID)
	}
}

func TestSummary(t *testing.T) {
	svc := NewAttendanceService(newFakeRepo())
	seed(t, svc)

	resp, err := svc.Summary(asEmployee(t, budiID), attendance.SummaryRequest{StartDate: "2024-05-01", EndDate: "2024-05-31"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalDays)
	require.NotNil(t, resp.EmployeeID)
	assert.Equal(t, budiID, *resp.EmployeeID)

	counts := map[string]int{}
	for _, s := range resp.Statuses {
		counts[s.Status] = s.Count
	}
	assert.Equal(t, 1, counts["Early Out"])
	assert.Equal(t, 1, counts["Late In and Early Out"])
	assert.Equal(t, 1, counts["Sick leave"])
	assert.Equal(t, 0, counts["Absent"])
	assert.Equal(t, "Absent", resp.Statuses[0].Status)

	_, err = svc.Summary(asManager(t), attendance.SummaryRequest{StartDate: "2024-05-01"})
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	svc := NewAttendanceService(newFakeRepo())
	seed(t, svc)

	file, err := svc.Export(asManager(t), attendance.AttendanceFilter{EmployeeName: strPtr("sari"), SortOrder: "asc"})
	require.NoError(t, err)
	assert.Contains(t, file.Filename, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "Sari", rows[1][1])
	assert.Equal(t, "Half Day", rows[1][6])
}
