package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/attendance"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository

	workStart string
	workEnd   string

	// now is swapped out in tests.
	now func() time.Time
}

// NewAttendanceService builds the service with the given working-day
// boundaries ("15:04:05" strings); empty values fall back to the standard
// 09:00-17:00 day.
func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, workStart, workEnd string) *AttendanceServiceImpl {
	if workStart == "" {
		workStart = StandardWorkStart
	}
	if workEnd == "" {
		workEnd = StandardWorkEnd
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		workStart:            workStart,
		workEnd:              workEnd,
		now:                  time.Now,
	}
}

// PunchIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchIn(ctx context.Context, req attendance.PunchInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowUTC := a.now().UTC()
	today := truncateToDay(nowUTC)

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, req.UserID, today)
	switch {
	case err == nil:
		if record.PunchIn != nil {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedIn
		}
		// An administrative status record exists for today without a punch;
		// complete it rather than inserting a duplicate day.
		record.PunchIn = &nowUTC
		record.Status = attendance.StatusPresent
		record.Location = req.Location
		record.Latitude = req.Latitude
		record.Longitude = req.Longitude
		if err := a.AttendanceRepository.Update(ctx, record); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
		}
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		record, err = a.AttendanceRepository.Create(ctx, attendance.Attendance{
			UserID:    req.UserID,
			Date:      today,
			PunchIn:   &nowUTC,
			Status:    attendance.StatusPresent,
			Location:  req.Location,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		})
		if err != nil {
			// The storage insert is conditional on (user_id, date); a racing
			// punch-in loses here rather than double-applying.
			if errors.Is(err, attendance.ErrAlreadyPunchedIn) {
				return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedIn
			}
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
		}
	default:
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}

	return a.mapToResponse(record), nil
}

// PunchOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchOut(ctx context.Context, req attendance.PunchOutRequest) (attendance.AttendanceResponse, error) {
	nowUTC := a.now().UTC()
	today := truncateToDay(nowUTC)

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNoPunchIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}

	if record.PunchIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoPunchIn
	}
	if record.PunchOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedOut
	}

	durationMinutes := int(nowUTC.Sub(*record.PunchIn).Minutes())
	if durationMinutes < 0 {
		// A punch-out before the punch-in points at a clock or timezone
		// defect upstream; report it instead of wrapping to the next day.
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{
			Field:   "punch_out_time",
			Message: "punch-out time is before punch-in time",
		}}
	}

	record.PunchOut = &nowUTC
	record.WorkingHours = durationMinutes / 60
	record.WorkingMinutes = durationMinutes % 60

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return a.mapToResponse(record), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, userID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	return a.buildListResponse(records, total, filter), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return a.buildListResponse(records, total, filter), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a.mapToResponse(record), nil
}

// UpdateStatus implements attendance.AttendanceService. The day status for
// non-punch days is an administrative decision, so this never derives it.
func (a *AttendanceServiceImpl) UpdateStatus(ctx context.Context, req attendance.UpdateStatusRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var record attendance.Attendance
	var err error

	if req.ID != "" {
		record, err = a.AttendanceRepository.GetByID(ctx, req.ID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
	} else {
		date, _ := time.Parse("2006-01-02", req.Date)
		record, err = a.AttendanceRepository.GetByUserAndDate(ctx, req.UserID, date)
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			// No punches that day; create the administrative record.
			record, err = a.AttendanceRepository.Create(ctx, attendance.Attendance{
				UserID: req.UserID,
				Date:   date,
				Status: attendance.Status(req.Status),
			})
			if err != nil {
				return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
			}
			return a.mapToResponse(record), nil
		}
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
		}
	}

	record.Status = attendance.Status(req.Status)
	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return a.mapToResponse(record), nil
}

func (a *AttendanceServiceImpl) buildListResponse(records []attendance.Attendance, total int64, filter attendance.AttendanceFilter) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, a.mapToResponse(record))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}
}

func (a *AttendanceServiceImpl) mapToResponse(record attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:             record.ID,
		UserID:         record.UserID,
		UserName:       record.UserName,
		Date:           record.Date.Format("2006-01-02"),
		PunchInTime:    timeOfDayPtr(record.PunchIn),
		PunchOutTime:   timeOfDayPtr(record.PunchOut),
		WorkingHours:   record.WorkingHours,
		WorkingMinutes: record.WorkingMinutes,
		Status:         string(record.Status),
		Location:       record.Location,
		Latitude:       record.Latitude,
		Longitude:      record.Longitude,
	}

	if record.PunchIn != nil {
		late := IsLate(*record.PunchIn, a.workStart)
		resp.IsLate = &late
	}
	if record.PunchOut != nil {
		early := IsEarlyDeparture(*record.PunchOut, a.workEnd)
		resp.IsEarlyOut = &early
	}

	return resp
}

// timeOfDayPtr safely converts a *time.Time to its "15:04:05" string.
func timeOfDayPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("15:04:05")
	return &formatted
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
