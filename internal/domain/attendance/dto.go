package attendance

import (
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/validator"
)

type PunchInRequest struct {
	UserID    string   `json:"-"` // taken from the authenticated actor
	Location  *string  `json:"location,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *PunchInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "coordinates",
			Message: "latitude and longitude must be provided together",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchOutRequest struct {
	UserID string `json:"-"`
}

// UpdateStatusRequest is the administrative override for non-punch days
// (LEAVE, HOLIDAY, WEEKEND, ABSENT, HALF_DAY).
type UpdateStatusRequest struct {
	ID     string `json:"-"` // from the URL
	UserID string `json:"user_id,omitempty"`
	Date   string `json:"date,omitempty"`
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) && (validator.IsEmpty(r.UserID) || validator.IsEmpty(r.Date)) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "either id or the (user_id, date) pair is required",
		})
	}

	if !validator.IsEmpty(r.Date) {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of PRESENT, ABSENT, HALF_DAY, LEAVE, HOLIDAY, WEEKEND",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceFilter struct {
	UserID   string
	Status   string
	DateFrom string
	DateTo   string
	Page     int
	Limit    int
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != "" && !Status(f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is not a known attendance status",
		})
	}

	if f.DateFrom != "" {
		if _, ok := validator.IsValidDate(f.DateFrom); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "date_from must be in YYYY-MM-DD format",
			})
		}
	}
	if f.DateTo != "" {
		if _, ok := validator.IsValidDate(f.DateTo); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_to",
				Message: "date_to must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	UserName       *string  `json:"user_name,omitempty"`
	Date           string   `json:"date"`
	PunchInTime    *string  `json:"punch_in_time,omitempty"`
	PunchOutTime   *string  `json:"punch_out_time,omitempty"`
	WorkingHours   int      `json:"working_hours"`
	WorkingMinutes int      `json:"working_minutes"`
	Status         string   `json:"status"`
	IsLate         *bool    `json:"is_late,omitempty"`
	IsEarlyOut     *bool    `json:"is_early_departure,omitempty"`
	Location       *string  `json:"location,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}
