package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"restaurant-reservations/internal/model"
)

// Rules is the booking rules engine.  The closed weekday and the opening
// hours are deployment configuration, not business constants; the clock
// is injectable so the temporal checks can be tested deterministically.
type Rules struct {
	ClosedWeekday time.Weekday // weekday on which no reservation is accepted
	OpenAt        int          // opening boundary, minutes since midnight, inclusive
	CloseAt       int          // closing boundary, minutes since midnight, inclusive
	Now           func() time.Time
}

// DefaultRules returns the reference rule set: closed on Tuesday, open
// 10:30 through 21:30.
func DefaultRules() Rules {
	return Rules{
		ClosedWeekday: time.Tuesday,
		OpenAt:        10*60 + 30,
		CloseAt:       21*60 + 30,
		Now:           time.Now,
	}
}

func (r Rules) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// ValidateReservation runs every create/edit check against the payload.
// Checks run in a fixed order and the first failure is returned, so a
// payload missing several fields reports the first missing one.
func (r Rules) ValidateReservation(p ReservationPayload) error {
	if p.FirstName == "" {
		return MissingField("first_name")
	}
	if p.LastName == "" {
		return MissingField("last_name")
	}
	if p.MobileNumber == "" {
		return MissingField("mobile_number")
	}
	if err := r.ValidateMobileNumber(p.MobileNumber); err != nil {
		return err
	}
	if p.ReservationDate == "" {
		return MissingField("reservation_date")
	}
	if err := r.ValidateDate(p.ReservationDate); err != nil {
		return err
	}
	if p.ReservationTime == "" {
		return MissingField("reservation_time")
	}
	if err := r.ValidateTime(p.ReservationDate, p.ReservationTime); err != nil {
		return err
	}
	if p.People == 0 {
		return MissingField("people")
	}
	if err := ValidatePeople(p.People); err != nil {
		return err
	}
	return ValidateCreateStatus(p.Status)
}

// ValidateMobileNumber accepts a number iff its digit-only projection is
// exactly ten digits long.  Formatting characters are ignored, so
// "(800) 555-1212" and "8005551212" are both valid.
func (r Rules) ValidateMobileNumber(mobile string) error {
	if len(digitsOnly(mobile)) != 10 {
		return Invalid("mobile_number", fmt.Sprintf("%s is not a valid mobile_number", mobile))
	}
	return nil
}

// ValidateDate accepts a date iff, compared as an eight digit number, it
// is today or later and it does not fall on the closed weekday.  Both
// failures share one combined error.
func (r Rules) ValidateDate(date string) error {
	err := Invalid("reservation_date", fmt.Sprintf(
		"reservation_date must be today or a future date and the restaurant is closed on %s, %s is not a valid reservation date",
		r.ClosedWeekday, date))

	stripped := digitsOnly(date)
	if len(stripped) != 8 {
		return err
	}
	requested, convErr := strconv.Atoi(stripped)
	if convErr != nil {
		return err
	}
	today, _ := strconv.Atoi(r.now().Format("20060102"))
	if requested < today {
		return err
	}
	day, parseErr := time.ParseInLocation("2006-01-02", date, time.Local)
	if parseErr != nil || day.Weekday() == r.ClosedWeekday {
		return err
	}
	return nil
}

// ValidateTime combines date and time into a single instant and accepts
// it iff the instant falls inside the opening hours of that date, both
// boundaries inclusive, and is not earlier than the current moment.
func (r Rules) ValidateTime(date, clock string) error {
	err := Invalid("reservation_time", fmt.Sprintf(
		"reservation_time must be a future time between %s and %s, %s is not a valid reservation time",
		clockString(r.OpenAt), clockString(r.CloseAt), clock))

	digits := digitsOnly(clock)
	if len(digits) < 4 {
		return err
	}
	hour, _ := strconv.Atoi(digits[0:2])
	minute, _ := strconv.Atoi(digits[2:4])
	if hour > 23 || minute > 59 {
		return err
	}
	day, parseErr := time.ParseInLocation("2006-01-02", date, time.Local)
	if parseErr != nil {
		return err
	}
	minuteOfDay := hour*60 + minute
	if minuteOfDay < r.OpenAt || minuteOfDay > r.CloseAt {
		return err
	}
	instant := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local)
	if instant.Before(r.now()) {
		return err
	}
	return nil
}

// ValidatePeople accepts a party size iff it is a positive integer.
func ValidatePeople(people int) error {
	if people <= 0 {
		return Invalid("people", fmt.Sprintf("%d is not a valid entry for people", people))
	}
	return nil
}

// ValidateCreateStatus rejects any attempt to create or edit a
// reservation with a status other than booked.  An unset status is
// accepted and defaults to booked.
func ValidateCreateStatus(status string) error {
	if status == "" || status == model.StatusBooked {
		return nil
	}
	return Invalid("status", "status cannot be seated or finished")
}

// ValidateStatusUpdate checks a direct status change.  The requested
// status must be one of the four known values, and the current status
// must still be non-terminal; finished and cancelled reservations reject
// every update.
func ValidateStatusUpdate(current, requested string) error {
	if !model.KnownStatus(requested) {
		return Invalid("status", fmt.Sprintf("status cannot be %s", requested))
	}
	if current != model.StatusBooked && current != model.StatusSeated {
		return Conflict(fmt.Sprintf("status %s cannot be updated", current))
	}
	return nil
}

// ValidateTable checks a table creation payload: name of at least two
// characters and a positive capacity.
func ValidateTable(p TablePayload) error {
	if p.TableName == "" {
		return MissingField("table_name")
	}
	if len(p.TableName) < 2 {
		return Invalid("table_name", fmt.Sprintf("%s is not a valid table_name", p.TableName))
	}
	if p.Capacity == 0 {
		return MissingField("capacity")
	}
	if p.Capacity < 0 {
		return Invalid("capacity", fmt.Sprintf("%d is not a valid capacity", p.Capacity))
	}
	return nil
}

// ParseWeekday resolves a weekday name such as "Tuesday" (case
// insensitive) into its time.Weekday value.
func ParseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// ParseClock converts an "HH:MM" string into minutes since midnight.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// clockString renders minutes since midnight as a 12-hour clock string
// such as "10:30am" for use in error messages.
func clockString(minutes int) string {
	hour, minute := minutes/60, minutes%60
	suffix := "am"
	if hour >= 12 {
		suffix = "pm"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d%s", h, minute, suffix)
}

// digitsOnly strips every non-digit rune from s.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
