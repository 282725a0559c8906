package models

// TimeSettings is the singleton settings row: hour-of-day bounds for
// check-in/out, separate for students and teachers. A window is
// half-open: start <= hour < end.
type TimeSettings struct {
	ID                   int64
	CheckinStartHour     int
	CheckinEndHour       int
	CheckoutStartHour    int
	CheckoutEndHour      int
	TeacherCheckinStart  int
	TeacherCheckinEnd    int
	TeacherCheckoutStart int
	TeacherCheckoutEnd   int
}

// CheckinWindow returns the [start, end) check-in hours for role.
func (s TimeSettings) CheckinWindow(role Role) (int, int) {
	if role == Teacher {
		return s.TeacherCheckinStart, s.TeacherCheckinEnd
	}
	return s.CheckinStartHour, s.CheckinEndHour
}

// CheckoutWindow returns the [start, end) check-out hours for role.
func (s TimeSettings) CheckoutWindow(role Role) (int, int) {
	if role == Teacher {
		return s.TeacherCheckoutStart, s.TeacherCheckoutEnd
	}
	return s.CheckoutStartHour, s.CheckoutEndHour
}
