package attendance

import "errors"

// Everything the gate can refuse with. All of these go straight to the
// user; nothing is retried.
var (
	ErrOutsideWindow       = errors.New("outside the allowed time window")
	ErrAlreadyCheckedIn    = errors.New("already checked in today")
	ErrAlreadyCheckedOut   = errors.New("already checked out today")
	ErrNotCheckedInYet     = errors.New("not checked in yet")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrConfigNotReady      = errors.New("time settings not loaded yet")
	ErrStoreRead           = errors.New("attendance read failed")
	ErrStoreWrite          = errors.New("attendance write failed")
	ErrUpload              = errors.New("selfie upload failed")
)
