package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abinijav/absensi-digital/internal/models"
	"github.com/abinijav/absensi-digital/internal/realtime"
)

type fakeStore struct {
	recs      map[string]*models.AttendanceRecord
	nextID    int64
	insertErr error
	inserts   int
	updates   int
	upserts   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{recs: map[string]*models.AttendanceRecord{}, nextID: 1}
}

func key(nis, date string) string { return nis + "|" + date }

func (s *fakeStore) Get(_ context.Context, nis, date string) (*models.AttendanceRecord, error) {
	return s.recs[key(nis, date)], nil
}

func (s *fakeStore) InsertCheckIn(_ context.Context, rec models.AttendanceRecord) (int64, error) {
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	s.inserts++
	rec.ID = s.nextID
	s.nextID++
	s.recs[key(rec.UserNIS, rec.Date)] = &rec
	return rec.ID, nil
}

func (s *fakeStore) UpdateCheckOut(_ context.Context, id int64, timeOut time.Time, selfieURL string, lat, lng float64) error {
	s.updates++
	for _, rec := range s.recs {
		if rec.ID == id {
			rec.TimeOut = &timeOut
			rec.SelfieOutURL = &selfieURL
			rec.LatitudeOut = &lat
			rec.LongitudeOut = &lng
			return nil
		}
	}
	return errors.New("no such record")
}

func (s *fakeStore) Upsert(_ context.Context, rec models.AttendanceRecord) error {
	s.upserts++
	s.recs[key(rec.UserNIS, rec.Date)] = &rec
	return nil
}

type fakeSelfies struct {
	uploads []string
	err     error
}

func (f *fakeSelfies) Upload(_ context.Context, path string, _ []byte, _ bool) error {
	if f.err != nil {
		return f.err
	}
	f.uploads = append(f.uploads, path)
	return nil
}

func (f *fakeSelfies) PublicURL(path string) string { return "https://files.example/" + path }

func testSettings() *models.TimeSettings {
	return &models.TimeSettings{
		CheckinStartHour:  7,
		CheckinEndHour:    8,
		CheckoutStartHour: 15,
		CheckoutEndHour:   17,
	}
}

func atHour(h int) time.Time {
	return time.Date(2026, 3, 9, h, 30, 0, 0, time.UTC)
}

func newGate(store *fakeStore, selfies *fakeSelfies, clock time.Time) *Gate {
	return &Gate{
		Store:   store,
		Selfies: selfies,
		Locate: LocatorFunc(func(context.Context) (Position, error) {
			return Position{Latitude: -6.2, Longitude: 106.8}, nil
		}),
		Settings: func() *models.TimeSettings { return testSettings() },
		Now:      func() time.Time { return clock },
	}
}

var student = models.User{NIS: "12345", Name: "Budi", Role: models.Student}

func TestCheckInWindow(t *testing.T) {
	cases := []struct {
		hour    int
		wantErr error
	}{
		{6, ErrOutsideWindow},
		{7, nil},              // start hour is inside
		{8, ErrOutsideWindow}, // end hour is not
	}
	for _, c := range cases {
		g := newGate(newFakeStore(), &fakeSelfies{}, atHour(c.hour))
		_, err := g.CheckIn(context.Background(), student, []byte("jpg"))
		if !errors.Is(err, c.wantErr) {
			t.Errorf("hour %d: got err %v, want %v", c.hour, err, c.wantErr)
		}
	}
}

func TestCheckInTwice(t *testing.T) {
	store := newFakeStore()
	g := newGate(store, &fakeSelfies{}, atHour(7))

	if _, err := g.CheckIn(context.Background(), student, []byte("jpg")); err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	_, err := g.CheckIn(context.Background(), student, []byte("jpg"))
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("second check-in: got %v, want ErrAlreadyCheckedIn", err)
	}
	if store.inserts != 1 {
		t.Fatalf("inserts = %d, want 1", store.inserts)
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	g := newGate(newFakeStore(), &fakeSelfies{}, atHour(15))
	_, err := g.CheckOut(context.Background(), student, []byte("jpg"))
	if !errors.Is(err, ErrNotCheckedInYet) {
		t.Fatalf("got %v, want ErrNotCheckedInYet", err)
	}
}

func TestCheckInThenOut(t *testing.T) {
	store := newFakeStore()
	selfies := &fakeSelfies{}

	g := newGate(store, selfies, atHour(7))
	rec, err := g.CheckIn(context.Background(), student, []byte("jpg"))
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if rec.Status != models.Hadir {
		t.Errorf("status = %q, want Hadir", rec.Status)
	}
	if rec.TimeIn == nil || rec.SelfieInURL == nil || rec.LatitudeIn == nil {
		t.Error("check-in fields not set")
	}

	g.Now = func() time.Time { return atHour(16) }
	out, err := g.CheckOut(context.Background(), student, []byte("jpg"))
	if err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if out.ID != rec.ID {
		t.Errorf("check-out updated id %d, want %d", out.ID, rec.ID)
	}
	if out.TimeOut == nil || out.SelfieOutURL == nil {
		t.Error("check-out fields not set")
	}
	if store.inserts != 1 || store.updates != 1 {
		t.Fatalf("inserts=%d updates=%d, want 1/1", store.inserts, store.updates)
	}

	wantPaths := []string{"12345/2026-03-09-in.jpg", "12345/2026-03-09-out.jpg"}
	if len(selfies.uploads) != 2 || selfies.uploads[0] != wantPaths[0] || selfies.uploads[1] != wantPaths[1] {
		t.Fatalf("uploads = %v, want %v", selfies.uploads, wantPaths)
	}
}

func TestCheckOutTwice(t *testing.T) {
	store := newFakeStore()
	g := newGate(store, &fakeSelfies{}, atHour(7))
	if _, err := g.CheckIn(context.Background(), student, []byte("jpg")); err != nil {
		t.Fatal(err)
	}
	g.Now = func() time.Time { return atHour(16) }
	if _, err := g.CheckOut(context.Background(), student, []byte("jpg")); err != nil {
		t.Fatal(err)
	}
	_, err := g.CheckOut(context.Background(), student, []byte("jpg"))
	if !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Fatalf("got %v, want ErrAlreadyCheckedOut", err)
	}
}

func TestLocationFailureStopsEverything(t *testing.T) {
	store := newFakeStore()
	selfies := &fakeSelfies{}
	g := newGate(store, selfies, atHour(7))
	g.Locate = LocatorFunc(func(context.Context) (Position, error) {
		return Position{}, errors.New("denied")
	})

	_, err := g.CheckIn(context.Background(), student, []byte("jpg"))
	if !errors.Is(err, ErrLocationUnavailable) {
		t.Fatalf("got %v, want ErrLocationUnavailable", err)
	}
	if len(selfies.uploads) != 0 || store.inserts != 0 {
		t.Fatalf("uploads=%d inserts=%d after location failure, want 0/0", len(selfies.uploads), store.inserts)
	}
}

func TestUploadFailureStopsWrite(t *testing.T) {
	store := newFakeStore()
	g := newGate(store, &fakeSelfies{err: errors.New("storage down")}, atHour(7))

	_, err := g.CheckIn(context.Background(), student, []byte("jpg"))
	if !errors.Is(err, ErrUpload) {
		t.Fatalf("got %v, want ErrUpload", err)
	}
	if store.inserts != 0 {
		t.Fatalf("inserts = %d after upload failure, want 0", store.inserts)
	}
}

func TestSettingsNotLoaded(t *testing.T) {
	g := newGate(newFakeStore(), &fakeSelfies{}, atHour(7))
	g.Settings = func() *models.TimeSettings { return nil }
	_, err := g.CheckIn(context.Background(), student, []byte("jpg"))
	if !errors.Is(err, ErrConfigNotReady) {
		t.Fatalf("got %v, want ErrConfigNotReady", err)
	}
}

func TestTeacherWindowIsSeparate(t *testing.T) {
	s := testSettings()
	s.TeacherCheckinStart, s.TeacherCheckinEnd = 6, 7
	teacher := models.User{NIS: "G-1", Name: "Pak Agus", Role: models.Teacher}

	g := newGate(newFakeStore(), &fakeSelfies{}, atHour(6))
	g.Settings = func() *models.TimeSettings { return s }

	if _, err := g.CheckIn(context.Background(), teacher, []byte("jpg")); err != nil {
		t.Fatalf("teacher check-in at 6: %v", err)
	}
	if _, err := g.CheckIn(context.Background(), student, []byte("jpg")); !errors.Is(err, ErrOutsideWindow) {
		t.Fatalf("student check-in at 6: got %v, want ErrOutsideWindow", err)
	}
}

func TestManualEntryUpsertsAndPublishes(t *testing.T) {
	store := newFakeStore()
	hub := realtime.NewHub()
	g := newGate(store, &fakeSelfies{}, atHour(10))
	g.Events = hub

	var got []realtime.Event
	release := hub.Subscribe("2026-03-01", func(ev realtime.Event) { got = append(got, ev) })
	defer release()

	e := ManualEntry{
		User:       student,
		Date:       "2026-03-01",
		Status:     models.Sakit,
		Keterangan: "surat dokter",
	}
	if err := g.RecordManual(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if err := g.RecordManual(context.Background(), e); err != nil {
		t.Fatal(err)
	}

	if store.upserts != 2 {
		t.Fatalf("upserts = %d, want 2", store.upserts)
	}
	if len(store.recs) != 1 {
		t.Fatalf("records = %d, want 1 after repeated manual entry", len(store.recs))
	}
	if len(got) != 2 || got[0].Op != realtime.OpUpdate {
		t.Fatalf("events = %v, want two updates", got)
	}
}
