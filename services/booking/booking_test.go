package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingRepo "counselbook/database/repository/booking"
	counselorRepo "counselbook/database/repository/counselor"
	"counselbook/models"
)

type slotKey struct {
	counselorID int64
	date        string
	timeSlot    string
}

// fakeBookingRepo is an in-memory slot registry.
type fakeBookingRepo struct {
	slots  map[slotKey]*models.Booking
	nextID int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{slots: make(map[slotKey]*models.Booking), nextID: 1}
}

func (r *fakeBookingRepo) Claim(_ context.Context, b *models.Booking) error {
	key := slotKey{b.CounselorID, b.Date, b.TimeSlot}
	if _, taken := r.slots[key]; taken {
		return bookingRepo.ErrSlotTaken
	}
	b.ID = r.nextID
	b.CreatedAt = time.Now()
	r.nextID++
	r.slots[key] = b
	return nil
}

func (r *fakeBookingRepo) Release(_ context.Context, bookingID, userID int64) error {
	for key, b := range r.slots {
		if b.ID == bookingID && b.UserID == userID {
			delete(r.slots, key)
			return nil
		}
	}
	return bookingRepo.ErrNotFound
}

func (r *fakeBookingRepo) ListByCounselor(_ context.Context, counselorID int64) ([]models.BookedSlot, error) {
	slots := []models.BookedSlot{}
	for key := range r.slots {
		if key.counselorID == counselorID {
			slots = append(slots, models.BookedSlot{Date: key.date, Time: key.timeSlot})
		}
	}
	return slots, nil
}

func (r *fakeBookingRepo) ListByUser(_ context.Context, userID int64) ([]models.UserBooking, error) {
	bookings := []models.UserBooking{}
	for _, b := range r.slots {
		if b.UserID == userID {
			bookings = append(bookings, models.UserBooking{ID: b.ID, Date: b.Date, TimeSlot: b.TimeSlot, Reason: b.Reason})
		}
	}
	return bookings, nil
}

// fakeCounselorRepo knows counselors 1..6.
type fakeCounselorRepo struct{}

func (fakeCounselorRepo) GetAll(context.Context) ([]models.Counselor, error) {
	return []models.Counselor{{ID: 1, Name: "Dr. Test"}}, nil
}

func (fakeCounselorRepo) GetByID(_ context.Context, id int64) (*models.Counselor, error) {
	if id < 1 || id > 6 {
		return nil, counselorRepo.ErrNotFound
	}
	return &models.Counselor{ID: id, Name: "Dr. Test"}, nil
}

func newTestService() (*DefaultBookingService, *fakeBookingRepo) {
	repo := newFakeBookingRepo()
	return NewDefaultBookingService(repo, fakeCounselorRepo{}, zap.NewNop()), repo
}

func validInput() models.BookingInput {
	return models.BookingInput{CounselorID: 1, Date: "2025-06-01", TimeSlot: "10:00"}
}

func TestBook(t *testing.T) {
	svc, _ := newTestService()

	b, err := svc.Book(context.Background(), 7, validInput())
	require.NoError(t, err)
	require.NotZero(t, b.ID)
	require.Equal(t, int64(7), b.UserID)
	require.Equal(t, int64(1), b.CounselorID)
}

func TestBookValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.BookingInput)
	}{
		{"zero counselor id", func(in *models.BookingInput) { in.CounselorID = 0 }},
		{"negative counselor id", func(in *models.BookingInput) { in.CounselorID = -3 }},
		{"empty date", func(in *models.BookingInput) { in.Date = "" }},
		{"malformed date", func(in *models.BookingInput) { in.Date = "June 1st 2025" }},
		{"date with time", func(in *models.BookingInput) { in.Date = "2025-06-01T10:00" }},
		{"empty time slot", func(in *models.BookingInput) { in.TimeSlot = "" }},
		{"reason too long", func(in *models.BookingInput) { in.Reason = strings.Repeat("x", 4001) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Book(ctx, 1, in)
			var vErr ValidationError
			require.ErrorAs(t, err, &vErr)
			require.NotEmpty(t, vErr.Message)
		})
	}
}

func TestBookUnknownCounselor(t *testing.T) {
	svc, _ := newTestService()

	in := validInput()
	in.CounselorID = 42
	_, err := svc.Book(context.Background(), 1, in)
	require.ErrorIs(t, err, ErrCounselorNotFound)
}

func TestBookSlotConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Book(ctx, 1, validInput())
	require.NoError(t, err)

	_, err = svc.Book(ctx, 2, validInput())
	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestBookSanitizesReason(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	tests := []struct {
		name   string
		reason string
		want   string
	}{
		{"script tag stripped entirely", "<script>alert(1)</script>", ""},
		{"markup stripped, text kept", "<b>stress</b> at work", "stress at work"},
		{"attributes do not survive", `<a href="https://evil.test" onclick="x()">help</a>`, "help"},
		{"whitespace trimmed", "  plain reason  ", "plain reason"},
		{"plain text untouched", "feeling anxious", "feeling anxious"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.TimeSlot = tt.name // unique slot per case
			in.Reason = tt.reason
			b, err := svc.Book(ctx, 1, in)
			require.NoError(t, err)
			require.Equal(t, tt.want, b.Reason)

			stored := repo.slots[slotKey{1, in.Date, in.TimeSlot}]
			require.NotContains(t, stored.Reason, "<")
			require.NotContains(t, stored.Reason, ">")
		})
	}
}

func TestCancel(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	b, err := svc.Book(ctx, 1, validInput())
	require.NoError(t, err)

	require.ErrorIs(t, svc.Cancel(ctx, b.ID, 2), ErrBookingNotFound)
	require.NoError(t, svc.Cancel(ctx, b.ID, 1))
	require.ErrorIs(t, svc.Cancel(ctx, b.ID, 1), ErrBookingNotFound)
}

func TestAvailability(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Availability(ctx, 42)
	require.ErrorIs(t, err, ErrCounselorNotFound)

	slots, err := svc.Availability(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, slots)

	_, err = svc.Book(ctx, 1, validInput())
	require.NoError(t, err)

	slots, err = svc.Availability(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []models.BookedSlot{{Date: "2025-06-01", Time: "10:00"}}, slots)
}
