//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func seedUser(t *testing.T, ctx context.Context, repo *Repository, email string) *entity.User {
	now := time.Now().UTC()
	user := &entity.User{
		Base:         entity.NewBase(now),
		Name:         "Jane Guest",
		Email:        email,
		PasswordHash: "hash",
		Provider:     entity.ProviderLocal,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}
	require.NoError(t, repo.User.Create(ctx, user))
	return user
}

func seedRoom(t *testing.T, ctx context.Context, repo *Repository, roomType string, price float64, amenities []string) *entity.Room {
	room := &entity.Room{
		BaseNoDelete: entity.NewBaseNoDelete(time.Now().UTC()),
		Title:        roomType + " Room",
		RoomType:     roomType,
		Description:  "A room",
		Price:        price,
		Capacity:     2,
		BathroomType: "private",
		Amenities:    amenities,
		Status:       entity.RoomStatusAvailable,
	}
	require.NoError(t, repo.Room.Create(ctx, room))
	return room
}

func seedBooking(t *testing.T, ctx context.Context, repo *Repository, ref string, userID, roomID *uuid.UUID, in, out string, paid entity.PaidStatus) *entity.Booking {
	booking := &entity.Booking{
		BaseNoDelete: entity.NewBaseNoDelete(time.Now().UTC()),
		Reference:    ref,
		UserID:       userID,
		RoomID:       roomID,
		FirstName:    "Jane",
		LastName:     "Guest",
		Email:        "jane@example.com",
		Phone:        "555-0100",
		RoomType:     "Deluxe",
		CheckIn:      date(in),
		CheckOut:     date(out),
		Guests:       2,
		Nights:       2,
		Rate:         150,
		Total:        300,
		Status:       entity.BookingStatusConfirmed,
		PaidStatus:   paid,
	}
	require.NoError(t, repo.Booking.Create(ctx, booking))
	return booking
}

func TestRepositoryIntegration(t *testing.T) {
	ctx := context.Background()
	db, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	repo := NewRepository(db, zap.NewNop())

	user := seedUser(t, ctx, repo, "Jane@Example.com")
	deluxe := seedRoom(t, ctx, repo, "Deluxe", 150, []string{"wifi", "minibar"})
	seedRoom(t, ctx, repo, "Standard", 80, []string{"wifi"})

	t.Run("user email lookup ignores case", func(t *testing.T) {
		found, err := repo.User.FindByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Equal(t, user.ID, found.ID)

		missing, err := repo.User.FindByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		require.Nil(t, missing)
	})

	t.Run("room search filters by amenities and price", func(t *testing.T) {
		min, max := 100.0, 200.0
		rooms, err := repo.Room.Search(ctx, entity.RoomFilter{MinPrice: &min, MaxPrice: &max}, 12, 0)
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		require.Equal(t, deluxe.ID, rooms[0].ID)
		require.ElementsMatch(t, []string{"wifi", "minibar"}, rooms[0].Amenities)

		rooms, err = repo.Room.Search(ctx, entity.RoomFilter{Amenities: []string{"wifi"}}, 12, 0)
		require.NoError(t, err)
		require.Len(t, rooms, 2)

		count, err := repo.Room.Count(ctx, entity.RoomFilter{Amenities: []string{"minibar"}})
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
	})

	t.Run("overlap counts only paid half-open ranges", func(t *testing.T) {
		seedBooking(t, ctx, repo, "BK1", &user.ID, &deluxe.ID, "2030-06-10", "2030-06-12", entity.PaidStatusPaid)
		seedBooking(t, ctx, repo, "BK2", &user.ID, &deluxe.ID, "2030-06-20", "2030-06-22", entity.PaidStatusUnpaid)

		n, err := repo.Booking.CountOverlapping(ctx, deluxe.ID, date("2030-06-11"), date("2030-06-13"))
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		// Back-to-back stays do not conflict.
		n, err = repo.Booking.CountOverlapping(ctx, deluxe.ID, date("2030-06-12"), date("2030-06-14"))
		require.NoError(t, err)
		require.Zero(t, n)

		n, err = repo.Booking.CountOverlapping(ctx, deluxe.ID, date("2030-06-20"), date("2030-06-21"))
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("transaction rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := repo.Tx.WithinTx(ctx, func(tx *Repository) error {
			require.NoError(t, tx.Booking.UpdatePaidStatus(ctx, "BK2", entity.PaidStatusPaid))
			return boom
		})
		require.ErrorIs(t, err, boom)

		booking, err := repo.Booking.FindByReference(ctx, "BK2")
		require.NoError(t, err)
		require.Equal(t, entity.PaidStatusUnpaid, booking.PaidStatus)
	})

	t.Run("payments by email newest first", func(t *testing.T) {
		email := "jane@example.com"
		for i, txn := range []string{"TXN1", "TXN2"} {
			p := &entity.Payment{
				BaseNoDelete:  entity.NewBaseNoDelete(time.Now().UTC().Add(time.Duration(i) * time.Second)),
				BookingRef:    "BK1",
				TransactionID: txn,
				PaymentMethod: "card",
				Amount:        300,
				Status:        entity.PaymentStatusCompleted,
				UserEmail:     &email,
			}
			require.NoError(t, repo.Payment.Create(ctx, p))
		}

		payments, err := repo.Payment.FindByEmail(ctx, "JANE@example.com")
		require.NoError(t, err)
		require.Len(t, payments, 2)
		require.Equal(t, "TXN2", payments[0].TransactionID)

		revenue, err := repo.Report.TotalRevenue(ctx)
		require.NoError(t, err)
		require.InDelta(t, 600.0, revenue, 0.001)
	})

	t.Run("notifications read state", func(t *testing.T) {
		n := &entity.Notification{
			BaseNoDelete: entity.NewBaseNoDelete(time.Now().UTC()),
			UserID:       user.ID,
			Type:         entity.NotificationInfo,
			Title:        "Hello",
			Message:      "World",
			Status:       entity.NotificationUnread,
		}
		require.NoError(t, repo.Notification.Create(ctx, n))

		unread, err := repo.Notification.CountUnread(ctx, user.ID)
		require.NoError(t, err)
		require.EqualValues(t, 1, unread)

		require.NoError(t, repo.Notification.MarkRead(ctx, n.ID, user.ID))
		require.NoError(t, repo.Notification.MarkRead(ctx, n.ID, user.ID))

		status := entity.NotificationUnread
		list, err := repo.Notification.FindByUserID(ctx, user.ID, &status, 50)
		require.NoError(t, err)
		require.Empty(t, list)

		err = repo.Notification.MarkRead(ctx, n.ID, uuid.New())
		require.ErrorIs(t, err, ErrNoRowsAffected)
	})

	t.Run("locked booking blocks a concurrent paid update", func(t *testing.T) {
		done := make(chan error, 1)
		err := repo.Tx.WithinTx(ctx, func(tx *Repository) error {
			booking, err := tx.Booking.FindByReferenceForUpdate(ctx, "BK2")
			require.NoError(t, err)
			require.NotNil(t, booking)

			go func() { done <- repo.Booking.UpdatePaidStatus(ctx, "BK2", entity.PaidStatusPaid) }()

			select {
			case err := <-done:
				t.Fatalf("update ran while the row was locked: %v", err)
			case <-time.After(300 * time.Millisecond):
			}

			booking.Status = entity.BookingStatusCompleted
			booking.UpdatedAt = time.Now().UTC()
			return tx.Booking.Update(ctx, booking)
		})
		require.NoError(t, err)
		require.NoError(t, <-done)

		booking, err := repo.Booking.FindByReference(ctx, "BK2")
		require.NoError(t, err)
		require.Equal(t, entity.BookingStatusCompleted, booking.Status)
		require.Equal(t, entity.PaidStatusPaid, booking.PaidStatus)

		missing, err := repo.Booking.FindByReferenceForUpdate(ctx, "NOPE")
		require.NoError(t, err)
		require.Nil(t, missing)
	})

	t.Run("complete finished keeps the time of day", func(t *testing.T) {
		seedBooking(t, ctx, repo, "BK-PAST", &user.ID, &deluxe.ID, "2029-12-28", "2029-12-30", entity.PaidStatusPaid)
		seedBooking(t, ctx, repo, "BK-TODAY", &user.ID, &deluxe.ID, "2029-12-30", "2030-01-01", entity.PaidStatusPaid)

		now := time.Date(2030, 1, 1, 15, 30, 0, 0, time.UTC)
		n, err := repo.Booking.CompleteFinished(ctx, now)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		past, err := repo.Booking.FindByReference(ctx, "BK-PAST")
		require.NoError(t, err)
		require.Equal(t, entity.BookingStatusCompleted, past.Status)
		require.True(t, past.UpdatedAt.Equal(now), "updated_at = %s", past.UpdatedAt)

		today, err := repo.Booking.FindByReference(ctx, "BK-TODAY")
		require.NoError(t, err)
		require.Equal(t, entity.BookingStatusConfirmed, today.Status)
	})

	t.Run("active tokens skip revoked and expired sessions", func(t *testing.T) {
		now := time.Now().UTC()
		newSession := func(expires time.Time) *entity.Session {
			session := &entity.Session{
				BaseSimple: entity.NewBaseSimple(now),
				UserID:     user.ID,
				Token:      uuid.New(),
				ExpiresAt:  expires,
			}
			require.NoError(t, repo.Session.Create(ctx, session))
			return session
		}

		live := newSession(now.Add(time.Hour))
		revoked := newSession(now.Add(time.Hour))
		newSession(now.Add(-time.Hour))
		require.NoError(t, repo.Session.Revoke(ctx, revoked.Token.String()))

		tokens, err := repo.Session.ActiveTokens(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, []string{live.Token.String()}, tokens)
	})
}
