package usecase

import (
	"context"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/storage"
	"hotel-booking/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ==================== REPOSITORIES ====================

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role entity.UserRole) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	s, _ := args.Get(0).(*entity.Session)
	return s, args.Error(1)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockSessionRepo) RevokeOtherSessions(ctx context.Context, userID uuid.UUID, keepToken string) ([]string, error) {
	args := m.Called(ctx, userID, keepToken)
	tokens, _ := args.Get(0).([]string)
	return tokens, args.Error(1)
}

func (m *mockSessionRepo) ActiveTokens(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	tokens, _ := args.Get(0).([]string)
	return tokens, args.Error(1)
}

func (m *mockSessionRepo) CleanExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockRoomRepo struct{ mock.Mock }

func (m *mockRoomRepo) Create(ctx context.Context, room *entity.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.Room)
	return r, args.Error(1)
}

func (m *mockRoomRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.Room)
	return r, args.Error(1)
}

func (m *mockRoomRepo) FindSummary(ctx context.Context, id uuid.UUID) (*entity.RoomSummary, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.RoomSummary)
	return r, args.Error(1)
}

func (m *mockRoomRepo) Search(ctx context.Context, filter entity.RoomFilter, limit, offset int) ([]*entity.RoomSummary, error) {
	args := m.Called(ctx, filter, limit, offset)
	r, _ := args.Get(0).([]*entity.RoomSummary)
	return r, args.Error(1)
}

func (m *mockRoomRepo) Count(ctx context.Context, filter entity.RoomFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRoomRepo) ListWithBookingCounts(ctx context.Context) ([]*entity.RoomSummary, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]*entity.RoomSummary)
	return r, args.Error(1)
}

func (m *mockRoomRepo) Update(ctx context.Context, room *entity.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *mockRoomRepo) UpdatePrice(ctx context.Context, id uuid.UUID, price float64) error {
	return m.Called(ctx, id, price).Error(0)
}

func (m *mockRoomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRoomRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) FindByReference(ctx context.Context, ref string) (*entity.Booking, error) {
	args := m.Called(ctx, ref)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) FindByReferenceForUpdate(ctx context.Context, ref string) (*entity.Booking, error) {
	args := m.Called(ctx, ref)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	args := m.Called(ctx, userID)
	b, _ := args.Get(0).([]*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) UpdatePaidStatus(ctx context.Context, ref string, status entity.PaidStatus) error {
	return m.Called(ctx, ref, status).Error(0)
}

func (m *mockBookingRepo) CountOverlapping(ctx context.Context, roomID uuid.UUID, in, out time.Time) (int64, error) {
	args := m.Called(ctx, roomID, in, out)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) FindBookedInRange(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	args := m.Called(ctx, roomID, from, to)
	b, _ := args.Get(0).([]*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) SummaryByUser(ctx context.Context, userID uuid.UUID, today time.Time) (*entity.BookingSummary, error) {
	args := m.Called(ctx, userID, today)
	s, _ := args.Get(0).(*entity.BookingSummary)
	return s, args.Error(1)
}

func (m *mockBookingRepo) CompleteFinished(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) FindAll(ctx context.Context, filter entity.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, filter, limit, offset)
	b, _ := args.Get(0).([]*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) CountAll(ctx context.Context, filter entity.BookingFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) FindRecent(ctx context.Context, limit int) ([]*entity.Booking, error) {
	args := m.Called(ctx, limit)
	b, _ := args.Get(0).([]*entity.Booking)
	return b, args.Error(1)
}

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Payment)
	return p, args.Error(1)
}

func (m *mockPaymentRepo) FindByTransactionID(ctx context.Context, txn string) (*entity.Payment, error) {
	args := m.Called(ctx, txn)
	p, _ := args.Get(0).(*entity.Payment)
	return p, args.Error(1)
}

func (m *mockPaymentRepo) FindByBookingRef(ctx context.Context, ref string) ([]*entity.Payment, error) {
	args := m.Called(ctx, ref)
	p, _ := args.Get(0).([]*entity.Payment)
	return p, args.Error(1)
}

func (m *mockPaymentRepo) FindByEmail(ctx context.Context, email string) ([]*entity.Payment, error) {
	args := m.Called(ctx, email)
	p, _ := args.Get(0).([]*entity.Payment)
	return p, args.Error(1)
}

func (m *mockPaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *mockPaymentRepo) FindPendingVerification(ctx context.Context) ([]*entity.Payment, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]*entity.Payment)
	return p, args.Error(1)
}

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNotificationRepo) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Notification, error) {
	args := m.Called(ctx, id, userID)
	n, _ := args.Get(0).(*entity.Notification)
	return n, args.Error(1)
}

func (m *mockNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.NotificationStatus, limit int) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID, status, limit)
	n, _ := args.Get(0).([]*entity.Notification)
	return n, args.Error(1)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

type mockReviewRepo struct{ mock.Mock }

func (m *mockReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.Review)
	return r, args.Error(1)
}

func (m *mockReviewRepo) FindByRoomID(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	args := m.Called(ctx, roomID, limit, offset)
	r, _ := args.Get(0).([]*entity.Review)
	return r, args.Error(1)
}

func (m *mockReviewRepo) FindByBookingRef(ctx context.Context, ref string) (*entity.Review, error) {
	args := m.Called(ctx, ref)
	r, _ := args.Get(0).(*entity.Review)
	return r, args.Error(1)
}

func (m *mockReviewRepo) CountByRoomID(ctx context.Context, roomID uuid.UUID) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReviewRepo) GetRoomReviewStats(ctx context.Context, roomID uuid.UUID) (float64, int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

type mockReportRepo struct{ mock.Mock }

func (m *mockReportRepo) TotalRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockReportRepo) CountBookings(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReportRepo) AverageBookingValue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockReportRepo) CountPendingVerification(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReportRepo) BookingStatsSince(ctx context.Context, since time.Time) ([]entity.DailyBookingStat, error) {
	args := m.Called(ctx, since)
	s, _ := args.Get(0).([]entity.DailyBookingStat)
	return s, args.Error(1)
}

func (m *mockReportRepo) RevenueByMethod(ctx context.Context) ([]entity.MethodRevenue, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]entity.MethodRevenue)
	return r, args.Error(1)
}

func (m *mockReportRepo) TopRoomTypes(ctx context.Context, limit int) ([]entity.RoomTypeStat, error) {
	args := m.Called(ctx, limit)
	r, _ := args.Get(0).([]entity.RoomTypeStat)
	return r, args.Error(1)
}

func (m *mockReportRepo) CustomerStats(ctx context.Context, limit, offset int) ([]*entity.CustomerStats, error) {
	args := m.Called(ctx, limit, offset)
	c, _ := args.Get(0).([]*entity.CustomerStats)
	return c, args.Error(1)
}

func (m *mockReportRepo) CountCustomers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// passthroughTx runs the unit of work against the same mocked repositories
// and counts how many units ran.
type passthroughTx struct {
	repo  *repository.Repository
	calls int
}

func (p *passthroughTx) WithinTx(ctx context.Context, fn func(tx *repository.Repository) error) error {
	p.calls++
	return fn(p.repo)
}

type repoMocks struct {
	user         *mockUserRepo
	session      *mockSessionRepo
	room         *mockRoomRepo
	booking      *mockBookingRepo
	payment      *mockPaymentRepo
	notification *mockNotificationRepo
	review       *mockReviewRepo
	report       *mockReportRepo
	tx           *passthroughTx
}

func newRepoMocks() (*repository.Repository, *repoMocks) {
	m := &repoMocks{
		user:         &mockUserRepo{},
		session:      &mockSessionRepo{},
		room:         &mockRoomRepo{},
		booking:      &mockBookingRepo{},
		payment:      &mockPaymentRepo{},
		notification: &mockNotificationRepo{},
		review:       &mockReviewRepo{},
		report:       &mockReportRepo{},
	}
	repo := &repository.Repository{
		User:         m.user,
		Session:      m.session,
		Room:         m.room,
		Booking:      m.booking,
		Payment:      m.payment,
		Notification: m.notification,
		Review:       m.review,
		Report:       m.report,
	}
	m.tx = &passthroughTx{repo: repo}
	repo.Tx = m.tx
	return repo, m
}

// ==================== COLLABORATORS ====================

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyBookingConfirmation(ctx context.Context, b *entity.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockNotifier) NotifyPaymentReceived(ctx context.Context, b *entity.Booking, p *entity.Payment) error {
	return m.Called(ctx, b, p).Error(0)
}

func (m *mockNotifier) NotifyBookingCancelled(ctx context.Context, b *entity.Booking, refund float64) error {
	return m.Called(ctx, b, refund).Error(0)
}

func (m *mockNotifier) NotifyPaymentProofReceived(ctx context.Context, b *entity.Booking, p *entity.Payment) error {
	return m.Called(ctx, b, p).Error(0)
}

func (m *mockNotifier) NotifyPaymentVerified(ctx context.Context, b *entity.Booking, p *entity.Payment) error {
	return m.Called(ctx, b, p).Error(0)
}

func (m *mockNotifier) NotifyPaymentRejected(ctx context.Context, b *entity.Booking, comment *string) error {
	return m.Called(ctx, b, comment).Error(0)
}

type mockStore struct{ mock.Mock }

func (m *mockStore) Save(ctx context.Context, folder, ext string, data []byte) (*storage.StoredFile, error) {
	args := m.Called(ctx, folder, ext, data)
	f, _ := args.Get(0).(*storage.StoredFile)
	return f, args.Error(1)
}

func (m *mockStore) URL(key string) string {
	return "https://files.example.com/" + key
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockSessionCache struct{ mock.Mock }

func (m *mockSessionCache) Get(ctx context.Context, token string) (*cache.SessionEntry, error) {
	args := m.Called(ctx, token)
	e, _ := args.Get(0).(*cache.SessionEntry)
	return e, args.Error(1)
}

func (m *mockSessionCache) Set(ctx context.Context, token string, entry *cache.SessionEntry) error {
	return m.Called(ctx, token, entry).Error(0)
}

func (m *mockSessionCache) Delete(ctx context.Context, tokens ...string) error {
	args := make([]any, 0, len(tokens)+1)
	args = append(args, ctx)
	for _, t := range tokens {
		args = append(args, t)
	}
	return m.Called(args...).Error(0)
}

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) Dispatch(ctx context.Context, n *entity.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func fixedNow() time.Time {
	return time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
}
