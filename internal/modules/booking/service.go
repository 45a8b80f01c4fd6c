package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"gutvbooker/internal/database"
	"gutvbooker/internal/domain"
	"gutvbooker/internal/logger"
)

type Options struct {
	AdvanceNoticeDays int
	MaxAttempts       int
}

type Service struct {
	users    UserRepository
	catalog  CatalogRepository
	bookings BookingRepository
	events   EventPublisher
	opts     Options
	now      func() time.Time
}

func NewService(
	users UserRepository,
	catalog CatalogRepository,
	bookings BookingRepository,
	events EventPublisher,
	opts Options,
) *Service {
	if events == nil {
		events = noopPublisher{}
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &Service{
		users:    users,
		catalog:  catalog,
		bookings: bookings,
		events:   events,
		opts:     opts,
		now:      time.Now,
	}
}

// CreateBooking allocates one free item per requested type and stores a
// Pending booking for them. Either every type is served or nothing is saved.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest, requesterID int64) (*BookingResponse, error) {
	user, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load requester: %w", err)
	}
	if user.Banned {
		return nil, ErrBanned
	}

	iv := Interval{Start: req.Start, End: req.End}.Normalize()
	if err := validateCreate(req, iv); err != nil {
		return nil, err
	}

	var warnings []string
	if s.opts.AdvanceNoticeDays > 0 {
		notice := time.Duration(s.opts.AdvanceNoticeDays) * 24 * time.Hour
		if iv.Start.Sub(s.now()) < notice {
			warnings = append(warnings, fmt.Sprintf(
				"booking starts in less than %d days; approval is not guaranteed", s.opts.AdvanceNoticeDays))
		}
	}

	// Types are read before the transaction opens; with SQLite the
	// transaction owns the only connection.
	types, err := s.catalog.GetTypesByIDs(ctx, uniqueIDs(req.EquipmentTypeIDs))
	if err != nil {
		return nil, fmt.Errorf("load equipment types: %w", err)
	}

	var (
		created   *domain.Booking
		allocated []domain.EquipmentItem
		tierWarns []string
	)
	for attempt := 1; ; attempt++ {
		created, allocated, tierWarns = nil, nil, nil

		err = s.bookings.WithinTransaction(ctx, func(tx BookingStore) error {
			items, err := AllocateItems(ctx, tx, req.EquipmentTypeIDs, iv, nil)
			if err != nil {
				return err
			}

			tierWarns, err = checkTiers(user, items, types)
			if err != nil {
				return err
			}

			b := &domain.Booking{
				UserID:    user.ID,
				Name:      strings.TrimSpace(req.Name),
				Comment:   req.Comment,
				StartDate: iv.Start,
				EndDate:   iv.End,
				Status:    domain.BookingPending,
				Items:     make([]domain.BookingItem, 0, len(items)),
			}
			for _, it := range items {
				b.Items = append(b.Items, domain.BookingItem{
					EquipmentItemID: it.ID,
					StartDate:       iv.Start,
					EndDate:         iv.End,
				})
			}
			if err := tx.Create(ctx, b); err != nil {
				return fmt.Errorf("insert booking: %w", err)
			}

			created, allocated = b, items
			return nil
		})
		if err == nil {
			break
		}
		if !database.IsRetryable(err) {
			return nil, err
		}
		if attempt >= s.opts.MaxAttempts {
			logger.WarnContext(ctx, "booking allocation gave up", "user_id", user.ID, "attempts", attempt, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		logger.WarnContext(ctx, "booking allocation conflict, retrying", "user_id", user.ID, "attempt", attempt, "error", err)
	}

	warnings = append(warnings, tierWarns...)

	inv := make(map[int64]domain.EquipmentItem, len(allocated))
	for _, it := range allocated {
		inv[it.ID] = it
	}
	resp := toResponse(created, inv, 0, warnings)

	logger.InfoContext(ctx, "booking created",
		"booking_id", created.ID, "user_id", user.ID, "items", len(allocated))
	s.events.Publish(EventCreated, BookingEvent{BookingID: created.ID, UserID: created.UserID, Status: string(created.Status)})

	return &resp, nil
}

func validateCreate(req CreateBookingRequest, iv Interval) error {
	fields := map[string]string{}
	if req.Start.IsZero() {
		fields["start"] = "is required"
	}
	if req.End.IsZero() {
		fields["end"] = "is required"
	}
	if len(fields) == 0 && !iv.Valid() {
		fields["end"] = "must be after start"
	}
	if len(req.EquipmentTypeIDs) == 0 {
		fields["equipmentTypeIds"] = "at least one equipment type is required"
	}
	for _, id := range req.EquipmentTypeIDs {
		if id <= 0 {
			fields["equipmentTypeIds"] = "ids must be positive"
			break
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// checkTiers fails on the first Ronin type the user may not book and
// returns one warning per Osnova type they lack access to.
func checkTiers(user *domain.User, items []domain.EquipmentItem, types map[int64]domain.EquipmentType) ([]string, error) {
	var warnings []string
	warned := make(map[int64]bool)

	for _, it := range items {
		t, ok := types[it.EquipmentTypeID]
		if !ok || user.HasTier(t.AccessTier) {
			continue
		}
		switch t.AccessTier {
		case domain.TierRonin:
			return nil, &TierDeniedError{TypeID: t.ID, TypeName: t.Name}
		case domain.TierOsnova:
			if !warned[t.ID] {
				warned[t.ID] = true
				warnings = append(warnings, fmt.Sprintf("%q requires Osnova access; an admin will review the request", t.Name))
			}
		}
	}
	return warnings, nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*BookingResponse, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, b)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]BookingResponse, error) {
	list, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by user: %w", err)
	}
	return s.responses(ctx, list, 0)
}

func (s *Service) ListByStatus(ctx context.Context, status string) ([]BookingResponse, error) {
	st, err := domain.ParseBookingStatus(status)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"status": "unknown booking status"}}
	}
	list, err := s.bookings.ListByStatus(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("list bookings by status: %w", err)
	}
	return s.responses(ctx, list, 0)
}

// ListByEquipmentItem returns every booking of the item; each booking shows
// only its line for that item.
func (s *Service) ListByEquipmentItem(ctx context.Context, itemID int64) ([]BookingResponse, error) {
	list, err := s.bookings.ListByEquipmentItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by item: %w", err)
	}
	return s.responses(ctx, list, itemID)
}

func (s *Service) ListByInventoryNumber(ctx context.Context, inv string) ([]BookingResponse, error) {
	inv = strings.TrimSpace(inv)
	if inv == "" {
		return []BookingResponse{}, nil
	}

	item, err := s.catalog.GetItemByInventoryNumber(ctx, inv)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []BookingResponse{}, nil
		}
		return nil, fmt.Errorf("find item %q: %w", inv, err)
	}
	return s.ListByEquipmentItem(ctx, item.ID)
}

func (s *Service) ApproveBooking(ctx context.Context, id, adminID int64) (*BookingResponse, error) {
	return s.transition(ctx, id, adminID, domain.BookingPending, domain.BookingApproved, EventApproved)
}

// CompleteBooking only accepts Approved bookings.
func (s *Service) CompleteBooking(ctx context.Context, id, adminID int64) (*BookingResponse, error) {
	return s.transition(ctx, id, adminID, domain.BookingApproved, domain.BookingCompleted, EventCompleted)
}

func (s *Service) transition(ctx context.Context, id, adminID int64, from, to domain.BookingStatus, event string) (*BookingResponse, error) {
	ok, err := s.bookings.UpdateStatus(ctx, id, from, to)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: booking %d is %s, expected %s", ErrInvalidStatusTransition, id, b.Status, from)
	}

	logger.InfoContext(ctx, "booking status changed",
		"booking_id", id, "from", from, "to", to, "admin_id", adminID)
	s.events.Publish(event, BookingEvent{BookingID: b.ID, UserID: b.UserID, Status: string(b.Status), ActorID: adminID})

	return s.respond(ctx, b)
}

// CancelBooking deletes the booking and its items. Only the owner or an
// admin may cancel, and only while the booking is Pending or Approved.
func (s *Service) CancelBooking(ctx context.Context, id, requesterID int64, isAdmin bool) error {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && b.UserID != requesterID {
		return ErrForbidden
	}
	if !b.Status.IsActive() {
		return fmt.Errorf("%w: booking %d is %s and cannot be cancelled", ErrInvalidStatusTransition, id, b.Status)
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}

	logger.InfoContext(ctx, "booking cancelled", "booking_id", id, "by", requesterID, "admin", isAdmin)
	s.events.Publish(EventCancelled, BookingEvent{BookingID: id, UserID: b.UserID, Status: string(domain.BookingCancelled), ActorID: requesterID})
	return nil
}

func (s *Service) MarkItemReturned(ctx context.Context, bookingID, bookingItemID int64) (*BookingResponse, error) {
	if err := s.bookings.MarkItemReturned(ctx, bookingID, bookingItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mark item returned: %w", err)
	}
	return s.GetBooking(ctx, bookingID)
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking %d: %w", id, err)
	}
	return b, nil
}

func (s *Service) respond(ctx context.Context, b *domain.Booking) (*BookingResponse, error) {
	out, err := s.responses(ctx, []domain.Booking{*b}, 0)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *Service) responses(ctx context.Context, list []domain.Booking, keep int64) ([]BookingResponse, error) {
	out := make([]BookingResponse, 0, len(list))
	if len(list) == 0 {
		return out, nil
	}

	var ids []int64
	for _, b := range list {
		for _, bi := range b.Items {
			ids = append(ids, bi.EquipmentItemID)
		}
	}
	inv, err := s.catalog.GetItemsByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("load equipment items: %w", err)
	}

	for i := range list {
		out = append(out, toResponse(&list[i], inv, keep, nil))
	}
	return out, nil
}
