package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cognitonow/beauty-book-next/models"
)

// gormStore implements Store on top of GORM. Production runs it against
// Postgres, tests against in-memory SQLite.
type gormStore struct {
	db *gorm.DB
}

// New wraps a GORM handle in the Store port.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// AutoMigrate creates or updates the schema for every model the store manages.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.FavoriteProvider{},
		&models.Booking{},
		&models.Service{},
		&models.Review{},
		&models.MarketplaceRequest{},
		&models.Conversation{},
		&models.Message{},
		&models.Badge{},
		&models.Achievement{},
	)
}

// translate maps driver errors onto the store's sentinel errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// isUniqueViolation detects unique-constraint failures from both PostgreSQL
// and SQLite, which phrase them differently.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// --- users ---

func (s *gormStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *gormStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) UpdateUser(ctx context.Context, id string, updates map[string]interface{}) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			return nil, translate(err)
		}
	}
	return s.GetUser(ctx, id)
}

func (s *gormStore) DeleteUser(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) AddFavoriteProvider(ctx context.Context, userID, providerID string) error {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	favorite := models.FavoriteProvider{UserID: userID, ProviderID: providerID}
	return translate(s.db.WithContext(ctx).Create(&favorite).Error)
}

func (s *gormStore) RemoveFavoriteProvider(ctx context.Context, userID, providerID string) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", userID, providerID).
		Delete(&models.FavoriteProvider{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) ListFavoriteProviders(ctx context.Context, userID string) ([]string, error) {
	var providerIDs []string
	err := s.db.WithContext(ctx).
		Model(&models.FavoriteProvider{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("provider_id", &providerIDs).Error
	if err != nil {
		return nil, translate(err)
	}
	return providerIDs, nil
}

// --- bookings ---

func (s *gormStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return translate(s.db.WithContext(ctx).Create(booking).Error)
}

func (s *gormStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (s *gormStore) ListBookings(ctx context.Context, q BookingQuery) ([]models.Booking, error) {
	query := s.db.WithContext(ctx).Model(&models.Booking{})

	switch q.Role {
	case models.RoleLooker:
		query = query.Where("looker_id = ?", q.UserID)
	case models.RoleProvider:
		query = query.Where("provider_id = ?", q.UserID)
	default:
		query = query.Where("looker_id = ? OR provider_id = ?", q.UserID, q.UserID)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	var bookings []models.Booking
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, translate(err)
	}
	return bookings, nil
}

// TransitionBooking writes the new status only if the stored status still
// equals the one the caller observed. Zero rows affected means either the
// booking vanished or another transition won the race.
func (s *gormStore) TransitionBooking(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetBooking(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrConflict
	}
	return s.GetBooking(ctx, id)
}

func (s *gormStore) TransitionPayment(ctx context.Context, id string, from, to models.PaymentStatus) (*models.Booking, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND payment_status = ?", id, from).
		Update("payment_status", to)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetBooking(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrConflict
	}
	return s.GetBooking(ctx, id)
}

// --- services ---

func (s *gormStore) CreateService(ctx context.Context, service *models.Service) error {
	return translate(s.db.WithContext(ctx).Create(service).Error)
}

func (s *gormStore) GetService(ctx context.Context, id string) (*models.Service, error) {
	var service models.Service
	if err := s.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &service, nil
}

func (s *gormStore) ListServices(ctx context.Context, providerID, category string) ([]models.Service, error) {
	query := s.db.WithContext(ctx).Model(&models.Service{})
	if providerID != "" {
		query = query.Where("provider_id = ?", providerID)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var services []models.Service
	if err := query.Order("created_at DESC").Find(&services).Error; err != nil {
		return nil, translate(err)
	}
	return services, nil
}

func (s *gormStore) UpdateService(ctx context.Context, id string, updates map[string]interface{}) (*models.Service, error) {
	if _, err := s.GetService(ctx, id); err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		err := s.db.WithContext(ctx).
			Model(&models.Service{}).
			Where("id = ?", id).
			Updates(updates).Error
		if err != nil {
			return nil, translate(err)
		}
	}
	return s.GetService(ctx, id)
}

func (s *gormStore) DeleteService(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- reviews ---

// CreateReview inserts the review, sets the booking's review back-reference
// and recomputes the provider's rating aggregates in one transaction, so a
// failure at any step leaves no half-written denormalization behind. The
// booking is re-checked inside the transaction; a review that slipped in
// between the controller's read and this write surfaces as ErrDuplicate.
func (s *gormStore) CreateReview(ctx context.Context, review *models.Review) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, "id = ?", review.BookingID).Error; err != nil {
			return translate(err)
		}
		if booking.ReviewID != nil {
			return ErrDuplicate
		}
		if booking.Status != models.BookingCompleted {
			return ErrConflict
		}

		if err := tx.Create(review).Error; err != nil {
			return translate(err)
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND review_id IS NULL", review.BookingID).
			Update("review_id", review.ID)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrDuplicate
		}

		var agg struct {
			Avg   float64
			Count int64
		}
		err := tx.Model(&models.Review{}).
			Where("provider_id = ?", review.ProviderID).
			Select("avg(overall_rating) as avg, count(*) as count").
			Scan(&agg).Error
		if err != nil {
			return translate(err)
		}

		return translate(tx.Model(&models.User{}).
			Where("id = ?", review.ProviderID).
			Updates(map[string]interface{}{"rating": agg.Avg, "review_count": agg.Count}).Error)
	})
}

func (s *gormStore) GetReview(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (s *gormStore) ListProviderReviews(ctx context.Context, providerID string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, translate(err)
	}
	return reviews, nil
}

// --- marketplace requests ---

func (s *gormStore) CreateMarketplaceRequest(ctx context.Context, request *models.MarketplaceRequest) error {
	return translate(s.db.WithContext(ctx).Create(request).Error)
}

func (s *gormStore) ListMarketplaceRequests(ctx context.Context, status models.RequestStatus, area string) ([]models.MarketplaceRequest, error) {
	query := s.db.WithContext(ctx).Model(&models.MarketplaceRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if area != "" {
		query = query.Where("area = ?", area)
	}

	var requests []models.MarketplaceRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, translate(err)
	}
	return requests, nil
}

func (s *gormStore) UpdateMarketplaceRequestStatus(ctx context.Context, id string, status models.RequestStatus, matchedProviderID string) (*models.MarketplaceRequest, error) {
	var request models.MarketplaceRequest
	if err := s.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}

	updates := map[string]interface{}{"status": status}
	if matchedProviderID != "" {
		updates["matched_provider_id"] = matchedProviderID
	}
	if err := s.db.WithContext(ctx).Model(&request).Updates(updates).Error; err != nil {
		return nil, translate(err)
	}
	return &request, nil
}

// --- conversations ---

func (s *gormStore) CreateConversation(ctx context.Context, conversation *models.Conversation) error {
	return translate(s.db.WithContext(ctx).Create(conversation).Error)
}

func (s *gormStore) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := s.db.WithContext(ctx).First(&conversation, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &conversation, nil
}

// ListUserConversations matches against the JSON-serialized participant list.
// Participant ids are verifier subjects and never contain quotes, so the
// quoted LIKE pattern cannot cross element boundaries.
func (s *gormStore) ListUserConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := s.db.WithContext(ctx).
		Where("participant_ids LIKE ?", fmt.Sprintf(`%%"%s"%%`, userID)).
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, translate(err)
	}
	return conversations, nil
}

// CreateMessage inserts the message and moves the conversation's
// last-message pointer in one transaction.
func (s *gormStore) CreateMessage(ctx context.Context, message *models.Message) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("last_message_id", message.ID).Error)
	})
}

func (s *gormStore) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, translate(err)
	}
	return messages, nil
}

// --- achievements ---

func (s *gormStore) SeedBadges(ctx context.Context, badges []models.Badge) error {
	if len(badges) == 0 {
		return nil
	}
	return translate(s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&badges).Error)
}

func (s *gormStore) ListBadges(ctx context.Context) ([]models.Badge, error) {
	var badges []models.Badge
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&badges).Error; err != nil {
		return nil, translate(err)
	}
	return badges, nil
}

func (s *gormStore) ListUserAchievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Badge").
		Order("earned_at ASC").
		Find(&achievements).Error
	if err != nil {
		return nil, translate(err)
	}
	return achievements, nil
}

// AwardBadge is idempotent: awarding a badge the user already holds is a no-op.
func (s *gormStore) AwardBadge(ctx context.Context, userID, badgeID string) error {
	achievement := models.Achievement{UserID: userID, BadgeID: badgeID}
	err := translate(s.db.WithContext(ctx).Create(&achievement).Error)
	if errors.Is(err, ErrDuplicate) {
		return nil
	}
	return err
}

func (s *gormStore) CountCompletedBookings(ctx context.Context, lookerID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("looker_id = ? AND status = ?", lookerID, models.BookingCompleted).
		Count(&count).Error
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}
