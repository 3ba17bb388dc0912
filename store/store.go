// Package store defines the storage port the HTTP controllers depend on and
// its GORM-backed implementation. Controllers receive a Store at construction
// time, so tests can run the real implementation against an in-memory SQLite
// database or substitute a fake entirely.
package store

import (
	"context"
	"errors"

	"github.com/cognitonow/beauty-book-next/models"
)

// Sentinel errors controllers translate into HTTP status codes.
var (
	// ErrNotFound means the addressed record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a uniqueness rule rejected the write.
	ErrDuplicate = errors.New("record already exists")
	// ErrConflict means a conditional update lost against a concurrent writer.
	ErrConflict = errors.New("record was modified concurrently")
)

// BookingQuery selects bookings for a user, optionally narrowed by the side
// of the engagement and by status.
type BookingQuery struct {
	UserID string
	Role   string // models.RoleLooker, models.RoleProvider, or empty for either side
	Status models.BookingStatus
}

// UserStore persists profiles and the favorite-providers set.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, updates map[string]interface{}) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	AddFavoriteProvider(ctx context.Context, userID, providerID string) error
	RemoveFavoriteProvider(ctx context.Context, userID, providerID string) error
	ListFavoriteProviders(ctx context.Context, userID string) ([]string, error)
}

// BookingStore persists bookings. Status and payment transitions are applied
// as compare-and-swap conditional updates keyed on the state the caller
// observed, so a lost-update race surfaces as ErrConflict instead of silently
// overwriting a concurrent transition.
type BookingStore interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, q BookingQuery) ([]models.Booking, error)
	TransitionBooking(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error)
	TransitionPayment(ctx context.Context, id string, from, to models.PaymentStatus) (*models.Booking, error)
}

// ServiceStore persists the provider service catalog.
type ServiceStore interface {
	CreateService(ctx context.Context, service *models.Service) error
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context, providerID, category string) ([]models.Service, error)
	UpdateService(ctx context.Context, id string, updates map[string]interface{}) (*models.Service, error)
	DeleteService(ctx context.Context, id string) error
}

// ReviewStore persists reviews. CreateReview runs the insert, the booking's
// review back-reference and the provider rating recompute in one transaction.
type ReviewStore interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReview(ctx context.Context, id string) (*models.Review, error)
	ListProviderReviews(ctx context.Context, providerID string) ([]models.Review, error)
}

// MarketplaceStore persists lookers' open marketplace requests.
type MarketplaceStore interface {
	CreateMarketplaceRequest(ctx context.Context, request *models.MarketplaceRequest) error
	ListMarketplaceRequests(ctx context.Context, status models.RequestStatus, area string) ([]models.MarketplaceRequest, error)
	UpdateMarketplaceRequestStatus(ctx context.Context, id string, status models.RequestStatus, matchedProviderID string) (*models.MarketplaceRequest, error)
}

// ConversationStore persists conversations and their messages. CreateMessage
// updates the conversation's denormalized last-message pointer in the same
// transaction as the insert.
type ConversationStore interface {
	CreateConversation(ctx context.Context, conversation *models.Conversation) error
	GetConversation(ctx context.Context, id string) (*models.Conversation, error)
	ListUserConversations(ctx context.Context, userID string) ([]models.Conversation, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	ListMessages(ctx context.Context, conversationID string) ([]models.Message, error)
}

// AchievementStore persists the badge catalog and earned achievements.
type AchievementStore interface {
	SeedBadges(ctx context.Context, badges []models.Badge) error
	ListBadges(ctx context.Context) ([]models.Badge, error)
	ListUserAchievements(ctx context.Context, userID string) ([]models.Achievement, error)
	AwardBadge(ctx context.Context, userID, badgeID string) error
	CountCompletedBookings(ctx context.Context, lookerID string) (int64, error)
}

// Store is the full storage port injected into controller construction.
type Store interface {
	UserStore
	BookingStore
	ServiceStore
	ReviewStore
	MarketplaceStore
	ConversationStore
	AchievementStore
}
