package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/cognitonow/beauty-book-next/store"
)

// Completed-booking thresholds for the seeded badges.
const (
	firstBookingThreshold = 1
	experiencedThreshold  = 5
	silverThreshold       = 10
)

// AchievementService awards badges when lookers hit milestones. Awarding is
// best-effort: a failure is logged and never blocks the triggering request.
type AchievementService struct {
	store store.AchievementStore
}

// NewAchievementService creates an achievement service backed by the given store.
func NewAchievementService(s store.AchievementStore) *AchievementService {
	return &AchievementService{store: s}
}

// OnBookingCompleted awards completion-count badges to the booking's looker.
func (a *AchievementService) OnBookingCompleted(ctx context.Context, lookerID string) {
	count, err := a.store.CountCompletedBookings(ctx, lookerID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", lookerID).Msg("failed to count completed bookings for badge award")
		return
	}

	if count >= firstBookingThreshold {
		a.award(ctx, lookerID, "first_booking")
	}
	if count >= experiencedThreshold {
		a.award(ctx, lookerID, "experienced")
	}
	if count >= silverThreshold {
		a.award(ctx, lookerID, "silver")
	}
}

// OnReviewSubmitted awards the first-review badge to the reviewer.
func (a *AchievementService) OnReviewSubmitted(ctx context.Context, lookerID string) {
	a.award(ctx, lookerID, "first_review")
}

func (a *AchievementService) award(ctx context.Context, userID, badgeID string) {
	if err := a.store.AwardBadge(ctx, userID, badgeID); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("badge_id", badgeID).Msg("failed to award badge")
	}
}
