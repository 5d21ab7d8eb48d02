// Package notification writes in-app notification rows for booking events.
package notification

import (
	"context"
	"fmt"

	"grandresort/internal/domain"
	"grandresort/internal/repository"
)

type Notifier struct {
	repo *repository.NotificationRepository
}

func New(repo *repository.NotificationRepository) *Notifier {
	return &Notifier{repo: repo}
}

func (n *Notifier) NotifyBookingCreated(ctx context.Context, userID, bookingID int64, bookingNumber string) error {
	return n.repo.Create(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotificationBookingCreated,
		Title:     "Booking received",
		Message:   fmt.Sprintf("Your booking %s has been received and is awaiting confirmation.", bookingNumber),
		BookingID: &bookingID,
	})
}

func (n *Notifier) NotifyBookingConfirmed(ctx context.Context, userID, bookingID int64, bookingNumber string) error {
	return n.repo.Create(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotificationBookingConfirmed,
		Title:     "Booking confirmed",
		Message:   fmt.Sprintf("Your booking %s has been confirmed.", bookingNumber),
		BookingID: &bookingID,
	})
}

func (n *Notifier) NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, bookingNumber, reason string) error {
	msg := fmt.Sprintf("Your booking %s has been cancelled.", bookingNumber)
	if reason != "" {
		msg = fmt.Sprintf("Your booking %s has been cancelled: %s", bookingNumber, reason)
	}
	return n.repo.Create(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotificationBookingCancelled,
		Title:     "Booking cancelled",
		Message:   msg,
		BookingID: &bookingID,
	})
}
