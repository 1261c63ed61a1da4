package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"pixelgram/backend/internal/hub"
	"pixelgram/backend/internal/models"
	"pixelgram/backend/internal/repository"
)

var (
	// ErrFollowSelf is returned when a user tries to follow themselves.
	ErrFollowSelf = errors.New("cannot follow self")

	// ErrUnknownAction is returned for request actions other than accept/reject.
	ErrUnknownAction = errors.New("unknown request action")

	// ErrNoPendingRequest is returned when a request resolution finds no
	// pending follow row to act on.
	ErrNoPendingRequest = errors.New("no pending follow request")
)

// Request actions accepted by ResolveRequest.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

// SocialService implements the follow-relationship state machine and its
// notification side effects. Notifications are best-effort on every path: a
// failed insert is logged and never rolls back the row mutation.
type SocialService struct {
	follows       repository.FollowRepository
	notifications repository.NotificationRepository
	events        *hub.Hub
	log           *zap.Logger
}

// NewSocialService wires the service. events may be nil when no live stream
// fan-out is wanted.
func NewSocialService(follows repository.FollowRepository, notifications repository.NotificationRepository, events *hub.Hub, log *zap.Logger) *SocialService {
	return &SocialService{
		follows:       follows,
		notifications: notifications,
		events:        events,
		log:           log,
	}
}

// ToggleFollow flips the relationship for an ordered pair. With no existing
// row it follows (pending when the target is private, accepted otherwise) and
// notifies the target; with an existing row of any status it unfollows and
// emits nothing. The returned status is nil after an unfollow.
//
// The follow branch is a single conditional insert at the store, so two
// concurrent toggles for the same pair cannot both create the row; the loser
// observes the existing row and takes the unfollow branch.
func (s *SocialService) ToggleFollow(ctx context.Context, followerID, followingID string, targetIsPrivate bool) (*models.FollowStatus, error) {
	if followerID == followingID {
		return nil, ErrFollowSelf
	}

	status := models.StatusAccepted
	notificationType := models.NotificationFollowStarted
	if targetIsPrivate {
		status = models.StatusPending
		notificationType = models.NotificationFollowRequest
	}

	created, err := s.follows.CreateIfAbsent(ctx, followerID, followingID, status)
	if err != nil {
		return nil, err
	}

	if !created {
		// The relationship already existed, so this toggle is an unfollow.
		if err := s.follows.Delete(ctx, followerID, followingID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	s.notify(ctx, followingID, followerID, notificationType)
	return &status, nil
}

// ResolveRequest accepts or rejects a pending follow request and notifies the
// requester. Unknown actions are rejected, and the pending row must actually
// exist before any mutation happens.
func (s *SocialService) ResolveRequest(ctx context.Context, action, requesterID, currentUserID string) error {
	switch action {
	case ActionAccept:
		accepted, err := s.follows.AcceptPending(ctx, requesterID, currentUserID)
		if err != nil {
			return err
		}
		if !accepted {
			return ErrNoPendingRequest
		}
		s.notify(ctx, requesterID, currentUserID, models.NotificationFollowAccepted)
	case ActionReject:
		deleted, err := s.follows.DeletePending(ctx, requesterID, currentUserID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrNoPendingRequest
		}
		s.notify(ctx, requesterID, currentUserID, models.NotificationFollowRejected)
	default:
		return ErrUnknownAction
	}
	return nil
}

// FollowStatus returns the relationship status from follower to target, or
// nil when no relationship exists. Not-found is not an error.
func (s *SocialService) FollowStatus(ctx context.Context, followerID, followingID string) (*models.FollowStatus, error) {
	follow, err := s.follows.Get(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}
	if follow == nil {
		return nil, nil
	}
	return &follow.Status, nil
}

func (s *SocialService) notify(ctx context.Context, userID, actorID string, typ models.NotificationType) {
	if err := s.notifications.Create(ctx, userID, actorID, typ); err != nil {
		s.log.Warn("notification insert failed",
			zap.String("user_id", userID),
			zap.String("actor_id", actorID),
			zap.String("type", string(typ)),
			zap.Error(err),
		)
		return
	}

	if s.events != nil {
		s.events.Broadcast(userID, hub.Event{
			Type:    string(typ),
			Payload: map[string]string{"actorId": actorID},
		})
	}
}
