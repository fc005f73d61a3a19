package social

import (
	"context"

	"hive-social-network/database"
	"hive-social-network/logging"
	"hive-social-network/metrics"
	"hive-social-network/models"
)

// FriendRequestOutcome says what a friend request turned into.
type FriendRequestOutcome string

const (
	RequestSent  FriendRequestOutcome = "sent"
	AutoAccepted FriendRequestOutcome = "auto-accepted"
)

// loadPair reads both users inside r. missing is the NotFound message used
// when the counterpart does not exist.
func loadPair(ctx context.Context, r *database.Repo, selfID, otherID, missing string) (*models.User, *models.User, error) {
	self, err := r.UserByID(ctx, selfID)
	if err != nil {
		return nil, nil, storeError(err, "User not found")
	}
	other, err := r.UserByID(ctx, otherID)
	if err != nil {
		return nil, nil, storeError(err, missing)
	}
	return self, other, nil
}

func savePair(ctx context.Context, r *database.Repo, a, b *models.User) error {
	if err := r.SaveUser(ctx, a); err != nil {
		return err
	}
	return r.SaveUser(ctx, b)
}

// befriend makes a and b friends and clears any pending request between
// them in either direction.
func befriend(a, b *models.User) {
	a.Friends.Add(b.ID)
	b.Friends.Add(a.ID)
	a.PendingSentRequests.Remove(b.ID)
	a.PendingReceivedRequests.Remove(b.ID)
	b.PendingSentRequests.Remove(a.ID)
	b.PendingReceivedRequests.Remove(a.ID)
}

// SendRequest asks recipientID for friendship. When the recipient has
// already asked the sender, both become friends at once.
func (s *Service) SendRequest(ctx context.Context, sender *models.User, recipientID string) (outcome FriendRequestOutcome, err error) {
	defer func() { s.track(ctx, "send_friend_request", err) }()

	if sender.ID == recipientID {
		return "", validationError("You cannot send a friend request to yourself")
	}

	err = s.store.InTx(ctx, func(r *database.Repo) error {
		from, to, err := loadPair(ctx, r, sender.ID, recipientID, "User not found")
		if err != nil {
			return err
		}

		switch {
		case to.PendingSentRequests.Contains(from.ID):
			befriend(from, to)
			outcome = AutoAccepted
		case from.Friends.Contains(to.ID):
			return ErrAlreadyFriends
		case from.PendingSentRequests.Contains(to.ID):
			return duplicateRequest("Friend request already sent")
		default:
			from.PendingSentRequests.Add(to.ID)
			to.PendingReceivedRequests.Add(from.ID)
			outcome = RequestSent
		}
		return savePair(ctx, r, from, to)
	})
	if err != nil {
		return "", err
	}

	metrics.RecordFriendRequest(string(outcome))
	logging.Ctx(ctx).Info().Str("sender_id", sender.ID).Str("recipient_id", recipientID).
		Str("outcome", string(outcome)).Msg("Friend request recorded")
	return outcome, nil
}

// AcceptRequest turns a pending request from senderID into a friendship.
func (s *Service) AcceptRequest(ctx context.Context, receiver *models.User, senderID string) (err error) {
	defer func() { s.track(ctx, "accept_friend_request", err) }()

	return s.store.InTx(ctx, func(r *database.Repo) error {
		to, from, err := loadPair(ctx, r, receiver.ID, senderID, "User not found")
		if err != nil {
			return err
		}
		if !to.PendingReceivedRequests.Contains(from.ID) {
			return notFound("No pending friend request from this user")
		}
		befriend(to, from)
		return savePair(ctx, r, to, from)
	})
}

// CancelRequest withdraws a request to receiverID. Cancelling a request that
// does not exist succeeds.
func (s *Service) CancelRequest(ctx context.Context, sender *models.User, receiverID string) (err error) {
	defer func() { s.track(ctx, "cancel_friend_request", err) }()

	return s.store.InTx(ctx, func(r *database.Repo) error {
		from, to, err := loadPair(ctx, r, sender.ID, receiverID, "Receiver not found")
		if err != nil {
			return err
		}
		from.PendingSentRequests.Remove(to.ID)
		to.PendingReceivedRequests.Remove(from.ID)
		return savePair(ctx, r, from, to)
	})
}

// RemoveFriend ends a friendship on both sides. Removing someone who is not
// a friend succeeds.
func (s *Service) RemoveFriend(ctx context.Context, user *models.User, friendID string) (err error) {
	defer func() { s.track(ctx, "remove_friend", err) }()

	return s.store.InTx(ctx, func(r *database.Repo) error {
		self, friend, err := loadPair(ctx, r, user.ID, friendID, "Friend not found")
		if err != nil {
			return err
		}
		self.Friends.Remove(friend.ID)
		friend.Friends.Remove(self.ID)
		return savePair(ctx, r, self, friend)
	})
}
