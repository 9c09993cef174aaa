package registry

import (
	"context"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/server/models"
)

// Register creates the profile of identity.
func (r *Registry) Register(ctx context.Context, identity, username, email, publicKey string) (models.Profile, error) {
	defer r.flush(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[identity]; ok {
		return models.Profile{}, ErrAlreadyRegistered
	}
	if username == "" {
		return models.Profile{}, ErrEmptyUsername
	}
	if email == "" {
		return models.Profile{}, ErrEmptyEmail
	}
	if _, ok := r.byUsername[username]; ok {
		return models.Profile{}, ErrUsernameTaken
	}
	if _, ok := r.byEmail[email]; ok {
		return models.Profile{}, ErrEmailTaken
	}

	at := r.nextTime()
	p := models.Profile{
		Identity:     identity,
		Username:     username,
		Email:        email,
		PublicKey:    publicKey,
		RegisteredAt: at,
		IsActive:     true,
	}
	events := []models.Event{r.newEvent(models.EventRegistered, p, at)}

	if err := r.commit(ctx, nil, p, at, events); err != nil {
		return models.Profile{}, err
	}

	r.logger.Info(ctx, "profile registered", "identity", identity, "username", username)
	return p, nil
}

// Login stamps the login time of an active profile and returns it.
func (r *Registry) Login(ctx context.Context, identity string) (time.Time, error) {
	defer r.flush(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.profiles[identity]
	if !ok {
		return time.Time{}, ErrNotRegistered
	}
	if !prev.IsActive {
		return time.Time{}, ErrAccountDeactivated
	}

	at := r.nextTime()
	next := *prev
	next.LastLogin = at
	events := []models.Event{r.newEvent(models.EventLoggedIn, next, at)}

	if err := r.commit(ctx, prev, next, at, events); err != nil {
		return time.Time{}, err
	}

	r.logger.Debug(ctx, "login", "identity", identity)
	return at, nil
}

// UpdateProfile replaces every non-empty field; empty fields keep their
// current value. A username or email already held by identity itself is
// not a conflict.
func (r *Registry) UpdateProfile(ctx context.Context, identity, newUsername, newEmail, newPublicKey string) (models.Profile, error) {
	defer r.flush(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.profiles[identity]
	if !ok {
		return models.Profile{}, ErrNotRegistered
	}

	next := *prev
	if newUsername != "" {
		if holder, taken := r.byUsername[newUsername]; taken && holder != identity {
			return models.Profile{}, ErrUsernameTaken
		}
		next.Username = newUsername
	}
	if newEmail != "" {
		if holder, taken := r.byEmail[newEmail]; taken && holder != identity {
			return models.Profile{}, ErrEmailTaken
		}
		next.Email = newEmail
	}
	if newPublicKey != "" {
		next.PublicKey = newPublicKey
	}

	at := r.nextTime()
	events := []models.Event{r.newEvent(models.EventUpdated, next, at)}

	if err := r.commit(ctx, prev, next, at, events); err != nil {
		return models.Profile{}, err
	}

	r.logger.Info(ctx, "profile updated", "identity", identity, "username", next.Username)
	return next, nil
}

// Deactivate clears the active flag. actor must be identity itself or the
// registry owner.
func (r *Registry) Deactivate(ctx context.Context, identity, actor string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actor != identity && actor != r.owner {
		return ErrDeactivateForbidden
	}
	return r.setActive(ctx, identity, actor, false)
}

// Reactivate sets the active flag. Only the registry owner may do it.
func (r *Registry) Reactivate(ctx context.Context, identity, actor string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actor != r.owner {
		return ErrNotOwner
	}
	return r.setActive(ctx, identity, actor, true)
}

func (r *Registry) setActive(ctx context.Context, identity, actor string, active bool) error {
	prev, ok := r.profiles[identity]
	if !ok {
		return ErrNotRegistered
	}
	if prev.IsActive == active {
		return nil
	}

	next := *prev
	next.IsActive = active

	if err := r.commit(ctx, prev, next, time.Time{}, nil); err != nil {
		return err
	}

	r.logger.Info(ctx, "profile activity changed", "identity", identity, "active", active, "actor", actor)
	return nil
}
