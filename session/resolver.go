package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/galaxylms/backend/srvcerror"
)

// Resolver turns an authenticated account identity into a Session with role
// flags.
type Resolver struct {
	profiles ProfileStore
	logger   *slog.Logger
}

func NewResolver(profiles ProfileStore) *Resolver {
	return &Resolver{
		profiles: profiles,
		logger:   slog.Default().With("module", "session"),
	}
}

// IsAdminEmail reports whether an email grants admin through the "+admin"
// tag in its local part. The mobile client shipped with this heuristic; it is
// kept for compatibility and isolated here so a deployment that wants the
// backdoor gone can remove this single check.
func IsAdminEmail(email string) bool {
	return strings.Contains(email, "+admin")
}

// Resolve fetches the caller's profile once and derives role flags. Any read
// error or missing record degrades to least privilege: the caller keeps their
// token identity but gets neither tutor nor admin, and no error is surfaced.
func (r *Resolver) Resolve(ctx context.Context, accountID, email, displayName string) Session {
	sess := Session{
		UserID:      accountID,
		Email:       email,
		DisplayName: displayName,
	}
	if accountID == "" {
		return sess
	}

	profile, err := r.profiles.Get(ctx, accountID)
	if err != nil {
		// Least privilege on a failed read: not even the email heuristic runs.
		r.logger.Warn("profile read failed, resolving with least privilege",
			"user_id", accountID, "error", err)
		return sess
	}
	if profile == nil {
		sess.IsAdmin = IsAdminEmail(email)
		return sess
	}

	sess.Profile = profile
	sess.IsTutor = profile.IsTutor
	sess.IsAdmin = profile.IsAdmin || IsAdminEmail(email)
	if profile.FullName != "" {
		sess.DisplayName = profile.FullName
	}
	return sess
}

// DisplayNameFor resolves a user id to a display name for read-side joins.
// Fallback order is fullName, then email, then the raw id; a failed lookup
// never propagates an error.
func (r *Resolver) DisplayNameFor(ctx context.Context, userID string) string {
	profile, err := r.profiles.Get(ctx, userID)
	if err != nil || profile == nil {
		return userID
	}
	if profile.FullName != "" {
		return profile.FullName
	}
	if profile.Email != "" {
		return profile.Email
	}
	return userID
}

// ProvisionFirstAdmin grants the very first admin. It refuses to run once any
// admin profile exists, so it cannot be used to escalate later. The account's
// pre-provisioned profile, when present, is upgraded in place.
func (r *Resolver) ProvisionFirstAdmin(ctx context.Context, accountID, fullName, email, password string) (*Profile, error) {
	if accountID == "" || fullName == "" || email == "" || password == "" {
		return nil, srvcerror.ErrValidationFailed("please fill in all fields")
	}

	profiles, err := r.profiles.List(ctx)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error listing profiles: %w", err))
	}
	for _, profile := range profiles {
		if profile.IsAdmin {
			return nil, newErrAdminAlreadyExists()
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error hashing password: %w", err))
	}

	profile, err := r.profiles.Get(ctx, accountID)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error reading profile: %w", err))
	}
	if profile == nil {
		profile = &Profile{ID: accountID, CreatedAt: time.Now().UTC()}
	}
	profile.FullName = fullName
	profile.Email = email
	profile.IsAdmin = true
	profile.BcryptPwd = hash
	if err := r.profiles.Put(ctx, profile); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error storing admin profile: %w", err))
	}

	r.logger.Info("first admin provisioned", "user_id", accountID)
	return profile, nil
}
