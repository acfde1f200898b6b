package entity

import (
	"fmt"
	"time"
)

type UserRole string

const (
	UserRoleFan     UserRole = "fan"
	UserRoleDJ      UserRole = "dj"
	UserRoleFounder UserRole = "founder"
	UserRoleVenue   UserRole = "venue"
	UserRoleAdmin   UserRole = "admin"
)

const (
	founderInviteGrant   = 10
	fanInviteUnlockGrant = 3
)

// InviteCredits is a tagged value: either unlimited or a non-negative count.
// No float sentinels; comparisons dispatch on the tag.
type InviteCredits struct {
	Unlimited bool  `json:"unlimited" db:"invites_unlimited"`
	Remaining int64 `json:"remaining" db:"invites_remaining"`
}

func UnlimitedInvites() InviteCredits {
	return InviteCredits{Unlimited: true}
}

func LimitedInvites(n int64) InviteCredits {
	if n < 0 {
		n = 0
	}
	return InviteCredits{Remaining: n}
}

func (c InviteCredits) Exhausted() bool {
	return !c.Unlimited && c.Remaining == 0
}

func (c InviteCredits) String() string {
	if c.Unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", c.Remaining)
}

// User carries the accounting side of a member: invite credits, reputation,
// attendance counter and outstanding debt. Identity/auth fields live with the
// auth collaborator, not here.
type User struct {
	ID                string        `json:"id" db:"id"`
	Email             string        `json:"email" db:"email"`
	Name              string        `json:"name" db:"name"`
	Role              UserRole      `json:"role" db:"role"`
	ReputationScore   int64         `json:"reputation_score" db:"reputation_score"`
	InviteCredits     InviteCredits `json:"invite_credits"`
	EventsAttended    int64         `json:"events_attended" db:"events_attended"`
	HasUnlockedInvites bool         `json:"has_unlocked_invites" db:"has_unlocked_invites"`
	OutstandingDebt   Money         `json:"outstanding_debt"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" db:"updated_at"`
}

// NewUser assigns invite credits by role: DJs invite freely, founders start
// with a fixed grant, everyone else starts locked at zero until their first
// attended event.
func NewUser(id, email, name string, role UserRole, currency string) (*User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	credits := LimitedInvites(0)
	unlocked := false
	switch role {
	case UserRoleDJ:
		credits = UnlimitedInvites()
		unlocked = true
	case UserRoleFounder:
		credits = LimitedInvites(founderInviteGrant)
		unlocked = true
	}

	now := time.Now().UTC()
	return &User{
		ID:                 id,
		Email:              email,
		Name:               name,
		Role:               role,
		ReputationScore:    100,
		InviteCredits:      credits,
		HasUnlockedInvites: unlocked,
		OutstandingDebt:    ZeroMoney(currency),
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// MarkEventAttended bumps the attendance counter. The first attended event
// unlocks a fan's invite credits — once per user, ever.
func (u *User) MarkEventAttended() {
	u.EventsAttended++
	if u.Role == UserRoleFan && !u.HasUnlockedInvites {
		u.InviteCredits = LimitedInvites(fanInviteUnlockGrant)
		u.HasUnlockedInvites = true
	}
	u.UpdatedAt = time.Now().UTC()
}

// UseInvite consumes one invite credit. Unlimited roles never decrement.
func (u *User) UseInvite() error {
	if u.InviteCredits.Unlimited {
		return nil
	}
	if u.InviteCredits.Remaining == 0 {
		return fmt.Errorf("%w: user %s", ErrInvitesExhausted, u.ID)
	}
	u.InviteCredits.Remaining--
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) RecordDebt(amount Money) error {
	debt, err := u.OutstandingDebt.Add(amount)
	if err != nil {
		return fmt.Errorf("record debt for user %s: %w", u.ID, err)
	}
	u.OutstandingDebt = debt
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// SettleDebt clears up to amount of the outstanding debt.
func (u *User) SettleDebt(amount Money) error {
	if amount.Currency == u.OutstandingDebt.Currency && amount.AmountCents > u.OutstandingDebt.AmountCents {
		amount = u.OutstandingDebt
	}
	debt, err := u.OutstandingDebt.Sub(amount)
	if err != nil {
		return fmt.Errorf("settle debt for user %s: %w", u.ID, err)
	}
	u.OutstandingDebt = debt
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) HasOutstandingDebt() bool {
	return u.OutstandingDebt.IsPositive()
}

// DecreaseReputation floors at zero; reputation never goes negative.
func (u *User) DecreaseReputation(points int64) {
	u.ReputationScore -= points
	if u.ReputationScore < 0 {
		u.ReputationScore = 0
	}
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) IncreaseReputation(points int64) {
	u.ReputationScore += points
	u.UpdatedAt = time.Now().UTC()
}
