// Package model defines the license key and admin account types shared
// by the stores and the license service.
package model

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Plan identifies how long a minted key stays valid.
type Plan string

const (
	PlanOneWeek    Plan = "1week"
	PlanOneMonth   Plan = "1month"
	PlanThreeMonth Plan = "3month"
	PlanOneYear    Plan = "1year"
	PlanFree       Plan = "free"
)

var planDays = map[Plan]int{
	PlanOneWeek:    7,
	PlanOneMonth:   30,
	PlanThreeMonth: 90,
	PlanOneYear:    365,
}

// Valid reports whether p is one of the known plans.
func (p Plan) Valid() bool {
	if p == PlanFree {
		return true
	}
	_, ok := planDays[p]
	return ok
}

// Duration returns the lifetime of keys minted under p, and false for
// the free plan, which never expires.
func (p Plan) Duration() (time.Duration, bool) {
	days, ok := planDays[p]
	if !ok {
		return 0, false
	}
	return time.Duration(days) * 24 * time.Hour, true
}

// Key is a mintable license key. ExpiresAt is nil for free keys.
type Key struct {
	ID        uint
	Token     string
	Plan      Plan
	CreatedAt time.Time
	ExpiresAt *time.Time
	Active    bool
	Note      string
}

// Admin is a panel administrator account.
type Admin struct {
	ID           uint
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// NewKey builds an unsaved key for the given plan. The token is freshly
// generated; stores regenerate it on collision.
func NewKey(plan Plan, note string, now time.Time) (Key, error) {
	if !plan.Valid() {
		return Key{}, fmt.Errorf("unknown plan %q", plan)
	}
	token, err := GenerateToken()
	if err != nil {
		return Key{}, err
	}
	k := Key{
		Token:     token,
		Plan:      plan,
		CreatedAt: now,
		Active:    true,
		Note:      note,
	}
	if d, ok := plan.Duration(); ok {
		exp := now.Add(d)
		k.ExpiresAt = &exp
	}
	return k, nil
}

const (
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenLength   = 20
)

// GenerateToken returns a 20 character uppercase alphanumeric token.
// Bytes outside the largest multiple of the alphabet size are rejected
// so every character is drawn uniformly.
func GenerateToken() (string, error) {
	const limit = 256 - 256%len(tokenAlphabet)
	token := make([]byte, 0, tokenLength)
	buf := make([]byte, tokenLength)
	for len(token) < tokenLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate token: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			token = append(token, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(token) == tokenLength {
				break
			}
		}
	}
	return string(token), nil
}
