// Package session maps a resolved credential to a user identity and decides,
// for any frontend route, whether the visitor may stay or where they must be
// sent. Every layout and guard consults this one policy.
package session

import (
	"strings"

	"bricsbtc/internal/domain"
)

// Session is the identity the verify endpoint resolves a credential to.
// A nil *Session means "not authenticated". A failed verification lookup is
// treated the same as not being logged in; there is no retry.
type Session struct {
	ID        string  `json:"id"`
	FullName  string  `json:"fullName"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Country   string  `json:"country"`
	Address   string  `json:"address"`
	AvatarURL string  `json:"avatarUrl"`
	KYC       bool    `json:"kyc"`
	KYCStatus string  `json:"kycStatus"`
	Balance   float64 `json:"balance"`
}

// Action is the routing verdict for a path
type Action int

const (
	// Allow lets the current route render
	Allow Action = iota
	// RedirectLogin sends the visitor to /auth/login
	RedirectLogin
	// RedirectUserDashboard sends the visitor to /user/dashboard
	RedirectUserDashboard
	// RedirectAdminDashboard sends the visitor to /admin/dashboard
	RedirectAdminDashboard
)

// Decision is the resolver's verdict: where to go and what, if anything,
// to tell the user. Notice is shown once per identity change, not per
// navigation.
type Decision struct {
	Action Action
	Target string
	Notice string
}

// PublicPaths are reachable without a session
var PublicPaths = []string{"/", "/auth/login", "/auth/register"}

// kycAllowedPaths is the subset of /user/* reachable while KYC is not
// APPROVED.
var kycAllowedPaths = []string{
	"/user/dashboard",
	"/user/message",
	"/user/notification",
	"/user/setting",
}

// NoticeUnauthorized is shown when a user hits an admin route
const NoticeUnauthorized = "Unauthorized Access!"

// Resolve decides what happens when a visitor with the given session (nil if
// unauthenticated) lands on path.
func Resolve(sess *Session, path string) Decision {
	if sess == nil {
		if isPublic(path) {
			return Decision{Action: Allow}
		}
		return Decision{Action: RedirectLogin, Target: "/auth/login"}
	}

	// Logged-in visitors don't stay on public pages
	if isPublic(path) {
		return dashboardFor(sess.Role)
	}

	if strings.HasPrefix(path, "/admin") && sess.Role != domain.RoleAdmin {
		return Decision{
			Action: RedirectUserDashboard,
			Target: "/user/dashboard",
			Notice: NoticeUnauthorized,
		}
	}

	// Admins do not browse user routes
	if strings.HasPrefix(path, "/user") && sess.Role == domain.RoleAdmin {
		return Decision{Action: RedirectAdminDashboard, Target: "/admin/dashboard"}
	}

	// Users without approved KYC only reach the allowed subset of /user/*
	if strings.HasPrefix(path, "/user") && sess.KYCStatus != domain.KYCApproved {
		if !isKYCAllowed(path) {
			return Decision{Action: RedirectUserDashboard, Target: "/user/dashboard"}
		}
	}

	return Decision{Action: Allow}
}

// dashboardFor returns the landing decision for a role
func dashboardFor(role string) Decision {
	if role == domain.RoleAdmin {
		return Decision{Action: RedirectAdminDashboard, Target: "/admin/dashboard"}
	}
	return Decision{Action: RedirectUserDashboard, Target: "/user/dashboard"}
}

func isPublic(path string) bool {
	for _, p := range PublicPaths {
		if path == p {
			return true
		}
	}
	return false
}

func isKYCAllowed(path string) bool {
	for _, p := range kycAllowedPaths {
		if path == p {
			return true
		}
	}
	return false
}

// FromUser builds the verify-endpoint identity from a stored user
func FromUser(u *domain.User) *Session {
	return &Session{
		ID:        u.ID.String(),
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		Country:   u.Country,
		Address:   u.Address,
		AvatarURL: u.AvatarURL,
		KYC:       u.KYC,
		KYCStatus: u.KYCStatus,
		Balance:   u.Balance,
	}
}
