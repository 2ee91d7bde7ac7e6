package session

import (
	"testing"

	"bricsbtc/internal/domain"
)

func userSession(kycStatus string) *Session {
	return &Session{ID: "u1", Role: domain.RoleUser, KYCStatus: kycStatus}
}

func adminSession() *Session {
	return &Session{ID: "a1", Role: domain.RoleAdmin, KYCStatus: domain.KYCApproved}
}

func TestResolve_Unauthenticated(t *testing.T) {
	tests := []struct {
		path string
		want Action
	}{
		{"/", Allow},
		{"/auth/login", Allow},
		{"/auth/register", Allow},
		{"/user/dashboard", RedirectLogin},
		{"/user/trade", RedirectLogin},
		{"/admin/dashboard", RedirectLogin},
	}

	for _, tt := range tests {
		d := Resolve(nil, tt.path)
		if d.Action != tt.want {
			t.Errorf("Resolve(nil, %q).Action = %v, want %v", tt.path, d.Action, tt.want)
		}
		if tt.want == RedirectLogin && d.Target != "/auth/login" {
			t.Errorf("Resolve(nil, %q).Target = %q, want /auth/login", tt.path, d.Target)
		}
	}
}

func TestResolve_AuthenticatedOnPublicPath(t *testing.T) {
	d := Resolve(userSession(domain.KYCApproved), "/")
	if d.Action != RedirectUserDashboard || d.Target != "/user/dashboard" {
		t.Errorf("user on public path: got %+v", d)
	}

	d = Resolve(adminSession(), "/auth/login")
	if d.Action != RedirectAdminDashboard || d.Target != "/admin/dashboard" {
		t.Errorf("admin on public path: got %+v", d)
	}
}

func TestResolve_UserOnAdminRoute(t *testing.T) {
	d := Resolve(userSession(domain.KYCApproved), "/admin/users")
	if d.Action != RedirectUserDashboard {
		t.Errorf("Action = %v, want RedirectUserDashboard", d.Action)
	}
	if d.Notice != NoticeUnauthorized {
		t.Errorf("Notice = %q, want %q", d.Notice, NoticeUnauthorized)
	}
}

func TestResolve_AdminOnUserRoute(t *testing.T) {
	d := Resolve(adminSession(), "/user/trade")
	if d.Action != RedirectAdminDashboard || d.Target != "/admin/dashboard" {
		t.Errorf("admin on user route: got %+v", d)
	}
}

func TestResolve_KYCGating(t *testing.T) {
	for _, status := range []string{domain.KYCPending, domain.KYCRejected} {
		sess := userSession(status)

		// Allowed subset stays reachable
		for _, path := range []string{"/user/dashboard", "/user/message", "/user/notification", "/user/setting"} {
			if d := Resolve(sess, path); d.Action != Allow {
				t.Errorf("kyc %s: Resolve(%q).Action = %v, want Allow", status, path, d.Action)
			}
		}

		// Everything else under /user redirects to the dashboard
		for _, path := range []string{"/user/trade", "/user/transaction", "/user/investment", "/user/deposit"} {
			d := Resolve(sess, path)
			if d.Action != RedirectUserDashboard || d.Target != "/user/dashboard" {
				t.Errorf("kyc %s: Resolve(%q) = %+v, want redirect to /user/dashboard", status, path, d)
			}
		}
	}
}

func TestResolve_ApprovedUserFullAccess(t *testing.T) {
	sess := userSession(domain.KYCApproved)
	for _, path := range []string{"/user/dashboard", "/user/trade", "/user/investment", "/user/deposit", "/user/transaction"} {
		if d := Resolve(sess, path); d.Action != Allow {
			t.Errorf("Resolve(%q).Action = %v, want Allow", path, d.Action)
		}
	}
}

func TestFromUser(t *testing.T) {
	u := &domain.User{
		FullName:  "Ada Example",
		Email:     "ada@example.com",
		Role:      domain.RoleUser,
		Country:   "BR",
		KYC:       true,
		KYCStatus: domain.KYCApproved,
		Balance:   120.5,
	}

	s := FromUser(u)
	if s.FullName != u.FullName || s.Email != u.Email || s.Role != u.Role {
		t.Errorf("FromUser(%+v) = %+v", u, s)
	}
	if s.Balance != 120.5 || s.KYCStatus != domain.KYCApproved {
		t.Errorf("FromUser balance/kyc mismatch: %+v", s)
	}
}
