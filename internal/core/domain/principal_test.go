package domain

import "testing"

func TestRequireRole(t *testing.T) {
	admin := &Principal{AccountID: "1", Username: "root", Role: RoleAdmin}
	user := &Principal{AccountID: "2", Username: "joe", Role: RoleUser}

	if err := RequireRole(admin, RoleAdmin); err != nil {
		t.Fatalf("admin should pass the admin gate: %v", err)
	}
	if err := RequireRole(user, RoleAdmin); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for insufficient role, got %v", err)
	}
	if err := RequireRole(nil, RoleAdmin); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for missing principal, got %v", err)
	}

	// Missing principal and wrong role are indistinguishable to the caller.
	missing := RequireRole(nil, RoleAdmin)
	mismatch := RequireRole(user, RoleAdmin)
	if missing != mismatch {
		t.Fatalf("deny outcomes differ: %v vs %v", missing, mismatch)
	}
}

func TestNewPrincipal(t *testing.T) {
	account := &Account{ID: "42", Username: "alice", Role: RoleAdmin, FullName: "Alice A"}

	p := NewPrincipal(account)
	if p.AccountID != "42" || p.Username != "alice" || p.Role != RoleAdmin {
		t.Fatalf("unexpected principal: %+v", p)
	}

	auth := p.Authorities()
	if len(auth) != 1 || auth[0] != RoleAdmin {
		t.Fatalf("expected single authority from role, got %v", auth)
	}
}

func TestExternalProfileDisplayName(t *testing.T) {
	cases := []struct {
		profile ExternalProfile
		want    string
	}{
		{ExternalProfile{ID: "1", Login: "octocat", Name: "The Octocat"}, "octocat"},
		{ExternalProfile{ID: "2", Name: "No Login"}, "No Login"},
		{ExternalProfile{ID: "3"}, "3"},
	}
	for _, tc := range cases {
		if got := tc.profile.DisplayName(); got != tc.want {
			t.Fatalf("DisplayName(%+v) = %q, want %q", tc.profile, got, tc.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleUser) || !ValidRole(RoleAdmin) {
		t.Fatalf("known roles must validate")
	}
	if ValidRole("ROLE_SUPERUSER") || ValidRole("") {
		t.Fatalf("unknown roles must not validate")
	}
}
