package domain

import (
	"errors"
	"testing"
)

func TestAuthorize(t *testing.T) {
	admin := &Identity{UserID: "u1", Role: RoleAdmin}
	owner := &Identity{UserID: "u2", Role: RoleOwner}
	user := &Identity{UserID: "u3", Role: RoleUser}

	cases := []struct {
		name      string
		identity  *Identity
		permitted []Role
		want      error
	}{
		{"no identity", nil, nil, ErrUnauthenticated},
		{"no identity with roles", nil, []Role{RoleAdmin}, ErrUnauthenticated},
		{"empty user id", &Identity{Role: RoleAdmin}, nil, ErrUnauthenticated},
		{"unknown role", &Identity{UserID: "u9", Role: "superuser"}, nil, ErrUnauthenticated},
		{"any authenticated", user, nil, nil},
		{"exact match", admin, []Role{RoleAdmin}, nil},
		{"one of many", owner, []Role{RoleAdmin, RoleOwner}, nil},
		{"user on admin op", user, []Role{RoleAdmin}, ErrForbidden},
		{"admin does not inherit owner", admin, []Role{RoleOwner}, ErrForbidden},
		{"admin does not inherit user", admin, []Role{RoleUser}, ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.identity, tc.permitted...)
			if !errors.Is(err, tc.want) || (tc.want == nil && err != nil) {
				t.Fatalf("Authorize() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole(""); err != nil || r != RoleUser {
		t.Fatalf("empty role: got %q, %v", r, err)
	}
	for _, s := range []string{"admin", "owner", "user"} {
		if r, err := ParseRole(s); err != nil || string(r) != s {
			t.Fatalf("ParseRole(%q) = %q, %v", s, r, err)
		}
	}
	if _, err := ParseRole("Admin"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for case mismatch, got %v", err)
	}
}
