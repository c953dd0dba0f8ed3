package domain

import (
	"errors"
	"testing"
)

func TestAuthSettingsValidate(t *testing.T) {
	cases := []struct {
		name     string
		settings AuthSettings
		wantErr  bool
	}{
		{"defaults", DefaultAuthSettings(), false},
		{"both disabled", AuthSettings{}, true},
		{"google without credentials", AuthSettings{GoogleAuthEnabled: true}, true},
		{"google missing secret", AuthSettings{GoogleAuthEnabled: true, GoogleClientID: "id"}, true},
		{"google with credentials", AuthSettings{GoogleAuthEnabled: true, GoogleClientID: "id", GoogleClientSecret: "secret"}, false},
		{"both enabled", AuthSettings{RegularAuthEnabled: true, GoogleAuthEnabled: true, GoogleClientID: "id", GoogleClientSecret: "secret"}, false},
	}

	for _, tc := range cases {
		err := tc.settings.Validate()
		if tc.wantErr && !errors.Is(err, ErrSettingsInvalid) {
			t.Fatalf("%s: expected ErrSettingsInvalid, got %v", tc.name, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}
}
