package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHash_Deterministic(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "regular password",
			password: "password123",
		},
		{
			name:     "password with special chars",
			password: "p@ssw0rd!@#$%^&*()",
		},
		{
			name:     "long password",
			password: "verylongpasswordwithmorethanfiftycharacters",
		},
		{
			name:     "empty password",
			password: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := Hash(tt.password)
			second := Hash(tt.password)

			if first == "" {
				t.Error("Hash() returned empty digest")
			}
			if len(first) != 64 {
				t.Errorf("Hash() returned digest of length %d, want 64", len(first))
			}
			if first != second {
				t.Error("Hash() is not deterministic for the same input")
			}
			if !Verify(tt.password, first) {
				t.Error("Verify() rejected digest produced by Hash()")
			}
		})
	}
}

func TestHash_DifferentPasswordsProduceDifferentDigests(t *testing.T) {
	if Hash("password1") == Hash("password2") {
		t.Error("Different passwords produced identical digests")
	}
}

func TestVerify_CurrentScheme(t *testing.T) {
	digest := Hash("correct_password")

	tests := []struct {
		name        string
		password    string
		digest      string
		shouldMatch bool
	}{
		{
			name:        "matching password",
			password:    "correct_password",
			digest:      digest,
			shouldMatch: true,
		},
		{
			name:        "wrong password",
			password:    "wrong_password",
			digest:      digest,
			shouldMatch: false,
		},
		{
			name:        "empty password",
			password:    "",
			digest:      digest,
			shouldMatch: false,
		},
		{
			name:        "empty digest",
			password:    "correct_password",
			digest:      "",
			shouldMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Verify(tt.password, tt.digest); got != tt.shouldMatch {
				t.Errorf("Verify() = %v, want %v", got, tt.shouldMatch)
			}
		})
	}
}

func TestVerify_LegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("old_password"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to create legacy digest: %v", err)
	}

	if !IsLegacy(string(legacy)) {
		t.Errorf("IsLegacy() = false for bcrypt digest %q", legacy)
	}
	if IsLegacy(Hash("old_password")) {
		t.Error("IsLegacy() = true for sha256 digest")
	}

	if !Verify("old_password", string(legacy)) {
		t.Error("Verify() rejected correct password against legacy digest")
	}
	if Verify("another_password", string(legacy)) {
		t.Error("Verify() accepted wrong password against legacy digest")
	}
}
