package update

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsNewer(t *testing.T) {
	cases := []struct {
		candidate, current string
		want               bool
	}{
		{"1.2.3", "1.2.2", true},
		{"v1.2.3", "1.2.2", true},
		{"1.2.3", "1.2.3", false},
		{"1.2.2", "1.2.3", false},
		{"2.0.0", "1.99.99", true},
		{"not-a-version", "1.0.0", false},
		{"1.0.0", "not-a-version", false},
	}
	for _, tc := range cases {
		if got := IsNewer(tc.candidate, tc.current); got != tc.want {
			t.Fatalf("IsNewer(%q, %q): got %v want %v", tc.candidate, tc.current, got, tc.want)
		}
	}
}

func TestCheck_SkipsInCI(t *testing.T) {
	t.Setenv("CI", "1")
	latest, newer, err := Check("0.1.0", false)
	if err != nil || latest != "" || newer {
		t.Fatalf("CI run must skip the check, got (%q, %v, %v)", latest, newer, err)
	}
}

func TestCheck_SkipsWhenNetworkDisabled(t *testing.T) {
	t.Setenv("CI", "")
	latest, newer, err := Check("0.1.0", true)
	if err != nil || latest != "" || newer {
		t.Fatalf("no-network run must skip the check, got (%q, %v, %v)", latest, newer, err)
	}
}

func TestCheck_UsesFreshCache(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	t.Setenv("CI", "")

	dir := filepath.Join(base, "pslint")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	b, _ := json.Marshal(cache{LastChecked: time.Now(), Latest: "9.9.9"})
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), b, 0644); err != nil {
		t.Fatal(err)
	}

	latest, newer, err := Check("0.1.0", false)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if latest != "9.9.9" || !newer {
		t.Fatalf("cached result not used, got (%q, %v)", latest, newer)
	}
}

func TestCheck_CachedCurrentRelease(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	t.Setenv("CI", "")

	dir := filepath.Join(base, "pslint")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	b, _ := json.Marshal(cache{LastChecked: time.Now(), Latest: "0.1.0"})
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), b, 0644); err != nil {
		t.Fatal(err)
	}

	latest, newer, err := Check("v0.1.0", false)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if latest != "0.1.0" || newer {
		t.Fatalf("same version must not report an update, got (%q, %v)", latest, newer)
	}
}
