package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPhoneBookPath(t *testing.T) {
	got := PhoneBookPath("/home/user/.gestContactApp")
	want := "/home/user/.gestContactApp/PhoneBook.txt"
	if got != want {
		t.Errorf("PhoneBookPath() = %q, want %q", got, want)
	}
}

func TestDefaultAppDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	got, err := DefaultAppDir()
	if err != nil {
		t.Fatalf("DefaultAppDir() error = %v", err)
	}
	if want := filepath.Join(home, ".gestContactApp"); got != want {
		t.Errorf("DefaultAppDir() = %q, want %q", got, want)
	}
}

func TestResolveAppDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		name string
		env  string
		cfg  *GlobalConfig
		want string
	}{
		{"default", "", nil, filepath.Join(home, AppDir)},
		{"empty config", "", &GlobalConfig{}, filepath.Join(home, AppDir)},
		{"config", "", &GlobalConfig{DataDir: "/data/contacts"}, "/data/contacts"},
		{"config tilde", "", &GlobalConfig{DataDir: "~/contacts"}, filepath.Join(home, "contacts")},
		{"env wins", "/env/dir", &GlobalConfig{DataDir: "/data/contacts"}, "/env/dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(DataDirEnv, tt.env)

			got, err := ResolveAppDir(tt.cfg)
			if err != nil {
				t.Fatalf("ResolveAppDir() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveAppDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnsureAppDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", AppDir)

	created, err := EnsureAppDir(dir)
	if err != nil {
		t.Fatalf("EnsureAppDir() error = %v", err)
	}
	if !created {
		t.Error("first call should report the directory as created")
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}

	created, err = EnsureAppDir(dir)
	if err != nil {
		t.Fatalf("EnsureAppDir() second call error = %v", err)
	}
	if created {
		t.Error("second call should not report the directory as created")
	}
}

func TestEnsureAppDir_FileInTheWay(t *testing.T) {
	path := filepath.Join(t.TempDir(), AppDir)
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := EnsureAppDir(path); err == nil {
		t.Error("EnsureAppDir() should fail when a file occupies the path")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"~", home},
		{"~/contacts", filepath.Join(home, "contacts")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
