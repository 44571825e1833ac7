package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type sampleConfig struct {
	Host    string        `default:"127.0.0.1"`
	Port    int           `default:"5000"`
	Timeout time.Duration `default:"10s"`
	Name    string        `split_words:"true" required:"true"`
}

func TestNewReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("CFGTEST_PORT=6100\nCFGTEST_NAME=desk\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Unsetenv("CFGTEST_PORT")
		_ = os.Unsetenv("CFGTEST_NAME")
	})

	conf, err := New[sampleConfig]("CFGTEST", WithEnvFile(path))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if conf.Port != 6100 || conf.Name != "desk" {
		t.Fatalf("unexpected config: %+v", conf)
	}
	if conf.Host != "127.0.0.1" || conf.Timeout != 10*time.Second {
		t.Fatalf("defaults not applied: %+v", conf)
	}
}

func TestNewMissingRequired(t *testing.T) {
	t.Setenv("CFGMISS_PORT", "1")

	if _, err := New[sampleConfig]("CFGMISS"); err == nil {
		t.Fatal("expected error for missing required field")
	}
}

func TestNewMissingEnvFile(t *testing.T) {
	if _, err := New[sampleConfig]("CFGTEST", WithEnvFile(filepath.Join(t.TempDir(), "absent.env"))); err == nil {
		t.Fatal("expected error for missing env file")
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustNew[sampleConfig]("CFGPANIC")
}
