package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediakit/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[[["hello","hello"]],null,"en"]`))
	}))
	defer srv.Close()

	result := CheckTranslate(context.Background(), config.Translate{BaseURL: srv.URL})
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckTranslate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	result := CheckTranslate(context.Background(), config.Translate{BaseURL: srv.URL})
	if result.Passed {
		t.Fatal("expected failure for 503")
	}
}

func telegramServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !strings.Contains(r.URL.Path, "good-token") {
			_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Media","username":"mediakitbot"}}`))
	}))
}

func TestCheckTelegram_OK(t *testing.T) {
	srv := telegramServer(t)
	defer srv.Close()

	result := CheckTelegram(context.Background(), srv.URL+"/bot%s/%s", "good-token")
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "@mediakitbot") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckTelegram_BadToken(t *testing.T) {
	srv := telegramServer(t)
	defer srv.Close()

	result := CheckTelegram(context.Background(), srv.URL+"/bot%s/%s", "bad-token")
	if result.Passed {
		t.Fatal("expected failure for bad token")
	}
}

func TestCheckTelegram_MissingToken(t *testing.T) {
	result := CheckTelegram(context.Background(), "", " ")
	if result.Passed {
		t.Fatal("expected failure for missing token")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil, Options{})
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_LocalOnly(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.WorkDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Telegram.Token = "123:abc"

	results := RunAll(context.Background(), &cfg, Options{})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}

func TestRunAll_NetworkAddsRemoteChecks(t *testing.T) {
	tg := telegramServer(t)
	defer tg.Close()
	tr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[[["hello","hello"]],null,"en"]`))
	}))
	defer tr.Close()

	cfg := config.Default()
	cfg.Paths.WorkDir = t.TempDir()
	cfg.Paths.LogDir = ""
	cfg.Telegram.Token = "good-token"
	cfg.Telegram.APIEndpoint = tg.URL + "/bot%s/%s"
	cfg.Translate.BaseURL = tr.URL

	results := RunAll(context.Background(), &cfg, Options{Network: true})
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if strings.Join(names, ",") != "Work directory,Telegram,Translation" {
		t.Fatalf("unexpected checks %v", names)
	}
}
