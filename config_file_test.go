package vetcare

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseConfigYAMLOverlaysBase(t *testing.T) {
	data := []byte(`
api:
  endpoint: https://api.vetcare.example
  timeout: 5s
security:
  enableLoginThrottle: true
  maxLoginAttempts: 3
  loginCooldown: 10m
cart:
  shippingFlatRate: 7.5
metrics:
  enabled: true
`)

	cfg, err := ParseConfigYAML(data, defaultConfig())
	if err != nil {
		t.Fatalf("ParseConfigYAML failed: %v", err)
	}

	if cfg.API.Endpoint != "https://api.vetcare.example" {
		t.Fatalf("unexpected endpoint %q", cfg.API.Endpoint)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.API.Timeout)
	}
	if !cfg.Security.EnableLoginThrottle || cfg.Security.MaxLoginAttempts != 3 || cfg.Security.LoginCooldown != 10*time.Minute {
		t.Fatalf("unexpected security config %+v", cfg.Security)
	}
	if cfg.Cart.ShippingFlatRate != 7.5 {
		t.Fatalf("unexpected shipping rate %v", cfg.Cart.ShippingFlatRate)
	}
	if !cfg.Metrics.Enabled {
		t.Fatal("expected metrics enabled")
	}

	// Absent keys keep base values.
	if cfg.Router.FallbackRoute != "/" || cfg.Cart.StorageKey != "vetcare_cart" {
		t.Fatalf("expected untouched defaults, got fallback %q cart key %q", cfg.Router.FallbackRoute, cfg.Cart.StorageKey)
	}
}

func TestParseConfigYAMLReplacesRoutes(t *testing.T) {
	data := []byte(`
router:
  fallbackRoute: /home
  loginRoute: /signin
  adminHome: /staff
  customerHome: /home
  routes:
    - path: /home
      target: /home.html
      kind: page
    - path: /signin
      target: /signin.html
      kind: page
    - path: /staff
      target: /staff.html
      kind: page
      protected: true
      role: admin
`)

	cfg, err := ParseConfigYAML(data, defaultConfig())
	if err != nil {
		t.Fatalf("ParseConfigYAML failed: %v", err)
	}
	if len(cfg.Router.Routes) != 3 {
		t.Fatalf("expected route table to be replaced, got %d routes", len(cfg.Router.Routes))
	}
	staff := cfg.Router.Routes[2]
	if !staff.Protected || staff.Role != RoleAdmin {
		t.Fatalf("unexpected staff route %+v", staff)
	}
}

func TestParseConfigYAMLRejectsInvalidResult(t *testing.T) {
	data := []byte(`
api:
  endpoint: ""
`)
	if _, err := ParseConfigYAML(data, defaultConfig()); err == nil {
		t.Fatal("expected validation error for empty endpoint")
	}
}

func TestParseConfigYAMLRejectsBadDuration(t *testing.T) {
	data := []byte(`
api:
  timeout: soon
`)
	if _, err := ParseConfigYAML(data, defaultConfig()); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vetcare.yaml")
	content := []byte("security:\n  enableLoginThrottle: true\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}
	if !cfg.Security.EnableLoginThrottle {
		t.Fatal("expected throttle enabled from file")
	}

	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
