package vetcare

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of [Config]. Fields are pointers so an
// absent key keeps the base value instead of zeroing it.
type fileConfig struct {
	API *struct {
		Endpoint *string `yaml:"endpoint"`
		Timeout  *string `yaml:"timeout"`
	} `yaml:"api"`
	Session *struct {
		Encoding   *string `yaml:"encoding"`
		SigningKey *string `yaml:"signingKey"`
	} `yaml:"session"`
	Router *struct {
		FallbackRoute     *string `yaml:"fallbackRoute"`
		LoginRoute        *string `yaml:"loginRoute"`
		AdminHome         *string `yaml:"adminHome"`
		CustomerHome      *string `yaml:"customerHome"`
		AccessDeniedDelay *string `yaml:"accessDeniedDelay"`
		ViewBaseURL       *string `yaml:"viewBaseURL"`
		DefaultTitle      *string `yaml:"defaultTitle"`
		Routes            []struct {
			Path      string `yaml:"path"`
			Target    string `yaml:"target"`
			Kind      string `yaml:"kind"`
			Protected bool   `yaml:"protected"`
			Role      string `yaml:"role"`
			Title     string `yaml:"title"`
		} `yaml:"routes"`
	} `yaml:"router"`
	AdminAccess *struct {
		Enabled     *bool `yaml:"enabled"`
		Credentials []struct {
			Email    string `yaml:"email"`
			Password string `yaml:"password"`
		} `yaml:"credentials"`
		DisplayFirstName *string `yaml:"displayFirstName"`
		DisplayLastName  *string `yaml:"displayLastName"`
	} `yaml:"adminAccess"`
	Security *struct {
		ProductionMode      *bool   `yaml:"productionMode"`
		EnableLoginThrottle *bool   `yaml:"enableLoginThrottle"`
		MaxLoginAttempts    *int    `yaml:"maxLoginAttempts"`
		LoginCooldown       *string `yaml:"loginCooldown"`
	} `yaml:"security"`
	Cart *struct {
		StorageKey       *string  `yaml:"storageKey"`
		ShippingFlatRate *float64 `yaml:"shippingFlatRate"`
	} `yaml:"cart"`
	Audit *struct {
		Enabled    *bool `yaml:"enabled"`
		BufferSize *int  `yaml:"bufferSize"`
		DropIfFull *bool `yaml:"dropIfFull"`
	} `yaml:"audit"`
	Metrics *struct {
		Enabled                 *bool `yaml:"enabled"`
		EnableLatencyHistograms *bool `yaml:"enableLatencyHistograms"`
	} `yaml:"metrics"`
}

// LoadConfigFile reads a YAML config file and overlays it on the built-in
// defaults. Keys absent from the file keep their default values.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return ParseConfigYAML(data, defaultConfig())
}

// ParseConfigYAML overlays YAML data on the given base config. Durations
// are written in Go syntax ("10s", "15m").
func ParseConfigYAML(data []byte, base Config) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := cloneConfig(base)

	if fc.API != nil {
		setString(&cfg.API.Endpoint, fc.API.Endpoint)
		if err := setDuration(&cfg.API.Timeout, fc.API.Timeout); err != nil {
			return Config{}, fmt.Errorf("api.timeout: %w", err)
		}
	}

	if fc.Session != nil {
		setString(&cfg.Session.Encoding, fc.Session.Encoding)
		if fc.Session.SigningKey != nil {
			cfg.Session.SigningKey = []byte(*fc.Session.SigningKey)
		}
	}

	if fc.Router != nil {
		setString(&cfg.Router.FallbackRoute, fc.Router.FallbackRoute)
		setString(&cfg.Router.LoginRoute, fc.Router.LoginRoute)
		setString(&cfg.Router.AdminHome, fc.Router.AdminHome)
		setString(&cfg.Router.CustomerHome, fc.Router.CustomerHome)
		setString(&cfg.Router.ViewBaseURL, fc.Router.ViewBaseURL)
		setString(&cfg.Router.DefaultTitle, fc.Router.DefaultTitle)
		if err := setDuration(&cfg.Router.AccessDeniedDelay, fc.Router.AccessDeniedDelay); err != nil {
			return Config{}, fmt.Errorf("router.accessDeniedDelay: %w", err)
		}
		if len(fc.Router.Routes) > 0 {
			routes := make([]RouteEntry, 0, len(fc.Router.Routes))
			for _, r := range fc.Router.Routes {
				routes = append(routes, RouteEntry{
					Path:      r.Path,
					Target:    r.Target,
					Kind:      RouteKind(r.Kind),
					Protected: r.Protected,
					Role:      Role(r.Role),
					Title:     r.Title,
				})
			}
			cfg.Router.Routes = routes
		}
	}

	if fc.AdminAccess != nil {
		setBool(&cfg.AdminAccess.Enabled, fc.AdminAccess.Enabled)
		setString(&cfg.AdminAccess.DisplayFirstName, fc.AdminAccess.DisplayFirstName)
		setString(&cfg.AdminAccess.DisplayLastName, fc.AdminAccess.DisplayLastName)
		if len(fc.AdminAccess.Credentials) > 0 {
			creds := make([]AdminCredential, 0, len(fc.AdminAccess.Credentials))
			for _, c := range fc.AdminAccess.Credentials {
				creds = append(creds, AdminCredential{Email: c.Email, Password: c.Password})
			}
			cfg.AdminAccess.Credentials = creds
		}
	}

	if fc.Security != nil {
		setBool(&cfg.Security.ProductionMode, fc.Security.ProductionMode)
		setBool(&cfg.Security.EnableLoginThrottle, fc.Security.EnableLoginThrottle)
		setInt(&cfg.Security.MaxLoginAttempts, fc.Security.MaxLoginAttempts)
		if err := setDuration(&cfg.Security.LoginCooldown, fc.Security.LoginCooldown); err != nil {
			return Config{}, fmt.Errorf("security.loginCooldown: %w", err)
		}
	}

	if fc.Cart != nil {
		setString(&cfg.Cart.StorageKey, fc.Cart.StorageKey)
		if fc.Cart.ShippingFlatRate != nil {
			cfg.Cart.ShippingFlatRate = *fc.Cart.ShippingFlatRate
		}
	}

	if fc.Audit != nil {
		setBool(&cfg.Audit.Enabled, fc.Audit.Enabled)
		setInt(&cfg.Audit.BufferSize, fc.Audit.BufferSize)
		setBool(&cfg.Audit.DropIfFull, fc.Audit.DropIfFull)
	}

	if fc.Metrics != nil {
		setBool(&cfg.Metrics.Enabled, fc.Metrics.Enabled)
		setBool(&cfg.Metrics.EnableLatencyHistograms, fc.Metrics.EnableLatencyHistograms)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *string) error {
	if src == nil {
		return nil
	}
	d, err := time.ParseDuration(*src)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
