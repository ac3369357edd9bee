package vetcare

import (
	"time"

	"github.com/vetcare/vetcare/session"
)

type SecurityReport struct {
	ProductionMode      bool
	SessionEncoding     string
	SignedSessions      bool
	AdminFallbackActive bool
	AdminCredentials    int
	LoginThrottleActive bool
	MaxLoginAttempts    int
	LoginCooldown       time.Duration
	ProtectedRoutes     int
	AuditActive         bool
	MetricsActive       bool
}

func (c *Client) SecurityReport() SecurityReport {
	if c == nil {
		return SecurityReport{}
	}

	protected := 0
	for _, route := range c.config.Router.Routes {
		if route.Protected {
			protected++
		}
	}

	throttling := c.config.Security.EnableLoginThrottle &&
		c.config.Security.MaxLoginAttempts > 0 &&
		c.config.Security.LoginCooldown > 0

	return SecurityReport{
		ProductionMode:      c.config.Security.ProductionMode,
		SessionEncoding:     c.config.Session.Encoding,
		SignedSessions:      c.config.Session.Encoding == session.EncodingSigned,
		AdminFallbackActive: c.config.AdminAccess.Enabled,
		AdminCredentials:    len(c.config.AdminAccess.Credentials),
		LoginThrottleActive: throttling,
		MaxLoginAttempts:    c.config.Security.MaxLoginAttempts,
		LoginCooldown:       c.config.Security.LoginCooldown,
		ProtectedRoutes:     protected,
		AuditActive:         c.config.Audit.Enabled,
		MetricsActive:       c.config.Metrics.Enabled,
	}
}
