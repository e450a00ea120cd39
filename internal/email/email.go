package email

import (
	"fmt"

	"clindex/internal/config"
	"clindex/internal/email/noop"
	"clindex/internal/email/ses"
	"clindex/internal/port"
)

// NewSender returns the EmailSender configured by cfg.Provider.
func NewSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(cfg)
	case "noop", "":
		return noop.NewNoopSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
