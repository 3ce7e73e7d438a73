package noop

import (
	"context"

	"go.uber.org/zap"

	"gstbill/internal/port"
)

type noopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates an EmailSender that only logs what would be sent.
func NewNoopSender(logger *zap.Logger) port.EmailSender {
	return &noopSender{logger: logger}
}

func (s *noopSender) SendInvoiceEmail(_ context.Context, msg port.InvoiceEmail) error {
	s.logger.Info("noop email: invoice link",
		zap.String("to", msg.ToEmail),
		zap.String("invoice", msg.InvoiceNo),
		zap.String("url", msg.DownloadURL),
	)
	return nil
}
