package noop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gstbill/internal/port"
)

func TestNoopSender_LogsInvoiceLink(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sender := NewNoopSender(zap.New(core))

	err := sender.SendInvoiceEmail(context.Background(), port.InvoiceEmail{
		ToEmail:     "buyer@example.com",
		InvoiceNo:   "A/12",
		DownloadURL: "https://files.example.com/a-12.pdf",
	})

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "buyer@example.com", fields["to"])
	assert.Equal(t, "A/12", fields["invoice"])
}
