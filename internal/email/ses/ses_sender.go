package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"gstbill/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	companyName string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(ctx context.Context, region, fromAddress, fromName, companyName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
		companyName: companyName,
	}, nil
}

func (s *sesSender) SendInvoiceEmail(ctx context.Context, msg port.InvoiceEmail) error {
	subject := fmt.Sprintf("Invoice %s from %s", msg.InvoiceNo, s.companyName)
	htmlBody := buildInvoiceHTML(s.companyName, msg)
	textBody := fmt.Sprintf("Dear %s,\n\nPlease find invoice %s for Rs. %s at the link below:\n%s\n\nThe link is valid for a limited time.\n\n%s",
		msg.ToName, msg.InvoiceNo, msg.GrandTotal, msg.DownloadURL, s.companyName)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildInvoiceHTML(company string, msg port.InvoiceEmail) string {
	link := html.EscapeString(msg.DownloadURL)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice %s</h2>
  <p>Dear %s,</p>
  <p>Your invoice for <strong>Rs. %s</strong> is ready.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #1F4E79; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download Invoice</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <p style="color: #999; font-size: 12px;">The link is valid for a limited time.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`,
		html.EscapeString(msg.InvoiceNo), html.EscapeString(msg.ToName), html.EscapeString(msg.GrandTotal),
		link, link, html.EscapeString(company))
}
