package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/poofware/listing-browser/internal/config"
	"github.com/poofware/listing-browser/internal/models"
	"github.com/poofware/listing-browser/internal/utils"
)

// HTML template for the internal notification email.
const inquiryNotificationEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: monospace; line-height: 1.5; }
  .container { border: 1px solid #ccc; padding: 15px; max-width: 600px; }
  h2 { margin-top: 0; }
  ul { list-style: none; padding: 0; }
  li { margin-bottom: 5px; }
  strong { color: #000; }
</style>
</head>
<body>
  <div class="container">
    <h2>New Listing Inquiry</h2>
    <ul>
      <li><strong>Property:</strong> %s</li>
      <li><strong>Name:</strong> %s</li>
      <li><strong>Email:</strong> %s</li>
      <li><strong>Phone:</strong> %s</li>
      <li><strong>Timestamp (UTC):</strong> %s</li>
    </ul>
    <p>%s</p>
  </div>
</body>
</html>`

// HTML template for the acknowledgment sent back to the inquirer.
const inquiryAckEmailHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>We received your inquiry</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f8f9fa; margin: 0; padding: 20px; }
  .container { max-width: 500px; margin: auto; background: #ffffff; border: 1px solid #e9ecef; border-radius: 8px; overflow: hidden; }
  .header { background-color: #5b3a9d; color: white; padding: 20px; text-align: center; }
  .header h1 { margin: 0; font-size: 24px; }
  .content { padding: 30px; text-align: left; }
  .footer { background-color: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; color: #6c757d; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Thanks, %s!</h1>
    </div>
    <div class="content">
      <p>We've received your inquiry about %s. An agent will contact you soon.</p>
    </div>
    <div class="footer">
      © %d %s. All rights reserved.
    </div>
  </div>
</body>
</html>`

// InquiryNotifier tells the listing team, and the inquirer, about a new
// inquiry.
type InquiryNotifier interface {
	Notify(ctx context.Context, inquiry *models.Inquiry) error
}

// ------------------------------------------------------------------
// SendGrid
// ------------------------------------------------------------------

type sendgridNotifier struct {
	cfg            *config.Config
	sendgridClient *sendgrid.Client
}

func NewSendgridNotifier(cfg *config.Config) InquiryNotifier {
	return &sendgridNotifier{
		cfg:            cfg,
		sendgridClient: sendgrid.NewSendClient(cfg.SendgridAPIKey),
	}
}

func (n *sendgridNotifier) Notify(ctx context.Context, inquiry *models.Inquiry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.send(n.internalMessage(inquiry)); err != nil {
		return fmt.Errorf("internal notification: %w", err)
	}
	if err := n.send(n.ackMessage(inquiry)); err != nil {
		return fmt.Errorf("acknowledgement: %w", err)
	}
	return nil
}

func (n *sendgridNotifier) send(msg *mail.SGMailV3) error {
	resp, err := n.sendgridClient.Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (n *sendgridNotifier) internalMessage(inquiry *models.Inquiry) *mail.SGMailV3 {
	from := mail.NewEmail(n.cfg.OrganizationName+" Listings-Bot", n.cfg.LDFlag_InquiryFromEmail)
	to := mail.NewEmail(n.cfg.OrganizationName+" Team", n.cfg.LDFlag_InquiryNotifyEmail)

	subject := fmt.Sprintf("[Inquiry][%s] %s", propertyLabel(inquiry), inquiry.Email)
	plainTextContent := fmt.Sprintf(
		"New inquiry about %s.\n\nName: %s\nEmail: %s\nPhone: %s\n\n%s",
		propertyLabel(inquiry), inquiry.Name, inquiry.Email, inquiry.Phone, inquiry.Message,
	)
	htmlContent := fmt.Sprintf(
		inquiryNotificationEmailHTML,
		html.EscapeString(propertyLabel(inquiry)),
		html.EscapeString(inquiry.Name),
		html.EscapeString(inquiry.Email),
		html.EscapeString(inquiry.Phone),
		inquiry.SubmittedAt.UTC().Format(time.RFC1123Z),
		html.EscapeString(inquiry.Message),
	)
	return mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
}

func (n *sendgridNotifier) ackMessage(inquiry *models.Inquiry) *mail.SGMailV3 {
	from := mail.NewEmail(n.cfg.OrganizationName, n.cfg.LDFlag_InquiryFromEmail)
	to := mail.NewEmail(inquiry.Name, inquiry.Email)

	subject := "We received your inquiry"
	plainTextContent := fmt.Sprintf(
		"Thanks %s, we received your inquiry about %s and will be in touch soon!\n\n- Team %s",
		inquiry.Name, propertyLabel(inquiry), n.cfg.OrganizationName,
	)
	htmlContent := fmt.Sprintf(
		inquiryAckEmailHTML,
		html.EscapeString(inquiry.Name),
		html.EscapeString(propertyLabel(inquiry)),
		inquiry.SubmittedAt.Year(),
		n.cfg.OrganizationName,
	)
	return mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
}

// ------------------------------------------------------------------
// Log only
// ------------------------------------------------------------------

type logNotifier struct{}

// NewLogNotifier records inquiries in the log instead of sending email.
func NewLogNotifier() InquiryNotifier {
	return logNotifier{}
}

func (logNotifier) Notify(_ context.Context, inquiry *models.Inquiry) error {
	utils.Logger.WithFields(logrus.Fields{
		"inquiry_id":  inquiry.ID,
		"property_id": inquiry.PropertyID,
		"email":       inquiry.Email,
	}).Infof("New inquiry about %s", propertyLabel(inquiry))
	return nil
}

func propertyLabel(inquiry *models.Inquiry) string {
	switch {
	case inquiry.PropertyTitle != "":
		return inquiry.PropertyTitle
	case inquiry.PropertyID != "":
		return "property " + inquiry.PropertyID
	default:
		return "our listings"
	}
}
