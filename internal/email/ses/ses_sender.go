package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"bizmate/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendApprovalRequested(ctx context.Context, notice port.ApprovalNotice) error {
	docURL := fmt.Sprintf("%s/approvals/%s", s.frontendURL, notice.DocID)

	subject := fmt.Sprintf("[BizMate] Approval requested: %s", notice.DocTitle)
	htmlBody := buildNoticeHTML("A document is waiting for your decision", notice.ToName,
		fmt.Sprintf("%s submitted <b>%s</b> (%s) and your approval is the next step.", notice.ActorName, notice.DocTitle, notice.DocType),
		docURL, "Review document")
	textBody := fmt.Sprintf("Hi %s,\n\n%s submitted %q (%s) and your approval is the next step.\n\nReview it here:\n%s\n\nBizMate",
		notice.ToName, notice.ActorName, notice.DocTitle, notice.DocType, docURL)

	return s.send(ctx, notice.ToEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendDocumentRejected(ctx context.Context, notice port.ApprovalNotice) error {
	docURL := fmt.Sprintf("%s/approvals/%s", s.frontendURL, notice.DocID)

	subject := fmt.Sprintf("[BizMate] Document rejected: %s", notice.DocTitle)
	htmlBody := buildNoticeHTML("Your document was rejected", notice.ToName,
		fmt.Sprintf("%s rejected <b>%s</b>: %s. You can edit and resubmit it.", notice.ActorName, notice.DocTitle, notice.Reason),
		docURL, "Open document")
	textBody := fmt.Sprintf("Hi %s,\n\n%s rejected %q with reason: %s\n\nYou can edit and resubmit it here:\n%s\n\nBizMate",
		notice.ToName, notice.ActorName, notice.DocTitle, notice.Reason, docURL)

	return s.send(ctx, notice.ToEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendDocumentApproved(ctx context.Context, notice port.ApprovalNotice) error {
	docURL := fmt.Sprintf("%s/approvals/%s", s.frontendURL, notice.DocID)

	subject := fmt.Sprintf("[BizMate] Document approved: %s", notice.DocTitle)
	htmlBody := buildNoticeHTML("Your document was fully approved", notice.ToName,
		fmt.Sprintf("<b>%s</b> completed its approval line.", notice.DocTitle),
		docURL, "Open document")
	textBody := fmt.Sprintf("Hi %s,\n\n%q completed its approval line.\n\nOpen it here:\n%s\n\nBizMate",
		notice.ToName, notice.DocTitle, docURL)

	return s.send(ctx, notice.ToEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
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

func buildNoticeHTML(heading, name, body, docURL, cta string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">%s</h2>
  <p>Hi %s,</p>
  <p>%s</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">%s</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">BizMate - Groupware</p>
</body>
</html>`, heading, name, body, docURL, cta, docURL)
}
