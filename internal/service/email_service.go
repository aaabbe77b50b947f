package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// EmailService отправляет транзакционные письма
type EmailService interface {
	SendBadgeMinted(ctx context.Context, toEmail, studentName, quizTitle, explorerURL string) error
}

// NoopEmailService используется, когда уведомления по email отключены
type NoopEmailService struct{}

func (s *NoopEmailService) SendBadgeMinted(ctx context.Context, toEmail, studentName, quizTitle, explorerURL string) error {
	log.Printf("[EmailService] noop send badge notification to=%s quiz=%q", toEmail, quizTitle)
	return nil
}

// ResendEmailService отправляет письма через Resend REST API
type ResendEmailService struct {
	from   string
	client *resend.Client
}

func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

// SendBadgeMinted уведомляет пользователя о выпущенном NFT-бейдже
func (s *ResendEmailService) SendBadgeMinted(ctx context.Context, toEmail, studentName, quizTitle, explorerURL string) error {
	if toEmail == "" || quizTitle == "" {
		return fmt.Errorf("toEmail and quizTitle are required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Your achievement badge for %q is ready", quizTitle),
		Text: fmt.Sprintf("Congratulations %s! Your NFT badge for completing %q with a perfect score has been minted. View the transaction: %s",
			studentName, quizTitle, explorerURL),
		Html: fmt.Sprintf("<p>Congratulations <strong>%s</strong>!</p><p>Your NFT badge for completing <strong>%s</strong> with a perfect score has been minted.</p><p><a href=%q>View the transaction</a></p>",
			studentName, quizTitle, explorerURL),
	}

	options := &resend.SendEmailOptions{}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
