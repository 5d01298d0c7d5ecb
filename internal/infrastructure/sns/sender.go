package sns

import (
	"context"
	"errors"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/job-portal-api/internal/config"
)

// SMSSender is the phone channel of the notification gateway.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type sender struct {
	client *sns.Client
	prefix string
}

func NewSender(cfg *config.Config) (SMSSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &sender{client: sns.NewFromConfig(awsCfg), prefix: cfg.SMSCountryPrefix}, nil
}

// SendSMS publishes via AWS SNS. Bare national numbers get the configured
// country prefix; numbers already in E.164 form are sent as-is.
func (s *sender) SendSMS(ctx context.Context, to, message string) error {
	to = formatNumber(s.prefix, to)
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &to,
		Message:     &message,
	})
	return err
}

func formatNumber(prefix, to string) string {
	if strings.HasPrefix(to, "+") {
		return to
	}
	return prefix + to
}

// Disabled returns a sender whose every dispatch fails. It stands in when SNS
// cannot be configured, so registration and login surface a delivery error
// instead of dereferencing a nil sender.
func Disabled() SMSSender { return disabledSender{} }

type disabledSender struct{}

func (disabledSender) SendSMS(context.Context, string, string) error {
	return errors.New("sms sender not configured")
}
