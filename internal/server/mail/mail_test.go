package mail

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetURL(t *testing.T) {
	assert.Equal(t, "https://app.example/reset-password?token=abc", ResetURL("https://app.example/", "abc"))
	assert.Equal(t, "http://localhost:3001/reset-password?token=a%2Bb", ResetURL("http://localhost:3001", "a+b"))
}

func TestResetPasswordMessage(t *testing.T) {
	msg, err := ResetPasswordMessage("alice@x.com", "https://app.example", "deadbeef", 15*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, "alice@x.com", msg.To)
	assert.Equal(t, "Reset your password", msg.Subject)
	assert.Contains(t, msg.HTML, `href="https://app.example/reset-password?token=deadbeef"`)
	assert.Contains(t, msg.HTML, "expire in 15 minutes")
	assert.Contains(t, msg.Text, "https://app.example/reset-password?token=deadbeef")
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	err := NewLogSender(logger).Send(context.Background(), Message{To: "a@x.com", Subject: "hi", Text: "link"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "to=a@x.com")
	assert.Contains(t, buf.String(), "text=link")
}

type fakeSES struct {
	in  *sesv2.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.in = in
	return &sesv2.SendEmailOutput{}, f.err
}

func stubSES(t *testing.T, fake *fakeSES) *sesv2.Options {
	t.Helper()
	origLoad, origNew := loadDefaultAWSConfig, newSESClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newSESClientFromConfig = origLoad, origNew })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				return aws.Config{}, err
			}
		}
		return aws.Config{Region: lo.Region, Credentials: lo.Credentials}, nil
	}
	opts := &sesv2.Options{}
	newSESClientFromConfig = func(cfg aws.Config, optFns ...func(*sesv2.Options)) sesAPI {
		opts.Region = cfg.Region
		for _, fn := range optFns {
			fn(opts)
		}
		return fake
	}
	return opts
}

func TestSESSender_Send(t *testing.T) {
	fake := &fakeSES{}
	opts := stubSES(t, fake)

	s, err := NewSESSender(context.Background(), SESConfig{
		Region: "eu-west-1", AccessKeyID: "AKIA", SecretAccessKey: "s", Endpoint: "http://localhost:4566", From: "noreply@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", opts.Region)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://localhost:4566", *opts.BaseEndpoint)

	require.NoError(t, s.Send(context.Background(), Message{To: "a@x.com", Subject: "sub", HTML: "<p>h</p>", Text: "t"}))

	require.NotNil(t, fake.in)
	assert.Equal(t, "noreply@x.com", *fake.in.FromEmailAddress)
	assert.Equal(t, []string{"a@x.com"}, fake.in.Destination.ToAddresses)
	assert.Equal(t, "sub", *fake.in.Content.Simple.Subject.Data)
	assert.Equal(t, "<p>h</p>", *fake.in.Content.Simple.Body.Html.Data)
	assert.Equal(t, "t", *fake.in.Content.Simple.Body.Text.Data)
}

func TestSESSender_SendError(t *testing.T) {
	fake := &fakeSES{err: errors.New("throttled")}
	stubSES(t, fake)

	s, err := NewSESSender(context.Background(), SESConfig{Region: "us-east-1", From: "noreply@x.com"})
	require.NoError(t, err)

	err = s.Send(context.Background(), Message{To: "a@x.com", Subject: "s", Text: "t"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "throttled"))
}

func TestNewSESSender_Errors(t *testing.T) {
	_, err := NewSESSender(context.Background(), SESConfig{Region: "us-east-1"})
	require.Error(t, err)

	orig := loadDefaultAWSConfig
	defer func() { loadDefaultAWSConfig = orig }()
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err = NewSESSender(context.Background(), SESConfig{Region: "us-east-1", From: "x@y.z"})
	require.EqualError(t, err, "load-fail")
}
