package twilio

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	twiliosdk "github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/spf13/viper"
)

// Client sends SMS messages through the Twilio REST API.
type Client struct {
	rest *twiliosdk.RestClient
	from string
}

// MustNewClient creates a new Twilio client from environment credentials.
func MustNewClient() *Client {
	sid := os.Getenv("TWILIO_ACCOUNT_SID")
	token := os.Getenv("TWILIO_AUTH_TOKEN")
	if sid == "" || token == "" {
		panic("TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN must be set")
	}

	rest := twiliosdk.NewRestClientWithParams(twiliosdk.ClientParams{
		Username: sid,
		Password: token,
	})

	return &Client{
		rest: rest,
		from: viper.GetString("twilio.from_number"),
	}
}

// SendSMS delivers a message to the given phone number, optionally attaching
// a photo.
func (c *Client) SendSMS(
	ctx context.Context,
	recipientName string,
	body string,
	phoneNumber string,
	photoURL string,
) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(phoneNumber)
	params.SetFrom(c.from)
	params.SetBody(body)
	if photoURL != "" {
		params.SetMediaUrl([]string{photoURL})
	}

	resp, err := c.rest.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}

	if resp.Sid != nil {
		slog.Info("SMS accepted by Twilio", "sid", *resp.Sid, "recipient", recipientName)
	}

	return nil
}
