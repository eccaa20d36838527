package notification

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMSender pushes notifications through Firebase Cloud Messaging. Each
// account's devices subscribe to the topic returned by UserTopic.
type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender initializes Firebase. It prefers base64 encoded credentials
// from encodedCreds and falls back to the service account file at localFilePath.
func NewFCMSender(ctx context.Context, encodedCreds, localFilePath string) (*FCMSender, error) {
	var opt option.ClientOption

	if encodedCreds != "" {
		decoded, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 firebase credentials: %w", err)
		}
		opt = option.WithCredentialsJSON(decoded)
	} else {
		if _, err := os.Stat(localFilePath); os.IsNotExist(err) {
			return nil, fmt.Errorf("local firebase file not found: %s, and no encoded credentials were provided", localFilePath)
		}
		opt = option.WithCredentialsFile(localFilePath)
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return &FCMSender{client: client}, nil
}

// UserTopic is the FCM topic an account's devices subscribe to.
func UserTopic(userID string) string {
	return "user-" + userID
}

func (s *FCMSender) Name() string { return "fcm" }

func (s *FCMSender) Send(ctx context.Context, n Notification) error {
	data := map[string]string{
		"notificationId": n.ID,
		"type":           string(n.Type),
	}
	for k, v := range n.Data {
		data[k] = fmt.Sprintf("%v", v)
	}

	message := &messaging.Message{
		Topic: UserTopic(n.UserID),
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return fmt.Errorf("fcm send to %s: %w", message.Topic, err)
	}
	return nil
}
