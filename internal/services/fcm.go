package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strconv"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMService handles Firebase Cloud Messaging pushes to portal users
type FCMService struct {
	client *messaging.Client
}

// NewFCMService creates a new FCM service instance from a credentials file
func NewFCMService(credentialsFile string) (*FCMService, error) {
	ctx := context.Background()

	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return &FCMService{client: client}, nil
}

// NewFCMServiceFromBase64 creates a new FCM service instance from
// base64-encoded credentials. Useful for cloud deployments (Railway,
// Fly.io, Render) where uploading a credentials file is awkward.
func NewFCMServiceFromBase64(credentialsBase64 string) (*FCMService, error) {
	ctx := context.Background()

	credentialsJSON, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("error decoding base64 credentials: %w", err)
	}

	opt := option.WithCredentialsJSON(credentialsJSON)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return &FCMService{client: client}, nil
}

// SendOverrideAlert notifies admins that a vehicle entered an exceptional
// status (maintenance, accident, ...) for a date range
func (s *FCMService) SendOverrideAlert(tokens []string, vehicleNumber int, status, startDate, endDate string) error {
	title := fmt.Sprintf("Móvil %d: %s", vehicleNumber, status)
	body := fmt.Sprintf("Estado %s desde %s hasta %s", status, startDate, endDate)
	return s.sendMulticast(tokens, title, body, map[string]string{
		"type":           "status_override",
		"vehicle_number": strconv.Itoa(vehicleNumber),
		"status":         status,
		"start_date":     startDate,
		"end_date":       endDate,
	})
}

// SendOverrideCancelledAlert notifies admins that an exceptional status was
// lifted and the vehicle goes back to its regular shift
func (s *FCMService) SendOverrideCancelledAlert(tokens []string, vehicleNumber int, status string) error {
	title := fmt.Sprintf("Móvil %d disponible", vehicleNumber)
	body := fmt.Sprintf("Estado %s cancelado, vuelve a su turno regular", status)
	return s.sendMulticast(tokens, title, body, map[string]string{
		"type":           "status_override_cancelled",
		"vehicle_number": strconv.Itoa(vehicleNumber),
		"status":         status,
	})
}

// sendMulticast sends the same message to multiple tokens
func (s *FCMService) sendMulticast(tokens []string, title, body string, data map[string]string) error {
	if len(tokens) == 0 {
		return nil
	}
	ctx := context.Background()

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					ContentAvailable: true,
					Sound:            "default",
				},
			},
		},
	}

	response, err := s.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending multicast message: %w", err)
	}

	log.Printf("✅ FCM multicast sent: %d success, %d failures", response.SuccessCount, response.FailureCount)
	return nil
}
