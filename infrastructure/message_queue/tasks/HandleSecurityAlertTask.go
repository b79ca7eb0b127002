package queue_tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"veriface.io/application/constants"
	"veriface.io/infrastructure/logger"
	mq_types "veriface.io/infrastructure/message_queue/types"
	"veriface.io/infrastructure/messaging/emails"
)

var HandleSecurityAlertTaskName mq_types.Queues = "send_security_alert"

type SecurityAlertPayload struct {
	Email     string
	FirstName string
	Time      string
	Device    string
	IPAddress string
	Location  string
}

func HandleSecurityAlertTask(ctx context.Context, t *asynq.Task) error {
	var payload SecurityAlertPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling security alert queue payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	success := emails.EmailService.SendEmail(payload.Email, "Security alert on your Veriface account", "security_alert", map[string]any{
		"FirstName":    payload.FirstName,
		"Time":         payload.Time,
		"Device":       payload.Device,
		"IPAddress":    payload.IPAddress,
		"Location":     payload.Location,
		"SupportEmail": constants.SUPPORT_EMAIL,
	})
	if !success {
		logger.Error("failed to send security alert email", logger.LoggerOptions{
			Key:  "toEmail",
			Data: payload.Email,
		})
		return fmt.Errorf("failed to send security alert email to %s", payload.Email)
	}
	return nil
}
