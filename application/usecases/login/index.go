package login_usecases

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"veriface.io/application/repository"
	"veriface.io/entities"
	"veriface.io/infrastructure/auth"
	"veriface.io/infrastructure/biometric"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/cryptography"
	"veriface.io/infrastructure/database/repository/cache"
	"veriface.io/infrastructure/ipresolver"
	"veriface.io/infrastructure/logger"
	messagequeue "veriface.io/infrastructure/message_queue"
	queue_tasks "veriface.io/infrastructure/message_queue/tasks"
	mq_types "veriface.io/infrastructure/message_queue/types"
	"veriface.io/infrastructure/session"
	"veriface.io/infrastructure/totp"
	"veriface.io/infrastructure/useragent"
)

var machineOnce = sync.Once{}
var machine *StageMachine

// Machine returns the stage machine wired against the live services. Tests
// construct their own StageMachine with fakes instead.
func Machine() *StageMachine {
	machineOnce.Do(func() {
		machine = &StageMachine{
			Users:       &mongoUserStore{},
			Sessions:    session.LoginSessionStore,
			Hasher:      cryptography.CryptoHahser,
			Extractor:   func() types.EmbeddingExtractor { return biometric.Extractor },
			Secondary:   &totpSecondaryValidator{},
			Tokens:      &jwtTokenIssuer{},
			Alerts:      &queueAlertDispatcher{},
			AcquireLock: cache.Cache.AcquireLock,
		}
	})
	return machine
}

type mongoUserStore struct{}

func (store *mongoUserStore) FindByEmail(email string) (*entities.User, error) {
	return repository.UserRepo().FindOneByFilter(map[string]any{"email": email})
}

func (store *mongoUserStore) FindByID(id string) (*entities.User, error) {
	return repository.UserRepo().FindByID(id)
}

func (store *mongoUserStore) SetFailedAttempts(id string, attempts int) error {
	_, err := repository.UserRepo().UpdatePartialByID(id, map[string]any{
		"failedAttempts": entities.ClampedFailedAttempts(attempts),
	})
	return err
}

type totpSecondaryValidator struct{}

func (validator *totpSecondaryValidator) Validate(user *entities.User, code string) bool {
	if user.TOTPSecret == "" || code == "" {
		return false
	}
	seed, err := cryptography.DecryptData(user.TOTPSecret, nil)
	if err != nil {
		logger.Error("failed to decrypt totp seed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: user.ID,
		})
		return false
	}
	return totp.TOTPService.ValidateTOTP(code, string(seed))
}

type jwtTokenIssuer struct{}

func (issuer *jwtTokenIssuer) IssueAccessToken(user *entities.User, meta session.Metadata) (*string, error) {
	now := time.Now()
	return auth.GenerateAuthToken(auth.ClaimsData{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		DeviceID:  meta.DeviceID,
		UserAgent: meta.UserAgent,
		TokenType: auth.AccessToken,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour * 1).Unix(),
	})
}

type queueAlertDispatcher struct{}

func (dispatcher *queueAlertDispatcher) DispatchSecurityAlert(user *entities.User, meta session.Metadata) {
	device := meta.UserAgent
	if agent := useragent.ParseUserAgent(meta.UserAgent); agent.Name != "" {
		device = fmt.Sprintf("%s on %s %s", agent.Name, agent.OS, agent.OSVersion)
	}
	location := ""
	ipData, err := ipresolver.IPResolverInstance.LookUp(meta.ClientIP)
	if err != nil {
		logger.Warning("ip lookup failed for security alert", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	} else if ipData != nil && ipData.City != "" {
		location = fmt.Sprintf("%s, %s", ipData.City, ipData.CountryCode)
	}
	payload, err := json.Marshal(queue_tasks.SecurityAlertPayload{
		Email:     user.Email,
		FirstName: user.FirstName,
		Time:      time.Now().Format(time.RFC1123),
		Device:    device,
		IPAddress: meta.ClientIP,
		Location:  location,
	})
	if err != nil {
		logger.Error("failed to marshal security alert payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleSecurityAlertTaskName,
		Payload:  payload,
		Priority: mq_types.High,
	})
}
