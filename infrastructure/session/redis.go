package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"veriface.io/application/utils"
	"veriface.io/infrastructure/database/repository/cache"
	"veriface.io/infrastructure/logger"
)

// Sessions not completed within this window are invalidated and the login
// flow must restart from stage one.
const LoginSessionTTL = 10 * time.Minute

type redisStore struct {
	Cache *cache.RedisRepository
}

var LoginSessionStore Store = &redisStore{Cache: &cache.Cache}

func sessionKey(id string) string {
	return fmt.Sprintf("login-session-%s", id)
}

func (store *redisStore) Create(userID string, meta Metadata) (*LoginSession, error) {
	loginSession := &LoginSession{
		ID:        utils.GenerateUULDString(),
		UserID:    userID,
		Stage:     StageFace,
		DeviceID:  meta.DeviceID,
		UserAgent: meta.UserAgent,
		ClientIP:  meta.ClientIP,
		CreatedAt: time.Now(),
	}
	if err := store.save(loginSession); err != nil {
		return nil, err
	}
	return loginSession, nil
}

func (store *redisStore) Find(id string) (*LoginSession, error) {
	if id == "" {
		return nil, nil
	}
	payload := store.Cache.FindOne(sessionKey(id))
	if payload == nil {
		return nil, nil
	}
	var loginSession LoginSession
	if err := json.Unmarshal([]byte(*payload), &loginSession); err != nil {
		logger.Error("corrupt login session payload in cache", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "sessionID",
			Data: id,
		})
		store.Cache.DeleteOne(sessionKey(id))
		return nil, err
	}
	return &loginSession, nil
}

func (store *redisStore) Advance(loginSession *LoginSession, stage Stage) error {
	loginSession.Stage = stage
	return store.save(loginSession)
}

func (store *redisStore) Destroy(id string) error {
	store.Cache.DeleteOne(sessionKey(id))
	return nil
}

func (store *redisStore) save(loginSession *LoginSession) error {
	payload, err := json.Marshal(loginSession)
	if err != nil {
		return err
	}
	if !store.Cache.CreateEntry(sessionKey(loginSession.ID), payload, LoginSessionTTL) {
		return errors.New("could not persist login session")
	}
	return nil
}
