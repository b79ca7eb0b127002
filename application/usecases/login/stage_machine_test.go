package login_usecases

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veriface.io/entities"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/session"
)

type fakeUserStore struct {
	users map[string]*entities.User
}

func (store *fakeUserStore) FindByEmail(email string) (*entities.User, error) {
	for _, user := range store.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (store *fakeUserStore) FindByID(id string) (*entities.User, error) {
	return store.users[id], nil
}

func (store *fakeUserStore) SetFailedAttempts(id string, attempts int) error {
	user, ok := store.users[id]
	if !ok {
		return errors.New("user not found")
	}
	user.FailedAttempts = attempts
	return nil
}

type fakeSessionStore struct {
	sessions map[string]*session.LoginSession
	counter  int
}

func (store *fakeSessionStore) Create(userID string, meta session.Metadata) (*session.LoginSession, error) {
	store.counter++
	loginSession := &session.LoginSession{
		ID:        string(rune('a' + store.counter)),
		UserID:    userID,
		Stage:     session.StageFace,
		CreatedAt: time.Now(),
	}
	store.sessions[loginSession.ID] = loginSession
	return loginSession, nil
}

func (store *fakeSessionStore) Find(id string) (*session.LoginSession, error) {
	return store.sessions[id], nil
}

func (store *fakeSessionStore) Advance(loginSession *session.LoginSession, stage session.Stage) error {
	loginSession.Stage = stage
	store.sessions[loginSession.ID] = loginSession
	return nil
}

func (store *fakeSessionStore) Destroy(id string) error {
	delete(store.sessions, id)
	return nil
}

type fakeHasher struct{}

func (fakeHasher) HashString(data string, salt []byte) ([]byte, error) {
	return []byte("hashed:" + data), nil
}

func (fakeHasher) VerifyHashData(hash string, data string) bool {
	return hash == "hashed:"+data
}

type fakeExtractor struct {
	embedding *types.Embedding
	err       error
}

func (extractor *fakeExtractor) ExtractEmbedding(imageB64 string) (*types.Embedding, error) {
	if extractor.err != nil {
		return nil, extractor.err
	}
	return extractor.embedding, nil
}

type fakeSecondary struct {
	expected string
}

func (validator *fakeSecondary) Validate(user *entities.User, code string) bool {
	return code == validator.expected
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) IssueAccessToken(user *entities.User, meta session.Metadata) (*string, error) {
	token := "token-for-" + user.ID
	return &token, nil
}

type fakeAlerts struct {
	dispatched int
}

func (alerts *fakeAlerts) DispatchSecurityAlert(user *entities.User, meta session.Metadata) {
	alerts.dispatched++
}

func metricComponents(first float64) []float32 {
	components := make([]float32, types.MetricComponents)
	components[0] = float32(first)
	return components
}

func enrolledUser() *entities.User {
	return &entities.User{
		ID:               "user-1",
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Email:            "ada@example.com",
		NationalID:       "AB-123456",
		Password:         "hashed:hunter22!",
		Active:           true,
		FacialEmbeddings: [][]float32{metricComponents(0)},
		Positions:        []map[string]float64{{"x": 0.5, "y": 0.5, "scale": 1.0}},
	}
}

type fixture struct {
	machine   *StageMachine
	users     *fakeUserStore
	sessions  *fakeSessionStore
	extractor *fakeExtractor
	alerts    *fakeAlerts
}

func newFixture(user *entities.User) *fixture {
	users := &fakeUserStore{users: map[string]*entities.User{user.ID: user}}
	sessions := &fakeSessionStore{sessions: map[string]*session.LoginSession{}}
	extractor := &fakeExtractor{}
	alerts := &fakeAlerts{}
	return &fixture{
		machine: &StageMachine{
			Users:     users,
			Sessions:  sessions,
			Hasher:    fakeHasher{},
			Extractor: func() types.EmbeddingExtractor { return extractor },
			Secondary: &fakeSecondary{expected: "424242"},
			Tokens:    fakeTokenIssuer{},
			Alerts:    alerts,
			AcquireLock: func(key string, ttl time.Duration) (func(), bool) {
				return func() {}, true
			},
		},
		users:     users,
		sessions:  sessions,
		extractor: extractor,
		alerts:    alerts,
	}
}

func (f *fixture) meta() session.Metadata {
	return session.Metadata{DeviceID: "device-1", UserAgent: "test-agent", ClientIP: "127.0.0.1"}
}

func matchingPose() map[string]float64 {
	return map[string]float64{"x": 0.5, "y": 0.5, "scale": 1.0}
}

func TestFullLoginFlow(t *testing.T) {
	user := enrolledUser()
	user.FailedAttempts = 2
	f := newFixture(user)
	f.extractor.embedding = &types.Embedding{Kind: types.EmbeddingKindMetric128, Components: metricComponents(0.1)}

	credentials, flowErr := f.machine.SubmitCredentials("ada@example.com", "hunter22!", f.meta())
	require.Nil(t, flowErr)
	assert.Equal(t, session.StageFace, credentials.Stage)

	face, flowErr := f.machine.SubmitFace(credentials.SessionID, "img", matchingPose(), f.meta())
	require.Nil(t, flowErr)
	assert.Equal(t, session.StageSecondaryFactor, face.Stage)
	assert.Equal(t, 0, user.FailedAttempts, "counter resets on face success")

	result, flowErr := f.machine.SubmitSecondaryFactor(credentials.SessionID, "AB-123456", "424242", f.meta())
	require.Nil(t, flowErr)
	assert.Equal(t, "token-for-user-1", result.AccessToken)
	assert.Empty(t, f.sessions.sessions, "session is destroyed once the credential is issued")
}

func TestCredentialsStage(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		f := newFixture(enrolledUser())
		_, flowErr := f.machine.SubmitCredentials("nobody@example.com", "hunter22!", f.meta())
		require.NotNil(t, flowErr)
		assert.Equal(t, CodeUserNotFound, flowErr.Code)
		assert.Empty(t, f.sessions.sessions)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture(enrolledUser())
		_, flowErr := f.machine.SubmitCredentials("ada@example.com", "wrong", f.meta())
		require.NotNil(t, flowErr)
		assert.Equal(t, CodeInvalidCredentials, flowErr.Code)
		assert.Empty(t, f.sessions.sessions, "no session is created on mismatch")
	})

	t.Run("deactivated account", func(t *testing.T) {
		user := enrolledUser()
		user.Active = false
		f := newFixture(user)
		_, flowErr := f.machine.SubmitCredentials("ada@example.com", "hunter22!", f.meta())
		require.NotNil(t, flowErr)
		assert.Equal(t, CodeInvalidCredentials, flowErr.Code)
	})
}

func TestFaceStageFlowOrder(t *testing.T) {
	f := newFixture(enrolledUser())

	_, flowErr := f.machine.SubmitFace("missing-session", "img", matchingPose(), f.meta())
	require.NotNil(t, flowErr)
	assert.Equal(t, CodeFlowOrderViolation, flowErr.Code)

	_, flowErr = f.machine.SubmitSecondaryFactor("missing-session", "AB-123456", "424242", f.meta())
	require.NotNil(t, flowErr)
	assert.Equal(t, CodeFlowOrderViolation, flowErr.Code)
}

func TestSecondaryStageBeforeFaceIsFlowOrderViolation(t *testing.T) {
	f := newFixture(enrolledUser())
	credentials, flowErr := f.machine.SubmitCredentials("ada@example.com", "hunter22!", f.meta())
	require.Nil(t, flowErr)

	_, flowErr = f.machine.SubmitSecondaryFactor(credentials.SessionID, "AB-123456", "424242", f.meta())
	require.NotNil(t, flowErr)
	assert.Equal(t, CodeFlowOrderViolation, flowErr.Code)
}

func TestFaceNotDetectedLeavesCounterUntouched(t *testing.T) {
	user := enrolledUser()
	user.FailedAttempts = 2
	f := newFixture(user)
	f.extractor.err = types.ErrNoFaceDetected

	credentials, _ := f.machine.SubmitCredentials("ada@example.com", "hunter22!", f.meta())
	_, flowErr := f.machine.SubmitFace(credentials.SessionID, "img", matchingPose(), f.meta())
	require.NotNil(t, flowErr)
	assert.Equal(t, CodeFaceNotDetected, flowErr.Code)
	assert.Equal(t, 2, user.FailedAttempts)
}

func TestFaceMismatchIncrementsCounter(t *testing.T) {
	user := enrolledUser()
	f := newFixture(user)
	// far from the enrolled sample under every threshold
	f.extractor.embedding = &types.Embedding{Kind: types.EmbeddingKindMetric128, Components: metricComponents(3)}

	credentials, _ := f.machine.SubmitCredentials("ada@example.com", "hunter22!", f.meta())
	result, flowErr := f.machine.SubmitFace(credentials.SessionID, "img", matchingPose(), f.meta())
	require.NotNil(t, flowErr)
	assert.Equal(t, CodeFaceMismatch, flowErr.Code)
	assert.Equal(t, 1, user.FailedAttempts)
	assert.False(t, result.AlertSent)
	assert.Equal(t, session.StageFace, f.sessions.sessions[credentials.SessionID].Stage, "session stays on the face stage for retry")
}

func TestPositionMismatchIncrementsCounter(t *testing.T) {
	user := enrolledUser()
	f := newFixture(user)
	f.extractor.embedding = &types.Embedding{Kind: types.EmbeddingKindMetric128, Components: metricComponents(0.1)}

	credentials, _ := f.machine.SubmitCredentials("ada@example.com", "hunter22!", f.meta())
	_, flowErr := f.machine.SubmitFace(credentials.SessionID, "img", map[string]float64{"x": 0.9, "y": 0.9, "scale": 2.0}, f.meta())
	require.NotNil(t, flowErr)
	assert.Equal(t, CodePositionMismatch, flowErr.Code)
	assert.Equal(t, 1, user.FailedAttempts)
}

func TestCounterCapAndSecurityAlert(t *testing.T) {
	user := enrolledUser()
	user.FailedAttempts = 4
	f := newFixture(user)
	f.extractor.embedding = &types.Embedding{Kind: types.EmbeddingKindMetric128, Components: metricComponents(3)}

	credentials, _ := f.machine.SubmitCredentials("ada@example.com", "hunter22!", f.meta())

	result, flowErr := f.machine.SubmitFace(credentials.SessionID, "img", matchingPose(), f.meta())
	require.NotNil(t, flowErr)
	assert.Equal(t, 5, user.FailedAttempts)
	assert.True(t, result.AlertSent, "crossing the cap dispatches an alert")
	assert.Equal(t, 1, f.alerts.dispatched)

	// further failures stay clamped at the cap and do not re-alert
	result, flowErr = f.machine.SubmitFace(credentials.SessionID, "img", matchingPose(), f.meta())
	require.NotNil(t, flowErr)
	assert.Equal(t, 5, user.FailedAttempts)
	assert.False(t, result.AlertSent)
	assert.Equal(t, 1, f.alerts.dispatched)
}

func TestSecondaryFactorRetry(t *testing.T) {
	user := enrolledUser()
	f := newFixture(user)
	f.extractor.embedding = &types.Embedding{Kind: types.EmbeddingKindMetric128, Components: metricComponents(0.1)}

	credentials, _ := f.machine.SubmitCredentials("ada@example.com", "hunter22!", f.meta())
	_, flowErr := f.machine.SubmitFace(credentials.SessionID, "img", matchingPose(), f.meta())
	require.Nil(t, flowErr)

	t.Run("wrong national id", func(t *testing.T) {
		_, flowErr := f.machine.SubmitSecondaryFactor(credentials.SessionID, "XX-000000", "424242", f.meta())
		require.NotNil(t, flowErr)
		assert.Equal(t, CodeSecondaryFactorInvalid, flowErr.Code)
	})

	t.Run("wrong code", func(t *testing.T) {
		_, flowErr := f.machine.SubmitSecondaryFactor(credentials.SessionID, "AB-123456", "000000", f.meta())
		require.NotNil(t, flowErr)
		assert.Equal(t, CodeSecondaryFactorInvalid, flowErr.Code)
	})

	// the session survives failed attempts, so a correct retry completes
	result, flowErr := f.machine.SubmitSecondaryFactor(credentials.SessionID, "AB-123456", "424242", f.meta())
	require.Nil(t, flowErr)
	assert.Equal(t, "token-for-user-1", result.AccessToken)
}
