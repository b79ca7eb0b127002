package login_usecases

import (
	"errors"
	"time"

	"veriface.io/application/constants"
	"veriface.io/entities"
	"veriface.io/infrastructure/biometric"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/cryptography"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/session"
)

const attemptsLockTTL = 5 * time.Second

// StageMachine drives the ordered login stages: credentials, then face and
// head position, then the secondary factor. Each stage consumes the
// session produced by the previous one; invoking a stage out of order is a
// flow-order violation and the caller must restart from stage one.
type StageMachine struct {
	Users       UserStore
	Sessions    session.Store
	Hasher      cryptography.Hasher
	Extractor   ExtractorProvider
	Secondary   SecondaryFactorValidator
	Tokens      TokenIssuer
	Alerts      AlertDispatcher
	AcquireLock LockAcquirer
}

// SubmitCredentials runs stage one. A verified email and password opens a
// login session pending face verification. No session is created on
// mismatch.
func (machine *StageMachine) SubmitCredentials(email string, password string, meta session.Metadata) (*CredentialsResult, *FlowError) {
	user, err := machine.Users.FindByEmail(email)
	if err != nil {
		logger.Error("failed to load user for credential check", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, newFlowError(CodeInternalFailure, "something went wrong, please try again")
	}
	if user == nil {
		return nil, newFlowError(CodeUserNotFound, "no account found for this email")
	}
	if !user.Active {
		return nil, newFlowError(CodeInvalidCredentials, "this account has been deactivated")
	}
	if !machine.Hasher.VerifyHashData(user.Password, password) {
		return nil, newFlowError(CodeInvalidCredentials, "invalid email or password")
	}
	loginSession, err := machine.Sessions.Create(user.ID, meta)
	if err != nil {
		logger.Error("failed to open login session", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: user.ID,
		})
		return nil, newFlowError(CodeInternalFailure, "something went wrong, please try again")
	}
	return &CredentialsResult{
		SessionID: loginSession.ID,
		Stage:     loginSession.Stage,
	}, nil
}

// SubmitFace runs stage two. The live capture must match an enrolled
// embedding and the live head position must match an enrolled pose, both
// judged under tolerances derived from the user's consecutive-failure
// counter. A capture with no detectable face is reported distinctly and
// leaves the counter untouched.
func (machine *StageMachine) SubmitFace(sessionID string, imageB64 string, livePose map[string]float64, meta session.Metadata) (*FaceResult, *FlowError) {
	loginSession, flowErr := machine.findSessionAt(sessionID, session.StageFace)
	if flowErr != nil {
		return nil, flowErr
	}

	live, err := machine.Extractor().ExtractEmbedding(imageB64)
	if err != nil {
		if errors.Is(err, types.ErrNoFaceDetected) {
			return nil, newFlowError(CodeFaceNotDetected, "no face detected, please retake the picture")
		}
		logger.Error("embedding extraction failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, newFlowError(CodeInternalFailure, "something went wrong, please try again")
	}
	pose := types.PoseFromMap(livePose)

	release, acquired := machine.lockAttempts(loginSession.UserID)
	if !acquired {
		return nil, newFlowError(CodeInternalFailure, "something went wrong, please try again")
	}
	defer release()

	// re-read under the lock so concurrent attempts for the same user
	// cannot clobber each other's counter updates
	user, err := machine.Users.FindByID(loginSession.UserID)
	if err != nil {
		logger.Error("failed to load user for face check", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, newFlowError(CodeInternalFailure, "something went wrong, please try again")
	}
	if user == nil {
		machine.Sessions.Destroy(loginSession.ID)
		return nil, newFlowError(CodeUserNotFound, "this account no longer exists")
	}

	attempts := entities.ClampedFailedAttempts(user.FailedAttempts)
	faceOK := biometric.MatchEmbeddingCollection(faceRecord(user, attempts), *live)
	poseOK := biometric.MatchPositionCollection(poseRecord(user, attempts), pose)

	if faceOK && poseOK {
		if err := machine.Users.SetFailedAttempts(user.ID, 0); err != nil {
			logger.Error("failed to reset failure counter", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			}, logger.LoggerOptions{
				Key:  "userID",
				Data: user.ID,
			})
			return nil, newFlowError(CodeInternalFailure, "something went wrong, please try again")
		}
		if err := machine.Sessions.Advance(loginSession, session.StageSecondaryFactor); err != nil {
			return nil, newFlowError(CodeInternalFailure, "something went wrong, please try again")
		}
		return &FaceResult{
			SessionID: loginSession.ID,
			Stage:     loginSession.Stage,
		}, nil
	}

	next := entities.ClampedFailedAttempts(attempts + 1)
	if err := machine.Users.SetFailedAttempts(user.ID, next); err != nil {
		logger.Error("failed to increment failure counter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: user.ID,
		})
	}
	result := &FaceResult{
		SessionID: loginSession.ID,
		Stage:     loginSession.Stage,
	}
	if next == constants.MaxFailedAttempts && attempts < constants.MaxFailedAttempts {
		machine.Alerts.DispatchSecurityAlert(user, meta)
		result.AlertSent = true
	}
	if !faceOK {
		return result, newFlowError(CodeFaceMismatch, "face did not match, please try again")
	}
	return result, newFlowError(CodePositionMismatch, "head position did not match, please try again")
}

// SubmitSecondaryFactor runs stage three. The presented national id and
// one-time code must both match. The session survives a failed attempt so
// the user can retry; it is destroyed once the credential is issued.
func (machine *StageMachine) SubmitSecondaryFactor(sessionID string, nationalID string, code string, meta session.Metadata) (*SecondaryFactorResult, *FlowError) {
	loginSession, flowErr := machine.findSessionAt(sessionID, session.StageSecondaryFactor)
	if flowErr != nil {
		return nil, flowErr
	}
	user, err := machine.Users.FindByID(loginSession.UserID)
	if err != nil {
		logger.Error("failed to load user for secondary factor check", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, newFlowError(CodeInternalFailure, "something went wrong, please try again")
	}
	if user == nil {
		machine.Sessions.Destroy(loginSession.ID)
		return nil, newFlowError(CodeUserNotFound, "this account no longer exists")
	}
	if user.NationalID != nationalID || !machine.Secondary.Validate(user, code) {
		return nil, newFlowError(CodeSecondaryFactorInvalid, "invalid national id or one-time code")
	}
	accessToken, err := machine.Tokens.IssueAccessToken(user, meta)
	if err != nil {
		logger.Error("failed to issue access token", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: user.ID,
		})
		return nil, newFlowError(CodeInternalFailure, "something went wrong, please try again")
	}
	machine.Sessions.Destroy(loginSession.ID)
	return &SecondaryFactorResult{
		AccessToken: *accessToken,
		User:        user,
	}, nil
}

func (machine *StageMachine) findSessionAt(sessionID string, stage session.Stage) (*session.LoginSession, *FlowError) {
	loginSession, err := machine.Sessions.Find(sessionID)
	if err != nil {
		return nil, newFlowError(CodeInternalFailure, "something went wrong, please try again")
	}
	if loginSession == nil {
		return nil, newFlowError(CodeFlowOrderViolation, "no active login session, restart the login flow")
	}
	if loginSession.Stage != stage {
		return nil, newFlowError(CodeFlowOrderViolation, "login stages must be completed in order, restart the login flow")
	}
	return loginSession, nil
}

func (machine *StageMachine) lockAttempts(userID string) (func(), bool) {
	key := "login-attempts-lock-" + userID
	for i := 0; i < 5; i++ {
		release, acquired := machine.AcquireLock(key, attemptsLockTTL)
		if acquired {
			return release, true
		}
		time.Sleep(100 * time.Millisecond)
	}
	logger.Warning("could not acquire failure counter lock", logger.LoggerOptions{
		Key:  "userID",
		Data: userID,
	})
	return func() {}, false
}

func faceRecord(user *entities.User, attempts int) types.FaceRecord {
	record := types.FaceRecord{
		Legacy:         types.DecodeLegacyEmbedding(user.FacialData),
		FailedAttempts: attempts,
	}
	for _, components := range user.FacialEmbeddings {
		record.Collection = append(record.Collection, types.NewEmbedding(components))
	}
	return record
}

func poseRecord(user *entities.User, attempts int) types.PoseRecord {
	record := types.PoseRecord{FailedAttempts: attempts}
	if user.PositionData != nil {
		legacy := types.PoseFromMap(user.PositionData)
		record.Legacy = &legacy
	}
	for _, raw := range user.Positions {
		record.Collection = append(record.Collection, types.PoseFromMap(raw))
	}
	return record
}
