package v1

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/MGTheTrain/crypto-session-service/internal/domain/engines"
	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"

	"github.com/gin-gonic/gin"
)

// SessionHandler defines the interface for handling session-related operations
type SessionHandler interface {
	Create(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	DeleteAll(ctx *gin.Context)
	RunOperation(ctx *gin.Context)
}

// SessionHandler struct holds the services
type sessionHandler struct {
	sessionService  sessions.SessionService
	pipelineService sessions.PipelineService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService sessions.SessionService, pipelineService sessions.PipelineService) SessionHandler {
	return &sessionHandler{
		sessionService:  sessionService,
		pipelineService: pipelineService,
	}
}

// statusFromError maps domain sentinel errors to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, sessions.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, sessions.ErrInvalidRequest),
		errors.Is(err, sessions.ErrInvalidOperation),
		errors.Is(err, sessions.ErrMisalignedInput),
		errors.Is(err, sessions.ErrUnknownAlgorithm),
		errors.Is(err, sessions.ErrInvalidKeyLength):
		return http.StatusBadRequest
	case errors.Is(err, sessions.ErrResourceExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decodeSpec(request *AlgorithmSpecRequest) (*engines.AlgorithmSpec, error) {
	if request == nil {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(request.Key)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 key for %s: %w", request.Algorithm, err)
	}
	return &engines.AlgorithmSpec{
		Algorithm: request.Algorithm,
		Key:       key,
		HMAC:      request.HMAC,
	}, nil
}

// Create handles the POST request to create a session
// @Summary Create a cryptographic session
// @Description Create a session with an optional cipher transform and an optional hash transform.
// @Tags Session
// @Accept json
// @Produce json
// @Param requestBody body CreateSessionRequest true "Session Transforms"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Router /sessions [post]
func (handler *sessionHandler) Create(ctx *gin.Context) {

	var request CreateSessionRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid session data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	cipherSpec, err := decodeSpec(request.Cipher)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}
	hashSpec, err := decodeSpec(request.Hash)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	sessionID, err := handler.sessionService.Create(ctx, cipherSpec, hashSpec)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error creating session: %v", err.Error())
		ctx.JSON(statusFromError(err), errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, SessionResponse{ID: sessionID})
}

// GetByID handles the GET request to retrieve session details by ID
// @Summary Retrieve session details by ID
// @Description Fetch a session's algorithms, geometry and usage statistics by ID.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionInfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (handler *sessionHandler) GetByID(ctx *gin.Context) {
	sessionID := ctx.Param("id")

	info, err := handler.sessionService.Info(ctx, sessionID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("session with id %s not found", sessionID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	infoResponse := SessionInfoResponse{
		ID:              info.ID,
		CipherAlgorithm: info.CipherAlgorithm,
		HashAlgorithm:   info.HashAlgorithm,
		BlockSize:       info.BlockSize,
		IVSize:          info.IVSize,
		DigestSize:      info.DigestSize,
		CreatedAt:       info.CreatedAt,
		Stats: SessionStatsResponse{
			BytesEncrypted: info.Stats.BytesEncrypted,
			BytesDecrypted: info.Stats.BytesDecrypted,
			MaxSegmentSize: info.Stats.MaxSegmentSize,
			Operations:     info.Stats.Operations,
		},
	}

	ctx.JSON(http.StatusOK, infoResponse)
}

// DeleteByID handles the DELETE request to destroy a session by ID
// @Summary Destroy a session by ID
// @Description Tear down a session and release its transforms. Blocks until in-flight operations finish.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 204 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (handler *sessionHandler) DeleteByID(ctx *gin.Context) {
	sessionID := ctx.Param("id")

	if err := handler.sessionService.Destroy(ctx, sessionID); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error destroying session with id %s", sessionID)
		ctx.JSON(statusFromError(err), errorResponse)
		return
	}

	var infoResponse InfoResponse
	infoResponse.Message = fmt.Sprintf("destroyed session with id %s", sessionID)
	ctx.JSON(http.StatusNoContent, infoResponse)
}

// DeleteAll handles the DELETE request to destroy every live session
// @Summary Destroy all sessions
// @Description Tear down every live session and release their transforms.
// @Tags Session
// @Accept json
// @Produce json
// @Success 204 {object} InfoResponse
// @Router /sessions [delete]
func (handler *sessionHandler) DeleteAll(ctx *gin.Context) {
	if err := handler.sessionService.DestroyAll(ctx); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error destroying sessions: %v", err.Error())
		ctx.JSON(statusFromError(err), errorResponse)
		return
	}

	var infoResponse InfoResponse
	infoResponse.Message = "destroyed all sessions"
	ctx.JSON(http.StatusNoContent, infoResponse)
}

// RunOperation handles the POST request to run an operation against a session
// @Summary Run an encrypt or decrypt operation
// @Description Stream base64 encoded segments through the session's transforms and return the transformed output and digest.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param requestBody body RunOperationRequest true "Operation Data"
// @Success 200 {object} OperationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/operations [post]
func (handler *sessionHandler) RunOperation(ctx *gin.Context) {
	sessionID := ctx.Param("id")

	var request RunOperationRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid operation data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	// The session geometry sizes the destination and digest buffers.
	info, err := handler.sessionService.Info(ctx, sessionID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("session with id %s not found", sessionID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	kind := sessions.OpEncrypt
	if request.Operation == "decrypt" {
		kind = sessions.OpDecrypt
	}

	operationRequest := &sessions.OperationRequest{
		Kind:      kind,
		SessionID: sessionID,
	}

	if len(request.IV) > 0 {
		iv, err := base64.StdEncoding.DecodeString(request.IV)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid base64 iv: %v", err.Error())})
			return
		}
		operationRequest.IV = iv
	}

	outputSize := 0
	for i, segment := range request.Segments {
		data, err := base64.StdEncoding.DecodeString(segment.Data)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid base64 data in segment %d: %v", i, err.Error())})
			return
		}

		var flags sessions.SegmentFlags
		if segment.Cipher {
			flags |= sessions.SegmentCipher
		}
		if segment.Hash {
			flags |= sessions.SegmentHash
		}

		if segment.Cipher && info.CipherAlgorithm != "" {
			outputSize += len(data)
		}
		operationRequest.Segments = append(operationRequest.Segments, sessions.Segment{Src: data, Flags: flags})
	}

	operationRequest.Dst = make([]byte, outputSize)
	if info.DigestSize > 0 {
		operationRequest.MAC = make([]byte, info.DigestSize)
	}

	if err := handler.pipelineService.Run(ctx, operationRequest); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error running %s operation: %v", request.Operation, err.Error())
		ctx.JSON(statusFromError(err), errorResponse)
		return
	}

	var operationResponse OperationResponse
	if len(operationRequest.Dst) > 0 {
		operationResponse.Output = base64.StdEncoding.EncodeToString(operationRequest.Dst)
	}
	if len(operationRequest.MAC) > 0 {
		operationResponse.MAC = base64.StdEncoding.EncodeToString(operationRequest.MAC)
	}

	ctx.JSON(http.StatusOK, operationResponse)
}
