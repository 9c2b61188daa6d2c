package service

import "errors"

// Sentinel errors surfaced to callers. The REST layer maps them to HTTP
// status codes; none of them are recovered from locally. Removing an
// already-absent post-it, cluster or co-admin is a no-op success instead.
var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrNotAuthorized       = errors.New("not authorized")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionNotActive    = errors.New("session not found or not active")
	ErrFolderNotFound      = errors.New("folder not found")
	ErrPostItNotFound      = errors.New("post-it not found")
	ErrClusterNotFound     = errors.New("cluster not found")
	ErrRoundNotFound       = errors.New("round not found")
	ErrParticipantNotFound = errors.New("participant not found or not in this session")
	ErrCoAdminNotFound     = errors.New("co-admin not found")
	ErrInvalidInvite       = errors.New("invalid invite link")
	ErrPhaseNotCollect     = errors.New("post-its can only be added during the collect phase")
	ErrPhaseNotVote        = errors.New("voting rounds can only be created during the vote phase")
	ErrAlreadyAtFinalPhase = errors.New("already at final phase")
	ErrInvalidRevert       = errors.New("can only revert to an earlier phase")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
)
