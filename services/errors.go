package services

import (
	"errors"

	"gymAPI/internal/types/badge"
	"gymAPI/internal/types/gym"
	"gymAPI/internal/types/participation"
)

// The text of each error is returned to API clients verbatim.
var (
	ErrAuthRequired       = errors.New("Authentication required")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrAccountDeactivated = errors.New("Account is deactivated")
)

var (
	ErrInsufficientPermissions    = errors.New("Insufficient permissions")
	ErrActivationForbidden        = errors.New("Only super administrators can activate/deactivate users")
	ErrCannotDeactivateAdmin      = errors.New("Cannot deactivate another super administrator")
	ErrGymCreateForbidden         = errors.New("Only gym owners can create gyms")
	ErrPendingGymsForbidden       = errors.New("Unauthorized: Only super admins can view pending gyms")
	ErrGymUpdateForbidden         = errors.New("Only the owner can update this gym")
	ErrGymReviewForbidden         = errors.New("Unauthorized: Only super admins can approve gyms")
	ErrExerciseCreateForbidden    = errors.New("Only super administrators can create exercise types")
	ErrExerciseUpdateForbidden    = errors.New("Only super administrators can update exercise types")
	ErrExerciseDeleteForbidden    = errors.New("Only super administrators can delete exercise types")
	ErrForeignGymChallenge        = errors.New("Gym owners can only create challenges for their own gyms")
	ErrOnlyClientsJoin            = errors.New("Only clients can join challenges")
	ErrChallengeUpdateForbidden   = errors.New("Only the creator can update this challenge")
	ErrChallengeDeleteForbidden   = errors.New("Only the creator can delete this challenge")
	ErrChallengeInviteForbidden   = errors.New("Only the creator can invite users to this challenge")
	ErrSessionAddForbidden        = errors.New("Not authorized to add workout session to this participation")
	ErrSessionUpdateForbidden     = errors.New("Not authorized to update this workout session")
	ErrSessionDeleteForbidden     = errors.New("Not authorized to delete this workout session")
	ErrParticipationViewForbidden = errors.New("Not authorized to view this participation")
	ErrBadgeCreateForbidden       = errors.New("Unauthorized: Only super admins can create badges")
	ErrBadgeManageForbidden       = errors.New("Unauthorized: Only super admins can manage badges")
	ErrStatsForbidden             = errors.New("Only super administrators can access dashboard stats")
)

var (
	ErrUserNotFound                = errors.New("User not found")
	ErrActingUserNotFound          = errors.New("Activating user not found")
	ErrGymNotFound                 = errors.New("Gym not found")
	ErrNoGymForOwner               = errors.New("No gym found for this owner")
	ErrExerciseNotFound            = errors.New("Exercise type not found")
	ErrCreatorNotFound             = errors.New("Creator not found")
	ErrChallengeNotFound           = errors.New("Challenge not found")
	ErrAssociatedChallengeNotFound = errors.New("Associated challenge not found")
	ErrParticipationNotFound       = errors.New("Participation not found")
	ErrBadgeNotFound               = errors.New("Badge not found")
)

var (
	ErrEmailTaken           = errors.New("User with this email already exists")
	ErrExerciseNameTaken    = errors.New("Exercise type with this name already exists")
	ErrBadgeNameTaken       = errors.New("Badge with this name already exists")
	ErrAlreadyParticipating = errors.New("User already participating in this challenge")
	ErrBadgeAlreadyAwarded  = errors.New("User already has this badge")
)

var (
	ErrPasswordTooShort       = errors.New("Password must be at least 6 characters")
	ErrInvalidRole            = errors.New("Invalid role")
	ErrGymNotApproved         = errors.New("Gym is not approved")
	ErrExerciseInUse          = errors.New("Cannot delete exercise type that is used in challenges")
	ErrChallengeNotActive     = errors.New("Challenge is not active")
	ErrChallengeFull          = errors.New("Challenge is full")
	ErrChallengeClosed        = errors.New("Cannot update a completed or cancelled challenge")
	ErrChallengeHasActive     = errors.New("Cannot delete challenge with active participants")
	ErrInviteeNotClient       = errors.New("Only active clients can be invited to challenges")
	ErrParticipationCompleted = errors.New("Cannot add workout session to completed participation")
	ErrSessionUpdateCompleted = errors.New("Cannot update workout session for completed participation")
	ErrSessionDeleteCompleted = errors.New("Cannot delete workout session from completed participation")
	ErrBadgeInUse             = errors.New("Cannot delete badge that has been awarded to users")
	ErrGymNotPending          = gym.ErrNotPending
	ErrCanOnlyLeaveActive     = participation.ErrNotActive
	ErrWorkoutSessionNotFound = participation.ErrSessionNotFound
	ErrUnknownBadgeRuleType   = badge.ErrUnknownRuleType
	ErrUnknownBadgeRuleMetric = badge.ErrUnknownMetric
)

// Error groups used by the HTTP layer to pick a status code.
var (
	UnauthenticatedErrors = []error{ErrAuthRequired, ErrInvalidCredentials, ErrAccountDeactivated}

	ForbiddenErrors = []error{
		ErrInsufficientPermissions, ErrActivationForbidden, ErrCannotDeactivateAdmin,
		ErrGymCreateForbidden, ErrPendingGymsForbidden, ErrGymUpdateForbidden, ErrGymReviewForbidden,
		ErrExerciseCreateForbidden, ErrExerciseUpdateForbidden, ErrExerciseDeleteForbidden,
		ErrForeignGymChallenge, ErrOnlyClientsJoin, ErrChallengeUpdateForbidden, ErrChallengeDeleteForbidden,
		ErrChallengeInviteForbidden,
		ErrSessionAddForbidden, ErrSessionUpdateForbidden, ErrSessionDeleteForbidden,
		ErrParticipationViewForbidden, ErrBadgeCreateForbidden, ErrBadgeManageForbidden, ErrStatsForbidden,
	}

	NotFoundErrors = []error{
		ErrUserNotFound, ErrActingUserNotFound, ErrGymNotFound, ErrNoGymForOwner, ErrExerciseNotFound,
		ErrCreatorNotFound, ErrChallengeNotFound, ErrAssociatedChallengeNotFound, ErrParticipationNotFound,
		ErrWorkoutSessionNotFound, ErrBadgeNotFound,
	}

	ConflictErrors = []error{
		ErrEmailTaken, ErrExerciseNameTaken, ErrBadgeNameTaken, ErrAlreadyParticipating, ErrBadgeAlreadyAwarded,
	}

	BadRequestErrors = []error{
		ErrPasswordTooShort, ErrInvalidRole, ErrGymNotPending, ErrGymNotApproved, ErrExerciseInUse,
		ErrChallengeNotActive, ErrChallengeFull, ErrChallengeClosed, ErrChallengeHasActive, ErrCanOnlyLeaveActive,
		ErrInviteeNotClient,
		ErrParticipationCompleted, ErrSessionUpdateCompleted, ErrSessionDeleteCompleted, ErrBadgeInUse,
		ErrUnknownBadgeRuleType, ErrUnknownBadgeRuleMetric,
	}
)
