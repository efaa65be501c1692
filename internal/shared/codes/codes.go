// Package codes holds the stable error codes returned to API clients and the
// constructors that attach them to typed domain errors.
package codes

import "course_portal_backend/platform/apperr"

const (
	StatusNotFound       = "STATUS_NOT_FOUND"
	LeadNotFound         = "LEAD_NOT_FOUND"
	CourseNotFound       = "COURSE_NOT_FOUND"
	UserNotFound         = "USER_NOT_FOUND"
	DuplicateName        = "DUPLICATE_NAME"
	DefaultNotDeletable  = "DEFAULT_NOT_DELETABLE"
	DefaultStatusMissing = "DEFAULT_STATUS_MISSING"
	DefaultRequired      = "DEFAULT_REQUIRED"
	OrderFormatInvalid   = "ORDER_FORMAT_INVALID"
	StatusesNotFound     = "STATUSES_NOT_FOUND"
	OrderIncomplete      = "ORDER_INCOMPLETE"
	ValidationFailed     = "VALIDATION_FAILED"
)

func ErrStatusNotFound() *apperr.Error {
	return apperr.NotFound("status not found").WithCode(StatusNotFound)
}

func ErrLeadNotFound() *apperr.Error {
	return apperr.NotFound("lead not found").WithCode(LeadNotFound)
}

func ErrCourseNotFound() *apperr.Error {
	return apperr.NotFound("course not found").WithCode(CourseNotFound)
}

func ErrUserNotFound() *apperr.Error {
	return apperr.NotFound("user not found").WithCode(UserNotFound)
}

func ErrDuplicateName() *apperr.Error {
	return apperr.Conflict("status name already exists").WithCode(DuplicateName)
}

func ErrDefaultNotDeletable() *apperr.Error {
	return apperr.BadRequest("default status cannot be deleted").WithCode(DefaultNotDeletable)
}

// ErrDefaultStatusMissing signals a broken board invariant, not bad input.
func ErrDefaultStatusMissing() *apperr.Error {
	return apperr.Internal("default status is missing").WithCode(DefaultStatusMissing)
}

func ErrDefaultRequired() *apperr.Error {
	return apperr.BadRequest("promote another status to default instead of unsetting the current one").WithCode(DefaultRequired)
}

func ErrOrderFormatInvalid() *apperr.Error {
	return apperr.Validation("order must be a non-empty list of status ids").WithCode(OrderFormatInvalid)
}

func ErrStatusesNotFound() *apperr.Error {
	return apperr.NotFound("one or more statuses were not found").WithCode(StatusesNotFound)
}

func ErrOrderIncomplete() *apperr.Error {
	return apperr.Validation("order must list every status exactly once").WithCode(OrderIncomplete)
}

// ErrValidation wraps request validation failures with per-field details.
func ErrValidation(details interface{}) *apperr.Error {
	return apperr.Validation("validation failed").WithCode(ValidationFailed).WithDetails(details)
}
