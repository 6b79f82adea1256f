package services

import (
	"studytrack/backend/models"
	"studytrack/backend/utils"
)

// Policy decides who may act on which account.
type Policy struct {
	// AllowSelfPromotion lets a non-teacher set is_teacher on their own
	// account.
	AllowSelfPromotion bool
}

// CanManage allows an actor to act on their own account, and teachers to act
// on any account. action only shapes the error message.
func (p Policy) CanManage(actor *models.User, targetUsername, action string) error {
	if actor.Username == targetUsername || actor.IsTeacher {
		return nil
	}
	return utils.NewForbiddenError("Only teachers can " + action + " other users")
}

// RequireTeacher rejects non-teachers.
func (p Policy) RequireTeacher(actor *models.User, action string) error {
	if actor.IsTeacher {
		return nil
	}
	return utils.NewForbiddenError("Only teachers can " + action)
}

// CanPromote checks a requested is_teacher value against the actor's role.
func (p Policy) CanPromote(actor *models.User, isTeacher *bool) error {
	if isTeacher == nil || !*isTeacher || p.AllowSelfPromotion {
		return nil
	}
	if actor != nil && actor.IsTeacher {
		return nil
	}
	return utils.NewForbiddenError("Only teachers can grant the teacher role")
}
