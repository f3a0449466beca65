package services

import "projectboard/backend/models"

// CanAccess reports whether the user may read the project or work with its
// tasks: the owner by id, or any member by email.
func CanAccess(project *models.Project, user models.CurrentUser) bool {
	if project == nil {
		return false
	}
	if project.OwnerID == user.ID {
		return true
	}
	for _, member := range project.Members {
		if member.Email == user.Email {
			return true
		}
	}
	return false
}

// CanMutate reports whether the user may change the project itself or its
// member list. Only the owner may; members deliberately may not, even though
// they can create and edit tasks.
func CanMutate(project *models.Project, user models.CurrentUser) bool {
	if project == nil {
		return false
	}
	return project.OwnerID == user.ID
}
