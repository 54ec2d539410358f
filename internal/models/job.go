package models

// Job is a unit of work posted by a client.
// AssignedArtisanID is non-nil only in assigned/in_progress/completed.
type Job struct {
	BaseModel
	ClientID          string    `gorm:"not null;index"`
	Title             string    `gorm:"not null"`
	Description       string
	Location          string
	Budget            float64   `gorm:"default:0"`
	Status            JobStatus `gorm:"type:varchar(20);default:'open';index"`
	AssignedArtisanID *string   `gorm:"index"`

	// Relations
	Client          *User   `gorm:"foreignKey:ClientID"`
	AssignedArtisan *User   `gorm:"foreignKey:AssignedArtisanID"`
	RequiredSkills  []Skill `gorm:"many2many:job_required_skills"`
}

// jobTransitions lists the status changes a client may request directly.
// assigned is reachable only by accepting an application, never by a
// direct status update, and no status ever goes back to open.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusOpen:     {JobStatusCancelled},
	JobStatusAssigned: {JobStatusCompleted, JobStatusCancelled},
}

// CanTransitionJob reports whether a direct status change is allowed.
func CanTransitionJob(from, to JobStatus) bool {
	for _, allowed := range jobTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminalJobStatus - completed and cancelled have no outgoing transitions.
func IsTerminalJobStatus(status JobStatus) bool {
	return status == JobStatusCompleted || status == JobStatusCancelled
}

// JobStatusHoldsAssignee reports whether the job must carry an assignee.
func JobStatusHoldsAssignee(status JobStatus) bool {
	return status == JobStatusAssigned || status == JobStatusInProgress || status == JobStatusCompleted
}
