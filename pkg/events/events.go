package events

// ReactionCreated represents an event emitted when someone reacts to an
// activity. This struct is intentionally small and versionable; changes
// should be additive.
type ReactionCreated struct {
	Type         string `json:"type"`
	ActivityID   int    `json:"activityId"`
	ReactorID    string `json:"reactorId"`
	ReactionType string `json:"reactionType"`
}
