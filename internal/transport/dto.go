package transport

type RegisterRequest struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name"  form:"last_name"`
	Email     string `json:"email"      form:"email"`
	Password  string `json:"password"   form:"password"`
}

type CredentialsRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type ResetTokenRequest struct {
	Email string `json:"email" form:"email"`
}

type UpdatePasswordRequest struct {
	Email       string `json:"email"        form:"email"`
	ResetToken  string `json:"reset_token"  form:"reset_token"`
	NewPassword string `json:"new_password" form:"new_password"`
}

type ChatRequest struct {
	Prompt string `json:"prompt"`
}

type CreateRoadmapRequest struct {
	UserID  string          `json:"user_id"`
	Roadmap *RoadmapPayload `json:"Roadmap"`
}

// RoadmapPayload mirrors the JSON document the chat endpoint asks the model to
// produce. Pointer fields distinguish an absent key from an empty value.
type RoadmapPayload struct {
	Title          *string        `json:"Title"`
	Introduction   *string        `json:"Introduction"`
	AdditionalInfo *Text          `json:"AdditionalInfo"`
	Topics         []TopicPayload `json:"Topics"`
}

type TopicPayload struct {
	TopicName          string `json:"TopicName"`
	Descriptions       Text   `json:"Descriptions"`
	Milestones         Text   `json:"Milestones"`
	LearningObjectives []Text `json:"LearningObjectives"`
	Resources          []Text `json:"Resources"`
}

type UpdateStatusRequest struct {
	NewStatus string `json:"new_status"`
}
