package dto

// QuestionResponse is the candidate-facing view of a Section 1 question.
// Expected answers and non-negotiables stay server-side.
type QuestionResponse struct {
	ID           uint   `json:"id"`
	Prompt       string `json:"question"`
	SkillsTested string `json:"what_we_are_testing"`
	Position     int    `json:"position"`
}

// Section1AnswerRequest accompanies the multipart audio upload.
type Section1AnswerRequest struct {
	QuestionID uint `form:"question_id" validate:"required,gt=0"`
}

// Section2Request stores the written-test answer.
type Section2Request struct {
	QuestionID string `json:"question_id" validate:"required,max=64"`
	Answer     string `json:"answer" validate:"required"`
}
