package dto

type UpdateMemberRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Grade     string `json:"grade"`
}
