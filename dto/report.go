package dto

type SendReportRequest struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Location  string `json:"location" binding:"required"`
	Shots     *int64 `json:"shots" binding:"required"`
	Notes     string `json:"notes"`
}
type SaveCommentRequest struct {
	Comments string `json:"comments"`
}
