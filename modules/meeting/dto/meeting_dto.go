package dto

type AttachLinkRequest struct {
	Platform    string `json:"platform"`
	MeetingCode string `json:"meeting_code"`
	MeetingURL  string `json:"meeting_url"`
}

type GenerateLinkRequest struct {
	Platform string `json:"platform"`
}
