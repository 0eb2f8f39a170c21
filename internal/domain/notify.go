package domain

type NotifyMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateParticipantNotifyData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordNotifyData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ActionReminderNotifyData struct {
	FullName       string `json:"fullName"`
	ActionTitle    string `json:"actionTitle"`
	ScheduledStart string `json:"scheduledStart"`
	Notes          string `json:"notes"`
}
