package handler

type ContextKey string

var (
	RoleCtxKey         ContextKey = "role"
	SubCtxKey          ContextKey = "sub"
	MyInfoCtx          ContextKey = "myInfo"
	ParticipantInfoCtx ContextKey = "participantInfo"
	CampaignCtx        ContextKey = "campaign"
	ActionCtx          ContextKey = "action"
	TargetCtx          ContextKey = "target"
)
