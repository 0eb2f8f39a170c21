package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/planner"
)

func (h *Handler) ListCampaignTypes(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "获取运动类型列表成功", planner.ListCampaignTypes())
}
