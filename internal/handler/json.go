package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Response 是协调平台所有接口共用的响应信封。
// 业务层面的失败（校验不通过、行动已被认领、运动不存在等）仍返回
// HTTP 200，前端统一按 success 字段判定结果；只有服务器自身出错才返回 5xx。
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		// 状态行已经发出, 只能记录后放弃这个响应
		slog.Error("写入响应失败", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{Success: true, Message: msg, Data: data})
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeJSON(w, r, http.StatusOK, Response{Success: false, Message: msg})
}

// badRequest 处理请求解析和校验错误。
// 校验错误翻译成中文后只取第一条提示, 其余留到用户改完再说。
func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.errorResponse(w, r, validationErrors[0].Translate(h.translator))
		return
	}

	h.errorResponse(w, r, err.Error())
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("服务器内部错误", "method", r.Method, "path", r.URL.Path, "error", err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{Success: false, Message: "服务器内部错误"})
}
