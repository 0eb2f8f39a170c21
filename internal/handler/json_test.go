package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("响应不是合法的 JSON: %v", err)
	}
	return resp
}

func TestResponseEnvelope(t *testing.T) {
	h := &Handler{}
	r := httptest.NewRequest(http.MethodGet, "/campaigns", nil)

	t.Run("业务成功", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.successResponse(w, r, "获取运动列表成功", []int64{1, 2})

		if w.Code != http.StatusOK {
			t.Errorf("状态码期望 200, 实际 %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type 期望 application/json, 实际 %s", ct)
		}
		resp := decodeResponse(t, w)
		if !resp.Success || resp.Message != "获取运动列表成功" {
			t.Errorf("信封内容错误: %+v", resp)
		}
		if resp.Data == nil {
			t.Errorf("data 字段不应为空")
		}
	})

	t.Run("业务失败同样返回 200", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.errorResponse(w, r, "运动不存在")

		if w.Code != http.StatusOK {
			t.Errorf("业务失败状态码期望 200, 实际 %d", w.Code)
		}
		resp := decodeResponse(t, w)
		if resp.Success {
			t.Errorf("success 字段期望 false")
		}
		if resp.Message != "运动不存在" {
			t.Errorf("消息期望原样透出, 实际 %s", resp.Message)
		}
	})

	t.Run("非校验错误原样透出", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.badRequest(w, r, errors.New("unexpected EOF"))

		resp := decodeResponse(t, w)
		if resp.Success || resp.Message != "unexpected EOF" {
			t.Errorf("信封内容错误: %+v", resp)
		}
	})

	t.Run("服务器内部错误返回 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.internalServerError(w, r, errors.New("连接池耗尽"))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("状态码期望 500, 实际 %d", w.Code)
		}
		if resp := decodeResponse(t, w); resp.Success {
			t.Errorf("success 字段期望 false")
		}
	})
}
