package recipe

import (
	"net/http"

	"noshnurture/internal/core/normalizer"
	"noshnurture/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NormalizeRequest 單一名稱正規化請求
type NormalizeRequest struct {
	Name   string `json:"name" binding:"required"`
	Prefer string `json:"prefer,omitempty"`
}

// NormalizeResponse 正規化結果；canonical 為空表示無法辨識
type NormalizeResponse struct {
	Raw       string `json:"raw"`
	Canonical string `json:"canonical"`
}

// PantryResponse 食材庫內容
type PantryResponse struct {
	Available []string `json:"available"`
	Expiring  []string `json:"expiring"`
}

// HandleNormalize 將商品名稱轉為標準食材名稱
func (h *Handler) HandleNormalize(c *gin.Context) {
	var req NormalizeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	prefer, ok := h.preference(c, req.Prefer)
	if !ok {
		return
	}

	canonical, err := h.normalizer.Normalize(c.Request.Context(), req.Name, normalizer.Options{Prefer: prefer})
	if err != nil {
		h.respondError(c, common.ErrNormalizationFailed.WithError(err))
		return
	}

	common.LogDebug("名稱正規化完成",
		zap.String("request_id", requestid.Get(c)),
		zap.String("raw", req.Name),
		zap.String("canonical", canonical),
	)

	c.JSON(http.StatusOK, NormalizeResponse{Raw: req.Name, Canonical: canonical})
}

// HandlePantry 回傳由庫存記錄建立的食材庫，方便檢查正規化結果
func (h *Handler) HandlePantry(c *gin.Context) {
	var req ItemsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	prefer, ok := h.preference(c, req.Prefer)
	if !ok {
		return
	}

	p, err := h.builder.BuildWith(c.Request.Context(), req.Items, prefer)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, PantryResponse{
		Available: p.Available.Items(),
		Expiring:  p.Expiring.Items(),
	})
}
