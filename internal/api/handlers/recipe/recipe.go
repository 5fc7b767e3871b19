package recipe

import (
	"net/http"
	"strings"

	"noshnurture/internal/core/normalizer"
	"noshnurture/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleSuggest 根據請求中的庫存記錄推薦食譜
func (h *Handler) HandleSuggest(c *gin.Context) {
	var req ItemsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	prefer, ok := h.preference(c, req.Prefer)
	if !ok {
		return
	}

	common.LogInfo("開始處理食譜推薦請求",
		zap.String("request_id", requestid.Get(c)),
		zap.Int("items", len(req.Items)),
		zap.String("prefer", string(prefer)),
	)

	h.suggest(c, req.Items, prefer)
}

// HandleUserSuggestions 讀取使用者庫存後推薦食譜
func (h *Handler) HandleUserSuggestions(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("user_id"))
	prefer, ok := h.preference(c, c.Query("prefer"))
	if !ok {
		return
	}

	records, ok := h.loadInventory(c, userID)
	if !ok {
		return
	}

	common.LogInfo("開始處理使用者食譜推薦",
		zap.String("request_id", requestid.Get(c)),
		zap.String("user_id", userID),
		zap.Int("items", len(records)),
	)

	h.suggest(c, records, prefer)
}

func (h *Handler) suggest(c *gin.Context, records []common.InventoryRecord, prefer normalizer.Preference) {
	suggestions, err := h.suggester.Suggest(c.Request.Context(), records, prefer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if suggestions == nil {
		suggestions = []common.RecipeSuggestion{}
	}

	c.JSON(http.StatusOK, SuggestionsResponse{
		Suggestions: suggestions,
		Count:       len(suggestions),
	})
}
