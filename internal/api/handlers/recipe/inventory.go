package recipe

import (
	"net/http"
	"strings"

	"noshnurture/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddInventoryResponse 新增庫存記錄的結果
type AddInventoryResponse struct {
	ID string `json:"id"`
}

// HandleAddInventory 新增一筆使用者庫存
func (h *Handler) HandleAddInventory(c *gin.Context) {
	if h.inventory == nil {
		h.respondError(c, common.ErrInventoryUnavailable)
		return
	}

	var rec common.InventoryRecord
	if !h.bindJSON(c, &rec) {
		return
	}

	userID := strings.TrimSpace(c.Param("user_id"))
	id, err := h.inventory.Add(c.Request.Context(), userID, rec)
	if err != nil {
		if !common.IsValidationError(err) {
			err = common.ErrInventoryUnavailable.WithError(err)
		}
		h.respondError(c, err)
		return
	}

	common.LogInfo("庫存記錄已新增",
		zap.String("request_id", requestid.Get(c)),
		zap.String("user_id", userID),
		zap.String("id", id),
	)

	c.JSON(http.StatusCreated, AddInventoryResponse{ID: id})
}

// loadInventory 讀取使用者庫存，失敗時已寫入錯誤回應
func (h *Handler) loadInventory(c *gin.Context, userID string) ([]common.InventoryRecord, bool) {
	if h.inventory == nil {
		h.respondError(c, common.ErrInventoryUnavailable)
		return nil, false
	}

	records, err := h.inventory.ListByUser(c.Request.Context(), userID)
	if err != nil {
		if !common.IsValidationError(err) {
			err = common.ErrInventoryUnavailable.WithError(err)
		}
		h.respondError(c, err)
		return nil, false
	}
	return records, true
}
