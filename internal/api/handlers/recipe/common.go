package recipe

import (
	"context"
	"errors"
	"net/http"

	"noshnurture/internal/core/normalizer"
	"noshnurture/internal/core/pantry"
	"noshnurture/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Suggester 食譜推薦
type Suggester interface {
	Suggest(ctx context.Context, records []common.InventoryRecord, prefer normalizer.Preference) ([]common.RecipeSuggestion, error)
}

// PantryBuilder 建立食材庫
type PantryBuilder interface {
	BuildWith(ctx context.Context, records []common.InventoryRecord, prefer normalizer.Preference) (*pantry.Pantry, error)
}

// Inventory 使用者庫存
type Inventory interface {
	ListByUser(ctx context.Context, userID string) ([]common.InventoryRecord, error)
	Add(ctx context.Context, userID string, rec common.InventoryRecord) (string, error)
}

// Handler 食譜相關處理程序
type Handler struct {
	suggester     Suggester
	builder       PantryBuilder
	normalizer    normalizer.Normalizer
	inventory     Inventory
	defaultPrefer normalizer.Preference
	debug         bool
}

// NewHandler 創建新的處理程序；inventory 為 nil 時使用者相關路由回傳 503
func NewHandler(suggester Suggester, builder PantryBuilder, n normalizer.Normalizer, inventory Inventory, defaultPrefer normalizer.Preference, debug bool) *Handler {
	if defaultPrefer == "" {
		defaultPrefer = normalizer.PreferFuzzy
	}
	return &Handler{
		suggester:     suggester,
		builder:       builder,
		normalizer:    n,
		inventory:     inventory,
		defaultPrefer: defaultPrefer,
		debug:         debug,
	}
}

// ItemsRequest 以庫存記錄為輸入的請求
type ItemsRequest struct {
	Items  []common.InventoryRecord `json:"items" binding:"required"`
	Prefer string                   `json:"prefer,omitempty"`
}

// SuggestionsResponse 推薦結果
type SuggestionsResponse struct {
	Suggestions []common.RecipeSuggestion `json:"suggestions"`
	Count       int                       `json:"count"`
}

func (h *Handler) preference(c *gin.Context, raw string) (normalizer.Preference, bool) {
	prefer, err := normalizer.ParsePreference(raw, h.defaultPrefer)
	if err != nil {
		h.respondError(c, err)
		return "", false
	}
	return prefer, true
}

func (h *Handler) bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		h.respondError(c, common.ErrInvalidRequest.WithError(err))
		return false
	}
	return true
}

// respondError 依錯誤類型轉換成 HTTP 回應
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		custom *common.CustomError
		nerr   *pantry.NormalizationError
	)
	switch {
	case errors.As(err, &custom):
	case common.IsValidationError(err):
		c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrorResponse{
			Message: err.Error(),
			Code:    common.ErrCodeInvalidRequest,
		})
		return
	case errors.Is(err, context.DeadlineExceeded):
		custom = common.ErrGatewayTimeout.WithError(err)
	case errors.As(err, &nerr):
		custom = common.ErrNormalizationFailed.WithError(err)
	default:
		custom = common.ErrInternalError.WithError(err)
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("code", custom.Code),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestid.Get(c)),
	}
	if custom.Status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogWarn("請求處理失敗", fields...)
	}
	_ = c.Error(err)

	c.AbortWithStatusJSON(custom.Status, custom.Response(h.debug))
}
