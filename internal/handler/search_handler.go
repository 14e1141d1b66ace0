package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/damoang/angple-search/internal/common"
	"github.com/damoang/angple-search/internal/domain"
	"github.com/damoang/angple-search/internal/middleware"
	"github.com/damoang/angple-search/pkg/ginutil"
	pkglogger "github.com/damoang/angple-search/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Searcher runs a search for an optional caller
type Searcher interface {
	Search(ctx context.Context, params domain.SearchParams, callerID *int64) (*domain.SearchResponse, error)
}

// SearchHandler handles keyword search endpoints
type SearchHandler struct {
	searcher Searcher
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searcher Searcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// Search godoc
// @Summary 통합 검색
// @Description 커뮤니티, 게시글, 댓글, 회원을 한 번에 검색 (정확도순, 부족하면 유사 검색으로 보충)
// @Tags search
// @Produce json
// @Param q query string true "검색어"
// @Param kind query string false "all, community, post, comment, account" default(all)
// @Param order query string false "newest, oldest" default(newest)
// @Param page query int false "0부터 시작하는 페이지" default(0)
// @Param page_size query int false "페이지 크기 (1-50)" default(10)
// @Param scope query string false "커뮤니티 slug 로 게시글/댓글 범위 제한"
// @Success 200 {object} common.V2Response{data=domain.SearchResponse}
// @Failure 400 {object} common.V2Response
// @Failure 401 {object} common.V2Response
// @Failure 500 {object} common.V2Response
// @Security BearerAuth
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	page, err := ginutil.OptionalQueryInt(c, "page")
	if err != nil {
		common.V2ErrorResponse(c, http.StatusBadRequest, err.Error(), common.ErrInvalidInput)
		return
	}
	pageSize, err := ginutil.OptionalQueryInt(c, "page_size")
	if err != nil {
		common.V2ErrorResponse(c, http.StatusBadRequest, err.Error(), common.ErrInvalidInput)
		return
	}

	params := domain.SearchParams{
		Keyword:   ginutil.QueryFirst(c, "q", "keyword"),
		Kind:      c.Query("kind"),
		Order:     c.Query("order"),
		Page:      page,
		PageSize:  pageSize,
		ScopeSlug: c.Query("scope"),
	}

	result, err := h.searcher.Search(c.Request.Context(), params, middleware.GetCallerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	common.V2Success(c, result)
}

func (h *SearchHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		common.V2ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, common.ErrUnauthorized):
		common.V2ErrorResponse(c, http.StatusUnauthorized, "Unknown caller", nil)
	case errors.Is(err, context.Canceled):
		// client went away, nothing useful to send
		c.Status(499)
	default:
		pkglogger.GetLogger().Error().Err(err).Str("path", c.FullPath()).Msg("search failed")
		common.V2ErrorResponse(c, http.StatusInternalServerError, "Search failed", nil)
	}
}
