package controller

import (
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResumeController struct {
	ProgressService *service.ProgressService
}

func NewResumeController(progressService *service.ProgressService) *ResumeController {
	return &ResumeController{ProgressService: progressService}
}

// ResumeCreatedRequest 请求体可以省略
type ResumeCreatedRequest struct {
	FullName string `json:"fullName"`
}

// Created godoc
// @Summary 记录简历创建
// @Description 简历生成器导出后调用：发放金币、记录活动并更新统计
// @Tags 简历
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ResumeCreatedRequest false "简历信息"
// @Success 200 {object} util.Response{data=service.ProgressResult} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/resume/created [post]
func (c *ResumeController) Created(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ResumeCreatedRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	result, err := c.ProgressService.ResumeCreated(ctx.Request.Context(), claims.UserID, req.FullName)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
