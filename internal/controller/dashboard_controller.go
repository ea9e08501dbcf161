package controller

import (
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	ProgressService  *service.ProgressService
}

func NewDashboardController(dashboardService *service.DashboardService, progressService *service.ProgressService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService, ProgressService: progressService}
}

// CompleteInterviewRequest 前端完成一次模拟面试后上报的结果
// swagger:model CompleteInterviewRequest
type CompleteInterviewRequest struct {
	Type         string                  `json:"type" example:"frontend"`
	Questions    []model.InterviewAnswer `json:"questions"`
	OverallScore float64                 `json:"overallScore" example:"3.5"`
	Feedback     string                  `json:"feedback"`
	Duration     int                     `json:"duration" example:"15"`
}

// @Summary 获取统计概要
// @Description 返回用户的统计数据、金币余额与连续天数
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.DashboardStats}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.DashboardService.GetStats(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 获取活动记录
// @Description 最近 days 天的每日活动，按日期倒序
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Param days query int false "天数" default(30)
// @Success 200 {object} util.Response{data=[]model.Activity}
// @Router /api/dashboard/activity [get]
func (c *DashboardController) GetActivity(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	days := util.ParsePositiveInt(ctx.Query("days"), service.DefaultActivityDays)
	activities, err := c.DashboardService.ActivityHistory(ctx.Request.Context(), user.UserID, days)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, activities)
}

// @Summary 获取最近动态
// @Description 合并最近的面试与简历记录，按时间倒序
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "条数" default(10)
// @Success 200 {object} util.Response{data=[]service.RecentItem}
// @Router /api/dashboard/recent [get]
func (c *DashboardController) GetRecent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := util.ParsePositiveInt(ctx.Query("limit"), service.DefaultRecentLimit)
	items, err := c.DashboardService.Recent(ctx.Request.Context(), user.UserID, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// @Summary 获取表现趋势
// @Description 最近 days 天的活动与面试记录，按时间升序
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Param days query int false "天数" default(7)
// @Success 200 {object} util.Response{data=service.Performance}
// @Router /api/dashboard/performance [get]
func (c *DashboardController) GetPerformance(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	days := util.ParsePositiveInt(ctx.Query("days"), service.DefaultPerformanceDays)
	perf, err := c.DashboardService.Performance(ctx.Request.Context(), user.UserID, days)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, perf)
}

// @Summary 记录完成的面试
// @Description 保存面试记录，按 floor(overallScore)*2 发放金币并更新平均分
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CompleteInterviewRequest true "面试结果"
// @Success 200 {object} util.Response{data=service.ProgressResult}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/dashboard/interview/complete [post]
func (c *DashboardController) CompleteInterview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CompleteInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProgressService.InterviewCompleted(ctx.Request.Context(), user.UserID, service.CompleteInterview{
		Type:         req.Type,
		Questions:    req.Questions,
		OverallScore: req.OverallScore,
		Feedback:     req.Feedback,
		Duration:     req.Duration,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
