package controller

import (
	"errors"
	"interview_prep_backend/internal/interview"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type InterviewController struct {
	InterviewService *service.InterviewService
}

func NewInterviewController(interviewService *service.InterviewService) *InterviewController {
	return &InterviewController{InterviewService: interviewService}
}

// TrackSummary 面试方向及其题目，不包含评分关键词
type TrackSummary struct {
	Name      string   `json:"name"`
	Questions []string `json:"questions"`
}

// EvaluateRequest 单题评估请求
type EvaluateRequest struct {
	Track         string `json:"track" binding:"required" example:"Frontend"`
	QuestionIndex int    `json:"questionIndex" example:"0"`
	Answer        string `json:"answer" binding:"required"`
}

// handleInterviewError 未知方向 404，状态不合法 400，进行中的回合 409
func handleInterviewError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, interview.ErrUnknownTrack):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, interview.ErrTurnPending):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, interview.ErrInvalidState):
		util.BadRequest(ctx, err.Error())
	default:
		util.HandleError(ctx, err)
	}
}

// ListTracks godoc
// @Summary 面试方向列表
// @Tags 模拟面试
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]TrackSummary} "成功"
// @Router /api/interview/tracks [get]
func (c *InterviewController) ListTracks(ctx *gin.Context) {
	tracks := c.InterviewService.Tracks()
	out := make([]TrackSummary, 0, len(tracks))
	for _, t := range tracks {
		summary := TrackSummary{Name: t.Name, Questions: make([]string, 0, len(t.Questions))}
		for _, q := range t.Questions {
			summary.Questions = append(summary.Questions, q.Text)
		}
		out = append(out, summary)
	}
	util.Success(ctx, out)
}

// Evaluate godoc
// @Summary 单题评估
// @Description 不建立会话，直接对某一方向某一题的回答分类并生成反馈
// @Tags 模拟面试
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body EvaluateRequest true "回答"
// @Success 200 {object} util.Response{data=service.EvaluateResult} "成功"
// @Failure 400 {object} util.Response "题号不合法或回答为空"
// @Failure 404 {object} util.Response "未知的面试方向"
// @Router /api/interview/evaluate [post]
func (c *InterviewController) Evaluate(ctx *gin.Context) {
	var req EvaluateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.InterviewService.Evaluate(req.Track, req.QuestionIndex, req.Answer)
	if err != nil {
		handleInterviewError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// HandleWS godoc
// @Summary 实时模拟面试
// @Description 建立 WebSocket 连接进行模拟面试。客户端发送 {"type":"start","track":"Frontend"}、{"type":"answer","text":"..."}、{"type":"reset","keepTrack":true}；服务端推送 message、typing、state、completed、error 帧
// @Tags 模拟面试
// @Security ApiKeyAuth
// @Param   token query string true "JWT Token"
// @Success 101 {string} string "Switching Protocols"
// @Router /api/interview/ws [get]
func (c *InterviewController) HandleWS(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	service.ServeInterviewWS(c.InterviewService, ctx.Writer, ctx.Request, claims.UserID)
}
