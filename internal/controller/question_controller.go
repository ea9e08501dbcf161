package controller

import (
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// SubmitResponse 提交答案的结果
type SubmitResponse struct {
	Success       bool `json:"success"`
	Points        int  `json:"points"`
	Coins         int  `json:"coins"`
	AlreadySolved bool `json:"alreadySolved"`
}

// ListQuestions godoc
// @Summary 题目列表
// @Description 按分类、难度筛选题目，列表中不包含测试用例与初始代码
// @Tags 题库
// @Produce  json
// @Param   category query string false "分类" Enums(Coding, Aptitude, Behavioral)
// @Param   difficulty query string false "难度" Enums(Easy, Medium, Hard)
// @Success 200 {object} util.Response{data=[]model.Question} "成功"
// @Router /api/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	questions, err := c.QuestionService.List(ctx.Request.Context(), ctx.Query("category"), ctx.Query("difficulty"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// GetQuestion godoc
// @Summary 题目详情
// @Tags 题库
// @Produce  json
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response{data=model.Question} "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.HandleError(ctx, util.ErrQuestionNotFound)
		return
	}

	question, err := c.QuestionService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// SubmitAnswer godoc
// @Summary 提交答案
// @Description 标记题目为已解答；只有第一次提交会发放积分、记录活动并更新统计
// @Tags 题库
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response{data=SubmitResponse} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/questions/submit/{id} [post]
func (c *QuestionController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.HandleError(ctx, util.ErrQuestionNotFound)
		return
	}

	question, result, err := c.QuestionService.Submit(ctx.Request.Context(), claims.UserID, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, SubmitResponse{
		Success:       true,
		Points:        question.Points,
		Coins:         result.Coins,
		AlreadySolved: result.AlreadySolved,
	})
}
