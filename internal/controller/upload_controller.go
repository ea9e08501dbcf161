package controller

import (
	"fmt"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/logger"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UploadController struct {
	StorageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{StorageService: storageService}
}

// UploadResponse 上传成功后的文件地址
type UploadResponse struct {
	Msg      string `json:"msg"`
	FilePath string `json:"filePath"`
}

// Upload godoc
// @Summary 上传文件
// @Description 上传头像、横幅或简历（jpg/jpeg/png/gif/webp/pdf/doc/docx，最大 5MB），表单字段名为 image
// @Tags 文件
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   image formData file true "文件"
// @Success 200 {object} util.Response{data=UploadResponse} "成功"
// @Failure 400 {object} util.Response "文件不合法"
// @Failure 500 {object} util.Response "上传失败"
// @Router /api/upload [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, util.MaxUploadSize+1<<20)

	file, err := ctx.FormFile(util.UploadFormName)
	if err != nil {
		util.BadRequest(ctx, "No file uploaded")
		return
	}
	if !util.AllowedUpload(file.Filename) {
		util.BadRequest(ctx, "Only image and document files are allowed!")
		return
	}
	if file.Size > util.MaxUploadSize {
		util.BadRequest(ctx, fmt.Sprintf("Upload error: file too large (max %d MB)", util.MaxUploadSize>>20))
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	contentType, err := util.ValidateMimeType(src, util.AllowedUploadMimeTypes)
	if err != nil {
		util.BadRequest(ctx, "Upload error: "+err.Error())
		return
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	url, err := c.StorageService.UploadFile(ctx.Request.Context(), util.UploadFormName, file.Filename, src, file.Size, contentType)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	logger.Log.Info("File uploaded",
		zap.String("filename", file.Filename),
		zap.String("contentType", contentType),
		zap.String("url", url))
	util.Success(ctx, UploadResponse{Msg: "File uploaded successfully", FilePath: url})
}
