package util

const DateFormat = "2006-01-02"

const StoreMemory = "memory"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MaxUploadSize  = 5 << 20
	UploadFolder   = "interviewprep"
	UploadFormName = "image"
)

var (
	AllowedUploadExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".pdf", ".doc", ".docx"}
	// docx 按 zip 识别，doc 按 octet-stream 识别
	AllowedUploadMimeTypes  = []string{"image/", "application/pdf", "application/zip", "application/msword", "application/octet-stream"}
)
