package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/fachrinfl/ts-project-management-api/internal/logger"
	"github.com/fachrinfl/ts-project-management-api/internal/services"
	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"
	"github.com/fachrinfl/ts-project-management-api/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ============================================
// UPLOAD HANDLER
// ============================================

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
	tempDir       string
}

// NewUploadHandler: tempDir - каталог для промежуточного сохранения файлов, пусто = os.TempDir()
func NewUploadHandler(base *BaseHandler, uploadService services.UploadService, tempDir string) *UploadHandler {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
		tempDir:       tempDir,
	}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup, mw RouteMiddlewares) {
	rg.POST("/upload", mw.RequireAuth, h.Upload)
}

// Upload godoc
// @Summary      Загрузка файла
// @Description  Файл сохраняется в хранилище под ключом folder/uuid.ext. Временная копия удаляется всегда.
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file   formData file   true  "Файл"
// @Param        folder formData string false "Папка" default(general)
// @Success      200 {object} dto.UploadResponse
// @Failure      400 {object} apperrors.AppError
// @Failure      413 {object} apperrors.AppError
// @Failure      415 {object} apperrors.AppError
// @Failure      502 {object} apperrors.AppError
// @Router       /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.CtxWarn(ctx, "Upload without file", "error", err)
		apperrors.HandleError(c, apperrors.ValidationError(map[string]string{"file": "This field is required"}))
		return
	}

	tempPath, err := h.spool(fileHeader.Filename)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to spool upload", err)
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	if err := c.SaveUploadedFile(fileHeader, tempPath); err != nil {
		_ = os.Remove(tempPath)
		logger.CtxWithError(ctx, "Failed to save upload to temp dir", err)
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	// дальше временный файл удаляет сервис
	result, err := h.uploadService.Upload(ctx, &services.UploadFile{
		TempPath:     tempPath,
		OriginalName: fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		Folder:       c.PostForm("folder"),
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{
		Message: "File uploaded successfully",
		Data:    *result,
	})
}

// spool резервирует уникальное имя во временном каталоге
func (h *UploadHandler) spool(originalName string) (string, error) {
	if err := os.MkdirAll(h.tempDir, 0o750); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(h.tempDir, "upload-*"+filepath.Ext(filepath.Base(originalName)))
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}
