package handlers

import (
	"net/http"

	"github.com/gokuljawahar87/move-more/initializers"
	"github.com/gokuljawahar87/move-more/repository"
	"github.com/gokuljawahar87/move-more/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

type UploadsHandler struct {
	profilesRepo *repository.ProfilesRepository
}

func NewUploadsHandler(pr *repository.ProfilesRepository) *UploadsHandler {
	return &UploadsHandler{profilesRepo: pr}
}

// UploadAvatar stores the session user's avatar in the object store and
// records the object id on the profile. Repeat uploads replace the
// reference; old objects expire out of band.
func (h *UploadsHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetString("userId")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Missing file"))
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if err := initializers.CheckAvatarAllowed(fileHeader.Size, contentType); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	defer src.Close()

	objectID := uuid.New().String()
	_, err = initializers.MinioClient.PutObject(
		c.Request.Context(),
		initializers.Conf.Bucket,
		objectID,
		src,
		fileHeader.Size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, "Failed to store file"))
		return
	}

	if err := h.profilesRepo.SetAvatarObject(userID, objectID); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	url, err := initializers.GenerateAvatarURL(objectID, fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(gin.H{"object_id": objectID, "url": url}))
}

// GetFile redirects to a presigned URL for a stored object.
func (h *UploadsHandler) GetFile(c *gin.Context) {
	objectID := c.Param("id")
	if objectID == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Missing id"))
		return
	}
	url, err := initializers.GenerateAvatarURL(objectID, "avatar")
	if err != nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "File not found"))
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}
