package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/cognitonow/beauty-book-next/services"
	"github.com/cognitonow/beauty-book-next/utils"
)

// UploadController handles image uploads for reviews and messages. Files land
// in S3; clients get back the key and a presigned GET URL.
type UploadController struct {
	s3 services.S3Interface
}

// NewUploadController creates an upload controller.
func NewUploadController(s3 services.S3Interface) *UploadController {
	return &UploadController{s3: s3}
}

// UploadImage handles POST /api/v1/uploads - multipart "file" field, PNG only
func (uc *UploadController) UploadImage(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "A multipart 'file' field is required")
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
			return
		}
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid file")
		return
	}

	s3Key, err := uc.s3.UploadFile(fileHeader)
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("failed to upload file")
		respondError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store the file")
		return
	}

	url, err := uc.s3.GetPresignedURL(s3Key)
	if err != nil {
		log.Error().Err(err).Str("s3_key", s3Key).Msg("failed to presign uploaded file")
		respondError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to generate a download URL")
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{
		"s3_key": s3Key,
		"url":    url,
	})
}
