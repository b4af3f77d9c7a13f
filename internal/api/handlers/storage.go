package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/princeprakhar/partnerhub/internal/storage"
)

const maxObjectSize = 10 << 20 // 10MB

// StorageHandler serves the S3-style object routes that signed upload URLs
// point at. Errors are plain text, as an object store's would be.
type StorageHandler struct {
	storage *storage.S3Service
}

func NewStorageHandler(s *storage.S3Service) *StorageHandler {
	return &StorageHandler{storage: s}
}

func (h *StorageHandler) objectKey(c *gin.Context) (string, bool) {
	if c.Param("bucket") != h.storage.Bucket() {
		return "", false
	}
	key := strings.TrimPrefix(c.Param("key"), "/")
	return key, key != ""
}

func (h *StorageHandler) Put(c *gin.Context) {
	key, ok := h.objectKey(c)
	if !ok {
		c.String(http.StatusNotFound, "NoSuchBucket")
		return
	}
	if c.Query("X-Amz-Signature") == "" {
		c.String(http.StatusForbidden, "AccessDenied")
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxObjectSize+1))
	if err != nil {
		c.String(http.StatusBadRequest, "IncompleteBody")
		return
	}
	if len(data) > maxObjectSize {
		c.String(http.StatusRequestEntityTooLarge, "EntityTooLarge")
		return
	}

	err = h.storage.Put(key, c.GetHeader("Content-Type"), data)
	switch {
	case errors.Is(err, storage.ErrExpired):
		c.String(http.StatusForbidden, "Request has expired")
		return
	case err != nil:
		c.String(http.StatusForbidden, "SignatureDoesNotMatch")
		return
	}
	c.Status(http.StatusOK)
}

func (h *StorageHandler) Get(c *gin.Context) {
	key, ok := h.objectKey(c)
	if !ok {
		c.String(http.StatusNotFound, "NoSuchBucket")
		return
	}
	obj, ok := h.storage.Get(key)
	if !ok {
		c.String(http.StatusNotFound, "NoSuchKey")
		return
	}
	c.Data(http.StatusOK, obj.ContentType, obj.Data)
}
