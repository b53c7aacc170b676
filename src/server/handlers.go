package server

import (
	"net/http"

	"summarizer/src/logger"
	"summarizer/src/summary"

	"github.com/gin-gonic/gin"
)

type textRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type pinnedResponse struct {
	Pinned *string `json:"pinned"`
}

type handler struct {
	client *summary.Client
}

func (h *handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.client.Snapshot())
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.client.Snapshot())
}

// submit always answers with the current state; a failed summarization only
// shows up in the logs.
func (h *handler) submit(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
		return
	}
	h.client.Submit(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, h.client.Snapshot())
}

func (h *handler) remove(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
		return
	}
	if err := h.client.Delete(c.Request.Context(), req.Text); err != nil {
		logger.Error().Err(err).Msg("Delete failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.client.Snapshot())
}

func (h *handler) copy(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
		return
	}
	if err := h.client.Copy(req.Text); err != nil {
		logger.Warn().Err(err).Msg("Copy failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.client.Snapshot())
}

func (h *handler) pinned(c *gin.Context) {
	resp := pinnedResponse{}
	if pinned, ok := h.client.Pinned(); ok {
		resp.Pinned = &pinned
	}
	c.JSON(http.StatusOK, resp)
}
