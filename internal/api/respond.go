package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxpilot/internal/workflow"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error         string                `json:"error"`
	CorrelationID string                `json:"correlation_id,omitempty"`
	Fields        []workflow.FieldError `json:"fields,omitempty"`
}

// sendError logs err and writes a JSON error with the correlation ID.
func (s *Server) sendError(c *gin.Context, statusCode int, message string, err error) {
	correlationID := GetCorrelationID(c)

	log := s.logger.Warn
	if statusCode >= http.StatusInternalServerError {
		log = s.logger.Error
	}
	log(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("correlation_id", correlationID),
	)

	resp := ErrorResponse{Error: message, CorrelationID: correlationID}
	var verr *workflow.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	c.AbortWithStatusJSON(statusCode, resp)
}

// handleWorkflowError maps workflow failures to status codes.
func (s *Server) handleWorkflowError(c *gin.Context, err error) {
	var verr *workflow.ValidationError
	switch {
	case errors.As(err, &verr):
		s.sendError(c, http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, workflow.ErrInvalidTransition):
		s.sendError(c, http.StatusConflict, err.Error(), err)
	default:
		s.sendError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func sendList(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   items,
	})
}
