package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/workflow"
)

type statusResponse struct {
	Status domain.ReturnStatus `json:"status"`
	Owes   bool                `json:"owes"`
}

func (s *Server) statusResponse() statusResponse {
	return statusResponse{Status: s.session.Status(), Owes: workflow.Owes(s.session.Calculation())}
}

func (s *Server) getStatus(c *gin.Context) {
	sendSuccess(c, http.StatusOK, s.statusResponse())
}

// applyTransition runs fn on the current status and calculation and stores
// the result. Overlapping requests are applied one after the other.
func (s *Server) applyTransition(c *gin.Context, fn func(domain.ReturnStatus, domain.TaxCalculationResult) (domain.ReturnStatus, error)) {
	if _, err := s.session.Transition(c.Request.Context(), fn); err != nil {
		s.handleWorkflowError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, s.statusResponse())
}

func (s *Server) markReviewed(c *gin.Context) {
	s.applyTransition(c, func(st domain.ReturnStatus, _ domain.TaxCalculationResult) (domain.ReturnStatus, error) {
		return s.workflow.MarkReviewed(st)
	})
}

// markPaid validates the payment details before recording the payment. Card
// and bank numbers are never stored.
func (s *Server) markPaid(c *gin.Context) {
	var payment workflow.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		s.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := payment.Validate(); err != nil {
		s.handleWorkflowError(c, err)
		return
	}
	s.applyTransition(c, func(st domain.ReturnStatus, result domain.TaxCalculationResult) (domain.ReturnStatus, error) {
		return s.workflow.MarkPaid(st, result, "")
	})
}

type submitRequest struct {
	Signature workflow.Signature `json:"signature"`
	Consent   workflow.Consent   `json:"consent"`
}

// markSubmitted requires the e-signature and every e-file acknowledgement.
func (s *Server) markSubmitted(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := req.Signature.Validate(); err != nil {
		s.handleWorkflowError(c, err)
		return
	}
	if err := req.Consent.Validate(); err != nil {
		s.handleWorkflowError(c, err)
		return
	}
	s.applyTransition(c, s.workflow.MarkSubmitted)
}

func (s *Server) markAccepted(c *gin.Context) {
	s.applyTransition(c, func(st domain.ReturnStatus, _ domain.TaxCalculationResult) (domain.ReturnStatus, error) {
		return s.workflow.MarkAccepted(st)
	})
}
