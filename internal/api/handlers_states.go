package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/jurisdiction"
	"github.com/rgehrsitz/taxpilot/internal/wizard"
)

func (s *Server) listStates(c *gin.Context) {
	sendList(c, jurisdiction.States(s.engine.Table))
}

// getState accepts a code, a name or a close misspelling of a name.
func (s *Server) getState(c *gin.Context) {
	code, err := jurisdiction.Resolve(s.engine.Table, c.Param("code"))
	if err != nil {
		s.sendError(c, http.StatusNotFound, "State not found", err)
		return
	}
	info, _ := s.engine.Table.Lookup(code)
	sendSuccess(c, http.StatusOK, info)
}

// calculate estimates an arbitrary draft without touching the session.
func (s *Server) calculate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		s.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	draft, err := domain.DecodeDraft(body)
	if err != nil {
		s.sendError(c, http.StatusBadRequest, "Invalid draft", err)
		return
	}
	sendSuccess(c, http.StatusOK, s.engine.Calculate(draft))
}

func (s *Server) listSteps(c *gin.Context) {
	sendList(c, wizard.Steps())
}

type stepCheckResponse struct {
	Step        wizard.Step    `json:"step"`
	CanContinue bool           `json:"canContinue"`
	Issues      []wizard.Issue `json:"issues"`
}

// checkStep reports what still blocks a step for the session draft.
func (s *Server) checkStep(c *gin.Context) {
	step, err := wizard.ParseStep(c.Param("step"))
	if err != nil {
		s.sendError(c, http.StatusNotFound, "Unknown wizard step", err)
		return
	}
	issues := wizard.Check(step, s.session.Draft())
	if issues == nil {
		issues = []wizard.Issue{}
	}
	sendSuccess(c, http.StatusOK, stepCheckResponse{Step: step, CanContinue: len(issues) == 0, Issues: issues})
}
