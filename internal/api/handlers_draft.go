package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/output"
	"github.com/rgehrsitz/taxpilot/internal/store"
)

type draftResponse struct {
	Version uint64               `json:"version"`
	Step    int                  `json:"step"`
	Draft   domain.TaxpayerDraft `json:"draft"`
}

func (s *Server) draftResponse() draftResponse {
	snap := s.session.Snapshot()
	return draftResponse{Version: snap.Version, Step: snap.Step, Draft: snap.Draft}
}

func (s *Server) getDraft(c *gin.Context) {
	sendSuccess(c, http.StatusOK, s.draftResponse())
}

// replaceDraft swaps in a whole draft. Keys missing from the body take their
// defaults; fields of the wrong type reject the request.
func (s *Server) replaceDraft(c *gin.Context) {
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
	if err := s.session.Replace(c.Request.Context(), draft); err != nil {
		s.sendError(c, http.StatusInternalServerError, "Failed to save draft", err)
		return
	}
	sendSuccess(c, http.StatusOK, s.draftResponse())
}

// patchDraft merges a partial draft into the session draft.
func (s *Server) patchDraft(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		s.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := s.session.Merge(c.Request.Context(), body); err != nil {
		if errors.Is(err, store.ErrInvalidPatch) {
			s.sendError(c, http.StatusBadRequest, "Invalid draft patch", err)
			return
		}
		s.sendError(c, http.StatusInternalServerError, "Failed to save draft", err)
		return
	}
	sendSuccess(c, http.StatusOK, s.draftResponse())
}

func (s *Server) resetDraft(c *gin.Context) {
	if err := s.session.Reset(c.Request.Context()); err != nil {
		s.sendError(c, http.StatusInternalServerError, "Failed to reset return", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type calculationResponse struct {
	Version uint64                      `json:"version"`
	Result  domain.TaxCalculationResult `json:"result"`
}

func (s *Server) draftCalculation(c *gin.Context) {
	version := s.session.Version()
	sendSuccess(c, http.StatusOK, calculationResponse{Version: version, Result: s.session.Calculation()})
}

var previewContentTypes = map[string]string{
	"json": "application/json; charset=utf-8",
	"csv":  "text/csv; charset=utf-8",
	"html": "text/html; charset=utf-8",
}

// draftPreview renders the session draft with any output formatter,
// "preview" by default.
func (s *Server) draftPreview(c *gin.Context) {
	formatter := output.GetFormatterByName(c.DefaultQuery("format", "preview"))
	if formatter == nil {
		s.sendError(c, http.StatusBadRequest, "Unknown format", nil)
		return
	}

	snap := s.session.Snapshot()
	report := output.NewReport(s.engine.Table.Year, snap.Draft, s.engine.Worksheet(snap.Draft), &snap.Status)
	data, err := formatter.Format(report)
	if err != nil {
		s.sendError(c, http.StatusInternalServerError, "Failed to render preview", err)
		return
	}

	contentType, ok := previewContentTypes[formatter.Name()]
	if !ok {
		contentType = "text/plain; charset=utf-8"
	}
	c.Data(http.StatusOK, contentType, data)
}
