package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Yates-Labs/roam/internal/export"
	"github.com/Yates-Labs/roam/internal/language"
	"github.com/Yates-Labs/roam/internal/render"
	"github.com/Yates-Labs/roam/internal/session"
	"github.com/Yates-Labs/roam/internal/trip"
)

// WarningHeader carries rendering warnings alongside a degraded document.
const WarningHeader = "X-Roam-Warning"

// ItineraryResponse describes the session's current itinerary.
type ItineraryResponse struct {
	Phase     string                  `json:"phase"`
	Itinerary *export.ItineraryExport `json:"itinerary,omitempty"`
}

// LanguageResponse is one entry of the language list.
type LanguageResponse struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Script string `json:"script"`
	Font   string `json:"font"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) languages(c *gin.Context) {
	langs := language.Supported()
	out := make([]LanguageResponse, len(langs))
	for i, l := range langs {
		_, file := render.FontFor(l)
		out[i] = LanguageResponse{
			Name:   l.Name,
			Code:   l.Code(),
			Script: string(l.Script),
			Font:   file,
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) submit(c *gin.Context) {
	var in trip.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", "request body must be a JSON trip description", err.Error())
		return
	}

	sess := currentSession(c)
	outcome, err := s.orch.Submit(c.Request.Context(), sess, in)
	if err != nil {
		if outcome != nil && outcome.Phase == session.PhaseFailed {
			_ = c.Error(err)
			respondError(c, http.StatusBadGateway, "generation_failed", outcome.Reason, gin.H{"phase": outcome.Phase.String()})
			return
		}
		respondDomainError(c, err)
		return
	}

	view := export.FromEntry(outcome.Entry)
	c.JSON(http.StatusCreated, ItineraryResponse{
		Phase:     outcome.Phase.String(),
		Itinerary: &view,
	})
}

func (s *Server) current(c *gin.Context) {
	sess := currentSession(c)
	entry, ok := s.orch.Current(sess)
	if !ok {
		phase, reason := s.orch.Status(sess)
		details := gin.H{"phase": phase.String()}
		if reason != "" {
			details["last_failure"] = reason
		}
		respondError(c, http.StatusNotFound, "no_itinerary", "no itinerary has been generated yet", details)
		return
	}

	phase, _ := s.orch.Status(sess)
	view := export.FromEntry(entry)
	c.JSON(http.StatusOK, ItineraryResponse{
		Phase:     phase.String(),
		Itinerary: &view,
	})
}

func (s *Server) document(c *gin.Context) {
	doc, err := s.orch.Document(currentSession(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if len(doc.Warnings) > 0 {
		c.Header(WarningHeader, strings.Join(doc.Warnings, " | "))
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}

func (s *Server) export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "unsupported_format", err.Error(), nil)
		return
	}

	entry, ok := s.orch.Current(currentSession(c))
	if !ok {
		respondError(c, http.StatusNotFound, "no_itinerary", "no itinerary has been generated yet", nil)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(entry, string(format), &buf); err != nil {
		respondDomainError(c, err)
		return
	}

	name := strings.TrimSuffix(render.Filename(entry.Request.Destination), ".pdf") + "." + string(format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
