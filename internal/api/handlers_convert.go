package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"go_mdconv/internal/app"
	"go_mdconv/internal/config"
	"go_mdconv/internal/converr"
	"go_mdconv/internal/report"
)

// convertRequest is the JSON body of /convert and /sections. A raw HTML
// body takes the same options from the query string instead.
type convertRequest struct {
	HTML            string         `json:"html"`
	Source          string         `json:"source,omitempty"`
	Style           *config.Config `json:"style,omitempty"`
	ContentSelector string         `json:"content_selector,omitempty"`
	ExcludeSelector string         `json:"exclude_selector,omitempty"`
	AutoDetect      bool           `json:"auto_detect,omitempty"`
	RemoveNoise     bool           `json:"remove_noise,omitempty"`
	Verify          bool           `json:"verify,omitempty"`

	fromJSON bool
}

type convertResponse struct {
	Markdown string         `json:"markdown"`
	Title    string         `json:"title,omitempty"`
	Report   *report.Report `json:"report,omitempty"`
}

type sectionJSON struct {
	Heading  string `json:"heading"`
	Level    int    `json:"level"`
	ID       string `json:"id,omitempty"`
	Markdown string `json:"markdown"`
}

type sectionsResponse struct {
	Title    string        `json:"title,omitempty"`
	Sections []sectionJSON `json:"sections"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	a, err := s.appFor(req)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := a.Convert(r.Context(), req.HTML, req.options())
	if err != nil {
		writeError(w, err)
		return
	}

	if !req.fromJSON && !wantsJSON(r) {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, res.Markdown)
		return
	}
	resp := convertResponse{Markdown: res.Markdown, Title: res.Title}
	if req.Verify {
		resp.Report = &res.Report
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	a, err := s.appFor(req)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := a.Convert(r.Context(), req.HTML, req.options())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := sectionsResponse{Title: res.Title, Sections: []sectionJSON{}}
	if res.Document != nil {
		for _, sec := range res.Document.Sections {
			md, err := a.Converter().SectionToMarkdown(sec.HeadingText, sec.HeadingLevel, sec.ContentHTML)
			if err != nil {
				writeError(w, err)
				return
			}
			resp.Sections = append(resp.Sections, sectionJSON{
				Heading:  sec.HeadingText,
				Level:    sec.HeadingLevel,
				ID:       sec.HeadingID,
				Markdown: md,
			})
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// readRequest decodes the body, writing the error response itself when it
// cannot.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (convertRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.InputLimit())
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", tooLarge.Limit), "", http.StatusRequestEntityTooLarge)
			return convertRequest{}, false
		}
		jsonError(w, "failed to read body", "", http.StatusBadRequest)
		return convertRequest{}, false
	}

	if isJSON(r.Header.Get("Content-Type")) {
		var req convertRequest
		if err := json.Unmarshal(data, &req); err != nil {
			jsonError(w, "invalid json body: "+err.Error(), "", http.StatusBadRequest)
			return convertRequest{}, false
		}
		req.fromJSON = true
		return req, true
	}

	q := r.URL.Query()
	req := convertRequest{
		HTML:            string(data),
		Source:          q.Get("source"),
		ContentSelector: q.Get("content_selector"),
		ExcludeSelector: q.Get("exclude_selector"),
		AutoDetect:      queryBool(q.Get("auto_detect")),
		RemoveNoise:     queryBool(q.Get("remove_noise")),
		Verify:          queryBool(q.Get("verify")),
	}
	return req, true
}

// appFor returns the shared app, or a one-off app when the request carries
// its own style.
func (s *Server) appFor(req convertRequest) (*app.App, error) {
	if req.Style == nil {
		return s.app, nil
	}
	if err := req.Style.Validate(); err != nil {
		return nil, err
	}
	conv, err := req.Style.NewConverter()
	if err != nil {
		return nil, err
	}
	return app.New(conv, s.log), nil
}

func (req convertRequest) options() app.Options {
	source := req.Source
	if source == "" {
		source = "request"
	}
	return app.Options{
		Source:          source,
		ContentSelector: req.ContentSelector,
		ExcludeSelector: req.ExcludeSelector,
		AutoDetect:      req.AutoDetect,
		RemoveNoise:     req.RemoveNoise,
		Verify:          req.Verify,
	}
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/json"
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func queryBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// writeError maps conversion errors to 400 and everything else the pipeline
// rejects, such as a selector that matches nothing, to 422.
func writeError(w http.ResponseWriter, err error) {
	t := converr.TypeOf(err)
	code := http.StatusUnprocessableEntity
	if t != "" {
		code = http.StatusBadRequest
	}
	jsonError(w, err.Error(), string(t), code)
}

func jsonError(w http.ResponseWriter, msg, errType string, code int) {
	body := map[string]string{"error": msg}
	if errType != "" {
		body["type"] = errType
	}
	writeJSON(w, code, body)
}
