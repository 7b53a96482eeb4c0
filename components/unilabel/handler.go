package unilabel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-unilabel/pkg/contenttype"
	"github.com/goliatone/go-unilabel/pkg/form"
	"github.com/goliatone/go-unilabel/pkg/render"
)

// ErrLabelNotFound is returned by resolvers for unknown labels.
var ErrLabelNotFound = errors.New("unilabel: label not found")

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

func notFound(format string, args ...any) error {
	return StatusError{Code: http.StatusNotFound, Err: fmt.Errorf(format, args...)}
}

// Handler builds a handler with default options plus overrides. Request
// paths are relative to the mount path, e.g. "/unilabeltype_accordion/labels/4".
func Handler(fns ...OptionFn) (http.Handler, error) {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) (http.Handler, error) {
	opts = NewOptions(func(o *Options) { *o = opts })
	switch {
	case opts.Registry == nil:
		return nil, fmt.Errorf("unilabel: registry is required")
	case opts.Labels == nil:
		return nil, fmt.Errorf("unilabel: label resolver is required")
	case opts.Templates == nil:
		return nil, fmt.Errorf("unilabel: view templates are required")
	case opts.FormRenderer == nil:
		return nil, fmt.Errorf("unilabel: form renderer is required")
	}
	return &handler{opts: opts, logger: opts.Logger}, nil
}

type handler struct {
	opts   Options
	logger *zap.Logger
}

type target struct {
	ct      contenttype.ContentType
	label   contenttype.Label
	cm      contenttype.CourseModule
	form    bool
	urlPath string
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}

	tgt, err := h.resolve(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	switch {
	case !tgt.form && (r.Method == http.MethodGet || r.Method == http.MethodHead):
		err = h.view(w, r, tgt)
	case !tgt.form && r.Method == http.MethodDelete:
		err = h.delete(w, r, tgt)
	case tgt.form && r.Method == http.MethodGet:
		err = h.showForm(w, r, tgt)
	case tgt.form && r.Method == http.MethodPost:
		err = h.submitForm(w, r, tgt)
	default:
		allow := http.MethodGet + ", " + http.MethodHead + ", " + http.MethodDelete
		if tgt.form {
			allow = http.MethodGet + ", " + http.MethodPost
		}
		w.Header().Set("Allow", allow)
		err = StatusError{Code: http.StatusMethodNotAllowed}
	}
	if err != nil {
		h.writeError(w, r, err)
	}
}

// resolve parses "/{namespace}/labels/{id}[/form]".
func (h *handler) resolve(r *http.Request) (target, error) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 || len(parts) > 4 || parts[1] != "labels" || (len(parts) == 4 && parts[3] != "form") {
		return target{}, notFound("unilabel: no route for %q", r.URL.Path)
	}

	ct, err := h.opts.Registry.Get(parts[0])
	if err != nil {
		return target{}, StatusError{Code: http.StatusNotFound, Err: err}
	}
	if !ct.IsActive() {
		return target{}, notFound("unilabel: content type %q is not active", parts[0])
	}

	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || id <= 0 {
		return target{}, notFound("unilabel: invalid label id %q", parts[2])
	}
	label, cm, err := h.opts.Labels.ResolveLabel(r.Context(), id)
	if errors.Is(err, ErrLabelNotFound) {
		return target{}, StatusError{Code: http.StatusNotFound, Err: err}
	}
	if err != nil {
		return target{}, fmt.Errorf("unilabel: resolve label %d: %w", id, err)
	}

	if resetter, ok := ct.(contenttype.Resetter); ok {
		resetter.Reset()
	}
	return target{ct: ct, label: label, cm: cm, form: len(parts) == 4, urlPath: requestPath(r)}, nil
}

func (h *handler) view(w http.ResponseWriter, r *http.Request, tgt target) error {
	out, err := tgt.ct.Content(r.Context(), tgt.label, tgt.cm, h.opts.Templates)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return nil
	}
	_, _ = w.Write([]byte(out))
	return nil
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request, tgt target) error {
	if err := tgt.ct.DeleteContent(r.Context(), tgt.label.ID); err != nil {
		return err
	}
	h.logger.Info("label content deleted",
		zap.String("content_type", tgt.ct.Namespace()),
		zap.Int64("unilabel_id", tgt.label.ID),
	)
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *handler) showForm(w http.ResponseWriter, r *http.Request, tgt target) error {
	f, err := h.buildForm(r.Context(), tgt, nil)
	if err != nil {
		return err
	}
	values, err := tgt.ct.FormDefaults(r.Context(), form.NewValues(), tgt.label)
	if err != nil {
		return err
	}
	return h.renderForm(w, r, tgt, f, values, http.StatusOK)
}

func (h *handler) submitForm(w http.ResponseWriter, r *http.Request, tgt target) error {
	if err := r.ParseForm(); err != nil {
		return StatusError{Code: http.StatusBadRequest, Err: err}
	}
	f, err := h.buildForm(r.Context(), tgt, r.PostForm)
	if err != nil {
		return err
	}
	if err := f.SubmissionErr(); err != nil {
		return StatusError{Code: http.StatusBadRequest, Err: err}
	}
	values := form.ParseURL(f, r.PostForm)

	if f.AddMorePressed() {
		return h.renderForm(w, r, tgt, f, values, http.StatusOK)
	}

	if _, err := tgt.ct.SaveContent(r.Context(), values, tgt.label); err != nil {
		if errors.Is(err, contenttype.ErrInvalidSubmission) {
			return StatusError{Code: http.StatusBadRequest, Err: err}
		}
		return err
	}
	h.logger.Info("label content saved",
		zap.String("content_type", tgt.ct.Namespace()),
		zap.Int64("unilabel_id", tgt.label.ID),
	)
	http.Redirect(w, r, strings.TrimSuffix(tgt.urlPath, "/form"), http.StatusSeeOther)
	return nil
}

func (h *handler) buildForm(ctx context.Context, tgt target, posted url.Values) (*form.Form, error) {
	opts := []form.Option{form.WithAction(tgt.urlPath)}
	if posted != nil {
		opts = append(opts, form.WithSubmission(form.URLSubmission(posted)))
	}
	f := form.New(tgt.ct.Namespace()+"-settings", opts...)
	if err := tgt.ct.AddFormFragment(ctx, f, contenttype.FormContext{Label: tgt.label, CourseModule: tgt.cm}); err != nil {
		return nil, err
	}
	return f, nil
}

func (h *handler) renderForm(w http.ResponseWriter, r *http.Request, tgt target, f *form.Form, values form.Values, status int) error {
	out, err := h.opts.FormRenderer.Render(r.Context(), f, render.RenderOptions{
		Values: values,
		Hidden: render.HostFields{
			LabelID:        tgt.label.ID,
			CourseModuleID: tgt.cm.ID,
			ContentType:    tgt.ct.Namespace(),
		}.Map(),
		Locale:     h.opts.Locale,
		Translator: h.opts.Translator,
	})
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", h.opts.FormRenderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(out)
	return nil
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", code),
		zap.Error(err),
	}
	if code >= http.StatusInternalServerError {
		h.logger.Error("unilabel request failed", fields...)
	} else {
		h.logger.Debug("unilabel request rejected", fields...)
	}
	http.Error(w, http.StatusText(code), code)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

// requestPath is the path the client used, before any prefix stripping.
func requestPath(r *http.Request) string {
	if r.RequestURI != "" {
		if u, err := url.ParseRequestURI(r.RequestURI); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return r.URL.Path
}
