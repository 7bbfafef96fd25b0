package core

import (
	"context"
	"fmt"
	"os"

	"github.com/ankit-chaubey/fileprops/core/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/ankit-chaubey/fileprops/core"

// Viewer reads one section of properties from a file.
type Viewer interface {
	View(ctx context.Context, path string) Section
}

// Registry dispatches read and strip requests to the handler of each
// category. The basic viewer runs for every file.
type Registry struct {
	basic    Viewer
	handlers map[Category]Handler
	logger   logging.Logger
}

// NewRegistry returns a Registry using basic for the filesystem section and
// one handler per category. Later handlers replace earlier ones for the same
// category.
func NewRegistry(basic Viewer, logger logging.Logger, handlers ...Handler) *Registry {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	r := &Registry{
		basic:    basic,
		handlers: make(map[Category]Handler),
		logger:   logger,
	}
	for _, h := range handlers {
		r.handlers[h.Info().Category] = h
	}
	return r
}

// Handler returns the handler registered for c.
func (r *Registry) Handler(c Category) (Handler, bool) {
	h, ok := r.handlers[c]
	return h, ok
}

// Formats returns the capabilities of every category in display order.
func (r *Registry) Formats() []FormatInfo {
	out := make([]FormatInfo, 0, len(Categories))
	for _, c := range Categories {
		if h, ok := r.handlers[c]; ok {
			out = append(out, h.Info())
			continue
		}
		out = append(out, FormatInfo{Name: string(c), Category: c, Extensions: ExtensionsFor(c)})
	}
	return out
}

// Inspect reads every property section of path. Only a missing file is
// reported as an error; section failures stay inside their section.
func (r *Registry) Inspect(ctx context.Context, path string) (*Report, error) {
	cat := Classify(path)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "core.Inspect", trace.WithAttributes(
		attribute.String("file.path", path),
		attribute.String("file.category", string(cat)),
	))
	defer span.End()

	if err := checkExists(path); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	rep := &Report{Path: path, Category: cat}
	if r.basic != nil {
		rep.Sections = append(rep.Sections, safeView(ctx, r.basic, SectionBasic, path))
	}
	if h, ok := r.handlers[cat]; ok {
		rep.Sections = append(rep.Sections, safeView(ctx, h, "", path))
	}

	for _, s := range rep.Sections {
		if s.Err != nil {
			span.RecordError(s.Err)
			r.logger.Warn(ctx, "section extraction failed", logging.Fields{
				"path": path, "section": string(s.Kind), "error": s.Err.Error(),
			})
		}
	}
	r.logger.Debug(ctx, "inspected file", logging.Fields{
		"path": path, "category": string(cat), "sections": len(rep.Sections),
	})
	return rep, nil
}

// Strip removes the metadata of path with the handler of its category.
func (r *Registry) Strip(ctx context.Context, path string) (err error) {
	cat := Classify(path)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "core.Strip", trace.WithAttributes(
		attribute.String("file.path", path),
		attribute.String("file.category", string(cat)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			r.logger.Warn(ctx, "strip failed", logging.Fields{
				"path": path, "category": string(cat), "code": Code(err), "error": err.Error(),
			})
		} else {
			r.logger.Info(ctx, "stripped file", logging.Fields{"path": path, "category": string(cat)})
		}
		span.End()
	}()

	if err := checkExists(path); err != nil {
		return err
	}
	h, ok := r.handlers[cat]
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	defer func() {
		if p := recover(); p != nil {
			err = &ExtractionError{Section: sectionFor(cat), Path: path, Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	return h.Strip(ctx, path)
}

func safeView(ctx context.Context, v Viewer, kind SectionKind, path string) (s Section) {
	defer func() {
		if p := recover(); p != nil {
			if kind == "" {
				kind = sectionFor(Classify(path))
			}
			s = Section{Kind: kind, Err: &ExtractionError{Section: kind, Path: path, Err: fmt.Errorf("panic: %v", p)}}
		}
	}()
	return v.View(ctx, path)
}

func sectionFor(c Category) SectionKind {
	switch c {
	case CatImage:
		return SectionEXIF
	case CatPDF:
		return SectionPDF
	case CatDOCX, CatDOC:
		return SectionWord
	default:
		return SectionTags
	}
}

func checkExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return err
	}
	return nil
}
