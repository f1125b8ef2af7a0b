package search

import (
	"github.com/kozaktomas/photo-archive/internal/event"
	"github.com/kozaktomas/photo-archive/internal/gallery"
)

var log = event.Log

// Reporter is told about query parameters the resolver chose to ignore.
type Reporter interface {
	// FilterDropped is called when a facet filter slug could not be resolved.
	FilterDropped(kind gallery.Kind, slug string, err error)
	// BadValue is called for a recognized key with an unusable value.
	BadValue(key, value string)
}

// LogReporter writes dropped parameters to the application log.
type LogReporter struct{}

func (LogReporter) FilterDropped(kind gallery.Kind, slug string, err error) {
	log.WithField("kind", kind.String()).Warnf("search: no filter %q: %v", slug, err)
}

func (LogReporter) BadValue(key, value string) {
	log.Warnf("search: bad value for %q: %q", key, value)
}

// Reporters fans out to several reporters.
type Reporters []Reporter

func (rs Reporters) FilterDropped(kind gallery.Kind, slug string, err error) {
	for _, r := range rs {
		r.FilterDropped(kind, slug, err)
	}
}

func (rs Reporters) BadValue(key, value string) {
	for _, r := range rs {
		r.BadValue(key, value)
	}
}

type nopReporter struct{}

func (nopReporter) FilterDropped(gallery.Kind, string, error) {}
func (nopReporter) BadValue(string, string)                   {}
