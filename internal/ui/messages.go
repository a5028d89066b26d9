package ui

import (
	"pokefinder/internal/eventbus"
	"pokefinder/internal/pokeapi"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// resultsMsg carries the answer to the fetch numbered seq
type resultsMsg struct {
	seq    uint64
	result *pokeapi.Result
	err    error
}

// optionsMsg carries the filter choices for lang
type optionsMsg struct {
	lang    string
	options *pokeapi.Options
	err     error
}

// speciesSuggestionsMsg carries species names completing text
type speciesSuggestionsMsg struct {
	text  string
	names []string
	err   error
}

// clipboardMsg reports the outcome of copying the share link
type clipboardMsg struct {
	link string
	err  error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct {
	id uint64
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
