package ui

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"pokefinder/internal/config"
	"pokefinder/internal/domain"
	"pokefinder/internal/eventbus"
	"pokefinder/internal/logic"
	"pokefinder/internal/pokeapi"
	"pokefinder/internal/state"
	"pokefinder/internal/ui/input"
	inputtypes "pokefinder/internal/ui/input/types"
	"pokefinder/internal/ui/input/modes"
	uilogic "pokefinder/internal/ui/logic"
	"pokefinder/internal/ui/views"
)

// E2EEnv enables the ready marker used by the end-to-end tests
const E2EEnv = "POKEFINDER_E2E_TEST"

const statusTimeout = 3 * time.Second

// API is the part of the GraphQL client the UI needs
type API interface {
	Search(ctx context.Context, vars pokeapi.Variables, policy pokeapi.Policy) (*pokeapi.Result, error)
	Options(ctx context.Context, lang string) (*pokeapi.Options, error)
	SpeciesNames(ctx context.Context, text string, mode domain.StringMatchMode, lang string) ([]string, error)
}

// Resetter is implemented by stores that can return to their defaults
type Resetter interface {
	Reset() state.State
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the model's logger
func WithLogger(log zerolog.Logger) Option {
	return func(m *Model) {
		m.log = log.With().Str("component", "ui").Logger()
	}
}

// WithShareLink sets the function producing the link copied with y
func WithShareLink(link func() string) Option {
	return func(m *Model) {
		m.shareLink = link
	}
}

// WithClipboard replaces the system clipboard
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.copyText = write
	}
}

// Model represents the UI state
type Model struct {
	store logic.StateStore
	api   API
	cfg   *config.Config
	vars  pokeapi.VariableOptions
	log   zerolog.Logger

	shareLink func() string
	copyText  func(string) error

	width       int
	height      int
	help        help.Model
	showHelp    bool
	inPagerMode bool
	e2e         bool

	navigator    *uilogic.Navigator
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	inputHandler *input.Handler

	options *pokeapi.Options

	result   *pokeapi.Result
	fetchSeq uint64
	loading  bool

	statusMessage string
	statusIsError bool
	statusID      uint64

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(store logic.StateStore, api API, cfg *config.Config, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := &Model{
		store: store,
		api:   api,
		cfg:   cfg,
		vars: pokeapi.VariableOptions{
			PageSize:             cfg.API.PageSize,
			UniformSortDirection: cfg.API.UniformSortDirection,
		},
		log:          zerolog.Nop(),
		shareLink:    func() string { return "" },
		copyText:     clipboard.WriteAll,
		help:         help.New(),
		e2e:          os.Getenv(E2EEnv) == "1",
		navigator:    uilogic.NewNavigator(len(panelRows)),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Init fetches the filter options and the results of the initial search
func (m *Model) Init() tea.Cmd {
	st := m.store.State()
	return tea.Batch(
		m.fetchResults(st, pokeapi.CacheFirst),
		m.fetchOptions(st.PrimaryLanguage()),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		st := m.store.State()
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext(st))

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		// The text input needs cursor blinks; everything else is ours
		cmd := m.inputHandler.Update(msg)
		_, own := m.handleNonKeyboardMsg(msg)
		return m, tea.Batch(cmd, own)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 && !m.e2e {
		return "Loading..."
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	st := m.store.State()
	editing := st.Editing()

	rows := make([]views.PanelRow, len(panelRows))
	for i, row := range panelRows {
		rows[i] = describeRow(row, editing, m.options)
	}

	vs := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Rows:          rows,
		SelectedIndex: m.navigator.GetSelectedIndex(),
		Pending:       st.HasPending(),
		AutoSubmit:    st.AutoSubmit,
		Languages:     st.Languages,
		Headers:       pokeapi.Headers(st.Search.Current.Fields),
		TableOffset:   m.navigator.GetViewportOffset(),
		Loading:       m.loading,
		HasResult:     m.result != nil,
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		FooterHelp:    m.help.ShortHelpView(modes.Keys.ShortHelp()),
		ShowHelp:      m.showHelp,
		ShowReady:     m.e2e,
	}
	if m.showHelp {
		vs.HelpContent = m.helpRenderer.RenderHelpContent()
	}
	if m.result != nil {
		vs.Table = m.result.Table(st.Search.Current.Fields)
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.Editing = true
		vs.EditLabel = m.currentRow().label()
		vs.TextInput = ti.View()
	}
	return vs
}

func (m *Model) currentRow() panelRow {
	return panelRows[m.navigator.GetSelectedIndex()]
}

func (m *Model) inputContext(st state.State) *input.ModelContext {
	row := m.currentRow()
	kind, _ := row.key.Kind()
	return &input.ModelContext{
		Index:     m.navigator.GetSelectedIndex(),
		Total:     len(panelRows),
		FilterRow: row.kind == rowFilter,
		Modes: row.kind == rowFilter &&
			(kind == domain.KindStringMatch || kind == domain.KindNumberMatch || kind == domain.KindArrayMatch),
		Pending: st.HasPending(),
		Text:    editText(row, st.Editing(), m.options),
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		switch a.Direction {
		case "up":
			m.navigator.Move(-1)
		case "down":
			m.navigator.Move(1)
		case "home":
			m.navigator.SetSelectedIndex(0)
		case "end":
			m.navigator.SetSelectedIndex(len(panelRows) - 1)
		case "pageup":
			m.syncViewport()
			m.navigator.PageUp()
		case "pagedown":
			m.syncViewport()
			m.navigator.PageDown()
		}
		return nil

	case inputtypes.ToggleActiveAction:
		row := m.currentRow()
		search := m.store.State().Editing()
		v := search.Filter.MustGet(row.key)
		filter, err := search.Filter.With(row.key, v.WithActive(!v.IsActive()))
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		return m.dispatch(state.SetFilter{Filter: filter})

	case inputtypes.CycleModeAction:
		return m.cycleMode()

	case inputtypes.FlipSortAction:
		sort := slices.Clone(m.store.State().Editing().Sort)
		if len(sort) == 0 {
			return nil
		}
		sort[0].Reverse = !sort[0].Reverse
		if m.vars.UniformSortDirection {
			sort = domain.UniformDirection(sort)
		}
		return m.dispatch(state.SetSort{Sort: sort})

	case inputtypes.ToggleAutoSubmitAction:
		return m.dispatch(state.SetAutoSubmit{Value: !m.store.State().AutoSubmit})

	case inputtypes.SubmitPendingAction:
		return m.dispatch(state.SubmitPending{})

	case inputtypes.ClearPendingAction:
		return m.dispatch(state.ClearPending{})

	case inputtypes.RefreshAction:
		return m.dispatch(state.Refresh{})

	case inputtypes.CycleLanguageAction:
		return m.dispatch(state.SetLanguages{Languages: nextLanguages(m.store.State().PrimaryLanguage())})

	case inputtypes.CopyLinkAction:
		link := m.shareLink()
		write := m.copyText
		return func() tea.Msg {
			return clipboardMsg{link: link, err: write(link)}
		}

	case inputtypes.ResetAction:
		r, ok := m.store.(Resetter)
		if !ok {
			return nil
		}
		prev := m.store.State()
		next := r.Reset()
		return tea.Batch(m.afterTransition(prev, next), m.setStatus("Search reset to defaults", false))

	case inputtypes.ToggleHelpAction:
		if m.showHelp {
			m.showHelp = false
			return nil
		}
		if m.program != nil && !m.e2e {
			return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())
		}
		m.openHelpPopup()
		return nil

	case inputtypes.UpdateTextAction:
		return m.updateSuggestions(a.Text)

	case inputtypes.SubmitTextAction:
		st := m.store.State()
		search, err := applyEdit(m.currentRow(), st.Editing(), a.Text, m.options)
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		return m.dispatchSearch(st.Editing(), search)

	case inputtypes.CancelTextAction:
		return nil

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// dispatchSearch turns an edited search into the actions that changed
func (m *Model) dispatchSearch(before, after domain.Search) tea.Cmd {
	var cmds []tea.Cmd
	if !slices.Equal(before.Fields, after.Fields) {
		cmds = append(cmds, m.dispatch(state.SetFields{Fields: after.Fields}))
	}
	if !slices.Equal(before.Sort, after.Sort) {
		cmds = append(cmds, m.dispatch(state.SetSort{Sort: after.Sort}))
	}
	if !before.Filter.Equal(after.Filter) {
		cmds = append(cmds, m.dispatch(state.SetFilter{Filter: after.Filter}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) cycleMode() tea.Cmd {
	row := m.currentRow()
	search := m.store.State().Editing()

	var next domain.Value
	switch v := search.Filter.MustGet(row.key).(type) {
	case domain.StringMatchValue:
		v.Mode = v.Mode.Next()
		next = v
	case domain.NumberMatchValue:
		v.Mode = v.Mode.Next()
		next = v
	case domain.ArrayMatchValue:
		v.Mode = v.Mode.Next()
		next = v
	default:
		return nil
	}
	filter, err := search.Filter.With(row.key, next)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	return m.dispatch(state.SetFilter{Filter: filter})
}

// dispatch sends action to the store and starts whatever fetches the
// transition calls for
func (m *Model) dispatch(action state.Action) tea.Cmd {
	prev := m.store.State()
	next := m.store.Dispatch(action)
	return m.afterTransition(prev, next)
}

// afterTransition fetches results when the submitted search or languages
// change, or a refresh was requested, and reloads options on a language
// change
func (m *Model) afterTransition(prev, next state.State) tea.Cmd {
	var cmds []tea.Cmd
	searchChanged := !prev.Search.Current.Equal(next.Search.Current) || !slices.Equal(prev.Languages, next.Languages)
	switch {
	case searchChanged:
		m.navigator.ResetViewport()
		cmds = append(cmds, m.fetchResults(next, pokeapi.CacheFirst))
	case next.RefreshCounter != prev.RefreshCounter:
		cmds = append(cmds, m.fetchResults(next, pokeapi.NetworkOnly))
	}
	if prev.PrimaryLanguage() != next.PrimaryLanguage() {
		cmds = append(cmds, m.fetchOptions(next.PrimaryLanguage()))
	}
	return tea.Batch(cmds...)
}

// fetchResults starts a query for st's submitted search. Only the answer to
// the latest fetch is kept.
func (m *Model) fetchResults(st state.State, policy pokeapi.Policy) tea.Cmd {
	m.fetchSeq++
	seq := m.fetchSeq
	m.loading = true

	vars := pokeapi.BuildVariables(st.Search.Current, st.Languages, m.vars)
	api := m.api
	timeout := m.cfg.RequestTimeout()
	m.log.Debug().Uint64("seq", seq).Str("policy", policy.String()).Msg("fetching results")

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := api.Search(ctx, vars, policy)
		return resultsMsg{seq: seq, result: res, err: err}
	}
}

func (m *Model) fetchOptions(lang string) tea.Cmd {
	api := m.api
	timeout := m.cfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		opts, err := api.Options(ctx, lang)
		return optionsMsg{lang: lang, options: opts, err: err}
	}
}

// updateSuggestions refreshes the completions offered while editing
func (m *Model) updateSuggestions(text string) tea.Cmd {
	row := m.currentRow()
	if row.kind != rowFilter || row.key != domain.FilterSpecies {
		m.inputHandler.SetSuggestions(suggestions(row, text, m.options))
		return nil
	}

	v, _ := m.store.State().Editing().Filter.MustGet(domain.FilterSpecies).(domain.StringMatchValue)
	api := m.api
	lang := m.store.State().PrimaryLanguage()
	timeout := m.cfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		names, err := api.SpeciesNames(ctx, text, v.Mode, lang)
		return speciesSuggestionsMsg{text: text, names: names, err: err}
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	program := m.program
	return func() tea.Msg {
		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})

		err := NewHelpOps(program).ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

func (m *Model) openHelpPopup() {
	m.showHelp = true
	m.inputHandler.ChangeMode(inputtypes.ModeHelp, "")
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsMsg:
		if msg.seq != m.fetchSeq {
			m.log.Debug().Uint64("seq", msg.seq).Uint64("latest", m.fetchSeq).Msg("dropping stale results")
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("search failed")
			return m, m.setStatus(fmt.Sprintf("Search failed: %v", msg.err), true)
		}
		m.result = msg.result
		m.syncViewport()
		return m, nil

	case optionsMsg:
		if msg.lang != m.store.State().PrimaryLanguage() {
			return m, nil
		}
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("lang", msg.lang).Msg("failed to load filter options")
			return m, nil
		}
		m.options = msg.options
		return m, nil

	case speciesSuggestionsMsg:
		ti := m.inputHandler.TextInput()
		if ti == nil || ti.Value() != msg.text {
			return m, nil
		}
		if msg.err != nil {
			m.log.Debug().Err(msg.err).Msg("species suggestions failed")
			return m, nil
		}
		m.inputHandler.SetSuggestions(msg.names)
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("clipboard unavailable")
			return m, m.setStatus("Link: "+msg.link, false)
		}
		return m, m.setStatus("Copied link to clipboard", false)

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed, fall back to the popup
			m.log.Warn().Err(msg.err).Msg("help pager failed")
			m.openHelpPopup()
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return m, nil
	}
	return m, nil
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.PersistFailedEvent:
		return m.setStatus(fmt.Sprintf("Could not save search to %s: %v", e.Target, e.Err), true)
	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, true)
	}
	return nil
}

// setStatus shows message until it is replaced or times out
func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	m.statusID++
	id := m.statusID
	m.statusMessage = message
	m.statusIsError = isError
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{id: id} })
}

func (m *Model) syncViewport() {
	total := 0
	if m.result != nil {
		total = len(m.result.Rows)
	}
	height := m.height - len(panelRows) - 12
	m.navigator.SetViewport(height, total)
}

// nextLanguages cycles the primary language through the catalog
func nextLanguages(primary string) []string {
	langs := domain.Languages
	for i, l := range langs {
		if l.ID == primary {
			return domain.LanguagePreference(langs[(i+1)%len(langs)].ID)
		}
	}
	return domain.LanguagePreference(domain.FallbackLanguage)
}
