// Package dashboard implements the interactive terminal dashboard. It shows
// the accessible sites, the selected site's metric summary and a visitors
// chart, refreshing on a timer and on demand.
package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/j-veylop/pstats/internal/config"
	"github.com/j-veylop/pstats/internal/logger"
	"github.com/j-veylop/pstats/internal/models"
	"github.com/j-veylop/pstats/internal/plausible"
	"github.com/j-veylop/pstats/internal/ui/components"
)

// keyMap defines the dashboard key bindings.
type keyMap struct {
	NextSite   key.Binding
	PrevSite   key.Binding
	FirstSite  key.Binding
	LastSite   key.Binding
	NextPeriod key.Binding
	PrevPeriod key.Binding
	Refresh    key.Binding
	Quit       key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		NextSite: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "next site"),
		),
		PrevSite: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "prev site"),
		),
		FirstSite: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first site"),
		),
		LastSite: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last site"),
		),
		NextPeriod: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next period"),
		),
		PrevPeriod: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev period"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the dashboard's bubbletea model.
type Model struct {
	client  *plausible.Client
	cfg     *config.Config
	watcher *ConfigWatcher

	keys    keyMap
	spinner components.LoadingSpinner

	sites    []models.Site
	stats    map[string]*models.MetricValues
	siteErrs map[string]string
	series   []models.TimeseriesPoint

	selected int
	period   models.Period

	width   int
	height  int
	pending int
	fatal   error
}

// New creates a dashboard model. The watcher may be nil when no .env file
// was loaded.
func New(client *plausible.Client, cfg *config.Config, watcher *ConfigWatcher) *Model {
	return &Model{
		client:   client,
		cfg:      cfg,
		watcher:  watcher,
		keys:     defaultKeyMap(),
		spinner:  components.NewSpinner("Loading sites..."),
		stats:    make(map[string]*models.MetricValues),
		siteErrs: make(map[string]string),
		period:   models.PeriodDay,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Init(),
		loadSitesCmd(m.client),
		tickCmd(m.cfg.RefreshInterval),
		waitForConfigChangeCmd(m.watcher),
	)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		return m, tea.Batch(m.refreshCmds(), tickCmd(m.cfg.RefreshInterval))

	case sitesLoadedMsg:
		return m.handleSitesLoaded(msg)

	case statsLoadedMsg:
		return m.handleStatsLoaded(msg)

	case seriesLoadedMsg:
		if msg.Err == nil && msg.Site == m.selectedDomain() {
			m.series = msg.Points
		}
		return m, nil

	case configChangedMsg:
		logger.Info("env file changed, reloading configuration")
		return m, tea.Batch(reloadConfigCmd(), waitForConfigChangeCmd(m.watcher))

	case configReloadedMsg:
		return m.handleConfigReloaded(msg)
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.sites)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextSite):
		if count > 0 {
			m.selected = (m.selected + 1) % count
			return m, m.selectionCmds()
		}

	case key.Matches(msg, m.keys.PrevSite):
		if count > 0 {
			m.selected = (m.selected - 1 + count) % count
			return m, m.selectionCmds()
		}

	case key.Matches(msg, m.keys.FirstSite):
		if count > 0 {
			m.selected = 0
			return m, m.selectionCmds()
		}

	case key.Matches(msg, m.keys.LastSite):
		if count > 0 {
			m.selected = count - 1
			return m, m.selectionCmds()
		}

	case key.Matches(msg, m.keys.NextPeriod):
		m.period = models.NextPeriod(m.period)
		m.series = nil
		return m, m.refreshCmds()

	case key.Matches(msg, m.keys.PrevPeriod):
		m.period = models.PrevPeriod(m.period)
		m.series = nil
		return m, m.refreshCmds()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmds()
	}

	return m, nil
}

func (m *Model) handleSitesLoaded(msg sitesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.fatal = msg.Err
		return m, nil
	}

	m.fatal = nil
	m.sites = msg.Sites
	if m.selected >= len(m.sites) {
		m.selected = 0
	}
	return m, m.refreshCmds()
}

func (m *Model) handleStatsLoaded(msg statsLoadedMsg) (tea.Model, tea.Cmd) {
	if m.pending > 0 {
		m.pending--
	}

	if msg.Err != nil {
		_, wasHealthy := m.stats[msg.Site]
		m.siteErrs[msg.Site] = msg.Err.Error()
		delete(m.stats, msg.Site)
		if wasHealthy {
			// Only notify on the transition, not on every failed refresh.
			return m, notifyFailureCmd(msg.Site, msg.Err.Error())
		}
		return m, nil
	}

	m.stats[msg.Site] = msg.Metrics
	delete(m.siteErrs, msg.Site)
	return m, nil
}

func (m *Model) handleConfigReloaded(msg configReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Warn("config reload failed, keeping previous settings", "error", msg.Err)
		return m, nil
	}

	m.cfg = msg.Cfg
	m.client = plausible.New(plausible.Config{
		BaseURL:   msg.Cfg.BaseURL,
		APIKey:    msg.Cfg.APIKey,
		Timeout:   msg.Cfg.RequestTimeout,
		Precision: msg.Cfg.MetricPrecision,
	})
	return m, loadSitesCmd(m.client)
}

// refreshCmds reloads stats for every site and the chart for the selection.
func (m *Model) refreshCmds() tea.Cmd {
	if len(m.sites) == 0 {
		return loadSitesCmd(m.client)
	}

	cmds := make([]tea.Cmd, 0, len(m.sites)+1)
	for _, site := range m.sites {
		cmds = append(cmds, loadStatsCmd(m.client, site.Domain, m.period))
	}
	m.pending = len(m.sites)
	cmds = append(cmds, loadSeriesCmd(m.client, m.selectedDomain(), m.period))
	return tea.Batch(cmds...)
}

// selectionCmds reloads only what depends on the selected site.
func (m *Model) selectionCmds() tea.Cmd {
	domain := m.selectedDomain()
	if domain == "" {
		return nil
	}
	m.series = nil

	cmds := []tea.Cmd{loadSeriesCmd(m.client, domain, m.period)}
	if _, ok := m.stats[domain]; !ok {
		cmds = append(cmds, loadStatsCmd(m.client, domain, m.period))
	}
	return tea.Batch(cmds...)
}

// selectedDomain returns the selected site's domain, or "".
func (m *Model) selectedDomain() string {
	if m.selected < 0 || m.selected >= len(m.sites) {
		return ""
	}
	return m.sites[m.selected].Domain
}

// Close releases the model's resources.
func (m *Model) Close() error {
	return m.watcher.Close()
}
